package problem

import "github.com/xy-planning-network/safespace/http/resp"

// Coder is implemented by failures carrying a machine-readable code.
type Coder interface {
	Code() string
}

// Titler is implemented by failures carrying a human-readable title.
type Titler interface {
	Title() string
}

// ResponseCarrier is implemented by failures carrying a prebuilt response.
type ResponseCarrier interface {
	Response() *resp.Response
}

// Presentable is implemented by *Problem and every type embedding it.
type Presentable interface {
	error
	Coder
	Titler
	ResponseCarrier
	Message() string

	presentable()
}

var _ Presentable = (*Problem)(nil)

// A Problem is a failure safe to show to the end user.
//
// A nil *Problem, as embedded by a zero-value wrapper type, reads as empty.
type Problem struct {
	message  string
	code     string
	title    string
	response *resp.Response
}

// An Opt sets an optional field on a Problem under construction.
type Opt func(*Problem)

// New constructs a *Problem with the message and options.
func New(message string, opts ...Opt) *Problem {
	p := &Problem{message: message}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithCode sets the machine-readable code.
// An empty code leaves the code unset.
func WithCode(code string) Opt {
	return func(p *Problem) {
		if code != "" {
			p.code = code
		}
	}
}

// WithResponse attaches a prebuilt response that is returned verbatim
// instead of rendering one.
func WithResponse(r *resp.Response) Opt {
	return func(p *Problem) {
		p.response = r
	}
}

// WithTitle sets the human-readable title.
// An empty title leaves the title unset.
func WithTitle(title string) Opt {
	return func(p *Problem) {
		if title != "" {
			p.title = title
		}
	}
}

// Code returns the machine-readable code, if any.
func (p *Problem) Code() string {
	if p == nil {
		return ""
	}

	return p.code
}

// Error returns the message.
func (p *Problem) Error() string { return p.Message() }

// Message returns the message.
func (p *Problem) Message() string {
	if p == nil {
		return ""
	}

	return p.message
}

// Response returns the prebuilt response, if any.
func (p *Problem) Response() *resp.Response {
	if p == nil {
		return nil
	}

	return p.response
}

// Title returns the human-readable title, if any.
func (p *Problem) Title() string {
	if p == nil {
		return ""
	}

	return p.title
}

func (*Problem) presentable() {}
