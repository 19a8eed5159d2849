package intercept

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/i18n"
	"github.com/xy-planning-network/safespace/problem"
)

const (
	KeyException = "exception"
	KeyMessage   = "message"
	KeyCode      = "code"
	KeyTitle     = "title"
	KeyExcType   = "exc_type"
	KeyViewName  = "view_name"
	KeyURLName   = "url_name"
	KeyAppName   = "app_name"
	KeyNamespace = "namespace"
)

var keys = [...]string{
	KeyException,
	KeyMessage,
	KeyCode,
	KeyTitle,
	KeyExcType,
	KeyViewName,
	KeyURLName,
	KeyAppName,
	KeyNamespace,
}

// Keys lists every key a Context holds, in order.
func Keys() []string { return append([]string(nil), keys[:]...) }

// A Context describes a failure and the route of the request that failed.
// Templates choose and fill in a presentation from it.
//
// Code and the route fields are empty when unavailable;
// Get and Map report them as nil.
type Context struct {
	Exception error
	Message   string
	Code      string
	Title     string
	ExcType   string

	ViewName  string
	URLName   string
	AppName   string
	Namespace string
}

// Build constructs the Context for failure raised while handling r.
//
// A failure without a title of its own is titled with the translation of i18n.ErrorTitle.
// With a nil tr, the title is left untranslated.
func Build(r *http.Request, failure error, tr i18n.Translator) Context {
	c := Context{Exception: failure, ExcType: ExcType(failure)}
	if failure != nil {
		c.Message = failure.Error()
	}

	if coder, ok := failure.(problem.Coder); ok {
		c.Code = coder.Code()
	}

	if titler, ok := failure.(problem.Titler); ok {
		c.Title = titler.Title()
	}

	if c.Title == "" {
		c.Title = i18n.ErrorTitle
		if tr != nil {
			c.Title = tr.Translate(r, i18n.ErrorTitle)
		}
	}

	if r == nil {
		return c
	}

	if m, ok := safespace.RouteMatchFromContext(r.Context()); ok {
		c.AppName = m.AppName
		c.Namespace = m.Namespace
		c.URLName = m.URLName
		c.ViewName = m.ViewName
	}

	return c
}

// Get returns the value under key.
// The boolean reports whether key is one of Keys.
func (c Context) Get(key string) (any, bool) {
	switch key {
	case KeyException:
		return c.Exception, true
	case KeyMessage:
		return c.Message, true
	case KeyCode:
		return nilIfEmpty(c.Code), true
	case KeyTitle:
		return c.Title, true
	case KeyExcType:
		return c.ExcType, true
	case KeyViewName:
		return nilIfEmpty(c.ViewName), true
	case KeyURLName:
		return nilIfEmpty(c.URLName), true
	case KeyAppName:
		return nilIfEmpty(c.AppName), true
	case KeyNamespace:
		return nilIfEmpty(c.Namespace), true
	default:
		return nil, false
	}
}

// Map copies c into a map keyed by Keys, for use as template data.
func (c Context) Map() map[string]any {
	m := make(map[string]any, len(keys))
	for _, k := range keys {
		m[k], _ = c.Get(k)
	}

	return m
}

// ExcType derives a lower snake case token from the name of the concrete type of failure.
// Pointers are dereferenced, so both CustomError and *CustomError yield "custom_error".
//
// Word boundaries fall before an upper case letter following a lower case one
// and before an upper case letter starting a word:
// HTTPError yields "http_error".
func ExcType(failure error) string {
	if failure == nil {
		return ""
	}

	t := reflect.TypeOf(failure)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	return snakeCase(name)
}

func snakeCase(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if isUpper(ch) && i > 0 {
			afterLower := isLower(name[i-1])
			startsWord := i+1 < len(name) && !isUpper(name[i+1])
			if afterLower || startsWord {
				b.WriteByte('_')
			}
		}

		b.WriteByte(ch)
	}

	return strings.ToLower(b.String())
}

func isLower(ch byte) bool { return 'a' <= ch && ch <= 'z' }
func isUpper(ch byte) bool { return 'A' <= ch && ch <= 'Z' }

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}

	return s
}
