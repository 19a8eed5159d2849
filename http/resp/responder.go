package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/safespace/http/template"
	"github.com/xy-planning-network/safespace/logger"
)

const responderFrames = 0

// Responder maintains reusable pieces for responding to HTTP requests.
// These are the forms of response Responder can build:
//
//	Html
//	Json
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Initialized template parser used when no engine is selected
	parser template.Parser

	// Alternate template parsers, by name
	engines map[string]template.Parser

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	if d.parser != nil {
		d.parser.AddFn(template.Nonce())
	}

	for _, p := range d.engines {
		p.AddFn(template.Nonce())
	}

	return d
}

// Err wraps http.Error(), logging the error causing the failure state.
//
// Use in exceptional circumstances when no other Response can be built.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(r, opts...)
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	doer.logger.Error(fmt.Sprint(err), newLogContext(r, err, rr.data))

	if rr.Status == 0 {
		rr.Status = http.StatusInternalServerError
	}

	http.Error(w, http.StatusText(rr.Status), rr.Status)
}

// HasEngine reports whether a template engine is registered under name.
// The empty name is the default parser.
func (doer *Responder) HasEngine(name string) bool {
	if name == "" {
		return doer.parser != nil
	}

	_, ok := doer.engines[name]
	return ok
}

// Html renders the first existing template set by Tmpls,
// with the data set by Data, into a *Response.
//
// If none of the templates exist, the error wraps template.ErrNoTemplate.
// The default status code is 200.
func (doer *Responder) Html(r *http.Request, opts ...Fn) (*Response, error) {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return nil, err
	}

	parser := doer.parser
	if rr.engine != "" {
		parser = doer.engines[rr.engine]
	}

	if parser == nil {
		return nil, fmt.Errorf("%w: no parser configured", ErrBadConfig)
	}

	if len(rr.tmpls) == 0 {
		return nil, fmt.Errorf("%w: no templates to render", ErrMissingData)
	}

	name, err := parser.Lookup(rr.tmpls...)
	if err != nil {
		return nil, fmt.Errorf("cannot render: %w", err)
	}

	tmpl, err := parser.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("cannot parse: %w", err)
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := tmpl.Execute(b, rr.data); err != nil {
		return nil, fmt.Errorf("cannot execute %s: %w", name, err)
	}

	if rr.Status == 0 {
		rr.Status = http.StatusOK
	}

	rr.Header.Set("Content-Type", parser.ContentType())
	rr.Body = append([]byte(nil), b.Bytes()...)

	return rr, nil
}

// Json encodes the data set by Data into a *Response, setting appropriate headers.
//
// The default status code is 200.
func (doer *Responder) Json(r *http.Request, opts ...Fn) (*Response, error) {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return nil, err
	}

	if rr.Status == 0 {
		rr.Status = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(rr.data); err != nil {
		return nil, fmt.Errorf("cannot encode: %w", err)
	}

	rr.Header.Set("Content-Type", "application/json; charset=UTF-8")
	rr.Body = append([]byte(nil), b.Bytes()...)

	return rr, nil
}

// do applies all options to a fresh *Response.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
//
// do stops early when the *http.Request.Context is done.
// Should all options apply successfully, do returns a validly formed *Response;
// otherwise, do returns the partially formed *Response and the first error encountered.
func (doer *Responder) do(r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		Header: make(http.Header),
		tmpls:  make([]string, 0),
	}

	for _, opt := range opts {
		if r != nil {
			select {
			case <-r.Context().Done():
				return resp, fmt.Errorf("%w", ErrDone)
			default:
			}
		}

		if err := opt(*doer, resp); err != nil {
			return resp, err
		}
	}

	return resp, nil
}
