package resp

import (
	"fmt"
	"net/http"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is a fully formed reply to an HTTP request.
//
// A Responder builds a Response while applying all functional options;
// the unexported fields only matter during that build.
type Response struct {
	Status int
	Header http.Header
	Body   []byte

	data   any
	engine string
	tmpls  []string
}

// New constructs a *Response with the status code and body.
func New(status int, body []byte) *Response {
	return &Response{Status: status, Header: make(http.Header), Body: body}
}

// Valid asserts r is a Response that can be written to a client.
func (r *Response) Valid() error {
	if r == nil {
		return fmt.Errorf("%w: nil response", ErrInvalid)
	}

	if r.Status < 100 || r.Status > 599 {
		return fmt.Errorf("%w: status code %d", ErrInvalid, r.Status)
	}

	return nil
}

// Write copies the headers, status code and body of r to w.
func (r *Response) Write(w http.ResponseWriter) error {
	if err := r.Valid(); err != nil {
		return err
	}

	for k, vals := range r.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	w.WriteHeader(r.Status)
	if len(r.Body) == 0 {
		return nil
	}

	_, err := w.Write(r.Body)
	return err
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.Status = c
		return nil
	}
}

// Data stores the provided value for rendering.
//
// Used with Responder.Html and Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Engine selects the template engine, registered through WithEngine, to render with.
// An empty name keeps the Responder's default parser.
//
// Used with Responder.Html.
func Engine(name string) Fn {
	return func(d Responder, r *Response) error {
		if name == "" {
			return nil
		}

		if _, ok := d.engines[name]; !ok {
			return fmt.Errorf("%w: no engine named %q", ErrBadConfig, name)
		}

		r.engine = name
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(nil, e, r.data))
		}

		return Code(http.StatusInternalServerError)(d, r)
	}
}

// Header sets the header key to val, replacing existing values.
func Header(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		r.Header.Set(key, val)
		return nil
	}
}

// Tmpls appends to the candidate templates, in order of preference.
// Responder.Html renders the first candidate that exists.
//
// Used with Responder.Html.
func Tmpls(fps ...string) Fn {
	return func(_ Responder, r *Response) error {
		r.tmpls = append(r.tmpls, fps...)
		return nil
	}
}
