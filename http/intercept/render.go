package intercept

//go:generate mockgen -destination intercepttest/renderer.go -package intercepttest github.com/xy-planning-network/safespace/http/intercept Renderer

import (
	"net/http"

	"github.com/xy-planning-network/safespace/http/resp"
)

// A Renderer turns a presented failure into a response with the status code given.
type Renderer interface {
	Render(r *http.Request, failure error, c Context, status int) (*resp.Response, error)
}

// The RendererFunc type is an adapter to allow the use of ordinary functions as Renderers.
type RendererFunc func(r *http.Request, failure error, c Context, status int) (*resp.Response, error)

// Render calls fn(r, failure, c, status).
func (fn RendererFunc) Render(r *http.Request, failure error, c Context, status int) (*resp.Response, error) {
	return fn(r, failure, c, status)
}

// A StructuredRenderer renders failures as JSON objects with exactly the keys
// code, error and title.
// code is null for failures without one.
type StructuredRenderer struct {
	d *resp.Responder
}

// NewStructuredRenderer constructs a *StructuredRenderer encoding with d.
func NewStructuredRenderer(d *resp.Responder) *StructuredRenderer {
	return &StructuredRenderer{d: d}
}

// structuredBody fixes the key order of a Structured response.
type structuredBody struct {
	Code  any    `json:"code"`
	Error string `json:"error"`
	Title string `json:"title"`
}

func (sr *StructuredRenderer) Render(r *http.Request, _ error, c Context, status int) (*resp.Response, error) {
	code, _ := c.Get(KeyCode)
	body := structuredBody{Code: code, Error: c.Message, Title: c.Title}

	return sr.d.Json(r, resp.Code(status), resp.Data(body))
}

// A DocumentRenderer renders failures through templates,
// choosing the first of its TemplateNames that exists.
// Every Context value is available to the template by key, as in {{ .message }}.
type DocumentRenderer struct {
	d      *resp.Responder
	engine string
	names  TemplateNames
}

// NewDocumentRenderer constructs a *DocumentRenderer rendering with d.
// A non-empty engine selects a template engine registered with resp.WithEngine.
func NewDocumentRenderer(d *resp.Responder, names TemplateNames, engine string) *DocumentRenderer {
	return &DocumentRenderer{d: d, engine: engine, names: names}
}

func (dr *DocumentRenderer) Render(r *http.Request, _ error, c Context, status int) (*resp.Response, error) {
	return dr.d.Html(
		r,
		resp.Code(status),
		resp.Engine(dr.engine),
		resp.Tmpls(dr.names.Expand(c)...),
		resp.Data(c.Map()),
	)
}
