package intercept

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/config"
	"github.com/xy-planning-network/safespace/http/resp"
	"github.com/xy-planning-network/safespace/http/template"
	"github.com/xy-planning-network/safespace/i18n"
	"github.com/xy-planning-network/safespace/logger"
	"github.com/xy-planning-network/safespace/problem"
	"github.com/xy-planning-network/safespace/registry"
)

// ErrorCodeHeader carries the code of a presented failure.
const ErrorCodeHeader = "X-Error-Code"

// A StatusFn chooses the status code of the response presenting failure.
// status is the configured one.
type StatusFn func(r *http.Request, failure error, status int) int

// An Interceptor presents failures raised while handling requests to end users,
// when they are of a kind its registry.Registry holds.
type Interceptor struct {
	logger     logger.Logger
	registry   *registry.Registry
	responder  *resp.Responder
	statusFn   StatusFn
	translator i18n.Translator

	// renderers set through WithRenderer, surviving Reload
	custom map[Representation]Renderer

	cfg     config.Config
	current atomic.Pointer[settings]
	mu      sync.Mutex
}

// settings are the parts of an Interceptor Reload replaces.
type settings struct {
	kinds     registry.Kinds
	status    int
	names     TemplateNames
	renderers map[Representation]Renderer
}

// New constructs an *Interceptor from config.Default, modified by opts.
//
// Unknown kinds, template names with bad placeholders,
// and template engines the responder does not know are reported here
// rather than when presenting a failure.
func New(opts ...InterceptorOptFn) (*Interceptor, error) {
	ic := &Interceptor{
		cfg:    config.Default(),
		custom: make(map[Representation]Renderer),
	}
	for _, opt := range opts {
		opt(ic)
	}

	if ic.logger == nil {
		ic.logger = logger.New()
	}

	if ic.responder == nil {
		ic.responder = resp.NewResponder(resp.WithLogger(ic.logger), resp.WithParser(template.NewParser()))
	}

	if ic.translator == nil {
		ic.translator = i18n.NewCatalog()
	}

	if ic.registry == nil {
		reg, err := registry.New(registry.DefaultCatalog(), ic.cfg.ExceptionKinds...)
		if err != nil {
			return nil, err
		}

		ic.registry = reg
	}

	s, err := ic.build(ic.cfg, ic.registry.Snapshot())
	if err != nil {
		return nil, err
	}

	ic.current.Store(s)
	return ic, nil
}

// OnFailure presents err, raised while handling r, if err is or wraps a presentable failure.
//
// The boolean reports whether err was handled.
// When it was not, the caller ought to fall back to its usual failure handling.
//
// A failure carrying a valid response of its own gets that response, untouched.
// Otherwise, the response is rendered in the Representation r negotiates,
// and, when the failure has a code, carries it in the X-Error-Code header.
//
// An error returns when rendering fails,
// including ErrMisconfiguredRenderer when a Renderer returns no valid response.
func (ic *Interceptor) OnFailure(r *http.Request, err error) (*resp.Response, bool, error) {
	s := ic.current.Load()
	failure, ok := s.kinds.Match(err)
	if !ok {
		return nil, false, nil
	}

	if carrier, ok := failure.(problem.ResponseCarrier); ok {
		if override := carrier.Response(); override.Valid() == nil {
			ic.logger.Debug("presenting failure with its own response", &logger.LogContext{Request: r, Error: failure})
			return override, true, nil
		}
	}

	c := Build(r, failure, ic.translator)
	rep := Negotiate(r)

	status := s.status
	if ic.statusFn != nil {
		status = ic.statusFn(r, failure, status)
		if status < 100 || status > 599 {
			return nil, false, fmt.Errorf("%w: status hook returned %d", safespace.ErrBadConfig, status)
		}
	}

	rr, err := s.renderers[rep].Render(r, failure, c, status)
	if err != nil {
		return nil, false, fmt.Errorf("cannot render %s response: %w", rep, err)
	}

	if err := rr.Valid(); err != nil {
		return nil, false, fmt.Errorf("%w: %s renderer: %s", ErrMisconfiguredRenderer, rep, err)
	}

	if c.Code != "" {
		if rr.Header == nil {
			rr.Header = make(http.Header)
		}

		rr.Header.Set(ErrorCodeHeader, c.Code)
	}

	ic.logger.Info("presenting failure", &logger.LogContext{
		Request: r,
		Error:   failure,
		Data: map[string]any{
			"code":           c.Code,
			"exc_type":       c.ExcType,
			"representation": rep.String(),
			"status":         rr.Status,
		},
	})

	return rr, true, nil
}

// Config returns the settings last applied by New or Reload.
func (ic *Interceptor) Config() config.Config {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	return ic.cfg
}

// IsPresentable reports whether OnFailure would handle err.
func (ic *Interceptor) IsPresentable(err error) bool {
	_, ok := ic.current.Load().kinds.Match(err)
	return ok
}

// Reload replaces the registered kinds, status code, template names and template engine
// with those in cfg.
//
// Either all of them are replaced or, when any is invalid, none are.
// A failure being presented sees either the old settings or the new ones, never a mix.
func (ic *Interceptor) Reload(cfg config.Config) error {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	kinds, err := ic.registry.Resolve(cfg.ExceptionKinds...)
	if err != nil {
		return err
	}

	s, err := ic.build(cfg, kinds)
	if err != nil {
		return err
	}

	ic.cfg = cfg
	ic.current.Store(s)
	ic.registry.Set(kinds)

	ic.logger.Info("reloaded", &logger.LogContext{Data: map[string]any{
		"exception_kinds": kinds.Names(),
		"http_status":     s.status,
		"template_engine": cfg.TemplateEngine,
		"template_names":  s.names.Raw(),
	}})

	return nil
}

// build validates cfg and constructs the settings it describes, presenting kinds.
func (ic *Interceptor) build(cfg config.Config, kinds registry.Kinds) (*settings, error) {
	status := cfg.HTTPStatus
	if status == 0 {
		status = config.DefaultHTTPStatus
	}

	if status < 100 || status > 599 {
		return nil, fmt.Errorf("%w: status %d", safespace.ErrBadConfig, status)
	}

	names, err := CompileTemplateNames(cfg.TemplateNames...)
	if err != nil {
		return nil, err
	}

	s := &settings{
		kinds:     kinds,
		status:    status,
		names:     names,
		renderers: make(map[Representation]Renderer, 2),
	}

	if custom, ok := ic.custom[Document]; ok {
		s.renderers[Document] = custom
	} else {
		if !ic.responder.HasEngine(cfg.TemplateEngine) {
			return nil, fmt.Errorf("%w: no template engine %q", safespace.ErrBadConfig, cfg.TemplateEngine)
		}

		s.renderers[Document] = NewDocumentRenderer(ic.responder, names, cfg.TemplateEngine)
	}

	if custom, ok := ic.custom[Structured]; ok {
		s.renderers[Structured] = custom
	} else {
		s.renderers[Structured] = NewStructuredRenderer(ic.responder)
	}

	return s, nil
}
