package intercept

import (
	"github.com/xy-planning-network/safespace/config"
	"github.com/xy-planning-network/safespace/http/resp"
	"github.com/xy-planning-network/safespace/i18n"
	"github.com/xy-planning-network/safespace/logger"
	"github.com/xy-planning-network/safespace/registry"
)

// An InterceptorOptFn configures the *Interceptor under construction.
type InterceptorOptFn func(*Interceptor)

// WithConfig sets every setting cfg holds.
// Options after WithConfig override it.
func WithConfig(cfg config.Config) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.cfg = cfg
	}
}

// WithEngine renders Document responses with the template engine registered under name
// with resp.WithEngine.
func WithEngine(name string) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.cfg.TemplateEngine = name
	}
}

// WithLogger sets the logger.Logger presented failures are logged through.
func WithLogger(l logger.Logger) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.logger = l
	}
}

// WithRegistry sets the registry.Registry deciding which failures are presented.
// The kinds it holds when calling New are presented until (*Interceptor).Reload;
// reloading the registry.Registry directly does not reach the Interceptor.
func WithRegistry(reg *registry.Registry) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.registry = reg
	}
}

// WithRenderer replaces the Renderer for rep.
// A nil Renderer restores the default.
func WithRenderer(rep Representation, r Renderer) InterceptorOptFn {
	return func(ic *Interceptor) {
		if r == nil {
			delete(ic.custom, rep)
			return
		}

		ic.custom[rep] = r
	}
}

// WithResponder sets the *resp.Responder default Renderers render with.
func WithResponder(d *resp.Responder) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.responder = d
	}
}

// WithStatus sets the status code of every response presenting a failure.
func WithStatus(status int) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.cfg.HTTPStatus = status
	}
}

// WithStatusFn sets a StatusFn choosing the status code per failure.
func WithStatusFn(fn StatusFn) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.statusFn = fn
	}
}

// WithTemplateNames sets the candidate templates of Document responses.
func WithTemplateNames(names ...string) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.cfg.TemplateNames = names
	}
}

// WithTranslator sets the i18n.Translator localizing the default title.
func WithTranslator(tr i18n.Translator) InterceptorOptFn {
	return func(ic *Interceptor) {
		ic.translator = tr
	}
}
