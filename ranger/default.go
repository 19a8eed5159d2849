package ranger

import (
	"context"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/config"
	"github.com/xy-planning-network/safespace/http/intercept"
	"github.com/xy-planning-network/safespace/http/middleware"
	"github.com/xy-planning-network/safespace/http/resp"
	"github.com/xy-planning-network/safespace/http/router"
	"github.com/xy-planning-network/safespace/http/template"
	"github.com/xy-planning-network/safespace/logger"
	"github.com/xy-planning-network/safespace/problem"
)

const (
	readTimeoutEnvVar         = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	idleTimeoutEnvVar         = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	writeTimeoutEnvVar        = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	notFoundMessage = "The page you are looking for does not exist."
)

func defaultLogger(cfg config.Config) logger.Logger {
	level := cfg.LogLevel
	if level == "" {
		level = config.DefaultLogLevel
	}

	return logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(logger.NewLogLevel(level)),
	)
}

// defaultParsers constructs the html parser and the text parser
// reading templates from files layered over the packaged templates.
func defaultParsers(env safespace.Environment, files fs.FS) (template.Parser, template.Parser) {
	var opts []template.ParserOptFn
	if files != nil {
		opts = append(opts, template.WithFS(files))
	}
	opts = append(opts, template.WithFn(template.Env(env)))

	return template.NewParser(opts...), template.NewTextParser(opts...)
}

func defaultResponder(l logger.Logger, html, text template.Parser) *resp.Responder {
	return resp.NewResponder(
		resp.WithLogger(l),
		resp.WithParser(html),
		resp.WithEngine(template.EngineText.String(), text),
	)
}

func defaultInterceptor(cfg config.Config, l logger.Logger, d *resp.Responder) (*intercept.Interceptor, error) {
	return intercept.New(
		intercept.WithConfig(cfg),
		intercept.WithLogger(l),
		intercept.WithResponder(d),
		intercept.WithStatusFn(notFoundStatus),
	)
}

// unmatchedRouteKey marks requests no route matched.
const unmatchedRouteKey safespace.Key = "UnmatchedRouteKey"

// markUnmatched adds unmatchedRouteKey to the request context before calling h.
func markUnmatched(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), unmatchedRouteKey, true)))
	})
}

// notFoundStatus presents failures raised for requests no route matched with http.StatusNotFound.
// Failures raised by route handlers, a *problem.NotFound included, keep the configured status.
func notFoundStatus(r *http.Request, _ error, status int) int {
	if r == nil {
		return status
	}

	if unmatched, _ := r.Context().Value(unmatchedRouteKey).(bool); unmatched {
		return http.StatusNotFound
	}

	return status
}

func defaultRouter(env safespace.Environment, l logger.Logger, ic *intercept.Interceptor, d *resp.Responder) *router.Router {
	r := router.New(env)
	r.OnEveryRequest(
		middleware.RequestID(),
		handlers.ProxyHeaders,
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.RecoverProblems(ic, d, l),
	)

	r.HandleNotFound(markUnmatched(middleware.Intercept(ic, d, l)(func(w http.ResponseWriter, r *http.Request) error {
		return problem.NewNotFound(notFoundMessage)
	})))

	return r
}

func defaultServer(ctx context.Context, addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		BaseContext:  func(net.Listener) context.Context { return ctx },
		ReadTimeout:  safespace.EnvVarOrDuration(readTimeoutEnvVar, DefaultServerReadTimeout),
		IdleTimeout:  safespace.EnvVarOrDuration(idleTimeoutEnvVar, DefaultServerIdleTimeout),
		WriteTimeout: safespace.EnvVarOrDuration(writeTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}
