package ranger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/safespace/config"
	"github.com/xy-planning-network/safespace/http/intercept"
	"github.com/xy-planning-network/safespace/http/middleware"
	"github.com/xy-planning-network/safespace/http/resp"
	"github.com/xy-planning-network/safespace/http/router"
	"github.com/xy-planning-network/safespace/logger"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a safespace app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	cfg     *config.Config
	cfgPath string
	ctx     context.Context
	files   fs.FS
	ic      *intercept.Interceptor
	l       logger.Logger
	srv     *http.Server
}

// New constructs a Ranger from the provided options.
// Components not set through options are built from defaults, in this order:
//
//   - config.Config: read from the file set by WithConfigFile, or else from the environment
//   - logger.Logger
//   - *resp.Responder: rendering html templates, and text templates through the "text" engine
//   - *intercept.Interceptor
//   - *router.Router: presenting failures raised in handlers and rendering unmatched routes as problem.NotFound
//   - *http.Server
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.cfg == nil {
		cfg, err := r.loadConfig()
		if err != nil {
			return nil, err
		}

		r.cfg = &cfg
	}

	if r.l == nil {
		r.l = defaultLogger(*r.cfg)
	}

	if r.Responder == nil {
		html, text := defaultParsers(r.cfg.Env, r.files)
		r.Responder = defaultResponder(r.l, html, text)
	}

	if r.ic == nil {
		ic, err := defaultInterceptor(*r.cfg, r.l, r.Responder)
		if err != nil {
			return nil, err
		}

		r.ic = ic
	}

	if r.Router == nil {
		r.Router = defaultRouter(r.cfg.Env, r.l, r.ic, r.Responder)
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, r.cfg.Addr)
	}

	r.l.Debug(fmt.Sprintf("ranger ready to serve %s", r.cfg.Env), nil)

	return r, nil
}

func (r *Ranger) EmitConfig() config.Config                { return r.ic.Config() }
func (r *Ranger) EmitInterceptor() *intercept.Interceptor { return r.ic }
func (r *Ranger) EmitLogger() logger.Logger               { return r.l }

// Intercept adapts fn into an http.Handler presenting the failures fn returns.
func (r *Ranger) Intercept(fn middleware.HandlerFunc) http.Handler {
	return middleware.Intercept(r.ic, r.Responder, r.l)(fn)
}

// Guide begins the web server.
//
// SIGHUP reloads the configuration, cf. Reload.
// These, and (*Ranger).Shutdown, stop Guide:
//
//   - os.Interrupt
//   - syscall.SIGTERM
//   - cancelling the context set by WithContext
func (r *Ranger) Guide() error {
	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)
	defer signal.Stop(ch)

	r.srv.Handler = r.Router

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	for {
		select {
		case s := <-ch:
			if s == syscall.SIGHUP {
				if err := r.Reload(); err != nil {
					r.l.Error("could not reload, keeping current configuration", &logger.LogContext{Error: err})
				}

				continue
			}

			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)

		case err := <-errCh:
			r.l.Error(err.Error(), nil)
			return err

		case <-ctx.Done():
		}

		return r.Shutdown()
	}
}

// Reload reads the configuration again, from the same source New did,
// and applies it to the *intercept.Interceptor.
//
// An invalid configuration leaves the current one in place.
func (r *Ranger) Reload() error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	return r.ic.Reload(cfg)
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	if err := r.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

func (r *Ranger) loadConfig() (config.Config, error) {
	if r.cfgPath != "" {
		return config.Load(r.cfgPath)
	}

	return config.FromEnv()
}
