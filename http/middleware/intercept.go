package middleware

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/safespace/http/resp"
	"github.com/xy-planning-network/safespace/logger"
)

// A HandlerFunc handles an HTTP request,
// returning the failure it could not handle itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// A FailureHook presents failures raised while handling requests.
// The boolean reports whether the failure was handled.
//
// *intercept.Interceptor is a FailureHook.
type FailureHook interface {
	OnFailure(r *http.Request, err error) (*resp.Response, bool, error)
}

// Intercept adapts a HandlerFunc into an http.Handler,
// calling hook once for every failure the HandlerFunc returns.
//
// Failures hook does not handle, and failures hook cannot present,
// are answered with d.Err.
func Intercept(hook FailureHook, d *resp.Responder, l logger.Logger) func(HandlerFunc) http.Handler {
	if d == nil {
		d = resp.NewResponder(resp.WithLogger(l))
	}

	if l == nil {
		l = logger.New()
	}

	return func(fn HandlerFunc) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := fn(w, r)
			if err == nil {
				return
			}

			handled, herr := present(w, r, hook, err, l)
			switch {
			case herr != nil:
				d.Err(w, r, herr)
			case !handled:
				d.Err(w, r, err)
			}
		})
	}
}

// RecoverProblems recovers panics carrying an error and hands that error to hook.
// Panics hook does not handle are raised again.
//
// Failures hook cannot present are answered with d.Err.
func RecoverProblems(hook FailureHook, d *resp.Responder, l logger.Logger) Adapter {
	if hook == nil {
		return NoopAdapter
	}

	if d == nil {
		d = resp.NewResponder(resp.WithLogger(l))
	}

	if l == nil {
		l = logger.New()
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}

				err, ok := v.(error)
				if !ok || err == http.ErrAbortHandler {
					panic(v)
				}

				handled, herr := present(w, r, hook, err, l)
				switch {
				case herr != nil:
					d.Err(w, r, herr)
				case !handled:
					panic(v)
				}
			}()

			h.ServeHTTP(w, r)
		})
	}
}

// present writes the response hook builds for err, if hook handles err.
func present(w http.ResponseWriter, r *http.Request, hook FailureHook, err error, l logger.Logger) (bool, error) {
	if hook == nil {
		return false, nil
	}

	rr, handled, herr := hook.OnFailure(r, err)
	if herr != nil {
		return false, fmt.Errorf("cannot present %q: %w", err, herr)
	}

	if !handled {
		return false, nil
	}

	if werr := rr.Write(w); werr != nil {
		l.Error("cannot write presented failure", &logger.LogContext{Request: r, Error: werr})
	}

	return true, nil
}
