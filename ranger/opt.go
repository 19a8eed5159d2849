package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/config"
	"github.com/xy-planning-network/safespace/http/intercept"
	"github.com/xy-planning-network/safespace/http/resp"
	"github.com/xy-planning-network/safespace/http/router"
	"github.com/xy-planning-network/safespace/logger"
)

// A RangerOption configures a *Ranger when calling New.
//
// Options only set fields; New builds whatever they leave unset,
// so their order does not matter.
type RangerOption func(rng *Ranger) error

// WithConfig uses cfg instead of reading configuration from the environment.
//
// Reload still reads the environment, cf. WithConfigFile.
func WithConfig(cfg config.Config) RangerOption {
	return func(rng *Ranger) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		rng.cfg = &cfg
		return nil
	}
}

// WithConfigFile reads configuration from the YAML file at path,
// both when calling New and on every Reload.
func WithConfigFile(path string) RangerOption {
	return func(rng *Ranger) error {
		if path == "" {
			return fmt.Errorf("%w: no config file path", safespace.ErrBadConfig)
		}

		rng.cfgPath = path
		return nil
	}
}

// WithContext sets the context.Context every request descends from.
// Cancelling it stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		rng.ctx = ctx
		return nil
	}
}

// WithInterceptor exposes the provided *intercept.Interceptor to the safespace app.
func WithInterceptor(ic *intercept.Interceptor) RangerOption {
	return func(rng *Ranger) error {
		rng.ic = ic
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the safespace app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithResponder exposes the *resp.Responder to the safespace app.
//
// Unless WithInterceptor is also used, the *resp.Responder must be able to render
// the configured template engine.
func WithResponder(d *resp.Responder) RangerOption {
	return func(rng *Ranger) error {
		rng.Responder = d
		return nil
	}
}

// WithRouter exposes the *router.Router to the safespace app.
//
// None of the default middlewares are added to it.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) error {
		rng.Router = r
		return nil
	}
}

// WithServer exposes the *http.Server to the safespace app.
// Guide replaces its Handler with the *router.Router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}

// WithTemplates layers files over the packaged templates
// when constructing the default *resp.Responder.
func WithTemplates(files fs.FS) RangerOption {
	return func(rng *Ranger) error {
		rng.files = files
		return nil
	}
}
