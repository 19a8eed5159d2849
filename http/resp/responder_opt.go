package resp

import (
	"github.com/xy-planning-network/safespace/http/template"
	"github.com/xy-planning-network/safespace/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithEngine registers the template.Parser under name,
// making it available to the Engine Fn.
func WithEngine(name string, p template.Parser) func(*Responder) {
	return func(d *Responder) {
		if name == "" || p == nil {
			return
		}

		if d.engines == nil {
			d.engines = make(map[string]template.Parser)
		}

		d.engines[name] = p
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) func(*Responder) {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the provided implementation of template.Parser to use for rendering templates
// when no Engine is selected.
func WithParser(p template.Parser) func(*Responder) {
	return func(d *Responder) {
		d.parser = p
	}
}
