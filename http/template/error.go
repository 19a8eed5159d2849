package template

import "errors"

var (
	ErrNoFiles       = errors.New("no files provided")
	ErrNoTemplate    = errors.New("no template found")
	ErrUnknownEngine = errors.New("unknown engine")
)
