package template

import (
	"errors"
	"fmt"
	html "html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	text "text/template"
)

// Engine names the template package a Parse renders with.
type Engine string

const (
	EngineHTML Engine = "html"
	EngineText Engine = "text"
)

func (e Engine) String() string { return string(e) }

// Valid asserts e is a known Engine.
func (e Engine) Valid() error {
	switch e {
	case EngineHTML, EngineText:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, string(e))
	}
}

// Parser is the interface for finding and parsing templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)

	// ContentType is the media type of documents the parsed templates produce.
	ContentType() string

	// Lookup returns the first of candidates that names an existing template.
	// If none do, ErrNoTemplate returns.
	Lookup(candidates ...string) (string, error)

	Parse(fps ...string) (Template, error)
}

// Template is the part of html/template and text/template a Parser hands back.
type Template interface {
	Execute(w io.Writer, data any) error
	Name() string
}

// Parse implements Parser with a focus on utilizing embedded templates through fs.FS.
type Parse struct {
	engine Engine
	fs     fs.FS
	fns    map[string]any
}

// NewParser constructs a Parse rendering with html/template,
// applying the provided functional options.
func NewParser(opts ...ParserOptFn) Parser {
	return newParse(EngineHTML, opts...)
}

// NewTextParser constructs a Parse rendering with text/template,
// applying the provided functional options.
func NewTextParser(opts ...ParserOptFn) Parser {
	return newParse(EngineText, opts...)
}

func newParse(engine Engine, opts ...ParserOptFn) *Parse {
	p := &Parse{engine: engine, fns: make(map[string]any)}
	for _, opt := range opts {
		opt(p)
	}

	userFS := p.fs
	if userFS == nil {
		userFS = os.DirFS(".")
	}

	p.fs = newMergeFS(userFS, pkgFS)

	return p
}

// ContentType returns the media type matching the engine p renders with.
func (p *Parse) ContentType() string {
	if p.engine == EngineText {
		return "text/plain; charset=utf-8"
	}

	return "text/html; charset=utf-8"
}

// Lookup returns the first of candidates found in p's filesystem.
// Empty candidates are skipped.
func (p *Parse) Lookup(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}

		info, err := fs.Stat(p.fs, c)
		if err == nil && !info.IsDir() {
			return c, nil
		}

		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("cannot look up %s: %w", c, err)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrNoTemplate, strings.Join(candidates, ", "))
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
func (p *Parse) Parse(fps ...string) (Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	name := path.Base(files[0])
	if p.engine == EngineText {
		tmpl, err := text.New(name).Funcs(text.FuncMap(p.fns)).ParseFS(p.fs, files...)
		if err != nil {
			return nil, err
		}

		return tmpl, nil
	}

	tmpl, err := html.New(name).Funcs(html.FuncMap(p.fns)).ParseFS(p.fs, files...)
	if err != nil {
		return nil, err
	}

	return tmpl, nil
}
