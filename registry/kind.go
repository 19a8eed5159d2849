package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xy-planning-network/safespace/http/req"
	"github.com/xy-planning-network/safespace/problem"
)

const (
	NotFoundKind         = "problem.NotFound"
	ProblemKind          = "problem.Problem"
	ValidationErrorsKind = "req.ValidationErrors"
)

// DefaultKinds are the kinds a Registry holds when configured with none.
var DefaultKinds = []string{ValidationErrorsKind, ProblemKind}

// A Kind is a named failure type.
type Kind struct {
	name  string
	match func(error) (error, bool)
}

// KindOf constructs a Kind matching errors of type T anywhere in an error chain.
//
// When T is an interface, every type implementing it matches;
// registering problem.Presentable, for instance, matches *problem.Problem
// and all types embedding it.
func KindOf[T error](name string) Kind {
	return Kind{
		name: name,
		match: func(err error) (error, bool) {
			var target T
			if errors.As(err, &target) {
				return target, true
			}

			return nil, false
		},
	}
}

// Name returns the name k was registered with.
func (k Kind) Name() string { return k.name }

// Match reports whether err is, or wraps, a failure of kind k,
// returning that failure.
func (k Kind) Match(err error) (error, bool) {
	if err == nil || k.match == nil {
		return nil, false
	}

	return k.match(err)
}

// A Catalog holds every Kind a Registry can be configured with, by name.
type Catalog struct {
	kinds map[string]Kind
}

// NewCatalog constructs a *Catalog holding kinds.
// Later kinds with the same name as earlier ones replace them.
func NewCatalog(kinds ...Kind) *Catalog {
	c := &Catalog{kinds: make(map[string]Kind)}
	for _, k := range kinds {
		c.kinds[k.name] = k
	}

	return c
}

// DefaultCatalog constructs a *Catalog holding the kinds this module defines:
//
//	problem.NotFound
//	problem.Problem
//	req.ValidationErrors
//
// problem.Problem matches every type embedding *problem.Problem.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		KindOf[*problem.NotFound](NotFoundKind),
		KindOf[problem.Presentable](ProblemKind),
		KindOf[req.ValidationErrors](ValidationErrorsKind),
	)
}

// Register adds k to c.
// If c already holds a Kind with the same name, ErrDuplicateKind returns.
func (c *Catalog) Register(k Kind) error {
	if k.name == "" || k.match == nil {
		return fmt.Errorf("%w: unnamed or zero-value kind", ErrUnknownKind)
	}

	if _, ok := c.kinds[k.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, k.name)
	}

	c.kinds[k.name] = k
	return nil
}

// Names lists the names of every Kind in c, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Resolve looks up each name, in order, skipping repeats.
// The first name c holds no Kind for fails the whole call with ErrUnknownKind.
func (c *Catalog) Resolve(names ...string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}

		k, ok := c.kinds[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q, known kinds are %v", ErrUnknownKind, name, c.Names())
		}

		seen[name] = true
		kinds = append(kinds, k)
	}

	return kinds, nil
}
