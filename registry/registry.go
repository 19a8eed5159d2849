package registry

import (
	"sync"
	"sync/atomic"
)

// Kinds is an ordered set of Kind, as configured.
type Kinds []Kind

// Match returns the failure of the first Kind in ks err is or wraps.
func (ks Kinds) Match(err error) (error, bool) {
	if err == nil {
		return nil, false
	}

	for _, k := range ks {
		if failure, ok := k.Match(err); ok {
			return failure, true
		}
	}

	return nil, false
}

// Names lists the name of every Kind in ks, in order.
func (ks Kinds) Names() []string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.name
	}

	return names
}

// A Registry holds the kinds of failure considered presentable.
type Registry struct {
	catalog *Catalog
	kinds   atomic.Pointer[Kinds]
	mu      sync.Mutex
}

// New constructs a *Registry from the kinds in catalog with the provided names.
// If names is empty, DefaultKinds are used.
//
// Every name must resolve; otherwise New returns ErrUnknownKind.
func New(catalog *Catalog, names ...string) (*Registry, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	reg := &Registry{catalog: catalog}
	if err := reg.Reload(names...); err != nil {
		return nil, err
	}

	return reg, nil
}

// IsPresentable reports whether err is, or wraps, a failure of a registered kind.
func (reg *Registry) IsPresentable(err error) bool {
	_, ok := reg.Match(err)
	return ok
}

// Kinds lists the names of the registered kinds, in the order they were configured.
func (reg *Registry) Kinds() []string {
	return reg.Snapshot().Names()
}

// Match returns the failure of a registered kind err is or wraps.
// Kinds are tried in the order they were configured.
func (reg *Registry) Match(err error) (error, bool) {
	return reg.Snapshot().Match(err)
}

// Reload resolves names against the catalog and swaps them in as the registered kinds.
// If names is empty, DefaultKinds are used.
//
// If any name does not resolve, ErrUnknownKind returns and the registered kinds are left as they were.
func (reg *Registry) Reload(names ...string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	kinds, err := reg.resolve(names...)
	if err != nil {
		return err
	}

	reg.kinds.Store(&kinds)
	return nil
}

// Resolve looks up names like Reload does, without registering them.
//
// Pair it with Set when the kinds must be swapped in alongside other settings.
func (reg *Registry) Resolve(names ...string) (Kinds, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return reg.resolve(names...)
}

// Set registers ks, replacing the registered kinds.
func (reg *Registry) Set(ks Kinds) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.kinds.Store(&ks)
}

// Snapshot returns the registered kinds.
// Later reloads do not change the returned Kinds.
func (reg *Registry) Snapshot() Kinds {
	return *reg.kinds.Load()
}

func (reg *Registry) resolve(names ...string) (Kinds, error) {
	if len(names) == 0 {
		names = DefaultKinds
	}

	kinds, err := reg.catalog.Resolve(names...)
	if err != nil {
		return nil, err
	}

	return Kinds(kinds), nil
}
