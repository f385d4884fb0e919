package blueprint

import (
	"fmt"
	"sort"
	"sync"

	"github.com/entco/entco/pkg/enco"
)

// Registry is an in-memory registry of component definitions, keyed by the
// component's declared name. Blueprints resolve their component references
// through it.
type Registry struct {
	mu    sync.RWMutex
	comps map[string]*enco.Component
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{comps: make(map[string]*enco.Component)}
}

// Register adds a component definition. Registering a name again replaces the
// previous definition.
func (r *Registry) Register(c *enco.Component) error {
	if c == nil || c.Name() == "" {
		return fmt.Errorf("blueprint: cannot register unnamed component")
	}
	r.mu.Lock()
	r.comps[c.Name()] = c
	r.mu.Unlock()
	return nil
}

// Lookup resolves a component definition by name.
func (r *Registry) Lookup(name string) (*enco.Component, error) {
	r.mu.RLock()
	c := r.comps[name]
	r.mu.RUnlock()
	if c == nil {
		return nil, fmt.Errorf("blueprint: unknown component: %s", name)
	}
	return c, nil
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.comps))
	for name := range r.comps {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
