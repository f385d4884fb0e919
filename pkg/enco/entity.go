package enco

import (
	"fmt"
	"sort"
)

// Entity is an instance of a composed type. All component-contributed state
// lives in one flat attribute namespace: any component's initializer or
// method, and any external holder of the entity, may read or write any
// attribute. There is no per-component isolation and no synchronization;
// concurrent mutation of one entity is the host application's concern.
type Entity struct {
	id    string
	typ   *Type
	attrs map[string]any
}

// ID returns the instance's unique identifier.
func (e *Entity) ID() string { return e.id }

// Type returns the composed type this entity was constructed from.
func (e *Entity) Type() *Type { return e.typ }

// Call dispatches a method by name. Every implementation runs exactly once,
// bound to this entity, with identical arguments, in attachment order, with
// the bare type's own implementation last. The first error halts the fan-out
// and propagates unmodified; attribute mutations from earlier implementations
// persist. The return value is the last invocation's; earlier return values
// are discarded. A single-implementation name is a plain pass-through.
func (e *Entity) Call(name string, args ...any) (any, error) {
	impls := e.typ.lookup(name)
	if len(impls) == 0 {
		return nil, fmt.Errorf("%w: %s has no method %s", ErrUnknownMethod, e.typ.name, name)
	}
	var ret any
	for _, im := range impls {
		var err error
		if ret, err = im.fn(e, args...); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Set writes an attribute on this instance, shadowing any class-level value
// of the same key.
func (e *Entity) Set(key string, value any) {
	e.attrs[key] = value
}

// Get reads an attribute. Instance attributes shadow the composed type's
// class-level data; class-level values are shared across instances until
// shadowed.
func (e *Entity) Get(key string) (any, bool) {
	if v, ok := e.attrs[key]; ok {
		return v, true
	}
	return e.typ.Data(key)
}

// Has reports whether key resolves on this entity.
func (e *Entity) Has(key string) bool {
	_, ok := e.Get(key)
	return ok
}

// Delete removes an instance attribute. A class-level value of the same key,
// if any, becomes visible again.
func (e *Entity) Delete(key string) {
	delete(e.attrs, key)
}

// Keys returns every resolvable attribute key, sorted.
func (e *Entity) Keys() []string {
	seen := make(map[string]struct{}, len(e.attrs)+len(e.typ.data))
	for k := range e.attrs {
		seen[k] = struct{}{}
	}
	for k := range e.typ.data {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Int reads an integer attribute, converting across the numeric kinds YAML
// and plain Go code produce. Missing or non-numeric attributes read as 0.
func (e *Entity) Int(key string) int {
	f, ok := e.number(key)
	if !ok {
		return 0
	}
	return int(f)
}

// Float reads a float attribute with the same conversion rules as Int.
func (e *Entity) Float(key string) float64 {
	f, _ := e.number(key)
	return f
}

// Bool reads a boolean attribute; missing or non-bool attributes read as false.
func (e *Entity) Bool(key string) bool {
	v, ok := e.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// String reads a string attribute; missing or non-string attributes read as "".
func (e *Entity) String(key string) string {
	v, ok := e.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (e *Entity) number(key string) (float64, bool) {
	v, ok := e.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// GetAs reads an attribute as a concrete type.
func GetAs[T any](e *Entity, key string) (T, bool) {
	v, ok := e.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
