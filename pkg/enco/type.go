package enco

import (
	"slices"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// implementation pairs a method body with the component that contributed it.
type implementation struct {
	owner string
	fn    Method
}

// Type is a composed entity type: a dispatch table mapping method names to
// ordered implementation lists, an initializer chain, and merged class-level
// data. A Type holds no per-instance state; instances derive all state from
// initializer execution and later method calls. Composition never mutates an
// existing Type, and a finalized Type is safe for concurrent read-only use.
type Type struct {
	id   string
	name string

	// table holds component-contributed implementations in attachment order.
	// The bare type's own methods are kept aside and always dispatch last.
	table       map[string][]implementation
	baseMethods map[string]Method
	baseOrder   []string

	chain    []BoundComponent
	baseInit Initializer

	data    map[string]any
	ownKeys map[string]struct{}
}

// NewType declares a bare type, the starting target for composition. Its own
// initializer, methods and data are whatever the host would have written on a
// plain class; all are optional. Declare the bare type fully before composing
// onto it.
func NewType(name string) *Type {
	return &Type{
		id:          uuid.NewString(),
		name:        name,
		table:       make(map[string][]implementation),
		baseMethods: make(map[string]Method),
		data:        make(map[string]any),
		ownKeys:     make(map[string]struct{}),
	}
}

// WithInit declares the bare type's own initializer. It occupies the first
// position of the initializer chain and alone receives the caller-supplied
// construction arguments.
func (t *Type) WithInit(fn Initializer) *Type {
	t.baseInit = fn
	return t
}

// WithMethod declares one of the bare type's own methods. Own methods run
// after every component implementation of the same name.
func (t *Type) WithMethod(name string, fn Method) *Type {
	if _, ok := t.baseMethods[name]; !ok {
		t.baseOrder = append(t.baseOrder, name)
	}
	t.baseMethods[name] = fn
	return t
}

// WithData declares class-level data on the bare type itself. Keys declared
// here are never overwritten by component data during composition.
func (t *Type) WithData(key string, value any) *Type {
	t.data[key] = value
	t.ownKeys[key] = struct{}{}
	return t
}

// ID returns the type's unique identifier. Two compositions of identical
// inputs produce equivalent types with distinct IDs.
func (t *Type) ID() string { return t.id }

// Name returns the bare type's name.
func (t *Type) Name() string { return t.name }

// Components returns the names of the attached components in chain order.
func (t *Type) Components() []string {
	names := make([]string, len(t.chain))
	for i, bc := range t.chain {
		names[i] = bc.comp.name
	}
	return names
}

// MethodNames returns every dispatchable method name, sorted.
func (t *Type) MethodNames() []string {
	seen := make(map[string]struct{}, len(t.table)+len(t.baseMethods))
	names := make([]string, 0, len(t.table)+len(t.baseMethods))
	for name := range t.table {
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for name := range t.baseMethods {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasMethod reports whether name resolves to at least one implementation.
func (t *Type) HasMethod(name string) bool {
	if _, ok := t.table[name]; ok {
		return true
	}
	_, ok := t.baseMethods[name]
	return ok
}

// Implementations returns how many implementations fan out for name,
// counting the bare type's own method if declared.
func (t *Type) Implementations(name string) int {
	n := len(t.table[name])
	if _, ok := t.baseMethods[name]; ok {
		n++
	}
	return n
}

// Data returns the class-level value for key, if any.
func (t *Type) Data(key string) (any, bool) {
	v, ok := t.data[key]
	return v, ok
}

// New constructs an entity of this type. The initializer chain runs in order:
// the bare type's own initializer first, with the caller's args, then each
// bound component's initializer with the arguments captured at composition
// time. The first failure halts the chain and propagates unmodified; no
// partially initialized entity is returned.
func (t *Type) New(args ...any) (*Entity, error) {
	e := &Entity{
		id:    uuid.NewString(),
		typ:   t,
		attrs: make(map[string]any),
	}
	if t.baseInit != nil {
		if err := t.baseInit(e, Args{Pos: args}); err != nil {
			return nil, err
		}
	}
	for _, bc := range t.chain {
		if bc.comp.init == nil {
			continue
		}
		if err := bc.comp.init(e, bc.args); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Fingerprint returns a structural hash of the composed shape: the base name,
// its own method names and initializer presence, the chain's component names
// with their captured argument arity, the per-name implementation order, and
// class-data keys. Independently repeating a composition yields the same
// fingerprint on a distinct Type. Data values are not hashed.
func (t *Type) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString("base:" + t.name)
	if t.baseInit != nil {
		_, _ = d.WriteString(";init")
	}
	for _, name := range t.baseOrder {
		_, _ = d.WriteString(";own:" + name)
	}
	for _, bc := range t.chain {
		_, _ = d.WriteString(";comp:" + bc.comp.name + "/" + strconv.Itoa(len(bc.args.Pos)))
		named := make([]string, 0, len(bc.args.Named))
		for k := range bc.args.Named {
			named = append(named, k)
		}
		sort.Strings(named)
		for _, k := range named {
			_, _ = d.WriteString("," + k)
		}
	}
	names := make([]string, 0, len(t.table))
	for name := range t.table {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = d.WriteString(";m:" + name)
		for _, im := range t.table[name] {
			_, _ = d.WriteString("<" + im.owner)
		}
	}
	keys := make([]string, 0, len(t.data))
	for k := range t.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = d.WriteString(";d:" + k)
	}
	return d.Sum64()
}

// lookup assembles the fan-out list for name: component implementations in
// attachment order, then the bare type's own method.
func (t *Type) lookup(name string) []implementation {
	impls := t.table[name]
	if fn, ok := t.baseMethods[name]; ok {
		impls = append(impls[:len(impls):len(impls)], implementation{owner: t.name, fn: fn})
	}
	return impls
}

// clone copies the descriptor so composition can extend it without touching
// the original. The copy gets its own identity.
func (t *Type) clone() *Type {
	nt := &Type{
		id:          uuid.NewString(),
		name:        t.name,
		table:       make(map[string][]implementation, len(t.table)),
		baseMethods: make(map[string]Method, len(t.baseMethods)),
		baseOrder:   slices.Clone(t.baseOrder),
		chain:       slices.Clone(t.chain),
		baseInit:    t.baseInit,
		data:        make(map[string]any, len(t.data)),
		ownKeys:     make(map[string]struct{}, len(t.ownKeys)),
	}
	for name, impls := range t.table {
		nt.table[name] = slices.Clone(impls)
	}
	for name, fn := range t.baseMethods {
		nt.baseMethods[name] = fn
	}
	for k, v := range t.data {
		nt.data[k] = v
	}
	for k := range t.ownKeys {
		nt.ownKeys[k] = struct{}{}
	}
	return nt
}
