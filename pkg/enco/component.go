package enco

import (
	"fmt"
	"slices"
)

// Method is a single implementation of a named capability. The receiver is
// always the entity the capability was invoked on, never the component that
// declared it, so implementations read and write the entity's flat attribute
// namespace directly.
type Method func(e *Entity, args ...any) (any, error)

// Initializer runs once per entity construction. Component initializers
// receive the arguments captured when the component was bound; the bare
// type's own initializer receives the caller-supplied construction arguments.
type Initializer func(e *Entity, args Args) error

// Args carries construction arguments: ordered positional values plus named
// values. Either part may be empty.
type Args struct {
	Pos   []any
	Named map[string]any
}

// At returns the positional argument at index i, or nil when out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.Pos) {
		return nil
	}
	return a.Pos[i]
}

// Get returns the named argument for key.
func (a Args) Get(key string) (any, bool) {
	v, ok := a.Named[key]
	return v, ok
}

// Component is a reusable bundle of named methods, an optional initializer
// and class-level data. Any method name is legal; components share no common
// interface beyond the dispatch mechanism. Declare fluently:
//
//	hasHealth := enco.NewComponent("hashealthpoints").
//		Init(func(e *enco.Entity, args enco.Args) error { ... }).
//		Method("takedamage", func(e *enco.Entity, args ...any) (any, error) { ... })
//
// A definition must be complete before it is bound; composition snapshots the
// method table and data, so later edits never reach already-composed types.
type Component struct {
	name    string
	methods map[string]Method
	order   []string
	init    Initializer
	data    map[string]any
}

// NewComponent starts a component definition with the given name. The name
// identifies the component inside dispatch tables and error messages and must
// be unique within any one composed type.
func NewComponent(name string) *Component {
	return &Component{
		name:    name,
		methods: make(map[string]Method),
		data:    make(map[string]any),
	}
}

// Method declares a named capability. Redeclaring a name replaces the
// previous implementation.
func (c *Component) Method(name string, fn Method) *Component {
	if _, ok := c.methods[name]; !ok {
		c.order = append(c.order, name)
	}
	c.methods[name] = fn
	return c
}

// Init declares the component's initializer.
func (c *Component) Init(fn Initializer) *Component {
	c.init = fn
	return c
}

// Data declares a class-level value. Class data is merged into the composed
// type and shared by all of its instances until an instance shadows the key
// with its own write.
func (c *Component) Data(key string, value any) *Component {
	c.data[key] = value
	return c
}

// Name returns the component's declared name.
func (c *Component) Name() string { return c.name }

// MethodNames returns the declared method names in declaration order.
func (c *Component) MethodNames() []string {
	return slices.Clone(c.order)
}

// Bind captures positional construction arguments and produces an attachable
// reference. Arguments are captured now, at composition time, not when
// entities are later instantiated.
func (c *Component) Bind(args ...any) BoundComponent {
	return BoundComponent{comp: c, args: Args{Pos: slices.Clone(args)}}
}

// BindNamed is Bind with an additional set of named arguments.
func (c *Component) BindNamed(named map[string]any, args ...any) BoundComponent {
	a := Args{Pos: slices.Clone(args)}
	if len(named) > 0 {
		a.Named = make(map[string]any, len(named))
		for k, v := range named {
			a.Named[k] = v
		}
	}
	return BoundComponent{comp: c, args: a}
}

// validate reports whether the definition satisfies the component shape.
func (c *Component) validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil definition", ErrMalformedComponent)
	}
	if c.name == "" {
		return fmt.Errorf("%w: empty component name", ErrMalformedComponent)
	}
	for name, fn := range c.methods {
		if name == "" {
			return fmt.Errorf("%w: component %s declares an empty method name", ErrMalformedComponent, c.name)
		}
		if fn == nil {
			return fmt.Errorf("%w: component %s method %s is nil", ErrMalformedComponent, c.name, name)
		}
	}
	return nil
}

// BoundComponent is a component definition paired with the construction
// arguments captured at attachment time. Immutable thereafter.
type BoundComponent struct {
	comp *Component
	args Args
}

// Component returns the underlying definition.
func (bc BoundComponent) Component() *Component { return bc.comp }

// Args returns the captured construction arguments.
func (bc BoundComponent) Args() Args { return bc.args }

func (bc BoundComponent) validate() error {
	if bc.comp == nil {
		return fmt.Errorf("%w: unbound reference", ErrMalformedComponent)
	}
	return bc.comp.validate()
}
