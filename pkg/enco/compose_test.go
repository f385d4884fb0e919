package enco

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func noop(name string, calls *[]string) Method {
	return func(e *Entity, args ...any) (any, error) {
		if calls != nil {
			*calls = append(*calls, name)
		}
		return name, nil
	}
}

func TestCompose(t *testing.T) {
	t.Run("disjoint method names expose the full union", func(t *testing.T) {
		c1 := NewComponent("c1").Method("f", noop("c1.f", nil))
		c2 := NewComponent("c2").Method("g", noop("c2.g", nil))

		typ, err := Compose(NewType("entity"), c1.Bind())
		require.NoError(t, err)
		typ, err = Compose(typ, c2.Bind())
		require.NoError(t, err)

		require.ElementsMatch(t, []string{"f", "g"}, typ.MethodNames())
		require.Equal(t, 1, typ.Implementations("f"))
		require.Equal(t, 1, typ.Implementations("g"))
	})

	t.Run("name collision extends the implementation list", func(t *testing.T) {
		c1 := NewComponent("c1").Method("f", noop("c1.f", nil))
		c2 := NewComponent("c2").Method("f", noop("c2.f", nil))

		typ, err := Compose(NewType("entity"), c1.Bind())
		require.NoError(t, err)
		typ, err = Compose(typ, c2.Bind())
		require.NoError(t, err)

		require.Equal(t, 2, typ.Implementations("f"))
		require.Equal(t, []string{"c1", "c2"}, typ.Components())
	})

	t.Run("target is never mutated", func(t *testing.T) {
		c1 := NewComponent("c1").Method("f", noop("c1.f", nil))
		c2 := NewComponent("c2").Method("f", noop("c2.f", nil)).Data("x", 1)

		base, err := Compose(NewType("entity"), c1.Bind())
		require.NoError(t, err)
		grown, err := Compose(base, c2.Bind())
		require.NoError(t, err)

		require.Equal(t, 1, base.Implementations("f"))
		require.Equal(t, []string{"c1"}, base.Components())
		_, ok := base.Data("x")
		require.False(t, ok)

		require.Equal(t, 2, grown.Implementations("f"))
		require.NotEqual(t, base.ID(), grown.ID())
	})

	t.Run("repeated composition is structurally equivalent but independent", func(t *testing.T) {
		build := func() *Type {
			c1 := NewComponent("c1").Method("f", noop("c1.f", nil))
			c2 := NewComponent("c2").Method("f", noop("c2.f", nil)).Method("g", noop("c2.g", nil))
			typ, err := Compose(NewType("entity"), c1.Bind(7))
			require.NoError(t, err)
			typ, err = Compose(typ, c2.BindNamed(map[string]any{"k": 1}))
			require.NoError(t, err)
			return typ
		}

		a, b := build(), build()
		require.Equal(t, a.Fingerprint(), b.Fingerprint())
		require.NotEqual(t, a.ID(), b.ID())

		// Extending one must not leak into the other.
		c3 := NewComponent("c3").Method("f", noop("c3.f", nil))
		grown, err := Compose(a, c3.Bind())
		require.NoError(t, err)
		require.NotEqual(t, grown.Fingerprint(), b.Fingerprint())
		require.Equal(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("duplicate component is rejected", func(t *testing.T) {
		c1 := NewComponent("c1").Method("f", noop("c1.f", nil))
		typ, err := Compose(NewType("entity"), c1.Bind())
		require.NoError(t, err)
		_, err = Compose(typ, c1.Bind())
		require.ErrorIs(t, err, ErrDuplicateComponent)
	})

	t.Run("malformed components fail with no composed type", func(t *testing.T) {
		for name, bc := range map[string]BoundComponent{
			"unbound reference": {},
			"empty name":        NewComponent("").Method("f", noop("f", nil)).Bind(),
			"nil method":        NewComponent("c").Method("f", nil).Bind(),
			"empty method name": NewComponent("c").Method("", noop("f", nil)).Bind(),
		} {
			typ, err := Compose(NewType("entity"), bc)
			require.ErrorIs(t, err, ErrMalformedComponent, name)
			require.Nil(t, typ, name)
		}
	})

	t.Run("nil target", func(t *testing.T) {
		_, err := Compose(nil, NewComponent("c").Bind())
		require.ErrorIs(t, err, ErrNilTarget)
	})

	t.Run("class data merges last-attached-wins", func(t *testing.T) {
		c5 := NewComponent("c5").Data("x", 200)
		c6 := NewComponent("c6").Data("x", 300)

		typ, err := NewBuilder(NewType("entity")).
			Attach(c5.Bind()).
			Attach(c6.Bind()).
			Finalize()
		require.NoError(t, err)
		v, ok := typ.Data("x")
		require.True(t, ok)
		require.Equal(t, 300, v)
	})

	t.Run("bare type's own data is never overwritten", func(t *testing.T) {
		c5 := NewComponent("c5").Data("x", 200)
		typ, err := NewBuilder(NewType("entity").WithData("x", 400)).
			Attach(c5.Bind()).
			Finalize()
		require.NoError(t, err)
		v, ok := typ.Data("x")
		require.True(t, ok)
		require.Equal(t, 400, v)
	})
}

func TestBuilder(t *testing.T) {
	t.Run("zero components behaves as the bare type", func(t *testing.T) {
		var calls []string
		base := NewType("entity").WithMethod("f", noop("base.f", &calls))
		typ, err := NewBuilder(base).Finalize()
		require.NoError(t, err)

		e, err := typ.New()
		require.NoError(t, err)
		ret, err := e.Call("f")
		require.NoError(t, err)
		require.Equal(t, "base.f", ret)
		require.Equal(t, []string{"base.f"}, calls)
	})

	t.Run("attach order is dispatch order", func(t *testing.T) {
		var calls []string
		typ, err := NewBuilder(NewType("entity")).
			Attach(NewComponent("c2").Method("f", noop("c2.f", &calls)).Bind()).
			Attach(NewComponent("c1").Method("f", noop("c1.f", &calls)).Bind()).
			Finalize()
		require.NoError(t, err)

		e, err := typ.New()
		require.NoError(t, err)
		_, err = e.Call("f")
		require.NoError(t, err)
		require.Equal(t, []string{"c2.f", "c1.f"}, calls)
	})

	t.Run("malformed attachment poisons the builder", func(t *testing.T) {
		typ, err := NewBuilder(NewType("entity")).
			Attach(BoundComponent{}).
			Attach(NewComponent("ok").Method("f", noop("f", nil)).Bind()).
			Finalize()
		require.ErrorIs(t, err, ErrMalformedComponent)
		require.Nil(t, typ)
	})

	t.Run("builder is single-use", func(t *testing.T) {
		b := NewBuilder(NewType("entity"))
		_, err := b.Finalize()
		require.NoError(t, err)

		_, err = b.Finalize()
		require.ErrorIs(t, err, ErrFinalized)

		_, err = b.Attach(NewComponent("late").Method("f", noop("f", nil)).Bind()).Finalize()
		require.ErrorIs(t, err, ErrFinalized)
	})

	t.Run("nil base", func(t *testing.T) {
		_, err := NewBuilder(nil).Finalize()
		require.ErrorIs(t, err, ErrNilTarget)
	})
}
