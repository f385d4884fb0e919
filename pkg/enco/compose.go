package enco

import (
	"fmt"

	"github.com/entco/entco/pkg/observability/log"
)

// Compose produces a new composed type from a target type and one bound
// component. The target is never mutated, and composing the same inputs
// always yields a structurally equivalent result.
//
// Method names the component shares with the target extend the existing
// implementation list, preserving attachment order; new names get a fresh
// single-implementation entry; target names the component does not declare
// carry forward unchanged. The bound component is appended to the initializer
// chain. Class-level data merges last-attached-wins, except keys the bare
// type declared itself, which are never overwritten.
func Compose(target *Type, bc BoundComponent) (*Type, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if err := bc.validate(); err != nil {
		return nil, err
	}
	for _, prev := range target.chain {
		if prev.comp.name == bc.comp.name {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateComponent, bc.comp.name)
		}
	}

	nt := target.clone()
	comp := bc.comp
	for _, name := range comp.order {
		nt.table[name] = append(nt.table[name], implementation{owner: comp.name, fn: comp.methods[name]})
	}
	for k, v := range comp.data {
		if _, own := nt.ownKeys[k]; own {
			continue
		}
		nt.data[k] = v
	}
	nt.chain = append(nt.chain, bc)
	return nt, nil
}

// Builder accumulates an ordered list of bound components on a base type and
// finalizes them into one composed type. Attachment order is the sole
// determinant of both initializer-chain order and fan-out dispatch order:
// first attached, first invoked.
type Builder struct {
	base        *Type
	attachments []BoundComponent
	log         log.Log
	finalized   bool
	err         error
}

// NewBuilder starts composition onto base.
func NewBuilder(base *Type) *Builder {
	b := &Builder{base: base, log: log.Discard()}
	if base == nil {
		b.err = ErrNilTarget
	}
	return b
}

// WithLogger sets the logger Finalize traces composition through.
func (b *Builder) WithLogger(l log.Log) *Builder {
	if l != nil {
		b.log = l
	}
	return b
}

// Attach appends one bound component. A malformed reference poisons the
// builder and surfaces from Finalize; nothing is composed partially.
func (b *Builder) Attach(bc BoundComponent) *Builder {
	if b.err != nil {
		return b
	}
	if b.finalized {
		b.err = ErrFinalized
		return b
	}
	if err := bc.validate(); err != nil {
		b.err = err
		return b
	}
	b.attachments = append(b.attachments, bc)
	return b
}

// Finalize folds the attachments through Compose and returns the finished
// type. With zero attachments the base type is returned as-is. The builder is
// single-use; any call after Finalize reports ErrFinalized.
func (b *Builder) Finalize() (*Type, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true

	t := b.base
	var err error
	for _, bc := range b.attachments {
		if t, err = Compose(t, bc); err != nil {
			return nil, err
		}
	}

	b.log.Debug("type composed",
		log.String("type", t.name),
		log.String("id", t.id),
		log.Int("components", len(t.chain)),
		log.Int("methods", len(t.MethodNames())),
		log.Uint64("fingerprint", t.Fingerprint()),
	)
	return t, nil
}
