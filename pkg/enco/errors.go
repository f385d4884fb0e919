package enco

import "errors"

var (
	// ErrNilTarget is returned when composition is attempted against a nil type.
	ErrNilTarget = errors.New("enco: nil target type")
	// ErrMalformedComponent is returned when a value attached as a component
	// does not satisfy the component shape. No composed type is produced.
	ErrMalformedComponent = errors.New("enco: malformed component")
	// ErrDuplicateComponent is returned when a component with the same name is
	// already part of the target's chain.
	ErrDuplicateComponent = errors.New("enco: component already attached")
	// ErrUnknownMethod is returned by Entity.Call for a name absent from the
	// composed type's dispatch table.
	ErrUnknownMethod = errors.New("enco: unknown method")
	// ErrFinalized is returned when a Builder is used after Finalize.
	ErrFinalized = errors.New("enco: builder already finalized")
)
