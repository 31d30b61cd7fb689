package freeze

import (
	"errors"
	"fmt"
)

// ErrReadOnly is matched by every immutability violation returned from a frozen container.
var ErrReadOnly = errors.New("read only")

// ErrNilContainer is returned when writing through a nil *Object or *Array,
// for example after the container was deleted from its parent.
var ErrNilContainer = errors.New("write to nil container")

// Op identifies the kind of write that was rejected.
type Op string

const (
	// OpAssign is a reassignment of an existing key.
	OpAssign Op = "assign"
	// OpAdd is the insertion of a new key or element.
	OpAdd Op = "add"
	// OpDelete is the removal of an existing key.
	OpDelete Op = "delete"
)

// Error is returned when code attempts to write to a frozen container.
// Its message follows the shape downstream code pattern-matches on:
//
//	Cannot assign to read only property 'userId' of object '#<Object>'
type Error struct {
	Op     Op     // Kind of write that was rejected
	Key    string // Property name or array index
	Object string // Description of the frozen container, e.g. "#<Object>"
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Op {
	case OpAdd:
		return fmt.Sprintf("Cannot add property %s, object is not extensible", e.Key)
	case OpDelete:
		return fmt.Sprintf("Cannot delete property '%s' of %s", e.Key, e.Object)
	default:
		return fmt.Sprintf("Cannot assign to read only property '%s' of object '%s'", e.Key, e.Object)
	}
}

// Is reports whether target is ErrReadOnly.
func (e *Error) Is(target error) bool {
	return target == ErrReadOnly
}

func readOnly(op Op, key, object string) *Error {
	return &Error{Op: op, Key: key, Object: object}
}
