package freeze

import "strconv"

const arrayDescription = "[object Array]"

// Array is an ordered list that can be frozen.
// The zero value is an empty, writable array.
type Array struct {
	items  []any
	frozen bool
}

// NewArray creates a writable array holding items, converted with From.
func NewArray(items ...any) *Array {
	a := &Array{items: make([]any, 0, len(items))}
	for _, item := range items {
		a.items = append(a.items, From(item))
	}
	return a
}

// Get returns the element at index i.
func (a *Array) Get(i int) (any, bool) {
	if a == nil || i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// Set replaces the element at index i. Setting index Len() appends.
func (a *Array) Set(i int, value any) error {
	if a == nil {
		return ErrNilContainer
	}
	switch {
	case i < 0 || i > len(a.items):
		return &IndexError{Index: i, Len: len(a.items)}
	case a.frozen && i == len(a.items):
		return readOnly(OpAdd, strconv.Itoa(i), arrayDescription)
	case a.frozen:
		return readOnly(OpAssign, strconv.Itoa(i), arrayDescription)
	case i == len(a.items):
		a.items = append(a.items, From(value))
	default:
		a.items[i] = From(value)
	}
	return nil
}

// Append adds values to the end of the array.
func (a *Array) Append(values ...any) error {
	if a == nil {
		return ErrNilContainer
	}
	if a.frozen {
		return readOnly(OpAdd, strconv.Itoa(len(a.items)), arrayDescription)
	}
	for _, v := range values {
		a.items = append(a.items, From(v))
	}
	return nil
}

// Range calls fn for every element, keyed by its decimal index, until fn returns false.
func (a *Array) Range(fn func(key string, value any) bool) {
	if a == nil {
		return
	}
	for i, v := range a.items {
		if !fn(strconv.Itoa(i), v) {
			return
		}
	}
}

// Freeze marks the array read only.
func (a *Array) Freeze() {
	if a != nil {
		a.frozen = true
	}
}

// IsFrozen reports whether Freeze has been called.
func (a *Array) IsFrozen() bool {
	return a != nil && a.frozen
}

// Native returns the array as a []any with nested containers converted too.
func (a *Array) Native() []any {
	if a == nil {
		return nil
	}
	out := make([]any, len(a.items))
	for i, v := range a.items {
		out[i] = Native(v)
	}
	return out
}

// IndexError is returned by Array.Set for an index outside [0, Len()].
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return "index " + strconv.Itoa(e.Index) + " out of range [0:" + strconv.Itoa(e.Len) + "]"
}
