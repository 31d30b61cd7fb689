// Package freeze provides dynamic containers that can be made recursively read only.
//
// An Object is an insertion-ordered, string-keyed mapping and an Array is an
// ordered list. Both accept any Go value as an element; nested Objects and
// Arrays form an object graph that Deep walks and marks frozen. Writes to a
// frozen container fail with an *Error that matches ErrReadOnly.
package freeze

import (
	"maps"
	"slices"
)

const objectDescription = "#<Object>"

// Container is implemented by values that take part in deep freezing.
// Range visits every own entry; returning false from fn stops the iteration.
type Container interface {
	Range(fn func(key string, value any) bool)
	Freeze()
	IsFrozen() bool
}

// Object is an ordered string-keyed mapping that can be frozen.
// The zero value is an empty, writable object.
type Object struct {
	keys   []string
	values map[string]any
	frozen bool
}

// NewObject creates an empty, writable object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// ObjectOf creates a writable object holding the entries of m.
// Nested maps and slices are converted with From; keys are inserted in sorted order.
func ObjectOf(m map[string]any) *Object {
	o := NewObject()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		o.put(k, From(m[k]))
	}
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.values == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// GetObject returns the nested object stored under key.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, _ := o.Get(key)
	child, ok := v.(*Object)
	return child, ok
}

// GetArray returns the nested array stored under key.
func (o *Object) GetArray(key string) (*Array, bool) {
	v, _ := o.Get(key)
	child, ok := v.(*Array)
	return child, ok
}

// GetString returns the string stored under key.
func (o *Object) GetString(key string) (string, bool) {
	v, _ := o.Get(key)
	s, ok := v.(string)
	return s, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Set stores value under key. Plain maps and slices are converted with From
// so that they can be frozen later. Writing to a frozen object fails.
func (o *Object) Set(key string, value any) error {
	if o == nil {
		return ErrNilContainer
	}
	if o.frozen {
		if o.Has(key) {
			return readOnly(OpAssign, key, objectDescription)
		}
		return readOnly(OpAdd, key, objectDescription)
	}
	o.put(key, From(value))
	return nil
}

// Delete removes key. Deleting an absent key is a no-op, even when frozen
// or nil.
func (o *Object) Delete(key string) error {
	if !o.Has(key) {
		return nil
	}
	if o.frozen {
		return readOnly(OpDelete, key, objectDescription)
	}
	delete(o.values, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	return nil
}

// Range calls fn for every entry in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, value any) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// Freeze marks the object read only. Nested values are not touched; use Deep for that.
func (o *Object) Freeze() {
	if o != nil {
		o.frozen = true
	}
}

// IsFrozen reports whether Freeze has been called.
func (o *Object) IsFrozen() bool {
	return o != nil && o.frozen
}

// Native returns the object as a map[string]any with nested containers converted too.
func (o *Object) Native() map[string]any {
	if o == nil {
		return nil
	}
	m := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		m[k] = Native(o.values[k])
	}
	return m
}

func (o *Object) put(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}
