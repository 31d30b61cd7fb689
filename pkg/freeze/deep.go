package freeze

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Deep makes root recursively read only and returns it. The graph is mutated
// in place, never cloned.
//
// Entries of root whose key appears in excludedKeys are skipped entirely:
// they are neither frozen nor descended into. Exclusion applies to the top
// level of root only; nested containers are frozen with no exclusions.
//
// Values that are not a Container (nil, primitives, arbitrary Go values) are
// returned unchanged. Freezing an already frozen graph is a no-op. There is no
// cycle detection, so a graph that contains itself recurses without bound.
func Deep(root any, excludedKeys ...string) any {
	c, ok := root.(Container)
	if !ok {
		return root
	}

	c.Range(func(key string, value any) bool {
		if slices.Contains(excludedKeys, key) {
			return true
		}
		Deep(value)
		return true
	})
	c.Freeze()

	return root
}

// IsFrozen reports whether v is read only. Non-container values always are.
func IsFrozen(v any) bool {
	if c, ok := v.(Container); ok {
		return c.IsFrozen()
	}
	return true
}

// From converts Go maps and slices into Objects and Arrays, recursively, so
// that Deep can freeze them. Map keys are rendered with fmt.Sprint and
// inserted in sorted order; a nil map or slice becomes an empty container.
// Containers, Go arrays (which are copied by value) and every other value are
// returned as is.
func From(v any) any {
	switch t := v.(type) {
	case nil, Container:
		return v
	case map[string]any:
		return ObjectOf(t)
	case []any:
		return NewArray(t...)
	case map[string]string:
		o := NewObject()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			o.put(k, t[k])
		}
		return o
	case []string:
		a := &Array{items: make([]any, len(t))}
		for i, s := range t {
			a.items[i] = s
		}
		return a
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		entries := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries[fmt.Sprint(iter.Key().Interface())] = iter.Value()
		}
		o := NewObject()
		for _, k := range slices.Sorted(maps.Keys(entries)) {
			o.put(k, From(entries[k].Interface()))
		}
		return o
	case reflect.Slice:
		a := &Array{items: make([]any, rv.Len())}
		for i := range a.items {
			a.items[i] = From(rv.Index(i).Interface())
		}
		return a
	default:
		return v
	}
}

// Native converts Objects and Arrays back into map[string]any and []any.
func Native(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Native()
	case *Array:
		return t.Native()
	default:
		return v
	}
}
