package state

import "reflect"

// Equaler is implemented by immutable structured values that define their
// own equality. CopyWithChanges consults it before falling back to identity.
type Equaler interface {
	Equal(other any) bool
}

// Equal reports whether a and b are the same field value.
//
// Comparable values use ==. Slices, maps, funcs, channels and pointers are
// equal only when they share the same underlying storage; their contents are
// not inspected.
func Equal(a, b any) (equal bool) {
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	if !ta.Comparable() {
		return false
	}
	// Arrays and structs holding interface values can still panic on ==.
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
