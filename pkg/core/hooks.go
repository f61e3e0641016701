package core

import "github.com/go-drift/relm/pkg/state"

// Field is a typed handle on one state field of a component.
//
// Field is NOT thread-safe. It must only be accessed from the loop
// goroutine.
//
// Example:
//
//	opened := core.FieldOf[bool](c, "opened")
//	if !opened.Value() {
//	    opened.Set(true)
//	}
type Field[T any] struct {
	c    *Component
	name string
}

// FieldOf returns a handle on the named field of c.
func FieldOf[T any](c *Component, name string) Field[T] {
	return Field[T]{c: c, name: name}
}

// Name returns the field name.
func (f Field[T]) Name() string {
	return f.name
}

// Value returns the current value, or the zero T when unset.
func (f Field[T]) Value() T {
	return state.Value[T](f.c.state, f.name)
}

// Set requests an update of the field.
func (f Field[T]) Set(value T) *Update {
	return f.c.RequestUpdate(state.ChangeSet{f.name: value})
}

// Update applies transform to the current value and requests an update.
func (f Field[T]) Update(transform func(T) T) *Update {
	return f.Set(transform(f.Value()))
}
