// Package errors provides structured error reporting for relm components.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindMisuse indicates an API used in a way that is allowed but discouraged,
	// such as requesting a state update while rendering.
	KindMisuse
	// KindReaction indicates a reaction rule set that failed to converge.
	KindReaction
	// KindRender indicates a render hook failure.
	KindRender
	// KindGeometry indicates a host geometry query that could not be honored.
	KindGeometry
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindMisuse:
		return "misuse"
	case KindReaction:
		return "reaction"
	case KindRender:
		return "render"
	case KindGeometry:
		return "geometry"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ReactiveError represents a structured error raised by a component.
type ReactiveError struct {
	// Op is the operation that failed (e.g., "core.Component.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Component identifies the component instance, if applicable.
	Component string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReactiveError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReactiveError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.Loop.Flush").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// HookError represents a failure inside a trait hook.
type HookError struct {
	// Trait is the name of the trait whose hook failed.
	Trait string
	// Hook is the hook name ("render", "mount", ...).
	Hook string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
}

func (e *HookError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.%s: %v", e.Trait, e.Hook, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.%s: %v", e.Trait, e.Hook, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.%s", e.Trait, e.Hook)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by components.
type ErrorHandler interface {
	// HandleError is called when an operation fails.
	HandleError(err *ReactiveError)
	// HandleWarning is called for non-fatal diagnostics.
	HandleWarning(err *ReactiveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
