package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

type handlerSlot struct {
	h ErrorHandler
}

// current holds the global handler. A nil slot means a default LogHandler.
var current atomic.Pointer[handlerSlot]

// SetHandler installs h as the global error handler and returns the one it
// replaces. Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	prev := Handler()
	if h == nil {
		current.Store(nil)
	} else {
		current.Store(&handlerSlot{h: h})
	}
	return prev
}

// Handler returns the global error handler.
func Handler() ErrorHandler {
	if slot := current.Load(); slot != nil {
		return slot.h
	}
	return &LogHandler{}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Report sends a failure to the global handler, setting Timestamp if it is
// zero.
func Report(err *ReactiveError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	Handler().HandleError(err)
}

// ReportWarning sends a non-fatal diagnostic to the global handler.
func ReportWarning(err *ReactiveError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	Handler().HandleWarning(err)
}

// ReportPanic sends a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	Handler().HandlePanic(err)
}

// Recover reports a panic in the deferring function and stops it.
//
//	defer errors.Recover("core.Loop.Flush")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{Op: op, Value: r, StackTrace: CaptureStack()})
	}
}

// CatchHook turns a panic in a trait hook into a *HookError stored in
// *err instead of reporting it. The caller decides how the failure is
// reported.
//
//	func render(h Renderer) (err error) {
//		defer errors.CatchHook(h.TraitName(), "render", &err)
//		...
//	}
func CatchHook(trait, hook string, err *error) {
	if r := recover(); r != nil {
		*err = &HookError{Trait: trait, Hook: hook, Recovered: r}
	}
}

// CaptureStack returns the caller's call stack, one function and position
// per frame.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var frame runtime.Frame
		frame, more = frames.Next()
		sb.WriteString(frame.Function + "\n\t" + frame.File + ":" + strconv.Itoa(frame.Line) + "\n")
	}
	return sb.String()
}
