package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a ReactiveError.
func (h *LogHandler) HandleError(err *ReactiveError) {
	if err == nil {
		return
	}
	h.write("relm error", err)
}

// HandleWarning logs a non-fatal ReactiveError.
func (h *LogHandler) HandleWarning(err *ReactiveError) {
	if err == nil {
		return
	}
	h.write("relm warning", err)
}

func (h *LogHandler) write(prefix string, err *ReactiveError) {
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[%s] %s [%s]", prefix, err.Op, err.Kind)
		if err.Component != "" {
			fmt.Fprintf(w, " component=%s", err.Component)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[%s] %s: %v\n", prefix, err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[relm panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[relm panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
