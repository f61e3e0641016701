package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestReactiveErrorString(t *testing.T) {
	err := &ReactiveError{
		Op:   "core.Component.Render",
		Kind: KindRender,
		Err:  stderrors.New("boom"),
	}
	want := "core.Component.Render [render]: boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestReactiveErrorWithComponent(t *testing.T) {
	err := &ReactiveError{
		Op:        "core.Component.RequestUpdate",
		Kind:      KindMisuse,
		Component: "ListBox#1",
		Err:       stderrors.New("update during render"),
	}
	if got := err.Error(); !strings.Contains(got, "component=ListBox#1") {
		t.Errorf("error string %q should contain component", got)
	}
}

func TestReactiveErrorUnwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := &ReactiveError{Op: "op", Err: inner}
	if !stderrors.Is(err, inner) {
		t.Error("expected errors.Is to find inner error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindMisuse, "misuse"},
		{KindReaction, "reaction"},
		{KindRender, "render"},
		{KindGeometry, "geometry"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "core.Loop.Flush"
	if got, want := err.Error(), "panic in core.Loop.Flush: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestHookErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *HookError
		want string
	}{
		{"panic", &HookError{Trait: "swipe", Hook: "render", Recovered: "nil map"}, "panic in swipe.render: nil map"},
		{"error", &HookError{Trait: "swipe", Hook: "render", Err: stderrors.New("bad")}, "error in swipe.render: bad"},
		{"unknown", &HookError{Trait: "swipe", Hook: "render"}, "unknown error in swipe.render"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var captured *ReactiveError
	SetHandler(&testHandler{onError: func(err *ReactiveError) { captured = err }})
	defer SetHandler(nil)

	Report(&ReactiveError{Op: "test.op", Kind: KindReaction, Err: stderrors.New("cycle")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportWarning(t *testing.T) {
	var captured *ReactiveError
	SetHandler(&testHandler{onWarning: func(err *ReactiveError) { captured = err }})
	defer SetHandler(nil)

	ReportWarning(&ReactiveError{Op: "warn.op", Kind: KindMisuse, Err: stderrors.New("careful")})

	if captured == nil || captured.Kind != KindMisuse {
		t.Fatalf("expected misuse warning, got %v", captured)
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestCatchHook(t *testing.T) {
	var reported int
	SetHandler(&testHandler{onPanic: func(*PanicError) { reported++ }})
	defer SetHandler(nil)

	run := func() (err error) {
		defer CatchHook("listBox", "render", &err)
		panic(42)
	}
	var hookErr *HookError
	if err := run(); !stderrors.As(err, &hookErr) || hookErr.Recovered != 42 || hookErr.Trait != "listBox" {
		t.Fatalf("err = %v, want HookError from listBox with 42", err)
	}
	if reported != 0 {
		t.Errorf("CatchHook reported %d panics, want none", reported)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandler(t *testing.T) {
	custom := &testHandler{}
	SetHandler(nil)
	if prev := SetHandler(custom); prev == nil {
		t.Error("SetHandler returned no previous handler")
	}
	if Handler() != custom {
		t.Errorf("Handler() = %T, want the installed handler", Handler())
	}
	if prev := SetHandler(nil); prev != custom {
		t.Errorf("SetHandler(nil) returned %T, want the custom handler", prev)
	}
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should restore LogHandler, got %T", Handler())
	}
}

func TestLogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleWarning(&ReactiveError{Op: "core.RequestUpdate", Kind: KindMisuse, Err: stderrors.New("during render")})
	if got, want := buf.String(), "[relm warning] core.RequestUpdate: during render\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	buf.Reset()
	h.Verbose = true
	h.HandleError(&ReactiveError{Op: "op", Kind: KindRender, Component: "c1", Err: stderrors.New("x"), StackTrace: "frame"})
	out := buf.String()
	for _, want := range []string{"[relm error] op [render]", "component=c1", "Stack trace:\nframe"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output %q missing %q", out, want)
		}
	}
}

type testHandler struct {
	onError   func(*ReactiveError)
	onWarning func(*ReactiveError)
	onPanic   func(*PanicError)
}

func (h *testHandler) HandleError(err *ReactiveError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandleWarning(err *ReactiveError) {
	if h.onWarning != nil {
		h.onWarning(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
