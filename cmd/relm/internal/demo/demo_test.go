package demo

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/relm/pkg/config"
	relmtest "github.com/go-drift/relm/pkg/testing"
	"github.com/go-drift/relm/pkg/traits"
)

func newDemo(t *testing.T) (*Demo, *relmtest.Tester) {
	t.Helper()
	tester := relmtest.NewTesterWithT(t)
	tester.SetSize(40, 16)
	cfg := &config.Resolved{AppName: "demo", EffectsEnabled: true}
	d := Build(tester.Doc, tester.Loop, cfg, &Chime{})
	tester.Pump()
	return d, tester
}

func TestDemo_KeyboardAndPopup(t *testing.T) {
	d, tester := newDemo(t)
	if got := d.List.SelectedIndex(); got != 0 {
		t.Fatalf("initial selection = %d, want 0", got)
	}

	tester.SendKey(tcell.KeyDown)
	if got := d.List.SelectedIndex(); got != 1 {
		t.Fatalf("selection after ArrowDown = %d, want 1", got)
	}

	tester.SendKey(tcell.KeyEnter)
	dialog := d.Popup.Host()
	if !d.Popup.Opened() || !dialog.HasClass("visible") {
		t.Fatal("Enter did not open the popup")
	}
	if !strings.Contains(dialog.TextContent(), "Orange") {
		t.Errorf("popup text = %q, want the selected color", dialog.TextContent())
	}
	if !tester.Find(relmtest.ByTextContaining("You picked Orange")).Exists() {
		t.Error("popup text not in the document")
	}

	tester.SendKey(tcell.KeyEscape)
	if d.Popup.Opened() {
		t.Fatal("Escape did not close the popup")
	}
	if !d.List.Host().HasFocus() {
		t.Error("focus not returned to the list")
	}
}

func TestDemo_TypeToSelect(t *testing.T) {
	d, tester := newDemo(t)
	tester.Type("v")
	if got := traits.ItemText(d.List.SelectedItem()); got != "Violet" {
		t.Errorf("selected %q, want Violet", got)
	}
}

func TestDemo_SwipeLeftRemovesItem(t *testing.T) {
	d, tester := newDemo(t)
	red := tester.Find(relmtest.ByText("Red")).First()
	rect, err := red.BoundingRect()
	if err != nil {
		t.Fatalf("item has no layout: %v", err)
	}

	// Three quarters of the list width to the left.
	tester.DragFrom(39, int(rect.Y), -30, 0)

	if red.IsConnected() {
		t.Error("swiped item still in the document")
	}
	if got := len(d.List.Items()); got != len(Colors)-1 {
		t.Errorf("items = %d, want %d", got, len(Colors)-1)
	}
}

func TestDemo_SwipeRightMarksDone(t *testing.T) {
	d, tester := newDemo(t)
	green := tester.Find(relmtest.ByText("Green")).First()
	rect, err := green.BoundingRect()
	if err != nil {
		t.Fatalf("item has no layout: %v", err)
	}

	tester.DragFrom(0, int(rect.Y), 25, 0)
	if !green.HasClass("done") || traits.ItemText(green) != "Green (done)" {
		t.Errorf("item after swipe right: classes %v, text %q", green.Classes(), traits.ItemText(green))
	}
	if got := len(d.List.Items()); got != len(Colors) {
		t.Errorf("items = %d, want %d", got, len(Colors))
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestFlushDiagnostics(t *testing.T) {
	boom := stderrors.New("disk full")
	held := bytes.NewBufferString("warning: no layout\n")
	if err := flushDiagnostics(failingWriter{boom}, held); !stderrors.Is(err, boom) {
		t.Errorf("err = %v, want it to wrap %v", err, boom)
	}

	var out bytes.Buffer
	held = bytes.NewBufferString("warning: no layout\n")
	if err := flushDiagnostics(&out, held); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.String() != "warning: no layout\n" {
		t.Errorf("diag = %q", out.String())
	}

	if err := flushDiagnostics(failingWriter{boom}, &bytes.Buffer{}); err != nil {
		t.Errorf("empty buffer: err = %v, want nil", err)
	}
}
