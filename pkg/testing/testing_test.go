package testing

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/widgets"
)

func newColors(tester *Tester, opts widgets.ListBoxOptions) (*dom.Node, *widgets.ListBox) {
	host := tester.Doc.CreateElement("ul")
	for _, label := range []string{"Red", "Green", "Blue"} {
		item := tester.Doc.CreateElement("li")
		item.SetTextContent(label)
		host.AppendChild(item)
	}
	tester.Doc.Body().AppendChild(host)
	list := widgets.NewListBox(host, tester.Loop, opts)
	tester.Pump()
	return host, list
}

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	if elapsed := clk.Func()().Sub(start); elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFinders(t *testing.T) {
	tester := NewTesterWithT(t)
	host, _ := newColors(tester, widgets.ListBoxOptions{})

	tests := []struct {
		finder Finder
		want   int
	}{
		{ByText("Red"), 1},
		{ByText("Purple"), 0},
		{ByTextContaining("re"), 1},
		{ByTag("li"), 3},
		{ByAttribute("role", "listbox"), 1},
		{ByAttribute("aria-selected", "false"), 3},
		{Descendant(ByTag("ul"), ByTag("li")), 3},
		{Descendant(ByTag("li"), ByTag("li")), 0},
		{ByPredicate(func(n *dom.Node) bool { return n == host }), 1},
	}
	for _, tt := range tests {
		t.Run(tt.finder.Description(), func(t *testing.T) {
			if got := tester.Find(tt.finder).Count(); got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}

	if got := tester.Find(ByText("Blue")).First().Tag; got != "li" {
		t.Errorf("ByText matched <%s>, want the innermost <li>", got)
	}
	if tester.Find(ByText("Purple")).FirstOrNil() != nil {
		t.Error("FirstOrNil returned a node for no matches")
	}
}

func TestTester_TapSelectsItem(t *testing.T) {
	tester := NewTesterWithT(t)
	host, list := newColors(tester, widgets.ListBoxOptions{})

	if err := tester.Tap(ByText("Blue")); err != nil {
		t.Fatal(err)
	}
	if got := list.SelectedIndex(); got != 2 {
		t.Errorf("selected index = %d, want 2", got)
	}
	if !host.HasFocus() {
		t.Error("tap did not focus the list")
	}
	if got := tester.Find(ByClass("selected")).First(); got != list.Items()[2] {
		t.Errorf("selected class on %v", got)
	}

	if err := tester.Tap(ByText("Purple")); err == nil {
		t.Error("tap on a missing element succeeded")
	}
}

func TestTester_KeysAndTyping(t *testing.T) {
	tester := NewTesterWithT(t)
	host, list := newColors(tester, widgets.ListBoxOptions{
		SelectionRequired: true,
		Clock:             tester.Clock().Func(),
	})
	host.Focus()

	tester.SendKey(tcell.KeyEnd)
	if got := list.SelectedIndex(); got != 2 {
		t.Errorf("End selected %d, want 2", got)
	}

	tester.Type("gr")
	if got := list.SelectedIndex(); got != 1 {
		t.Errorf("typing selected %d, want 1", got)
	}

	// A pause resets the typed prefix.
	tester.Clock().Advance(2 * time.Second)
	tester.Type("r")
	if got := list.SelectedIndex(); got != 0 {
		t.Errorf("typing after a pause selected %d, want 0", got)
	}
}

func TestTester_Rows(t *testing.T) {
	tester := NewTesterWithT(t)
	newColors(tester, widgets.ListBoxOptions{})

	if got, want := strings.Join(tester.Rows(), "|"), "Red|Green|Blue"; got != want {
		t.Errorf("rows = %q, want %q", got, want)
	}
}

func TestSnapshot_MatchesFile(t *testing.T) {
	tester := NewTesterWithT(t)
	host, _ := newColors(tester, widgets.ListBoxOptions{SelectionRequired: true})
	host.Focus()

	path := filepath.Join(t.TempDir(), "colors.json")
	snap := tester.CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}
	snap.MatchesFile(t, path)

	list := snap.Tree.Children[0]
	if list.Tag != "ul" || len(list.Children) != 3 {
		t.Fatalf("tree = %+v", list)
	}
	if got := list.Children[0].Classes; len(got) != 1 || got[0] != "selected" {
		t.Errorf("first item classes = %v", got)
	}

	tester.SendKey(tcell.KeyDown)
	if diff := tester.CaptureSnapshot().Diff(snap); diff == "" {
		t.Error("diff empty after the selection moved")
	}
}

type recordingT struct {
	fatals []string
	errors []string
}

func (r *recordingT) Helper()      {}
func (r *recordingT) Name() string { return "TestRecording" }
func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, format)
}
func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}

func TestSnapshot_MissingFile(t *testing.T) {
	tester := NewTesterWithT(t)
	rt := &recordingT{}
	tester.CaptureSnapshot().MatchesFile(rt, filepath.Join(t.TempDir(), "missing.json"))
	if len(rt.fatals) != 1 {
		t.Errorf("fatals = %v, want one", rt.fatals)
	}
}
