package testing

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/termhost"
)

const (
	// DefaultTestWidth is the default width of the simulated screen in cells.
	DefaultTestWidth = 80
	// DefaultTestHeight is the default height of the simulated screen in rows.
	DefaultTestHeight = 24
)

// Tester owns a document, a loop and a simulated terminal that paints the
// document. Components under test are bound to nodes of Doc with Loop.
type Tester struct {
	Doc    *dom.Document
	Loop   *core.Loop
	Screen tcell.SimulationScreen
	Host   *termhost.Host

	clock *FakeClock
}

// NewTester creates a tester with an initialized simulated screen.
// Call Cleanup when done, or use NewTesterWithT instead.
func NewTester() (*Tester, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetSize(DefaultTestWidth, DefaultTestHeight)
	doc := dom.NewDocument()
	loop := core.NewLoop()
	return &Tester{
		Doc:    doc,
		Loop:   loop,
		Screen: screen,
		Host:   termhost.New(screen, doc, loop),
		clock:  NewFakeClock(),
	}, nil
}

// NewTesterWithT creates a tester that is cleaned up via t.Cleanup.
func NewTesterWithT(t *testing.T) *Tester {
	t.Helper()
	tester, err := NewTester()
	if err != nil {
		t.Fatalf("simulated screen: %v", err)
	}
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup releases the simulated screen.
func (t *Tester) Cleanup() {
	t.Screen.Fini()
}

// SetSize resizes the simulated screen. The next Pump lays out at the new
// width.
func (t *Tester) SetSize(width, height int) {
	t.Screen.SetSize(width, height)
}

// Clock returns the tester's fake clock.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Pump renders pending updates, finishes running effects and repaints.
func (t *Tester) Pump() {
	t.Host.Settle()
	t.Host.Draw()
}

// Find evaluates finder against the whole document.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{nodes: finder.Evaluate(t.Doc.Root()), finder: finder}
}

// Row returns the painted text of screen row y with trailing blanks
// removed.
func (t *Tester) Row(y int) string {
	width, _ := t.Screen.Size()
	var row []rune
	for x := 0; x < width; {
		r, _, _, w := t.Screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		row = append(row, r)
		x += max(w, 1)
	}
	for len(row) > 0 && row[len(row)-1] == ' ' {
		row = row[:len(row)-1]
	}
	return string(row)
}

// Rows returns every painted row, dropping trailing empty ones.
func (t *Tester) Rows() []string {
	_, height := t.Screen.Size()
	rows := make([]string, height)
	for y := range rows {
		rows[y] = t.Row(y)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}
