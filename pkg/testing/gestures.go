package testing

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// SendKey delivers a special key to the focused element and pumps.
func (t *Tester) SendKey(key tcell.Key) {
	t.Host.HandleEvent(tcell.NewEventKey(key, 0, tcell.ModNone))
	t.Host.Draw()
}

// Type delivers text one rune at a time to the focused element.
func (t *Tester) Type(text string) {
	for _, r := range text {
		t.Host.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	t.Host.Draw()
}

// Tap presses and releases the primary button over the first element
// matched by finder.
func (t *Tester) Tap(finder Finder) error {
	x, y, err := t.center("Tap", finder)
	if err != nil {
		return err
	}
	t.TapAt(x, y)
	return nil
}

// TapAt presses and releases the primary button at a cell.
func (t *Tester) TapAt(x, y int) {
	t.mouse(x, y, tcell.Button1)
	t.mouse(x, y, tcell.ButtonNone)
	t.Host.Draw()
}

// Drag presses over the first element matched by finder, moves by
// (dx, dy) cells and releases.
func (t *Tester) Drag(finder Finder, dx, dy int) error {
	x, y, err := t.center("Drag", finder)
	if err != nil {
		return err
	}
	t.DragFrom(x, y, dx, dy)
	return nil
}

// DragFrom presses at a cell, moves by (dx, dy) cells and releases.
func (t *Tester) DragFrom(x, y, dx, dy int) {
	t.mouse(x, y, tcell.Button1)
	t.mouse(x+dx, y+dy, tcell.Button1)
	t.mouse(x+dx, y+dy, tcell.ButtonNone)
	t.Host.Draw()
}

func (t *Tester) mouse(x, y int, buttons tcell.ButtonMask) {
	t.Host.HandleEvent(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

// center returns the cell at the middle of the first match's first row.
// Text rows are one cell tall, so the middle row of a taller box could
// land between items.
func (t *Tester) center(op string, finder Finder) (int, int, error) {
	node := t.Find(finder).FirstOrNil()
	if node == nil {
		return 0, 0, fmt.Errorf("%s: finder matched no elements: %s", op, finder.Description())
	}
	r, err := node.BoundingRect()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %s: %w", op, finder.Description(), err)
	}
	return int(r.Left() + r.Width/2), int(r.Top()), nil
}
