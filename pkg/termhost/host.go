// Package termhost renders a document to a terminal with tcell and feeds
// terminal input back into it as dom events.
//
// Layout uses one unit per terminal cell: text is measured with
// go-runewidth and every text run is one row tall.
package termhost

import (
	"context"
	stderrors "errors"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
)

// CellMetrics measures text in terminal cells.
type CellMetrics struct{}

func (CellMetrics) Measure(text string) (float64, float64) {
	if text == "" {
		return 0, 0
	}
	return float64(runewidth.StringWidth(text)), 1
}

// Host connects a document and its loop to a screen.
//
// Host methods other than Run must be called on the loop goroutine.
type Host struct {
	Screen tcell.Screen
	Doc    *dom.Document
	Loop   *core.Loop

	// Theme styles painted cells.
	Theme Theme

	pressed *dom.Node
}

// New creates a host. The screen must already be initialized.
func New(screen tcell.Screen, doc *dom.Document, loop *core.Loop) *Host {
	return &Host{Screen: screen, Doc: doc, Loop: loop, Theme: DefaultTheme()}
}

// Draw lays out the document at the screen width and paints it.
func (h *Host) Draw() {
	width, _ := h.Screen.Size()
	h.Doc.Layout(float64(width), CellMetrics{})
	h.Screen.Clear()
	paint(h.Screen, h.Doc, h.Theme)
	h.Screen.Show()
}

// HandleEvent translates a terminal event into dom events and flushes the
// resulting updates. It returns false when the user asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		key := keyName(ev)
		if key == "" {
			return true
		}
		target := h.Doc.ActiveElement()
		target.DispatchEvent(&dom.Event{Type: dom.EventKeyDown, Key: key, Bubbles: true})
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.Screen.Sync()
	}
	h.Settle()
	return true
}

// maxSettleRounds bounds Settle when effects keep restarting.
const maxSettleRounds = 8

// Settle flushes the loop and ends every pending transition. Terminals
// have no transitions, so an element whose effect phase is "during" gets
// its transitionend at once.
func (h *Host) Settle() {
	h.Loop.Flush()
	for range maxSettleRounds {
		var waiting []*dom.Node
		h.Doc.Root().Walk(func(n *dom.Node) bool {
			if phase, ok := n.Attribute("data-effect-phase"); ok && phase == "during" {
				waiting = append(waiting, n)
			}
			return true
		})
		if len(waiting) == 0 {
			return
		}
		for _, n := range waiting {
			n.DispatchEvent(&dom.Event{Type: dom.EventTransitionEnd})
		}
		h.Loop.Flush()
	}
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	fx, fy := float64(x), float64(y)
	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && h.pressed == nil:
		target := HitTest(h.Doc, fx, fy)
		if target == nil {
			return
		}
		h.pressed = target
		if focusable := focusableAncestor(target); focusable != nil {
			focusable.Focus()
		}
		target.DispatchEvent(&dom.Event{Type: dom.EventPointerDown, X: fx, Y: fy, Bubbles: true})
	case pressed:
		h.pressed.DispatchEvent(&dom.Event{Type: dom.EventPointerMove, X: fx, Y: fy, Bubbles: true})
	case h.pressed != nil:
		target := h.pressed
		h.pressed = nil
		target.DispatchEvent(&dom.Event{Type: dom.EventPointerUp, X: fx, Y: fy, Bubbles: true})
	}
}

// Run draws the document and processes terminal events until ctx is done
// or the user quits. Events are polled on a separate goroutine and handed
// to the loop with Post.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := h.Screen.PollEvent()
			if ev == nil {
				return
			}
			h.Loop.Post(func() {
				if !h.HandleEvent(ev) {
					cancel()
					return
				}
				h.Draw()
			})
		}
	}()

	h.Settle()
	h.Draw()
	err := h.Loop.Run(ctx)
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// keyName maps a tcell key to a dom key name, or "" for keys without one.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyHome:
		return "Home"
	case tcell.KeyEnd:
		return "End"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}
