// Package demo is a terminal gallery of the relm widgets.
//
// Arrow keys, Home, End and typing move the selection; Enter opens a popup
// for the selected color; Escape closes it. Drag an item sideways with the
// mouse to reveal its swipe commands. Ctrl-C quits.
package demo

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/relm/pkg/config"
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/errors"
	"github.com/go-drift/relm/pkg/state"
	"github.com/go-drift/relm/pkg/termhost"
	"github.com/go-drift/relm/pkg/traits"
	"github.com/go-drift/relm/pkg/widgets"
)

// Colors are the list items.
var Colors = []string{"Red", "Orange", "Yellow", "Green", "Blue", "Indigo", "Violet"}

// Run shows the demo on the terminal until ctx is done or the user quits.
// Diagnostics are held until the screen is released and then written to
// diag. A failed diagnostics write is returned when the demo itself
// succeeded.
func Run(ctx context.Context, cfg *config.Resolved, diag io.Writer) (err error) {
	var held bytes.Buffer
	handler := cfg.Handler()
	handler.Out = &held
	errors.SetHandler(handler)
	defer func() {
		errors.SetHandler(nil)
		if werr := flushDiagnostics(diag, &held); werr != nil && err == nil {
			err = werr
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	sound, err := NewChime()
	if err != nil {
		fmt.Fprintf(&held, "audio disabled: %v\n", err)
	}
	defer sound.Close()

	doc := dom.NewDocument()
	loop := core.NewLoop()
	Build(doc, loop, cfg, sound)
	return termhost.New(screen, doc, loop).Run(ctx)
}

// Demo holds the widgets Build created.
type Demo struct {
	List  *widgets.ListBox
	Popup *widgets.Popup
}

// Build fills doc with the demo widgets. Sound may be silent.
func Build(doc *dom.Document, loop *core.Loop, cfg *config.Resolved, sound *Chime) *Demo {
	body := doc.Body()

	title := doc.CreateElement("h1")
	title.SetTextContent(cfg.AppName + ": pick a color")
	body.AppendChild(title)

	left := doc.CreateElement("div")
	left.SetTextContent("[done]")
	right := doc.CreateElement("div")
	right.SetTextContent("[delete]")

	listHost := doc.CreateElement("ul")
	for _, name := range Colors {
		item := doc.CreateElement("li")
		item.SetTextContent(name)
		listHost.AppendChild(item)
	}
	body.AppendChild(left)
	body.AppendChild(listHost)
	body.AppendChild(right)

	var list *widgets.ListBox
	swipe := &traits.SwipeCommands{
		Left:  left,
		Right: right,
		OnSwipeRight: func(c *core.Component, item *dom.Node) {
			item.SetClass("done", true)
			item.SetTextContent(traits.ItemText(item) + " (done)")
		},
		OnSwipeLeft: func(c *core.Component, item *dom.Node) {
			item.Remove()
			list.Refresh()
		},
	}
	list = widgets.NewListBox(listHost, loop, widgets.ListBoxOptions{
		Name:              "colors",
		SelectionRequired: true,
		Swipe:             swipe,
		MaxPasses:         cfg.MaxPasses,
	})
	list.RequestUpdate(state.ChangeSet{traits.FieldSwipeLeftRemovesItem: true})

	// Without transitions a released swipe settles at once.
	listHost.AddEventListener(dom.EventPointerUp, func(*dom.Event) {
		side := traits.SideRight
		if state.Value[float64](list.State(), traits.FieldSwipeFraction) > 0 {
			side = traits.SideLeft
		}
		swipe.TransitionEnd(list.Component, side)
	})
	listHost.AddEventListener(traits.EventSwipeCommitChanged, func(ev *dom.Event) {
		if commit, _ := ev.Detail.(bool); commit {
			sound.Play(commitTone)
		} else {
			sound.Play(cancelTone)
		}
	})

	dialog := doc.CreateElement("dialog")
	popup := widgets.NewPopup(dialog, loop, widgets.PopupOptions{
		Name:          "details",
		EnableEffects: cfg.EffectsEnabled,
		Dismissible:   true,
		MaxPasses:     cfg.MaxPasses,
	})
	listHost.AddEventListener(dom.EventKeyDown, func(ev *dom.Event) {
		if ev.Key != "Enter" {
			return
		}
		item := list.SelectedItem()
		if item == nil {
			return
		}
		dialog.SetTextContent(fmt.Sprintf("You picked %s. Press Escape to close.", traits.ItemText(item)))
		popup.Open()
	})

	listHost.Focus()
	return &Demo{List: list, Popup: popup}
}

// flushDiagnostics writes the held diagnostics to diag.
func flushDiagnostics(diag io.Writer, held *bytes.Buffer) error {
	if held.Len() == 0 {
		return nil
	}
	if _, err := held.WriteTo(diag); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	return nil
}
