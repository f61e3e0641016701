package widgets

import (
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/overlay"
	"github.com/go-drift/relm/pkg/traits"
)

// PopupOptions configures NewPopup.
type PopupOptions struct {
	Name string
	// ForceTopLevel moves the popup to the top of the body while open.
	ForceTopLevel bool
	// EnableEffects waits for a transitionend on the host between the
	// before and after moments of each effect.
	EnableEffects bool
	// Dismissible closes the popup on Escape or a press on the backdrop.
	Dismissible bool
	Stacking    overlay.Stacking
	MaxPasses   int
}

// Popup is a modal overlay.
type Popup struct {
	*core.Component
	barrier *overlay.Barrier
}

// NewPopup binds a popup to host. The host may be outside the document;
// opening appends it to the body.
func NewPopup(host *dom.Node, loop *core.Loop, opts PopupOptions) *Popup {
	barrier := &overlay.Barrier{Dismissible: opts.Dismissible}
	c := core.New(host, loop, core.Options{Name: opts.Name, MaxPasses: opts.MaxPasses},
		popupRole{},
		traits.OpenClose{},
		traits.Effects{Disabled: !opts.EnableEffects},
		&overlay.Overlay{ForceTopLevel: opts.ForceTopLevel, Stacking: opts.Stacking},
		barrier,
	)
	return &Popup{Component: c, barrier: barrier}
}

// Opened reports whether the popup is open.
func (p *Popup) Opened() bool {
	return traits.Opened(p.Component)
}

// Open opens the popup.
func (p *Popup) Open() *core.Update {
	return overlay.Open(p.Component)
}

// Close closes the popup.
func (p *Popup) Close() *core.Update {
	return overlay.Close(p.Component)
}

// Toggle opens a closed popup and closes an open one.
func (p *Popup) Toggle() *core.Update {
	if p.Opened() {
		return p.Close()
	}
	return p.Open()
}

// Backdrop returns the node placed behind the open popup.
func (p *Popup) Backdrop() *dom.Node {
	return p.barrier.Backdrop()
}

type popupRole struct{}

func (popupRole) TraitName() string { return "popup" }

func (popupRole) Render(r *core.RenderContext) error {
	if r.Mounting {
		r.Patch.SetAttribute(r.Host, "role", "dialog")
		r.Patch.SetAttribute(r.Host, "aria-modal", "true")
	}
	return nil
}
