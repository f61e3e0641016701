package overlay

import (
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/traits"
)

// BackdropClass marks the node a Barrier places behind its host.
const BackdropClass = "backdrop"

// KeyEscape closes a dismissible overlay.
const KeyEscape = "Escape"

// Barrier places a backdrop behind an open overlay. The backdrop absorbs
// pointer input; when Dismissible, pressing it or the Escape key closes the
// overlay.
//
// Barrier must follow Overlay in the trait stack so that the host is
// already placed when the backdrop is inserted.
type Barrier struct {
	Dismissible bool

	backdrop *dom.Node
}

func (*Barrier) TraitName() string { return "barrier" }

// Backdrop returns the backdrop node, or nil before the first opening.
func (b *Barrier) Backdrop() *dom.Node {
	return b.backdrop
}

func (b *Barrier) BeforeEffect(c *core.Component, effect core.Effect) {
	if effect != core.EffectOpening {
		return
	}
	host := c.Host()
	parent := host.Parent()
	if parent == nil {
		return
	}
	if b.backdrop == nil {
		b.backdrop = host.Document().CreateElement("div")
		b.backdrop.SetClass(BackdropClass, true)
		c.OnDispose(b.backdrop.AddEventListener(dom.EventPointerDown, func(ev *dom.Event) {
			ev.StopPropagation()
			if b.Dismissible {
				c.Interact(func() { traits.Close(c) })
			}
		}))
	}
	b.backdrop.SetStyle("position", "fixed")
	b.backdrop.SetStyle("z-index", host.ComputedStyle("z-index"))
	_ = parent.InsertBefore(b.backdrop, host)
}

func (b *Barrier) AfterEffect(c *core.Component, effect core.Effect) {
	if effect == core.EffectClosing && b.backdrop != nil {
		b.backdrop.Remove()
	}
}

func (b *Barrier) KeyDown(c *core.Component, ev *dom.Event) bool {
	if ev.Key != KeyEscape || !b.Dismissible || !traits.Opened(c) {
		return false
	}
	traits.Close(c)
	return true
}
