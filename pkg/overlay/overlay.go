package overlay

import (
	"fmt"
	"strconv"

	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/traits"
)

// VisibleClass marks an open overlay.
const VisibleClass = "visible"

// Overlay places its host above the document while open.
//
// Overlay needs traits.OpenClose and traits.Effects earlier in the stack;
// without them it never sees an effect and does nothing. An Overlay value
// belongs to one component.
type Overlay struct {
	// ForceTopLevel moves a host that is already inside the body to the
	// top level of the body while open, leaving a placeholder comment in
	// its place.
	ForceTopLevel bool

	// Stacking finds the z-index to place the host above. When nil, the
	// host's document is scanned.
	Stacking Stacking

	placeholder    *dom.Node
	appended       bool
	previousFocus  *dom.Node
	previousZIndex string
	zIndexSaved    bool
}

func (*Overlay) TraitName() string { return "overlay" }

func (o *Overlay) Init(c *core.Component) {
	host := c.Host()
	c.OnDispose(host.AddEventListener(dom.EventBlur, func(ev *dom.Event) {
		// Focus moved elsewhere; closing must not take it back.
		if ev.Target == host {
			o.previousFocus = nil
		}
	}))
}

func (o *Overlay) Connected(c *core.Component) {
	host := c.Host()
	host.SetAttribute("tabindex", "0")
	effect, phase := traits.CurrentEffect(c)
	if traits.Opened(c) && effect == core.EffectOpening && phase == traits.PhaseAfter {
		host.SetClass(VisibleClass, true)
	}
}

func (o *Overlay) Disconnected(*core.Component) {}

func (o *Overlay) BeforeEffect(c *core.Component, effect core.Effect) {
	switch effect {
	case core.EffectOpening:
		o.beforeOpening(c)
	case core.EffectClosing:
		if prev := o.previousFocus; prev != nil {
			o.previousFocus = nil
			prev.Focus()
		}
	}
}

func (o *Overlay) AfterEffect(c *core.Component, effect core.Effect) {
	host := c.Host()
	switch effect {
	case core.EffectOpening:
		host.SetClass(VisibleClass, true)
		host.Focus()
	case core.EffectClosing:
		host.SetClass(VisibleClass, false)
		if o.zIndexSaved {
			host.SetStyle("z-index", o.previousZIndex)
			o.previousZIndex, o.zIndexSaved = "", false
		}
		switch {
		case o.appended:
			host.Remove()
			o.appended = false
		case o.placeholder != nil:
			if parent := o.placeholder.Parent(); parent != nil {
				_ = parent.ReplaceChild(host, o.placeholder)
			}
			o.placeholder = nil
		}
	}
}

func (o *Overlay) beforeOpening(c *core.Component) {
	host := c.Host()
	doc := host.Document()
	body := doc.Body()
	o.previousFocus = doc.Focused()

	switch {
	case o.appended || o.placeholder != nil:
		// Already placed by Open or an earlier opening.
	case body.Contains(host):
		if o.ForceTopLevel {
			o.placeholder = doc.CreateComment(fmt.Sprintf(
				" placeholder for the open %s, which will return here when closed ", host.Tag))
			_ = host.Parent().ReplaceChild(o.placeholder, host)
			body.AppendChild(host)
		}
	default:
		o.appended = true
		body.AppendChild(host)
	}

	if !o.zIndexSaved {
		o.previousZIndex, o.zIndexSaved = host.Style("z-index"), true
	}
	if host.Style("z-index") == "" && host.ComputedStyle("z-index") == "auto" {
		host.SetStyle("z-index", strconv.Itoa(o.stacking(doc).MaxZIndex()+1))
	}
}

func (o *Overlay) stacking(doc *dom.Document) Stacking {
	if o.Stacking != nil {
		return o.Stacking
	}
	return DocumentStacking{Doc: doc}
}

// Open opens an overlay component. A host outside the document is appended
// to the body, which renders it synchronously, and is removed again after it
// closes.
func Open(c *core.Component) *core.Update {
	u := traits.Open(c)
	host := c.Host()
	if host.IsConnected() {
		return u
	}
	if o, ok := core.Lookup[*Overlay](c); ok {
		o.appended = true
	}
	host.Document().Body().AppendChild(host)
	return u
}

// Close closes an overlay component.
func Close(c *core.Component) *core.Update {
	return traits.Close(c)
}
