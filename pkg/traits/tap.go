package traits

import (
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
)

// TapSelection selects the item that receives a pointerdown.
type TapSelection struct{}

func (TapSelection) TraitName() string { return "tapSelection" }

func (TapSelection) Init(c *core.Component) {
	c.OnDispose(c.Host().AddEventListener(dom.EventPointerDown, func(ev *dom.Event) {
		index := ItemIndexOf(c, ev.Target)
		if index < 0 {
			return
		}
		c.Interact(func() { SelectIndex(c, index) })
	}))
}

// ItemIndexOf returns the index of the item that is n or contains n, or -1.
func ItemIndexOf(c *core.Component, n *dom.Node) int {
	for i, item := range Items(c.State()) {
		if item.Contains(n) {
			return i
		}
	}
	return -1
}
