package traits

import (
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/state"
)

// OpenClose gives a component an "opened" field.
type OpenClose struct{}

func (OpenClose) TraitName() string { return "openClose" }

func (OpenClose) DefaultState() state.ChangeSet {
	return state.ChangeSet{FieldOpened: false}
}

func (OpenClose) Render(r *core.RenderContext) error {
	if r.Dirty(FieldOpened) {
		r.Patch.ToggleAttribute(r.Host, "opened", state.Value[bool](r.State, FieldOpened))
	}
	return nil
}

func (OpenClose) ComponentDidUpdate(c *core.Component, changed state.Changed) {
	if changed.Has(FieldOpened) && c.RaiseChangeEvents() {
		c.DispatchEvent(EventOpenedChanged, Opened(c))
	}
}

// Opened reports whether c is open.
func Opened(c *core.Component) bool {
	return state.Value[bool](c.State(), FieldOpened)
}

// Open requests that c open.
func Open(c *core.Component) *core.Update {
	return c.RequestUpdate(state.ChangeSet{FieldOpened: true})
}

// Close requests that c close.
func Close(c *core.Component) *core.Update {
	return c.RequestUpdate(state.ChangeSet{FieldOpened: false})
}

// Toggle flips the opened field.
func Toggle(c *core.Component) *core.Update {
	return c.RequestUpdate(state.ChangeSet{FieldOpened: !Opened(c)})
}
