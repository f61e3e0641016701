package widgets

import (
	"time"

	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/state"
	"github.com/go-drift/relm/pkg/traits"
)

// ListBoxOptions configures NewListBox.
type ListBoxOptions struct {
	Name              string
	SelectionRequired bool
	SelectionWraps    bool
	// Swipe adds swipe commands. The value must not be shared.
	Swipe     *traits.SwipeCommands
	MaxPasses int
	// Clock drives the type-ahead timeout (time.Now when nil).
	Clock func() time.Time
}

// ListBox is a single-selection list. Arrow, Home and End keys move the
// selection, typing selects by item text and pressing an item selects it.
type ListBox struct {
	*core.Component
}

// NewListBox binds a list box to host.
func NewListBox(host *dom.Node, loop *core.Loop, opts ListBoxOptions) *ListBox {
	stack := []core.Trait{
		listBoxRole{},
		&traits.SingleSelection{},
		traits.KeyboardDirection{},
		&traits.PrefixSelection{Now: opts.Clock},
		traits.TapSelection{},
	}
	if opts.Swipe != nil {
		stack = append(stack, opts.Swipe)
	}
	c := core.New(host, loop, core.Options{
		Name: opts.Name,
		Defaults: state.ChangeSet{
			traits.FieldItems:             elementChildren(host),
			traits.FieldSelectionRequired: opts.SelectionRequired,
			traits.FieldSelectionWraps:    opts.SelectionWraps,
		},
		MaxPasses: opts.MaxPasses,
	}, stack...)
	return &ListBox{Component: c}
}

// Refresh reloads the items from the host's children.
func (lb *ListBox) Refresh() *core.Update {
	return traits.SetItems(lb.Component, elementChildren(lb.Host()))
}

// Items returns the current items.
func (lb *ListBox) Items() []*dom.Node {
	return traits.Items(lb.State())
}

// SelectedIndex returns the selected index, -1 for none.
func (lb *ListBox) SelectedIndex() int {
	return traits.SelectedIndex(lb.Component)
}

// SelectedItem returns the selected item, or nil.
func (lb *ListBox) SelectedItem() *dom.Node {
	return traits.SelectedItem(lb.Component)
}

// Select requests index as the selection.
func (lb *ListBox) Select(index int) *core.Update {
	return traits.SelectIndex(lb.Component, index)
}

// listBoxRole writes accessibility roles for the list and its items.
type listBoxRole struct{}

func (listBoxRole) TraitName() string { return "listBox" }

func (listBoxRole) Render(r *core.RenderContext) error {
	if r.Mounting {
		r.Patch.SetAttribute(r.Host, "role", "listbox")
		r.Patch.SetAttribute(r.Host, "tabindex", "0")
	}
	if r.Dirty(traits.FieldItems, traits.FieldSelectedIndex) {
		selected := state.Value[int](r.State, traits.FieldSelectedIndex)
		for i, item := range traits.Items(r.State) {
			r.Patch.SetAttribute(item, "role", "option")
			r.Patch.SetAttribute(item, "aria-selected", boolString(i == selected))
		}
	}
	return nil
}
