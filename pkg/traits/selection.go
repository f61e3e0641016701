package traits

import (
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/state"
)

// Direction names a navigation step.
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrevious
	DirectionFirst
	DirectionLast
)

func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrevious:
		return "previous"
	case DirectionFirst:
		return "first"
	case DirectionLast:
		return "last"
	default:
		return "unknown"
	}
}

// Navigator moves a selection. KeyboardDirection looks for it.
type Navigator interface {
	Navigate(c *core.Component, d Direction) bool
}

// SingleSelection tracks one selected item among the "items" field.
//
// The selected index is kept within [-1, len(items)-1]. With
// selectionRequired set and at least one item, -1 becomes 0.
type SingleSelection struct{}

// SelectedClass marks the selected item.
const SelectedClass = "selected"

func (*SingleSelection) TraitName() string { return "singleSelection" }

func (*SingleSelection) DefaultState() state.ChangeSet {
	return state.ChangeSet{
		FieldItems:             []*dom.Node(nil),
		FieldSelectedIndex:     -1,
		FieldSelectionRequired: false,
		FieldSelectionWraps:    false,
	}
}

func (*SingleSelection) Reactions() []state.Reaction {
	return []state.Reaction{{
		Name:   "clamp selected index",
		Fields: []string{FieldItems, FieldSelectedIndex, FieldSelectionRequired},
		Fn: func(s state.Snapshot, _ state.Changed) state.ChangeSet {
			index := state.Value[int](s, FieldSelectedIndex)
			bounded := clampIndex(index, len(Items(s)), state.Value[bool](s, FieldSelectionRequired))
			if bounded == index {
				return nil
			}
			return state.ChangeSet{FieldSelectedIndex: bounded}
		},
	}}
}

func clampIndex(index, count int, required bool) int {
	bounded := max(min(index, count-1), -1)
	if required && count > 0 {
		bounded = max(bounded, 0)
	}
	return bounded
}

func (*SingleSelection) Render(r *core.RenderContext) error {
	if !r.Dirty(FieldItems, FieldSelectedIndex) {
		return nil
	}
	selected := state.Value[int](r.State, FieldSelectedIndex)
	for i, item := range Items(r.State) {
		r.Patch.SetClass(item, SelectedClass, i == selected)
	}
	return nil
}

func (*SingleSelection) ComponentDidUpdate(c *core.Component, changed state.Changed) {
	if changed.Has(FieldSelectedIndex) && c.RaiseChangeEvents() {
		c.DispatchEvent(EventSelectedIndexChanged, SelectedIndex(c))
	}
}

// Navigate moves the selection in direction d. It returns false when the
// selection did not move.
func (s *SingleSelection) Navigate(c *core.Component, d Direction) bool {
	count := len(Items(c.State()))
	if count == 0 {
		return false
	}
	current := SelectedIndex(c)
	wraps := state.Value[bool](c.State(), FieldSelectionWraps)
	next := current
	switch d {
	case DirectionFirst:
		next = 0
	case DirectionLast:
		next = count - 1
	case DirectionNext:
		switch {
		case current < count-1:
			next = current + 1
		case wraps:
			next = 0
		}
	case DirectionPrevious:
		switch {
		case current < 0:
			next = count - 1
		case current > 0:
			next = current - 1
		case wraps:
			next = count - 1
		}
	}
	if next == current {
		return false
	}
	SelectIndex(c, next)
	return true
}

// Items returns the "items" field of s.
func Items(s state.Snapshot) []*dom.Node {
	return state.Value[[]*dom.Node](s, FieldItems)
}

// SetItems replaces c's items.
func SetItems(c *core.Component, items []*dom.Node) *core.Update {
	return c.RequestUpdate(state.ChangeSet{FieldItems: items})
}

// SelectedIndex returns c's selected index, -1 for none.
func SelectedIndex(c *core.Component) int {
	idx, ok := state.Lookup[int](c.State(), FieldSelectedIndex)
	if !ok {
		return -1
	}
	return idx
}

// SelectedItem returns c's selected item, or nil.
func SelectedItem(c *core.Component) *dom.Node {
	items := Items(c.State())
	idx := SelectedIndex(c)
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return items[idx]
}

// SelectIndex requests index as the selection. Out-of-range values are
// clamped.
func SelectIndex(c *core.Component, index int) *core.Update {
	return c.RequestUpdate(state.ChangeSet{FieldSelectedIndex: index})
}
