package traits

import (
	"fmt"
	"math"

	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/errors"
	"github.com/go-drift/relm/pkg/state"
)

// commitThreshold is the swipe fraction beyond which releasing commits.
const commitThreshold = 0.5

// SwipeCommands reveals command containers beside a list item as the user
// swipes it left or right. Releasing past half the item's width commits the
// command on that side.
//
// Left is shown when swiping right (positive fractions), Right when swiping
// left. Either may be nil. A SwipeCommands value belongs to one component.
type SwipeCommands struct {
	Left  *dom.Node
	Right *dom.Node

	// OnSwipeLeft and OnSwipeRight run when a committed swipe finishes its
	// transition.
	OnSwipeLeft  func(c *core.Component, item *dom.Node)
	OnSwipeRight func(c *core.Component, item *dom.Node)

	pointerX float64
	pointing bool
}

func (*SwipeCommands) TraitName() string { return "swipeCommands" }

func (*SwipeCommands) DefaultState() state.ChangeSet {
	return state.ChangeSet{
		FieldSwipeItem:                (*dom.Node)(nil),
		FieldSwipeFraction:            0.0,
		FieldSwiping:                  false,
		FieldSwipeLeftWillCommit:      false,
		FieldSwipeRightWillCommit:     false,
		FieldSwipeLeftFollowsThrough:  false,
		FieldSwipeRightFollowsThrough: false,
		FieldSwipeLeftRemovesItem:     false,
		FieldSwipeRightRemovesItem:    false,
	}
}

func (*SwipeCommands) Reactions() []state.Reaction {
	return []state.Reaction{{
		Name:   "swipe commit",
		Fields: []string{FieldSwipeFraction, FieldSwiping},
		Fn: func(s state.Snapshot, _ state.Changed) state.ChangeSet {
			if !state.Value[bool](s, FieldSwiping) {
				return nil
			}
			f := state.Value[float64](s, FieldSwipeFraction)
			return state.ChangeSet{
				FieldSwipeLeftWillCommit:  f <= -commitThreshold,
				FieldSwipeRightWillCommit: f >= commitThreshold,
			}
		},
	}}
}

func (sc *SwipeCommands) Init(c *core.Component) {
	host := c.Host()
	c.OnDispose(host.AddEventListener(dom.EventPointerDown, func(ev *dom.Event) {
		sc.pointerX = ev.X
		sc.pointing = true
		c.Interact(func() { SwipeStart(c, ev.X, ev.Y) })
	}))
	c.OnDispose(host.AddEventListener(dom.EventPointerMove, func(ev *dom.Event) {
		if !sc.pointing {
			return
		}
		width := 0.0
		if r, err := host.BoundingRect(); err == nil {
			width = r.Width
		}
		if width <= 0 {
			return
		}
		c.Interact(func() { SwipeMove(c, (ev.X-sc.pointerX)/width) })
	}))
	c.OnDispose(host.AddEventListener(dom.EventPointerUp, func(*dom.Event) {
		if !sc.pointing {
			return
		}
		sc.pointing = false
		c.Interact(func() { SwipeEnd(c) })
	}))
}

// Side identifies a command container.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (sc *SwipeCommands) ComponentDidMount(c *core.Component) {
	if sc.Left != nil {
		c.OnDispose(sc.Left.AddEventListener(dom.EventTransitionEnd, func(*dom.Event) {
			sc.TransitionEnd(c, SideLeft)
		}))
	}
	if sc.Right != nil {
		c.OnDispose(sc.Right.AddEventListener(dom.EventTransitionEnd, func(*dom.Event) {
			sc.TransitionEnd(c, SideRight)
		}))
	}
}

// TransitionEnd completes a swipe once the container on side has settled.
// A committed swipe runs the matching callback with the swiped item; the
// swipe is then reset. Hosts without transitions call it directly.
func (sc *SwipeCommands) TransitionEnd(c *core.Component, side Side) {
	// The left container belongs to rightward swipes and vice versa.
	willCommit, complete := FieldSwipeRightWillCommit, sc.OnSwipeRight
	if side == SideRight {
		willCommit, complete = FieldSwipeLeftWillCommit, sc.OnSwipeLeft
	}
	s := c.State()
	item := state.Value[*dom.Node](s, FieldSwipeItem)
	if state.Value[bool](s, willCommit) && complete != nil && item != nil {
		complete(c, item)
	}
	c.RequestUpdate(state.ChangeSet{
		FieldSwipeItem:            (*dom.Node)(nil),
		FieldSwipeLeftWillCommit:  false,
		FieldSwipeRightWillCommit: false,
	})
}

func (sc *SwipeCommands) ComponentDidUpdate(c *core.Component, changed state.Changed) {
	if !changed.Any(FieldSwipeLeftWillCommit, FieldSwipeRightWillCommit) {
		return
	}
	s := c.State()
	if state.Value[bool](s, FieldSwiping) {
		c.DispatchEvent(EventSwipeCommitChanged, state.Value[bool](s, FieldSwipeLeftWillCommit) ||
			state.Value[bool](s, FieldSwipeRightWillCommit))
	}
}

func (sc *SwipeCommands) Render(r *core.RenderContext) error {
	if !r.Dirty(FieldSwipeItem, FieldSwipeFraction, FieldSwiping,
		FieldSwipeLeftWillCommit, FieldSwipeRightWillCommit) {
		return nil
	}
	s := r.State
	item := state.Value[*dom.Node](s, FieldSwipeItem)
	if item == nil {
		sc.resetContainers(r.Patch)
		return nil
	}
	fraction := state.Value[float64](s, FieldSwipeFraction)
	itemRect := rectOrZero(r.Component, item)
	offset := itemRect.Top()
	if parent := item.Parent(); parent != nil {
		offset -= rectOrZero(r.Component, parent).Top()
	}
	top, height := px(offset), px(itemRect.Height)

	if state.Value[bool](s, FieldSwiping) {
		commandWidth := px(math.Min(math.Abs(fraction), 1) * itemRect.Width)
		sc.stageContainer(r.Patch, sc.Right, fraction < 0, commandWidth, height, top, "")
		sc.stageContainer(r.Patch, sc.Left, fraction > 0, commandWidth, height, top, "")
		r.Patch.SetStyles(item, map[string]string{
			"transform":  fmt.Sprintf("translateX(%g%%)", fraction*100),
			"transition": "",
		})
		return nil
	}

	// Released: settle each side either fully open or closed.
	transition := "width 0.25s"
	switch {
	case fraction < 0 && state.Value[bool](s, FieldSwipeLeftWillCommit):
		sc.settle(r, item, sc.Right, s, FieldSwipeLeftFollowsThrough, FieldSwipeLeftRemovesItem,
			-100, itemRect, height, top, transition)
	case fraction > 0 && state.Value[bool](s, FieldSwipeRightWillCommit):
		sc.settle(r, item, sc.Left, s, FieldSwipeRightFollowsThrough, FieldSwipeRightRemovesItem,
			100, itemRect, height, top, transition)
	default:
		sc.stageContainer(r.Patch, sc.Right, false, "0", height, top, transition)
		sc.stageContainer(r.Patch, sc.Left, false, "0", height, top, transition)
		r.Patch.SetStyles(item, map[string]string{
			"transform":  "",
			"transition": "transform 0.25s",
		})
	}
	return nil
}

// settle opens container to the full item width when the command follows
// through, otherwise snaps it closed. Removing commands collapse the item
// and the container.
func (sc *SwipeCommands) settle(r *core.RenderContext, item, container *dom.Node, s state.Snapshot,
	followsField, removesField string, translate float64, itemRect dom.Rect, height, top, transition string) {
	if state.Value[bool](s, followsField) {
		sc.stageContainer(r.Patch, container, true, px(itemRect.Width), height, top, transition)
		r.Patch.SetStyles(item, map[string]string{
			"transform":  fmt.Sprintf("translateX(%g%%)", translate),
			"transition": "transform 0.25s",
		})
	} else {
		sc.stageContainer(r.Patch, container, true, "0", height, top, transition)
		r.Patch.SetStyles(item, map[string]string{
			"transform":  "",
			"transition": "transform 0.25s",
		})
	}
	if state.Value[bool](s, removesField) {
		r.Patch.SetStyle(item, "height", "0")
		if container != nil {
			r.Patch.SetStyle(container, "height", "0")
		}
	}
}

func (sc *SwipeCommands) stageContainer(p *dom.Patch, container *dom.Node, shown bool, width, height, top, transition string) {
	if container == nil {
		return
	}
	if !shown {
		p.SetStyles(container, map[string]string{"width": width, "transition": transition})
		return
	}
	p.SetStyles(container, map[string]string{
		"width":      width,
		"height":     height,
		"top":        top,
		"transition": transition,
	})
}

func (sc *SwipeCommands) resetContainers(p *dom.Patch) {
	for _, container := range []*dom.Node{sc.Left, sc.Right} {
		if container != nil {
			p.SetStyles(container, map[string]string{"width": "0", "transition": ""})
		}
	}
}

// SwipeStart selects the item under y as the swipe target. A point outside
// every item clears the target.
func SwipeStart(c *core.Component, x, y float64) *core.Update {
	return c.RequestUpdate(state.ChangeSet{
		FieldSwipeItem:     ItemAtY(c, y),
		FieldSwipeFraction: 0.0,
		FieldSwiping:       true,
	})
}

// SwipeMove records the current swipe fraction, negative to the left.
func SwipeMove(c *core.Component, fraction float64) *core.Update {
	return c.RequestUpdate(state.ChangeSet{
		FieldSwipeFraction: fraction,
		FieldSwiping:       true,
	})
}

// SwipeEnd releases the swipe. The commit flags keep their values until the
// container's transition finishes.
func SwipeEnd(c *core.Component) *core.Update {
	return c.RequestUpdate(state.ChangeSet{FieldSwiping: false})
}

// ItemAtY returns the item whose box spans client coordinate y, or nil.
// Items without layout are treated as empty boxes.
func ItemAtY(c *core.Component, y float64) *dom.Node {
	for _, item := range Items(c.State()) {
		if rectOrZero(c, item).ContainsY(y) {
			return item
		}
	}
	return nil
}

// rectOrZero returns n's box, reporting a geometry warning and returning a
// zero rect when n has no layout.
func rectOrZero(c *core.Component, n *dom.Node) dom.Rect {
	r, err := n.BoundingRect()
	if err != nil {
		errors.ReportWarning(&errors.ReactiveError{
			Op:        "traits.SwipeCommands",
			Kind:      errors.KindGeometry,
			Component: c.String(),
			Err:       fmt.Errorf("%s: %w", n, err),
		})
		return dom.Rect{}
	}
	return r
}

func px(v float64) string {
	return fmt.Sprintf("%gpx", v)
}
