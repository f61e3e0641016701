package dom

import "slices"

// Common event types.
const (
	EventFocus         = "focus"
	EventBlur          = "blur"
	EventKeyDown       = "keydown"
	EventPointerDown   = "pointerdown"
	EventPointerMove   = "pointermove"
	EventPointerUp     = "pointerup"
	EventTransitionEnd = "transitionend"
)

// Event is dispatched to listeners on a node.
type Event struct {
	Type string
	// Target is the node the event was dispatched on. Set by DispatchEvent.
	Target *Node
	// Related is the other party of a focus change.
	Related *Node
	// Bubbles lets the event continue to ancestors after the target.
	Bubbles bool
	// Key names the key for keyboard events ("ArrowDown", "Home", "a", ...).
	Key string
	// X and Y are client coordinates for pointer events.
	X, Y float64
	// Detail carries event-specific data.
	Detail any

	stopped bool
	handled bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.handled = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.handled
}

type listener struct {
	fn func(*Event)
}

// AddEventListener registers fn for events of the given type. The returned
// function removes the listener.
func (n *Node) AddEventListener(eventType string, fn func(*Event)) func() {
	if fn == nil {
		return func() {}
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[eventType] = append(n.listeners[eventType], l)
	return func() {
		list := n.listeners[eventType]
		if i := slices.Index(list, l); i >= 0 {
			n.listeners[eventType] = slices.Delete(list, i, i+1)
		}
	}
}

// DispatchEvent delivers ev to n's listeners and, when ev.Bubbles is set, to
// each ancestor in turn. It returns false if a listener prevented the
// default action.
func (n *Node) DispatchEvent(ev *Event) bool {
	ev.Target = n
	for cur := n; cur != nil; cur = cur.parent {
		for _, l := range slices.Clone(cur.listeners[ev.Type]) {
			l.fn(ev)
		}
		if !ev.Bubbles || ev.stopped {
			break
		}
	}
	return !ev.handled
}
