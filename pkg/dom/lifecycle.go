package dom

import "slices"

type lifecycleObserver struct {
	fn func(connected bool)
}

// ObserveLifecycle registers fn to run whenever n becomes connected to or
// disconnected from its document. The returned function unregisters it.
func (n *Node) ObserveLifecycle(fn func(connected bool)) func() {
	if fn == nil {
		return func() {}
	}
	o := &lifecycleObserver{fn: fn}
	n.observers = append(n.observers, o)
	return func() {
		if i := slices.Index(n.observers, o); i >= 0 {
			n.observers = slices.Delete(n.observers, i, i+1)
		}
	}
}

// notify walks the subtree of n in document order. Focus held inside a
// disconnected subtree is dropped.
func (n *Node) notify(connected bool) {
	if !connected && n.doc != nil && n.doc.active != nil && n.Contains(n.doc.active) {
		lost := n.doc.active
		n.doc.active = nil
		lost.DispatchEvent(&Event{Type: EventBlur})
	}
	n.Walk(func(c *Node) bool {
		for _, o := range slices.Clone(c.observers) {
			o.fn(connected)
		}
		return true
	})
}
