// Package core provides the reactive component and its trait composition.
//
// A Component owns one immutable state snapshot, a change-log of fields
// modified since the last render, and a mounted flag. State changes go
// through RequestUpdate, which merges the change-set, records the changed
// fields and schedules a render on the Loop's microtask queue. Any further
// updates made before the loop runs extend the same change-log, so one
// render observes all of them.
//
// # Traits
//
// Behavior is layered onto a component as an ordered list of traits. A
// trait implements Trait plus whichever optional hook interfaces it needs:
//
//	type counter struct{}
//
//	func (counter) TraitName() string { return "counter" }
//
//	func (counter) DefaultState() state.ChangeSet {
//	    return state.ChangeSet{"count": 0}
//	}
//
//	func (counter) Render(r *core.RenderContext) error {
//	    if r.Changed.Has("count") {
//	        r.Patch.SetTextContent(r.Host, strconv.Itoa(state.Value[int](r.State, "count")))
//	    }
//	    return nil
//	}
//
// Hooks run in list order, base trait first. A trait that lacks a hook is
// skipped, so traits compose in any subset. Key handling is the exception:
// it runs last trait first and stops at the first trait that handles the
// key, which lets a derived trait override a base binding.
//
// # Scheduling
//
// Loop is single-threaded. Enqueue and Flush run on the UI goroutine; Post
// is the only entry point safe to call from other goroutines:
//
//	go func() {
//	    items := fetch()
//	    loop.Post(func() {
//	        list.RequestUpdate(state.ChangeSet{"items": items})
//	    })
//	}()
package core
