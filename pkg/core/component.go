package core

import (
	stderrors "errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/errors"
	"github.com/go-drift/relm/pkg/state"
)

// errUpdateDuringRender is reported when state changes while rendering.
var errUpdateDuringRender = stderrors.New("RequestUpdate called during rendering, which should be avoided")

// Options configures a Component.
type Options struct {
	// Name labels the component in diagnostics. Defaults to the host tag.
	Name string
	// Defaults override trait defaults. They are applied after every trait
	// has contributed its fields and may replace any of them.
	Defaults state.ChangeSet
	// Reactions are added after the traits' reaction rules.
	Reactions []state.Reaction
	// MaxPasses bounds reaction passes per update (state.DefaultMaxPasses
	// when zero).
	MaxPasses int
}

// Component binds an ordered trait stack to a host node and renders state
// changes into it.
//
// Component is NOT thread-safe. It must only be used on the goroutine that
// runs its Loop. From other goroutines, use Loop.Post.
type Component struct {
	id     string
	name   string
	host   *dom.Node
	loop   *Loop
	traits []Trait

	state       state.Snapshot
	initialized bool
	changed     state.Changed
	mounted     bool
	rendering   bool

	raiseChangeEvents bool
	raiseInNextRender bool

	disposers []func()
	disposed  bool
}

// New creates a component on host with traits stacked base first.
//
// Defaults are gathered from every DefaultStater in order. A field already
// defined by an earlier trait keeps its value and the conflict is reported
// as a misuse warning; Options.Defaults then override explicitly. The
// resulting defaults become the initial state via RequestUpdate, after which
// every Initializer runs.
func New(host *dom.Node, loop *Loop, opts Options, traits ...Trait) *Component {
	if host == nil {
		panic("core.New: nil host")
	}
	if loop == nil {
		panic("core.New: nil loop")
	}
	name := opts.Name
	if name == "" {
		name = host.Tag
	}
	c := &Component{
		id:     uuid.NewString(),
		name:   name,
		host:   host,
		loop:   loop,
		traits: slices.Clone(traits),
	}

	var reactions []state.Reaction
	for _, t := range c.traits {
		if r, ok := t.(Reactor); ok {
			reactions = append(reactions, r.Reactions()...)
		}
	}
	reactions = append(reactions, opts.Reactions...)
	c.state = state.NewWithOptions(nil, []state.Option{state.WithMaxPasses(opts.MaxPasses)}, reactions...)

	c.RequestUpdate(c.defaultState(opts.Defaults))

	c.OnDispose(host.ObserveLifecycle(c.lifecycle))
	c.OnDispose(host.AddEventListener(dom.EventKeyDown, c.keyDown))
	each(c, "init", func(h Initializer) { h.Init(c) })
	return c
}

func (c *Component) defaultState(overrides state.ChangeSet) state.ChangeSet {
	defaults := state.ChangeSet{}
	owner := map[string]string{}
	for _, t := range c.traits {
		d, ok := t.(DefaultStater)
		if !ok {
			continue
		}
		for field, value := range d.DefaultState() {
			if prev, taken := owner[field]; taken {
				if !state.Equal(defaults[field], value) {
					errors.ReportWarning(&errors.ReactiveError{
						Op:        "core.New",
						Kind:      errors.KindMisuse,
						Component: c.String(),
						Err: fmt.Errorf("trait %q redefines default %q already set by %q; keeping the earlier value",
							t.TraitName(), field, prev),
					})
				}
				continue
			}
			owner[field] = t.TraitName()
			defaults[field] = value
		}
	}
	return defaults.Merge(overrides)
}

// ID returns the unique instance identifier.
func (c *Component) ID() string {
	return c.id
}

// Host returns the node the component renders into.
func (c *Component) Host() *dom.Node {
	return c.host
}

// Loop returns the scheduler the component renders on.
func (c *Component) Loop() *Loop {
	return c.loop
}

// Traits returns the trait stack, base first.
func (c *Component) Traits() []Trait {
	return slices.Clone(c.traits)
}

// State returns the current snapshot. It is immutable; change it with
// RequestUpdate.
func (c *Component) State() state.Snapshot {
	return c.state
}

// Mounted reports whether the first render has completed.
func (c *Component) Mounted() bool {
	return c.mounted
}

// Rendering reports whether a render pass is in progress.
func (c *Component) Rendering() bool {
	return c.rendering
}

// PendingChanges returns a copy of the change-log accumulated since the
// last completed render.
func (c *Component) PendingChanges() state.Changed {
	return c.changed.Clone()
}

// RaiseChangeEvents reports whether state changes currently originate from
// user interaction, in which case change notifications should be raised.
func (c *Component) RaiseChangeEvents() bool {
	return c.raiseChangeEvents
}

// SetRaiseChangeEvents sets the raise-change-events flag.
func (c *Component) SetRaiseChangeEvents(raise bool) {
	c.raiseChangeEvents = raise
}

// Interact runs fn with the raise-change-events flag set, restoring the
// previous value afterwards. Event handlers for user input wrap their state
// changes in Interact.
func (c *Component) Interact(fn func()) {
	saved := c.raiseChangeEvents
	c.raiseChangeEvents = true
	defer func() { c.raiseChangeEvents = saved }()
	fn()
}

// RequestUpdate merges changes into the state and schedules a render.
//
// The first call always counts as a change. Later calls that change nothing
// return an already resolved Update. While the host is disconnected the
// change is recorded but no render is scheduled; attaching the host renders
// it. A reaction rule set that fails to converge rejects the update and the
// returned Update resolves with a *state.CycleError.
func (c *Component) RequestUpdate(changes state.ChangeSet) *Update {
	if c.rendering {
		errors.ReportWarning(&errors.ReactiveError{
			Op:        "core.Component.RequestUpdate",
			Kind:      errors.KindMisuse,
			Component: c.String(),
			Err:       errUpdateDuringRender,
		})
	}

	first := !c.initialized
	next, changed, err := c.state.CopyWithChanges(changes)
	if err != nil {
		errors.Report(&errors.ReactiveError{
			Op:        "core.Component.RequestUpdate",
			Kind:      errors.KindReaction,
			Component: c.String(),
			Err:       err,
		})
		return resolvedUpdate(err)
	}
	c.initialized = true
	if !first && changed.Empty() {
		return resolvedUpdate(nil)
	}

	c.state = next
	c.changed = c.changed.Merge(changed)
	if c.changed == nil {
		c.changed = state.Changed{}
	}

	if !c.host.IsConnected() {
		return resolvedUpdate(nil)
	}
	if c.raiseChangeEvents {
		c.raiseInNextRender = true
	}

	u := newUpdate()
	c.loop.Enqueue(func() {
		u.resolve(c.Render())
	})
	return u
}

// Render applies pending changes to the host.
//
// Render is a no-op once mounted when nothing changed since the last
// render. Otherwise renderers run base first against one Patch, which is
// committed only if all of them succeed. The rendered fields leave the
// change-log and the mount hooks (first render) or update hooks run.
// Fields changed by updates requested during the render stay in the log
// for the render those updates scheduled.
//
// When a renderer fails, the patch is discarded, the change-log is kept for
// the next attempt and the error is reported and returned.
func (c *Component) Render() error {
	if c.mounted && c.changed.Empty() {
		return nil
	}

	// Take the log; updates requested while rendering start a fresh one.
	changed := c.changed
	if changed == nil {
		changed = state.Changed{}
	}
	c.changed = nil

	savedRaise := c.raiseChangeEvents
	c.raiseChangeEvents = c.raiseInNextRender

	patch := &dom.Patch{}
	ctx := &RenderContext{
		Component: c,
		Host:      c.host,
		State:     c.state,
		Changed:   changed,
		Patch:     patch,
		Mounting:  !c.mounted,
	}
	c.rendering = true
	err := renderChain(ctx, c.traits)
	c.rendering = false

	if err != nil {
		patch.Discard()
		c.changed = changed.Merge(c.changed)
		c.raiseChangeEvents = savedRaise
		errors.Report(&errors.ReactiveError{
			Op:        "core.Component.Render",
			Kind:      errors.KindRender,
			Component: c.String(),
			Err:       err,
		})
		return err
	}

	patch.Commit()

	if !c.mounted {
		c.mounted = true
		each(c, "mount", func(h Mounter) { h.ComponentDidMount(c) })
	} else {
		each(c, "update", func(h Updater) { h.ComponentDidUpdate(c, changed) })
	}

	c.raiseChangeEvents = savedRaise
	c.raiseInNextRender = savedRaise
	return nil
}

func (c *Component) lifecycle(connected bool) {
	if connected {
		each(c, "connected", func(h Connector) { h.Connected(c) })
		// A no-op if a render already ran and nothing changed since.
		_ = c.Render()
		return
	}
	each(c, "disconnected", func(h Connector) { h.Disconnected(c) })
}

// keyDown offers the key to KeyHandlers from the top of the stack down.
func (c *Component) keyDown(ev *dom.Event) {
	c.Interact(func() {
		for _, t := range slices.Backward(c.traits) {
			h, ok := t.(KeyHandler)
			if !ok {
				continue
			}
			handled := false
			callHook(c, t, "keydown", func() { handled = h.KeyDown(c, ev) })
			if handled {
				ev.PreventDefault()
				return
			}
		}
	})
}

// BeforeEffect notifies every EffectHooks trait, base first, that effect is
// about to start.
func (c *Component) BeforeEffect(effect Effect) {
	each(c, "beforeEffect", func(h EffectHooks) { h.BeforeEffect(c, effect) })
}

// AfterEffect notifies every EffectHooks trait, base first, that effect has
// finished.
func (c *Component) AfterEffect(effect Effect) {
	each(c, "afterEffect", func(h EffectHooks) { h.AfterEffect(c, effect) })
}

// DispatchEvent raises a named event on the host with detail attached.
func (c *Component) DispatchEvent(eventType string, detail any) {
	c.host.DispatchEvent(&dom.Event{Type: eventType, Detail: detail})
}

// OnDispose registers a cleanup function to be called by Dispose.
// Returns an unregister function.
func (c *Component) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}
	if c.disposed {
		cleanup()
		return func() {}
	}
	index := len(c.disposers)
	c.disposers = append(c.disposers, cleanup)
	return func() {
		if index < len(c.disposers) {
			c.disposers[index] = nil
		}
	}
}

// Dispose detaches the component from its host's events and lifecycle.
// Disposers run in reverse order of registration. State is left intact.
func (c *Component) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for i := len(c.disposers) - 1; i >= 0; i-- {
		if c.disposers[i] != nil {
			c.disposers[i]()
		}
	}
	c.disposers = nil
}

func (c *Component) String() string {
	return fmt.Sprintf("%s#%s", c.name, c.id[:8])
}
