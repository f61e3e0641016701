package core

import (
	"fmt"

	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/errors"
	"github.com/go-drift/relm/pkg/state"
)

// Trait is a unit of behavior layered onto a Component. Traits implement
// any subset of the hook interfaces below.
type Trait interface {
	TraitName() string
}

// DefaultStater contributes default state fields.
type DefaultStater interface {
	Trait
	DefaultState() state.ChangeSet
}

// Reactor contributes reaction rules.
type Reactor interface {
	Trait
	Reactions() []state.Reaction
}

// Initializer runs once, after the component's initial state is assigned.
// Traits register host event listeners here.
type Initializer interface {
	Trait
	Init(c *Component)
}

// Renderer stages host updates for the fields in r.Changed.
type Renderer interface {
	Trait
	Render(r *RenderContext) error
}

// Mounter runs after the first completed render.
type Mounter interface {
	Trait
	ComponentDidMount(c *Component)
}

// Updater runs after every completed render except the first.
type Updater interface {
	Trait
	ComponentDidUpdate(c *Component, changed state.Changed)
}

// Connector observes attachment of the host to its document.
type Connector interface {
	Trait
	Connected(c *Component)
	Disconnected(c *Component)
}

// KeyHandler handles key presses on the host. It returns true when the key
// was handled.
type KeyHandler interface {
	Trait
	KeyDown(c *Component, ev *dom.Event) bool
}

// Effect names a visual effect with before and after moments.
type Effect string

const (
	EffectOpening Effect = "opening"
	EffectClosing Effect = "closing"
)

// EffectHooks observes the moments around a visual effect.
type EffectHooks interface {
	Trait
	BeforeEffect(c *Component, effect Effect)
	AfterEffect(c *Component, effect Effect)
}

// RenderContext is passed to every Renderer during one render pass.
type RenderContext struct {
	Component *Component
	Host      *dom.Node
	// State is the fully merged snapshot being rendered.
	State state.Snapshot
	// Changed lists the fields that differ from the last rendered snapshot.
	// On the first render it may be empty; renderers check Mounting instead.
	Changed state.Changed
	// Patch receives host mutations. It is committed only if every
	// renderer succeeds.
	Patch *dom.Patch
	// Mounting is true during the component's first render.
	Mounting bool
}

// Dirty reports whether any of fields should be rendered: true on the first
// render, otherwise when one of fields changed.
func (r *RenderContext) Dirty(fields ...string) bool {
	return r.Mounting || r.Changed.Any(fields...)
}

// Lookup returns the first trait of c implementing T.
func Lookup[T any](c *Component) (T, bool) {
	for _, t := range c.traits {
		if v, ok := t.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// LookupAll returns every trait of c implementing T, in stack order.
func LookupAll[T any](c *Component) []T {
	var out []T
	for _, t := range c.traits {
		if v, ok := t.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// each calls fn for every trait implementing T, base first. A panicking
// hook is reported and does not stop the remaining traits.
func each[T Trait](c *Component, hook string, fn func(T)) {
	for _, t := range c.traits {
		if h, ok := t.(T); ok {
			callHook(c, t, hook, func() { fn(h) })
		}
	}
}

func callHook(c *Component, t Trait, hook string, fn func()) {
	defer errors.Recover(fmt.Sprintf("%s %s.%s", c, t.TraitName(), hook))
	fn()
}

// renderChain runs every Renderer base first and converts a failure or
// panic into a HookError.
func renderChain(r *RenderContext, traits []Trait) error {
	for _, t := range traits {
		h, ok := t.(Renderer)
		if !ok {
			continue
		}
		if err := renderOne(r, h); err != nil {
			return err
		}
	}
	return nil
}

func renderOne(r *RenderContext, h Renderer) (err error) {
	defer errors.CatchHook(h.TraitName(), "render", &err)
	if err := h.Render(r); err != nil {
		return &errors.HookError{Trait: h.TraitName(), Hook: "render", Err: err}
	}
	return nil
}
