package traits

import (
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/state"
)

// EffectPhase is the stage of a visual effect.
type EffectPhase string

const (
	PhaseBefore EffectPhase = "before"
	PhaseDuring EffectPhase = "during"
	PhaseAfter  EffectPhase = "after"
)

// Effects turns changes of the opened field into opening and closing
// effects, each with before, during and after phases.
//
// When the phase becomes "before", every core.EffectHooks trait gets
// BeforeEffect. With effects enabled the phase then moves to "during" and
// waits for a transitionend event on the host; otherwise it moves straight
// to "after". Reaching "after" calls AfterEffect.
type Effects struct {
	// Disabled sets the initial enableEffects value to false.
	Disabled bool
}

func (Effects) TraitName() string { return "effects" }

func (e Effects) DefaultState() state.ChangeSet {
	return state.ChangeSet{
		FieldEffect:        core.EffectClosing,
		FieldEffectPhase:   PhaseAfter,
		FieldEnableEffects: !e.Disabled,
	}
}

func (Effects) Reactions() []state.Reaction {
	return []state.Reaction{{
		Name:   "effect from opened",
		Fields: []string{FieldOpened},
		Fn: func(s state.Snapshot, _ state.Changed) state.ChangeSet {
			effect := core.EffectClosing
			if state.Value[bool](s, FieldOpened) {
				effect = core.EffectOpening
			}
			if state.Value[core.Effect](s, FieldEffect) == effect {
				return nil
			}
			return state.ChangeSet{FieldEffect: effect, FieldEffectPhase: PhaseBefore}
		},
	}}
}

func (Effects) Init(c *core.Component) {
	c.OnDispose(c.Host().AddEventListener(dom.EventTransitionEnd, func(ev *dom.Event) {
		if ev.Target != c.Host() {
			return
		}
		if state.Value[EffectPhase](c.State(), FieldEffectPhase) == PhaseDuring {
			c.RequestUpdate(state.ChangeSet{FieldEffectPhase: PhaseAfter})
		}
	}))
}

func (Effects) Render(r *core.RenderContext) error {
	if r.Dirty(FieldEffect, FieldEffectPhase) {
		r.Patch.SetAttribute(r.Host, "data-effect", string(state.Value[core.Effect](r.State, FieldEffect)))
		r.Patch.SetAttribute(r.Host, "data-effect-phase", string(state.Value[EffectPhase](r.State, FieldEffectPhase)))
	}
	return nil
}

// ComponentDidMount starts an effect requested before the first render. The
// resting "after" phase of the defaults is not replayed.
func (e Effects) ComponentDidMount(c *core.Component) {
	if _, phase := CurrentEffect(c); phase == PhaseBefore {
		e.advance(c)
	}
}

func (e Effects) ComponentDidUpdate(c *core.Component, changed state.Changed) {
	if changed.Any(FieldEffect, FieldEffectPhase) {
		e.advance(c)
	}
}

func (Effects) advance(c *core.Component) {
	s := c.State()
	effect := state.Value[core.Effect](s, FieldEffect)
	switch state.Value[EffectPhase](s, FieldEffectPhase) {
	case PhaseBefore:
		c.BeforeEffect(effect)
		next := PhaseAfter
		if state.Value[bool](s, FieldEnableEffects) {
			next = PhaseDuring
		}
		c.RequestUpdate(state.ChangeSet{FieldEffectPhase: next})
	case PhaseAfter:
		c.AfterEffect(effect)
	}
}

// CurrentEffect returns the effect and phase recorded in c's state.
func CurrentEffect(c *core.Component) (core.Effect, EffectPhase) {
	s := c.State()
	return state.Value[core.Effect](s, FieldEffect), state.Value[EffectPhase](s, FieldEffectPhase)
}
