package core

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/errors"
	"github.com/go-drift/relm/pkg/state"
)

// recorder is a configurable trait that logs its hook calls.
type recorder struct {
	name      string
	log       *[]string
	defaults  state.ChangeSet
	reactions []state.Reaction
	render    func(r *RenderContext) error
	renders   []state.Changed
	updates   []state.Changed
	mounts    int
}

func (t *recorder) TraitName() string { return t.name }

func (t *recorder) DefaultState() state.ChangeSet { return t.defaults }

func (t *recorder) Reactions() []state.Reaction { return t.reactions }

func (t *recorder) Render(r *RenderContext) error {
	t.renders = append(t.renders, r.Changed.Clone())
	t.append("render")
	if t.render != nil {
		return t.render(r)
	}
	return nil
}

func (t *recorder) ComponentDidMount(c *Component) {
	t.mounts++
	t.append("mount")
}

func (t *recorder) ComponentDidUpdate(c *Component, changed state.Changed) {
	t.updates = append(t.updates, changed)
	t.append("update")
}

func (t *recorder) append(event string) {
	if t.log != nil {
		*t.log = append(*t.log, t.name+"."+event)
	}
}

// bare implements only Trait.
type bare struct{}

func (bare) TraitName() string { return "bare" }

// testHandler captures reported errors.
type testHandler struct {
	errors.LogHandler
	errs     []*errors.ReactiveError
	warnings []*errors.ReactiveError
	panics   []*errors.PanicError
}

func (h *testHandler) HandleError(err *errors.ReactiveError)   { h.errs = append(h.errs, err) }
func (h *testHandler) HandleWarning(err *errors.ReactiveError) { h.warnings = append(h.warnings, err) }
func (h *testHandler) HandlePanic(err *errors.PanicError)      { h.panics = append(h.panics, err) }

func captureErrors(t *testing.T) *testHandler {
	t.Helper()
	h := &testHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

// attached creates a component whose host is already in a document.
func attached(t *testing.T, opts Options, traits ...Trait) (*Component, *Loop) {
	t.Helper()
	doc := dom.NewDocument()
	host := doc.CreateElement("test-element")
	doc.Body().AppendChild(host)
	loop := NewLoop()
	c := New(host, loop, opts, traits...)
	loop.Flush()
	return c, loop
}

func TestRequestUpdate_ReactionDerivesField(t *testing.T) {
	tr := &recorder{
		name:     "counter",
		defaults: state.ChangeSet{"count": 0},
		reactions: []state.Reaction{state.OnChange([]string{"count"}, func(s state.Snapshot, _ state.Changed) state.ChangeSet {
			return state.ChangeSet{"doubled": state.Value[int](s, "count") * 2}
		})},
	}
	c, loop := attached(t, Options{}, tr)

	u := c.RequestUpdate(state.ChangeSet{"count": 3})
	if err := loop.Await(u); err != nil {
		t.Fatalf("Await: %v", err)
	}

	if got := state.Value[int](c.State(), "count"); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
	if got := state.Value[int](c.State(), "doubled"); got != 6 {
		t.Errorf("doubled = %d, want 6", got)
	}
	last := tr.renders[len(tr.renders)-1]
	want := state.Changed{"count": true, "doubled": true}
	if !reflect.DeepEqual(last, want) {
		t.Errorf("render changed = %v, want %v", last, want)
	}
}

func TestRequestUpdate_CoalescesSynchronousUpdates(t *testing.T) {
	tr := &recorder{name: "r", defaults: state.ChangeSet{"a": 0, "b": 0}}
	c, loop := attached(t, Options{}, tr)
	before := len(tr.renders)

	u1 := c.RequestUpdate(state.ChangeSet{"a": 1})
	u2 := c.RequestUpdate(state.ChangeSet{"b": 2})
	if u1.Resolved() || u2.Resolved() {
		t.Fatal("updates resolved before the loop yielded")
	}
	loop.Flush()

	if got := len(tr.renders) - before; got != 1 {
		t.Fatalf("renders = %d, want 1", got)
	}
	want := state.Changed{"a": true, "b": true}
	if got := tr.renders[len(tr.renders)-1]; !reflect.DeepEqual(got, want) {
		t.Errorf("changed = %v, want %v", got, want)
	}
	if !u1.Resolved() || !u2.Resolved() {
		t.Error("both updates should resolve after the render")
	}
	if len(tr.updates) != 1 {
		t.Errorf("update hooks = %d, want 1", len(tr.updates))
	}
}

func TestRequestUpdate_LaterValueWins(t *testing.T) {
	var seen []int
	tr := &recorder{name: "r", defaults: state.ChangeSet{"a": 0}}
	tr.render = func(r *RenderContext) error {
		seen = append(seen, state.Value[int](r.State, "a"))
		return nil
	}
	c, loop := attached(t, Options{}, tr)
	c.RequestUpdate(state.ChangeSet{"a": 1})
	c.RequestUpdate(state.ChangeSet{"a": 2})
	loop.Flush()
	if got := seen[len(seen)-1]; got != 2 {
		t.Errorf("rendered a = %d, want 2", got)
	}
	if len(seen) != 2 {
		t.Errorf("renders = %d, want mount plus one", len(seen))
	}
}

func TestRequestUpdate_NoChangeSkipsRender(t *testing.T) {
	tr := &recorder{name: "r", defaults: state.ChangeSet{"a": 1}}
	c, loop := attached(t, Options{}, tr)
	before := len(tr.renders)

	u := c.RequestUpdate(state.ChangeSet{"a": 1})
	if !u.Resolved() {
		t.Error("no-op update should resolve immediately")
	}
	if loop.Pending() != 0 {
		t.Error("no-op update should not schedule a render")
	}
	loop.Flush()
	if len(tr.renders) != before {
		t.Error("no-op update rendered")
	}
}

func TestRender_Idempotent(t *testing.T) {
	tr := &recorder{name: "r", defaults: state.ChangeSet{"a": 1}}
	c, _ := attached(t, Options{}, tr)
	renders, mounts, updates := len(tr.renders), tr.mounts, len(tr.updates)

	if err := c.Render(); err != nil {
		t.Fatal(err)
	}
	if err := c.Render(); err != nil {
		t.Fatal(err)
	}
	if len(tr.renders) != renders || tr.mounts != mounts || len(tr.updates) != updates {
		t.Error("Render with an empty change-log did work")
	}
}

func TestMount_ExactlyOnceBeforeUpdates(t *testing.T) {
	var log []string
	tr := &recorder{name: "r", log: &log, defaults: state.ChangeSet{"n": 0}}

	doc := dom.NewDocument()
	host := doc.CreateElement("test-element")
	loop := NewLoop()
	c := New(host, loop, Options{}, tr)

	for i := 1; i <= 5; i++ {
		u := c.RequestUpdate(state.ChangeSet{"n": i})
		if !u.Resolved() {
			t.Fatal("updates on a detached host should resolve immediately")
		}
	}
	loop.Flush()
	if len(log) != 0 {
		t.Fatalf("detached component rendered: %v", log)
	}
	if !c.PendingChanges().Has("n") {
		t.Error("detached updates should accumulate in the change-log")
	}

	doc.Body().AppendChild(host)
	c.RequestUpdate(state.ChangeSet{"n": 6})
	loop.Flush()
	host.Remove()
	doc.Body().AppendChild(host)
	loop.Flush()

	want := []string{"r.render", "r.mount", "r.render", "r.update"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
	if tr.mounts != 1 {
		t.Errorf("mounts = %d, want 1", tr.mounts)
	}
}

func TestRender_ChainRunsBaseFirst(t *testing.T) {
	var log []string
	base := &recorder{name: "base", log: &log, defaults: state.ChangeSet{"x": 0}}
	middle := bare{}
	derived := &recorder{name: "derived", log: &log}
	c, loop := attached(t, Options{}, base, middle, derived)

	log = nil
	c.RequestUpdate(state.ChangeSet{"x": 1})
	loop.Flush()
	want := []string{"base.render", "derived.render", "base.update", "derived.update"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestRequestUpdate_DuringRenderWarns(t *testing.T) {
	h := captureErrors(t)
	var c *Component
	tr := &recorder{name: "r", defaults: state.ChangeSet{"a": 0}}
	tr.render = func(r *RenderContext) error {
		if r.Changed.Has("a") && state.Value[int](r.State, "a") == 1 {
			c.RequestUpdate(state.ChangeSet{"b": true})
		}
		return nil
	}
	c, loop := attached(t, Options{}, tr)
	c.RequestUpdate(state.ChangeSet{"a": 1})
	loop.Flush()

	if len(h.warnings) != 1 || h.warnings[0].Kind != errors.KindMisuse {
		t.Fatalf("warnings = %v, want one misuse warning", h.warnings)
	}
	if !state.Value[bool](c.State(), "b") {
		t.Error("update during render should still apply")
	}
	if c.PendingChanges().Has("b") {
		t.Error("the nested update should have rendered in a later pass")
	}
}

func TestRender_FailureKeepsChangeLog(t *testing.T) {
	h := captureErrors(t)
	fail := true
	var log []string
	tr := &recorder{name: "r", log: &log, defaults: state.ChangeSet{"a": 0}}
	tr.render = func(r *RenderContext) error {
		r.Patch.SetClass(r.Host, "rendered", true)
		if fail {
			return stderrors.New("boom")
		}
		return nil
	}

	c, _ := attached(t, Options{}, tr)
	if c.Mounted() {
		t.Fatal("failed first render should not mount")
	}
	if c.Host().HasClass("rendered") {
		t.Error("failed render left a partial update on the host")
	}
	if len(h.errs) != 1 || h.errs[0].Kind != errors.KindRender {
		t.Fatalf("errors = %v, want one render error", h.errs)
	}
	var hookErr *errors.HookError
	if !stderrors.As(h.errs[0], &hookErr) || hookErr.Trait != "r" {
		t.Errorf("error %v should wrap a HookError for trait r", h.errs[0])
	}
	if !c.PendingChanges().Has("a") {
		t.Error("change-log should survive a failed render")
	}

	fail = false
	if err := c.Render(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !c.Mounted() || !c.Host().HasClass("rendered") {
		t.Error("retry should mount and commit")
	}
	if got := tr.renders[len(tr.renders)-1]; !got.Has("a") {
		t.Errorf("retry saw changed = %v, want a", got)
	}
	if log[len(log)-1] != "r.mount" {
		t.Errorf("log = %v, want mount last", log)
	}
}

func TestRender_PanicBecomesError(t *testing.T) {
	h := captureErrors(t)
	tr := &recorder{name: "r", defaults: state.ChangeSet{"a": 0}}
	c, loop := attached(t, Options{}, tr)
	tr.render = func(*RenderContext) error { panic("bad render") }

	u := c.RequestUpdate(state.ChangeSet{"a": 1})
	err := loop.Await(u)
	var hookErr *errors.HookError
	if !stderrors.As(err, &hookErr) || hookErr.Recovered != "bad render" {
		t.Fatalf("err = %v, want HookError with recovered panic", err)
	}
	if len(h.errs) != 1 {
		t.Errorf("reported errors = %d, want 1", len(h.errs))
	}
}

func TestRequestUpdate_CycleRejected(t *testing.T) {
	h := captureErrors(t)
	tr := &recorder{
		name:     "r",
		defaults: state.ChangeSet{"n": 0},
		reactions: []state.Reaction{state.OnChange([]string{"n"}, func(s state.Snapshot, _ state.Changed) state.ChangeSet {
			if state.Value[int](s, "n") == 0 {
				return nil
			}
			return state.ChangeSet{"n": state.Value[int](s, "n") + 1}
		})},
	}
	c, loop := attached(t, Options{MaxPasses: 5}, tr)

	u := c.RequestUpdate(state.ChangeSet{"n": 1})
	var cycle *state.CycleError
	if !stderrors.As(u.Err(), &cycle) {
		t.Fatalf("Err = %v, want *state.CycleError", u.Err())
	}
	if got := state.Value[int](c.State(), "n"); got != 0 {
		t.Errorf("n = %d, want unchanged 0", got)
	}
	if loop.Pending() != 0 {
		t.Error("rejected update scheduled a render")
	}
	if len(h.errs) != 1 || h.errs[0].Kind != errors.KindReaction {
		t.Errorf("errors = %v, want one reaction error", h.errs)
	}
}

func TestDefaults_ConflictKeepsEarlierValue(t *testing.T) {
	h := captureErrors(t)
	first := &recorder{name: "first", defaults: state.ChangeSet{"shared": 1, "a": true}}
	second := &recorder{name: "second", defaults: state.ChangeSet{"shared": 2, "b": true}}
	c, _ := attached(t, Options{}, first, second)

	if got := state.Value[int](c.State(), "shared"); got != 1 {
		t.Errorf("shared = %d, want 1", got)
	}
	if !state.Value[bool](c.State(), "a") || !state.Value[bool](c.State(), "b") {
		t.Error("new keys from both traits should be present")
	}
	if len(h.warnings) != 1 {
		t.Errorf("warnings = %d, want 1", len(h.warnings))
	}
}

func TestDefaults_OptionsOverride(t *testing.T) {
	captureErrors(t)
	tr := &recorder{name: "r", defaults: state.ChangeSet{"selectionRequired": false}}
	c, _ := attached(t, Options{Defaults: state.ChangeSet{"selectionRequired": true}}, tr)
	if !state.Value[bool](c.State(), "selectionRequired") {
		t.Error("Options.Defaults should override trait defaults")
	}
}

func TestTraitsWithoutHooksCompose(t *testing.T) {
	c, loop := attached(t, Options{}, bare{}, bare{})
	if !c.Mounted() {
		t.Fatal("component without hooks should still mount")
	}
	u := c.RequestUpdate(state.ChangeSet{"x": 1})
	if err := loop.Await(u); err != nil {
		t.Fatal(err)
	}
	c.BeforeEffect(EffectOpening)
	c.AfterEffect(EffectOpening)
}

type keyTrait struct {
	name    string
	handles string
	log     *[]string
}

func (k keyTrait) TraitName() string { return k.name }

func (k keyTrait) KeyDown(c *Component, ev *dom.Event) bool {
	*k.log = append(*k.log, k.name)
	if !c.RaiseChangeEvents() {
		*k.log = append(*k.log, "not interactive")
	}
	return ev.Key == k.handles
}

func TestKeyDown_DerivedFirstUntilHandled(t *testing.T) {
	var log []string
	c, _ := attached(t, Options{},
		keyTrait{name: "base", handles: "ArrowDown", log: &log},
		keyTrait{name: "derived", handles: "Enter", log: &log},
	)

	ev := &dom.Event{Type: dom.EventKeyDown, Key: "ArrowDown"}
	c.Host().DispatchEvent(ev)
	if !reflect.DeepEqual(log, []string{"derived", "base"}) {
		t.Errorf("log = %v", log)
	}
	if !ev.DefaultPrevented() {
		t.Error("handled key should prevent default")
	}

	log = nil
	c.Host().DispatchEvent(&dom.Event{Type: dom.EventKeyDown, Key: "Enter"})
	if !reflect.DeepEqual(log, []string{"derived"}) {
		t.Errorf("log = %v, want derived only", log)
	}
	if c.RaiseChangeEvents() {
		t.Error("raise-change-events should be restored after key handling")
	}
}

func TestRaiseChangeEvents_CarriedIntoRender(t *testing.T) {
	var during []bool
	tr := &recorder{name: "r", defaults: state.ChangeSet{"a": 0}}
	var c *Component
	tr.render = func(*RenderContext) error {
		during = append(during, c.RaiseChangeEvents())
		return nil
	}
	c, loop := attached(t, Options{}, tr)

	c.Interact(func() { c.RequestUpdate(state.ChangeSet{"a": 1}) })
	loop.Flush()
	c.RequestUpdate(state.ChangeSet{"a": 2})
	loop.Flush()

	want := []bool{false, true, false}
	if !reflect.DeepEqual(during, want) {
		t.Errorf("raise flag during renders = %v, want %v", during, want)
	}
}

func TestLookup(t *testing.T) {
	tr := &recorder{name: "r"}
	c, _ := attached(t, Options{}, bare{}, tr)

	r, ok := Lookup[Renderer](c)
	if !ok || r.TraitName() != "r" {
		t.Errorf("Lookup[Renderer] = %v, %v", r, ok)
	}
	if _, ok := Lookup[KeyHandler](c); ok {
		t.Error("Lookup should report missing capabilities")
	}
	if got := len(LookupAll[Trait](c)); got != 2 {
		t.Errorf("LookupAll[Trait] = %d, want 2", got)
	}
}

func TestField(t *testing.T) {
	c, loop := attached(t, Options{Defaults: state.ChangeSet{"opened": false}})
	opened := FieldOf[bool](c, "opened")
	if opened.Value() {
		t.Fatal("opened should default to false")
	}
	if err := loop.Await(opened.Update(func(v bool) bool { return !v })); err != nil {
		t.Fatal(err)
	}
	if !opened.Value() {
		t.Error("opened should be true after toggle")
	}
}

func TestDispose(t *testing.T) {
	var log []string
	c, _ := attached(t, Options{}, keyTrait{name: "k", handles: "x", log: &log})
	var order []int
	c.OnDispose(func() { order = append(order, 1) })
	unregister := c.OnDispose(func() { order = append(order, 2) })
	c.OnDispose(func() { order = append(order, 3) })
	unregister()

	c.Dispose()
	c.Dispose()
	if !reflect.DeepEqual(order, []int{3, 1}) {
		t.Errorf("disposer order = %v, want [3 1]", order)
	}
	c.Host().DispatchEvent(&dom.Event{Type: dom.EventKeyDown, Key: "x"})
	if len(log) != 0 {
		t.Error("disposed component still handles keys")
	}
}
