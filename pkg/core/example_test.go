package core_test

import (
	"fmt"
	"strconv"

	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/state"
)

// counter renders its count as the host's text.
type counter struct{}

func (counter) TraitName() string { return "counter" }

func (counter) DefaultState() state.ChangeSet {
	return state.ChangeSet{"count": 0}
}

func (counter) Reactions() []state.Reaction {
	return []state.Reaction{state.OnChange([]string{"count"}, func(s state.Snapshot, _ state.Changed) state.ChangeSet {
		return state.ChangeSet{"doubled": state.Value[int](s, "count") * 2}
	})}
}

func (counter) Render(r *core.RenderContext) error {
	if r.Dirty("count", "doubled") {
		text := strconv.Itoa(state.Value[int](r.State, "count")) + "/" + strconv.Itoa(state.Value[int](r.State, "doubled"))
		r.Patch.SetTextContent(r.Host, text)
	}
	return nil
}

func ExampleComponent() {
	doc := dom.NewDocument()
	host := doc.CreateElement("x-counter")
	doc.Body().AppendChild(host)

	loop := core.NewLoop()
	c := core.New(host, loop, core.Options{}, counter{})

	c.RequestUpdate(state.ChangeSet{"count": 1})
	c.RequestUpdate(state.ChangeSet{"count": 3})
	loop.Flush()

	fmt.Println(host.TextContent())
	fmt.Println(c.State())
	// Output:
	// 3/6
	// {count: 3, doubled: 6}
}
