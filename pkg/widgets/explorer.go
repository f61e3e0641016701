package widgets

import (
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/state"
	"github.com/go-drift/relm/pkg/traits"
)

// Position places the proxy list relative to the stage. Start and End follow
// the text direction.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionStart  Position = "start"
	PositionEnd    Position = "end"
)

// lateral reports whether the list sits beside the stage.
func (p Position) lateral() bool {
	switch p {
	case PositionLeft, PositionRight, PositionStart, PositionEnd:
		return true
	}
	return false
}

// Explorer state fields.
const (
	FieldAssignedProxies   = "assignedProxies"
	FieldDefaultProxies    = "defaultProxies"
	FieldProxyTag          = "proxyTag"
	FieldProxyListPosition = "proxyListPosition"
	FieldProxyListOverlap  = "proxyListOverlap"
	FieldRightToLeft       = "rightToLeft"
)

// ProxyClass marks the proxies generated for items.
const ProxyClass = "proxy"

// ExplorerOptions configures NewExplorer.
type ExplorerOptions struct {
	Name string
	// Proxies stand in for the items in the list. When empty, one element
	// of ProxyTag is generated per item.
	Proxies []*dom.Node
	// ProxyTag is the tag of generated proxies ("div" when empty).
	ProxyTag          string
	ProxyListPosition Position
	ProxyListOverlap  bool
	RightToLeft       bool
	MaxPasses         int
}

// Explorer pairs a list of proxies with a stage showing the selected item.
//
// The host's element children become the items and move into the stage.
// The list is a ListBox whose selection follows the explorer's.
type Explorer struct {
	*core.Component
	List *ListBox

	trait *explorer
}

// NewExplorer binds an explorer to host.
func NewExplorer(host *dom.Node, loop *core.Loop, opts ExplorerOptions) *Explorer {
	doc := host.Document()
	items := elementChildren(host)

	ex := &explorer{
		doc:       doc,
		container: doc.CreateElement("div"),
		proxyList: doc.CreateElement("div"),
		stage:     doc.CreateElement("div"),
	}
	ex.container.SetAttribute("id", "explorerContainer")
	ex.container.SetStyle("display", "flex")
	ex.proxyList.SetAttribute("id", "proxyList")
	ex.stage.SetAttribute("id", "stage")
	ex.container.AppendChild(ex.proxyList)
	ex.container.AppendChild(ex.stage)
	for _, item := range items {
		ex.stage.AppendChild(item)
	}
	host.AppendChild(ex.container)

	ex.list = NewListBox(ex.proxyList, loop, ListBoxOptions{
		Name:              "proxyList",
		SelectionRequired: true,
		MaxPasses:         opts.MaxPasses,
	})

	tag := opts.ProxyTag
	if tag == "" {
		tag = "div"
	}
	position := opts.ProxyListPosition
	if position == "" {
		position = PositionTop
	}
	c := core.New(host, loop, core.Options{
		Name: opts.Name,
		Defaults: state.ChangeSet{
			traits.FieldItems:             items,
			traits.FieldSelectionRequired: true,
			FieldAssignedProxies:          opts.Proxies,
			FieldProxyTag:                 tag,
			FieldProxyListPosition:        position,
			FieldProxyListOverlap:         opts.ProxyListOverlap,
			FieldRightToLeft:              opts.RightToLeft,
		},
		MaxPasses: opts.MaxPasses,
	},
		&traits.SingleSelection{},
		traits.KeyboardDirection{},
		ex,
	)
	return &Explorer{Component: c, List: ex.list, trait: ex}
}

// Proxies returns the assigned proxies, or the generated ones when none are
// assigned.
func (e *Explorer) Proxies() []*dom.Node {
	s := e.State()
	if d := state.Value[[]*dom.Node](s, FieldDefaultProxies); len(d) > 0 {
		return d
	}
	return state.Value[[]*dom.Node](s, FieldAssignedProxies)
}

// SetProxies assigns proxies. Assigning none brings back generated ones.
func (e *Explorer) SetProxies(proxies []*dom.Node) *core.Update {
	return e.RequestUpdate(state.ChangeSet{FieldAssignedProxies: proxies})
}

// SetProxyListPosition moves the list relative to the stage.
func (e *Explorer) SetProxyListPosition(p Position) *core.Update {
	return e.RequestUpdate(state.ChangeSet{FieldProxyListPosition: p})
}

// Stage returns the node holding the items.
func (e *Explorer) Stage() *dom.Node {
	return e.trait.stage
}

// SelectedIndex returns the selected index.
func (e *Explorer) SelectedIndex() int {
	return traits.SelectedIndex(e.Component)
}

// Select requests index as the selection.
func (e *Explorer) Select(index int) *core.Update {
	return traits.SelectIndex(e.Component, index)
}

type explorer struct {
	doc       *dom.Document
	container *dom.Node
	proxyList *dom.Node
	stage     *dom.Node
	list      *ListBox
}

func (*explorer) TraitName() string { return "explorer" }

func (*explorer) DefaultState() state.ChangeSet {
	return state.ChangeSet{
		FieldAssignedProxies:   []*dom.Node(nil),
		FieldDefaultProxies:    []*dom.Node(nil),
		FieldProxyTag:          "div",
		FieldProxyListPosition: PositionTop,
		FieldProxyListOverlap:  false,
		FieldRightToLeft:       false,
	}
}

func (e *explorer) Reactions() []state.Reaction {
	return []state.Reaction{{
		Name:   "default proxies",
		Fields: []string{FieldAssignedProxies, FieldProxyTag, traits.FieldItems},
		Fn: func(s state.Snapshot, changed state.Changed) state.ChangeSet {
			assigned := state.Value[[]*dom.Node](s, FieldAssignedProxies)
			switch {
			case changed.Has(FieldAssignedProxies) && len(assigned) > 0:
				return state.ChangeSet{FieldDefaultProxies: []*dom.Node(nil)}
			case len(assigned) == 0:
				return state.ChangeSet{FieldDefaultProxies: e.createProxies(
					len(traits.Items(s)), state.Value[string](s, FieldProxyTag))}
			}
			return nil
		},
	}}
}

func (e *explorer) createProxies(n int, tag string) []*dom.Node {
	if n == 0 {
		return nil
	}
	proxies := make([]*dom.Node, n)
	for i := range proxies {
		proxies[i] = e.doc.CreateElement(tag)
		proxies[i].SetClass(ProxyClass, true)
	}
	return proxies
}

func (e *explorer) Init(c *core.Component) {
	c.OnDispose(e.list.Host().AddEventListener(traits.EventSelectedIndexChanged, func(ev *dom.Event) {
		index, ok := ev.Detail.(int)
		if !ok {
			return
		}
		c.Interact(func() { traits.SelectIndex(c, index) })
	}))
	c.OnDispose(e.list.Dispose)
}

func (e *explorer) Render(r *core.RenderContext) error {
	s := r.State
	if r.Dirty(FieldDefaultProxies, FieldAssignedProxies) {
		proxies := state.Value[[]*dom.Node](s, FieldDefaultProxies)
		if len(proxies) == 0 {
			proxies = state.Value[[]*dom.Node](s, FieldAssignedProxies)
		}
		list := e.proxyList
		r.Patch.Do(func() {
			for _, child := range list.Children() {
				child.Remove()
			}
			for _, p := range proxies {
				list.AppendChild(p)
			}
		})
	}

	position := state.Value[Position](s, FieldProxyListPosition)
	if r.Dirty(FieldProxyListPosition, FieldProxyListOverlap) {
		overlap := state.Value[bool](s, FieldProxyListOverlap)
		lateral := position.lateral()
		styles := map[string]string{
			"height":   "",
			"width":    "100%",
			"position": "",
			"z-index":  "",
			"top":      "",
			"bottom":   "",
			"left":     "",
			"right":    "",
		}
		if lateral {
			styles["height"], styles["width"] = "100%", ""
		}
		if overlap {
			styles["position"], styles["z-index"] = "absolute", "1"
		}
		if side := string(e.physical(position, state.Value[bool](s, FieldRightToLeft))); side != "" {
			styles[side] = "0"
		}
		r.Patch.SetStyles(e.proxyList, styles)
	}
	if r.Dirty(FieldProxyListPosition, FieldRightToLeft) {
		direction := "column"
		if position.lateral() {
			direction = "row"
		}
		r.Patch.SetStyle(e.container, "flex-direction", direction)
		listFirst := e.listFirst(position, state.Value[bool](s, FieldRightToLeft))
		container, list, stage := e.container, e.proxyList, e.stage
		r.Patch.Do(func() {
			first, last := stage, list
			if listFirst {
				first, last = list, stage
			}
			_ = container.InsertBefore(first, last)
		})
	}

	if r.Dirty(traits.FieldItems, traits.FieldSelectedIndex) {
		selected := state.Value[int](s, traits.FieldSelectedIndex)
		for i, item := range traits.Items(s) {
			display := "none"
			if i == selected {
				display = ""
			}
			r.Patch.SetStyle(item, "display", display)
		}
	}
	return nil
}

// physical maps start and end onto left and right for the text direction.
func (*explorer) physical(p Position, rtl bool) Position {
	switch p {
	case PositionStart:
		if rtl {
			return PositionRight
		}
		return PositionLeft
	case PositionEnd:
		if rtl {
			return PositionLeft
		}
		return PositionRight
	}
	return p
}

// listFirst reports whether the list precedes the stage in document order,
// which keeps focus order matching the visual order.
func (*explorer) listFirst(p Position, rtl bool) bool {
	switch p {
	case PositionTop, PositionStart:
		return true
	case PositionLeft:
		return !rtl
	case PositionRight:
		return rtl
	}
	return false
}

func (e *explorer) ComponentDidMount(c *core.Component) {
	e.sync(c, state.Changed{FieldDefaultProxies: true, traits.FieldSelectedIndex: true})
}

func (e *explorer) ComponentDidUpdate(c *core.Component, changed state.Changed) {
	e.sync(c, changed)
}

// sync pushes proxies and the selection into the list.
func (e *explorer) sync(c *core.Component, changed state.Changed) {
	if changed.Any(FieldDefaultProxies, FieldAssignedProxies) {
		e.list.Refresh()
	}
	if changed.Any(FieldDefaultProxies, FieldAssignedProxies, traits.FieldSelectedIndex) {
		if index := traits.SelectedIndex(c); e.list.SelectedIndex() != index {
			e.list.Select(index)
		}
	}
}
