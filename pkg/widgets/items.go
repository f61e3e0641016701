package widgets

import "github.com/go-drift/relm/pkg/dom"

// elementChildren returns the element children of n, skipping text and
// comments.
func elementChildren(n *dom.Node) []*dom.Node {
	var out []*dom.Node
	for _, child := range n.Children() {
		if child.Type == dom.ElementNode {
			out = append(out, child)
		}
	}
	return out
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
