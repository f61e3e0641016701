package overlay

import (
	"strconv"

	"github.com/go-drift/relm/pkg/dom"
)

// Stacking reports the highest z-index in use so an overlay can be placed
// above it.
type Stacking interface {
	MaxZIndex() int
}

// DocumentStacking scans the elements of Doc's body. Elements with a
// position other than static and a z-index other than auto contribute their
// z-index; values that are not integers count as zero.
type DocumentStacking struct {
	Doc *dom.Document
}

func (s DocumentStacking) MaxZIndex() int {
	if s.Doc == nil {
		return 0
	}
	body := s.Doc.Body()
	highest := 0
	body.Walk(func(n *dom.Node) bool {
		if n == body || n.Type != dom.ElementNode {
			return true
		}
		highest = max(highest, zIndexOf(n))
		return true
	})
	return highest
}

func zIndexOf(n *dom.Node) int {
	if n.ComputedStyle("position") == "static" {
		return 0
	}
	z := n.ComputedStyle("z-index")
	if z == "" || z == "auto" {
		return 0
	}
	v, err := strconv.Atoi(z)
	if err != nil {
		return 0
	}
	return v
}

// StackingFunc adapts a function to Stacking.
type StackingFunc func() int

func (f StackingFunc) MaxZIndex() int { return f() }
