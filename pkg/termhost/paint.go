package termhost

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-drift/relm/pkg/dom"
)

// Theme holds the cell styles used when painting.
type Theme struct {
	Text     tcell.Style
	Selected tcell.Style
	Focused  tcell.Style
	Overlay  tcell.Style
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	return Theme{
		Text:     tcell.StyleDefault,
		Selected: tcell.StyleDefault.Reverse(true),
		Focused:  tcell.StyleDefault.Bold(true),
		Overlay:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	}
}

// paint draws every visible text node at its layout position.
func paint(screen tcell.Screen, doc *dom.Document, theme Theme) {
	width, height := screen.Size()
	doc.Root().Walk(func(n *dom.Node) bool {
		if n.Type != dom.TextNode || hidden(n) {
			return true
		}
		r, err := n.BoundingRect()
		if err != nil {
			return true
		}
		y := int(r.Y)
		if y < 0 || y >= height {
			return true
		}
		style := styleFor(n, theme)
		x := int(r.X)
		for _, ch := range n.Data {
			if x >= width {
				break
			}
			if x >= 0 {
				screen.SetContent(x, y, ch, nil, style)
			}
			x += runewidth.RuneWidth(ch)
		}
		return true
	})
}

// hidden reports whether n or an ancestor is not displayed.
func hidden(n *dom.Node) bool {
	for ; n != nil; n = n.Parent() {
		if n.Type == dom.ElementNode && n.ComputedStyle("display") == "none" {
			return true
		}
	}
	return false
}

// styleFor picks the style of the closest styled ancestor of a text node.
func styleFor(n *dom.Node, theme Theme) tcell.Style {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch {
		case p.HasClass("selected"):
			return theme.Selected
		case p.HasFocus():
			return theme.Focused
		case p.HasClass("visible"):
			return theme.Overlay
		}
	}
	return theme.Text
}

// HitTest returns the innermost element whose box holds the cell (x, y).
func HitTest(doc *dom.Document, x, y float64) *dom.Node {
	var hit *dom.Node
	doc.Body().Walk(func(n *dom.Node) bool {
		if n.Type != dom.ElementNode || hidden(n) {
			return true
		}
		r, err := n.BoundingRect()
		if err != nil {
			return true
		}
		if x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Bottom() {
			hit = n
		}
		return true
	})
	return hit
}

// focusableAncestor returns n or its closest ancestor with a tabindex.
func focusableAncestor(n *dom.Node) *dom.Node {
	for ; n != nil; n = n.Parent() {
		if _, ok := n.Attribute("tabindex"); ok {
			return n
		}
	}
	return nil
}
