package dom

import (
	"errors"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ErrNotLaidOut is returned by BoundingRect for nodes without a layout box.
var ErrNotLaidOut = errors.New("dom: node has no layout box")

// Rect is a layout box in client coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Top returns the top edge.
func (r Rect) Top() float64 { return math.Min(r.Y, r.Y+r.Height) }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return math.Max(r.Y, r.Y+r.Height) }

// Left returns the left edge.
func (r Rect) Left() float64 { return math.Min(r.X, r.X+r.Width) }

// Right returns the right edge.
func (r Rect) Right() float64 { return math.Max(r.X, r.X+r.Width) }

// ContainsY reports whether y lies within the vertical span of r.
func (r Rect) ContainsY(y float64) bool {
	return r.Top() <= y && y <= r.Bottom()
}

// Metrics measures text for layout.
type Metrics interface {
	Measure(text string) (width, height float64)
}

// TextMetrics measures text with a font face.
type TextMetrics struct {
	Face font.Face
}

// DefaultMetrics measures with the fixed 7x13 face from x/image. It is the
// layout default for hosts that measure in pixels; terminal hosts pass
// cell metrics instead.
func DefaultMetrics() *TextMetrics {
	return &TextMetrics{Face: basicfont.Face7x13}
}

// Measure returns the advance width and line height of text.
func (m *TextMetrics) Measure(text string) (float64, float64) {
	if text == "" {
		return 0, 0
	}
	w := font.MeasureString(m.Face, text).Ceil()
	h := m.Face.Metrics().Height.Ceil()
	return float64(w), float64(h)
}

// BoundingRect returns the layout box of n.
func (n *Node) BoundingRect() (Rect, error) {
	if !n.laidOut || !n.IsConnected() {
		return Rect{}, ErrNotLaidOut
	}
	return n.rect, nil
}

// SetRect assigns a layout box directly, for hosts that lay out themselves.
func (n *Node) SetRect(r Rect) {
	n.rect = r
	n.laidOut = true
}

// Layout stacks the document's block elements top to bottom within width,
// measuring text with m (DefaultMetrics when nil). Inline "width" and
// "height" pixel values override measured sizes; "display: none" collapses
// an element and its subtree.
func (d *Document) Layout(width float64, m Metrics) {
	if m == nil {
		m = DefaultMetrics()
	}
	layoutNode(d.root, 0, 0, width, m)
}

func layoutNode(n *Node, x, y, width float64, m Metrics) float64 {
	if n.Type == CommentNode {
		n.SetRect(Rect{X: x, Y: y, Width: 0, Height: 0})
		return 0
	}
	if n.Type == TextNode {
		w, h := m.Measure(n.Data)
		n.SetRect(Rect{X: x, Y: y, Width: math.Min(w, width), Height: h})
		return h
	}
	if n.ComputedStyle("display") == "none" {
		n.Walk(func(c *Node) bool {
			c.SetRect(Rect{X: x, Y: y})
			return true
		})
		return 0
	}
	if v, err := ParsePixels(n.style["width"]); err == nil {
		width = v
	}
	height := 0.0
	for _, c := range n.children {
		height += layoutNode(c, x, y+height, width, m)
	}
	if v, err := ParsePixels(n.style["height"]); err == nil {
		height = v
	}
	n.SetRect(Rect{X: x, Y: y, Width: width, Height: height})
	return height
}
