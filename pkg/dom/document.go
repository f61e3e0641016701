package dom

// Document owns a node tree rooted at an <html> element with a <body>.
type Document struct {
	root   *Node
	body   *Node
	active *Node
	rules  []styleRule
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.CreateElement("html")
	d.body = d.CreateElement("body")
	d.root.AppendChild(d.body)
	return d
}

// Root returns the <html> element.
func (d *Document) Root() *Node {
	return d.root
}

// Body returns the <body> element.
func (d *Document) Body() *Node {
	return d.body
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{Type: ElementNode, Tag: tag, doc: d}
}

// CreateText returns a new detached text node.
func (d *Document) CreateText(data string) *Node {
	return &Node{Type: TextNode, Data: data, doc: d}
}

// CreateComment returns a new detached comment node.
func (d *Document) CreateComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data, doc: d}
}

// ActiveElement returns the focused node, or the body when nothing is
// focused.
func (d *Document) ActiveElement() *Node {
	if d.active != nil && d.active.IsConnected() {
		return d.active
	}
	return d.body
}

// Focused returns the explicitly focused node, or nil.
func (d *Document) Focused() *Node {
	if d.active != nil && d.active.IsConnected() {
		return d.active
	}
	return nil
}

// Focus moves focus to n, dispatching blur on the previous focus and focus
// on n. Detached nodes cannot take focus.
func (d *Document) Focus(n *Node) bool {
	if n == nil || n.doc != d || !n.IsConnected() || n.Type != ElementNode {
		return false
	}
	prev := d.Focused()
	if prev == n {
		return true
	}
	d.active = n
	if prev != nil {
		prev.DispatchEvent(&Event{Type: EventBlur, Related: n})
	}
	n.DispatchEvent(&Event{Type: EventFocus, Related: prev})
	return true
}

// Blur clears focus from n if it holds it.
func (d *Document) Blur(n *Node) {
	if d.Focused() != n || n == nil {
		return
	}
	d.active = nil
	n.DispatchEvent(&Event{Type: EventBlur})
}

// Focus gives n the document focus.
func (n *Node) Focus() bool {
	return n.doc.Focus(n)
}

// Blur removes document focus from n.
func (n *Node) Blur() {
	n.doc.Blur(n)
}

// HasFocus reports whether n is the focused node.
func (n *Node) HasFocus() bool {
	return n.doc.Focused() == n
}

// QueryClass returns the connected elements carrying class, in document
// order.
func (d *Document) QueryClass(class string) []*Node {
	var out []*Node
	d.root.Walk(func(n *Node) bool {
		if n.Type == ElementNode && n.HasClass(class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByID returns the first connected element whose id attribute is id.
func (d *Document) ByID(id string) *Node {
	var found *Node
	d.root.Walk(func(n *Node) bool {
		if v, ok := n.attrs["id"]; ok && v == id {
			found = n
			return false
		}
		return true
	})
	return found
}
