package dom

import (
	"fmt"
	"maps"
	"slices"
)

// NodeType distinguishes elements from other node kinds.
type NodeType int

const (
	// ElementNode is a regular element.
	ElementNode NodeType = iota
	// TextNode holds character data.
	TextNode
	// CommentNode is an inert marker, used for placeholders.
	CommentNode
)

// Node is a node in a Document tree.
//
// Node is NOT thread-safe. It must only be accessed from the UI goroutine.
type Node struct {
	Type NodeType
	Tag  string
	Data string

	doc       *Document
	parent    *Node
	children  []*Node
	attrs     map[string]string
	classes   []string
	style     map[string]string
	listeners map[string][]*listener
	observers []*lifecycleObserver
	rect      Rect
	laidOut   bool
}

// Document returns the document that created n.
func (n *Node) Document() *Document {
	return n.doc
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// IsConnected reports whether n is attached to its document's root.
func (n *Node) IsConnected() bool {
	if n.doc == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == n.doc.root {
			return true
		}
	}
	return false
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child *Node) {
	n.insertAt(child, len(n.children))
}

// InsertBefore inserts child before ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) error {
	if ref == nil {
		n.AppendChild(child)
		return nil
	}
	i := slices.Index(n.children, ref)
	if i < 0 {
		return fmt.Errorf("dom: reference node is not a child of <%s>", n.Tag)
	}
	n.insertAt(child, i)
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	i := slices.Index(n.children, child)
	if i < 0 {
		return fmt.Errorf("dom: node is not a child of <%s>", n.Tag)
	}
	wasConnected := child.IsConnected()
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	if wasConnected {
		child.notify(false)
	}
	return nil
}

// ReplaceChild puts replacement where old is and detaches old.
func (n *Node) ReplaceChild(replacement, old *Node) error {
	i := slices.Index(n.children, old)
	if i < 0 {
		return fmt.Errorf("dom: node to replace is not a child of <%s>", n.Tag)
	}
	if replacement == old {
		return nil
	}
	if err := n.RemoveChild(old); err != nil {
		return err
	}
	n.insertAt(replacement, i)
	return nil
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		_ = n.parent.RemoveChild(n)
	}
}

func (n *Node) insertAt(child *Node, i int) {
	if child.Contains(n) {
		panic("dom: cannot insert a node into its own subtree")
	}
	if child.parent != nil {
		if child.parent == n {
			if j := slices.Index(n.children, child); j < i {
				i--
			}
		}
		child.Remove()
	}
	child.parent = n
	n.children = slices.Insert(n.children, i, child)
	if child.IsConnected() {
		child.notify(true)
	}
}

// Walk visits n and its descendants in document order until visit returns
// false.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range slices.Clone(n.children) {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}

// TextContent concatenates the data of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type != ElementNode {
		return n.Data
	}
	var out []byte
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			out = append(out, c.Data...)
		}
		return true
	})
	return string(out)
}

// SetTextContent replaces the children of n with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.Type != ElementNode {
		n.Data = text
		return
	}
	for len(n.children) > 0 {
		n.children[len(n.children)-1].Remove()
	}
	if text != "" {
		n.AppendChild(n.doc.CreateText(text))
	}
}

// Attribute returns the named attribute and whether it is set.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attributes returns a copy of the attribute map.
func (n *Node) Attributes() map[string]string {
	return maps.Clone(n.attrs)
}

// SetAttribute sets the named attribute.
func (n *Node) SetAttribute(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// RemoveAttribute clears the named attribute.
func (n *Node) RemoveAttribute(name string) {
	delete(n.attrs, name)
}

// HasClass reports whether class is in n's class list.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// SetClass adds or removes class.
func (n *Node) SetClass(class string, on bool) {
	i := slices.Index(n.classes, class)
	switch {
	case on && i < 0:
		n.classes = append(n.classes, class)
	case !on && i >= 0:
		n.classes = slices.Delete(n.classes, i, i+1)
	}
}

func (n *Node) String() string {
	switch n.Type {
	case TextNode:
		return fmt.Sprintf("#text %q", n.Data)
	case CommentNode:
		return fmt.Sprintf("<!--%s-->", n.Data)
	}
	if id, ok := n.attrs["id"]; ok {
		return fmt.Sprintf("<%s#%s>", n.Tag, id)
	}
	return fmt.Sprintf("<%s>", n.Tag)
}
