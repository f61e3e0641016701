package dom

// Patch records node mutations for later application. Render hooks write to
// a Patch so that a failed render leaves the tree untouched.
type Patch struct {
	ops []func()
}

// Len returns the number of recorded operations.
func (p *Patch) Len() int {
	return len(p.ops)
}

// SetAttribute records n.SetAttribute(name, value).
func (p *Patch) SetAttribute(n *Node, name, value string) {
	p.ops = append(p.ops, func() { n.SetAttribute(name, value) })
}

// RemoveAttribute records n.RemoveAttribute(name).
func (p *Patch) RemoveAttribute(n *Node, name string) {
	p.ops = append(p.ops, func() { n.RemoveAttribute(name) })
}

// ToggleAttribute records setting a boolean attribute to "" or removing it.
func (p *Patch) ToggleAttribute(n *Node, name string, on bool) {
	if on {
		p.SetAttribute(n, name, "")
	} else {
		p.RemoveAttribute(n, name)
	}
}

// SetClass records n.SetClass(class, on).
func (p *Patch) SetClass(n *Node, class string, on bool) {
	p.ops = append(p.ops, func() { n.SetClass(class, on) })
}

// SetStyle records n.SetStyle(name, value).
func (p *Patch) SetStyle(n *Node, name, value string) {
	p.ops = append(p.ops, func() { n.SetStyle(name, value) })
}

// SetStyles records several inline style assignments.
func (p *Patch) SetStyles(n *Node, props map[string]string) {
	for name, value := range props {
		p.SetStyle(n, name, value)
	}
}

// SetTextContent records n.SetTextContent(text).
func (p *Patch) SetTextContent(n *Node, text string) {
	p.ops = append(p.ops, func() { n.SetTextContent(text) })
}

// Do records an arbitrary mutation.
func (p *Patch) Do(fn func()) {
	if fn != nil {
		p.ops = append(p.ops, fn)
	}
}

// Commit applies the recorded operations in order and empties the patch.
func (p *Patch) Commit() {
	ops := p.ops
	p.ops = nil
	for _, op := range ops {
		op()
	}
}

// Discard drops the recorded operations.
func (p *Patch) Discard() {
	p.ops = nil
}
