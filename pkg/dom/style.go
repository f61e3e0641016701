package dom

import (
	"maps"
	"strconv"
	"strings"
)

// Style properties with defaults when neither inline style nor a rule sets
// them.
var defaultStyle = map[string]string{
	"position": "static",
	"z-index":  "auto",
	"display":  "block",
}

type styleRule struct {
	class string
	props map[string]string
}

// AddRule applies props to every element carrying class, below inline
// style in precedence. Later rules win over earlier ones.
func (d *Document) AddRule(class string, props map[string]string) {
	d.rules = append(d.rules, styleRule{class: class, props: maps.Clone(props)})
}

// Style returns the inline style property name, or "".
func (n *Node) Style(name string) string {
	return n.style[name]
}

// SetStyle sets an inline style property. An empty value removes it.
func (n *Node) SetStyle(name, value string) {
	if value == "" {
		delete(n.style, name)
		return
	}
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[name] = value
}

// ComputedStyle resolves a property from inline style, then document rules,
// then built-in defaults.
func (n *Node) ComputedStyle(name string) string {
	if v, ok := n.style[name]; ok {
		return v
	}
	if n.doc != nil {
		for i := len(n.doc.rules) - 1; i >= 0; i-- {
			r := n.doc.rules[i]
			if v, ok := r.props[name]; ok && n.HasClass(r.class) {
				return v
			}
		}
	}
	return defaultStyle[name]
}

// ParsePixels parses lengths such as "12px", "12" or "-3.5px".
func ParsePixels(v string) (float64, error) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	return strconv.ParseFloat(v, 64)
}
