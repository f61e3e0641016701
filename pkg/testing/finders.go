package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/relm/pkg/dom"
)

// Finder locates element nodes in the document.
type Finder interface {
	// Evaluate returns all matching elements under root (depth-first
	// pre-order), root included.
	Evaluate(root *dom.Node) []*dom.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*dom.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *dom.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no elements: %s", r.finder.Description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *dom.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*dom.Node {
	return r.nodes
}

func (r FinderResult) Count() int {
	return len(r.nodes)
}

func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

type predicateFinder struct {
	fn   func(*dom.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *dom.Node) []*dom.Node {
	var out []*dom.Node
	root.Walk(func(n *dom.Node) bool {
		if n.Type == dom.ElementNode && f.fn(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(*dom.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByText matches elements whose trimmed text content equals text and
// that have no element child with the same text, so the innermost
// element wins.
func ByText(text string) Finder {
	return &predicateFinder{
		fn: func(n *dom.Node) bool {
			if strings.TrimSpace(n.TextContent()) != text {
				return false
			}
			for _, child := range n.Children() {
				if child.Type == dom.ElementNode && strings.TrimSpace(child.TextContent()) == text {
					return false
				}
			}
			return true
		},
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining matches elements with a text child containing substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(n *dom.Node) bool {
			for _, child := range n.Children() {
				if child.Type == dom.TextNode && strings.Contains(child.Data, substring) {
					return true
				}
			}
			return false
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

func ByTag(tag string) Finder {
	return &predicateFinder{
		fn:   func(n *dom.Node) bool { return n.Tag == tag },
		desc: fmt.Sprintf("ByTag(%q)", tag),
	}
}

func ByClass(class string) Finder {
	return &predicateFinder{
		fn:   func(n *dom.Node) bool { return n.HasClass(class) },
		desc: fmt.Sprintf("ByClass(%q)", class),
	}
}

// ByAttribute matches elements whose attribute name equals value.
func ByAttribute(name, value string) Finder {
	return &predicateFinder{
		fn: func(n *dom.Node) bool {
			v, ok := n.Attribute(name)
			return ok && v == value
		},
		desc: fmt.Sprintf("ByAttribute(%q, %q)", name, value),
	}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *dom.Node) []*dom.Node {
	var results []*dom.Node
	seen := make(map[*dom.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches elements satisfying matching
// that are descendants of elements matching of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}
