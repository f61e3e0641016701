package traits

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
)

// DefaultPrefixTimeout is how long typed characters keep extending the
// prefix.
const DefaultPrefixTimeout = time.Second

// KeyBackspace shortens the typed prefix.
const KeyBackspace = "Backspace"

// PrefixSelection selects items by typing the start of their text.
//
// Characters typed within Timeout of each other build up a prefix. The
// first item whose text starts with the prefix (ignoring case) is selected.
// When none does, the item whose leading text is the fewest edits away is
// selected, provided it differs in at most half the typed characters.
// A PrefixSelection value belongs to one component.
type PrefixSelection struct {
	Timeout time.Duration
	// Now overrides the clock.
	Now func() time.Time

	prefix string
	last   time.Time
}

func (*PrefixSelection) TraitName() string { return "prefixSelection" }

func (p *PrefixSelection) KeyDown(c *core.Component, ev *dom.Event) bool {
	now := p.now()
	if !now.Before(p.last.Add(p.timeout())) {
		p.prefix = ""
	}
	p.last = now

	switch {
	case ev.Key == KeyBackspace:
		if p.prefix == "" {
			return false
		}
		_, size := utf8.DecodeLastRuneInString(p.prefix)
		p.prefix = p.prefix[:len(p.prefix)-size]
		return true
	case utf8.RuneCountInString(ev.Key) == 1:
		r, _ := utf8.DecodeRuneInString(ev.Key)
		if !unicode.IsPrint(r) {
			return false
		}
		p.prefix += strings.ToLower(ev.Key)
	default:
		return false
	}

	index := MatchPrefix(Items(c.State()), p.prefix)
	if index < 0 {
		return false
	}
	SelectIndex(c, index)
	return true
}

// Prefix returns the characters typed so far.
func (p *PrefixSelection) Prefix() string {
	return p.prefix
}

func (p *PrefixSelection) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *PrefixSelection) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultPrefixTimeout
}

// ItemText returns the text used to match an item: its aria-label
// attribute, or its trimmed text content.
func ItemText(item *dom.Node) string {
	if label, ok := item.Attribute("aria-label"); ok {
		return label
	}
	return strings.TrimSpace(item.TextContent())
}

// MatchPrefix returns the index of the item best matching prefix, or -1.
func MatchPrefix(items []*dom.Node, prefix string) int {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return -1
	}
	n := utf8.RuneCountInString(prefix)
	best, bestDistance := -1, n/2+1
	for i, item := range items {
		text := strings.ToLower(ItemText(item))
		if strings.HasPrefix(text, prefix) {
			return i
		}
		head := []rune(text)
		if len(head) > n {
			head = head[:n]
		}
		if d := levenshtein.ComputeDistance(prefix, string(head)); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return best
}
