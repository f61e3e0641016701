package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultMaxPasses bounds the number of reaction passes CopyWithChanges will
// run before giving up with a *CycleError.
const DefaultMaxPasses = 100

// Snapshot is an immutable set of named field values plus the reaction rules
// that derive fields from one another.
//
// The zero Snapshot is empty and valid.
type Snapshot struct {
	fields    map[string]any
	reactions []Reaction
	maxPasses int
}

// Option configures a snapshot created by New.
type Option func(*Snapshot)

// WithMaxPasses sets the reaction pass limit. Values below one are ignored.
func WithMaxPasses(n int) Option {
	return func(s *Snapshot) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}

// New creates a snapshot holding a copy of fields. Reactions are not run on
// the initial fields; they fire on the first CopyWithChanges that touches a
// watched field.
func New(fields ChangeSet, reactions ...Reaction) Snapshot {
	return Snapshot{
		fields:    maps.Clone(map[string]any(fields)),
		reactions: slices.Clone(reactions),
	}
}

// NewWithOptions is New with additional options.
func NewWithOptions(fields ChangeSet, opts []Option, reactions ...Reaction) Snapshot {
	s := New(fields, reactions...)
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Get returns the value of field, or nil when absent.
func (s Snapshot) Get(field string) any {
	return s.fields[field]
}

// Lookup returns the value of field and whether it is present.
func (s Snapshot) Lookup(field string) (any, bool) {
	v, ok := s.fields[field]
	return v, ok
}

// Has reports whether field is present.
func (s Snapshot) Has(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// Len returns the number of fields.
func (s Snapshot) Len() int {
	return len(s.fields)
}

// Keys returns the field names in sorted order.
func (s Snapshot) Keys() []string {
	return slices.Sorted(maps.Keys(s.fields))
}

// Fields returns a copy of the field map.
func (s Snapshot) Fields() ChangeSet {
	return ChangeSet(maps.Clone(s.fields))
}

// Reactions returns the reaction rules attached to s.
func (s Snapshot) Reactions() []Reaction {
	return slices.Clone(s.reactions)
}

// WithReactions returns a copy of s that also carries the given reactions.
func (s Snapshot) WithReactions(reactions ...Reaction) Snapshot {
	next := s
	next.reactions = append(slices.Clone(s.reactions), reactions...)
	return next
}

func (s Snapshot) passLimit() int {
	if s.maxPasses > 0 {
		return s.maxPasses
	}
	return DefaultMaxPasses
}

// CopyWithChanges applies changes to a copy of s, runs the reactions whose
// watched fields were touched, and merges their results until no reaction
// produces a further change.
//
// The returned Changed holds every field whose final value differs from s.
// When the rules do not converge within the pass limit, s is returned
// unchanged along with a *CycleError.
func (s Snapshot) CopyWithChanges(changes ChangeSet) (Snapshot, Changed, error) {
	next := s
	next.fields = maps.Clone(s.fields)
	if next.fields == nil {
		next.fields = make(map[string]any, len(changes))
	}

	touched := make(Changed)
	pending := apply(next.fields, changes)
	limit := s.passLimit()
	for pass := 0; len(pending) > 0; pass++ {
		if pass >= limit {
			return s, nil, &CycleError{Passes: limit, Fields: pending.Fields()}
		}
		touched.Merge(pending)

		// Reactions see a frozen view; next.fields keeps changing below.
		view := next
		view.fields = maps.Clone(next.fields)
		var derived ChangeSet
		for _, r := range next.reactions {
			if r.Fn == nil || !r.watches(pending) {
				continue
			}
			derived = derived.Merge(r.Fn(view, pending.Clone()))
		}
		pending = apply(next.fields, derived)
	}

	changed := make(Changed, len(touched))
	for field := range touched {
		before, had := s.fields[field]
		after, has := next.fields[field]
		if had != has || !Equal(before, after) {
			changed[field] = true
		}
	}
	return next, changed, nil
}

// apply writes changes into fields and reports which ones changed value.
func apply(fields map[string]any, changes ChangeSet) Changed {
	var changed Changed
	for k, v := range changes {
		if old, ok := fields[k]; ok && Equal(old, v) {
			continue
		}
		fields[k] = v
		if changed == nil {
			changed = make(Changed)
		}
		changed[k] = true
	}
	return changed
}

// String renders the snapshot fields in sorted order, for diagnostics.
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, s.fields[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Value returns field as a T, or the zero T when the field is absent or holds
// another type.
func Value[T any](s Snapshot, field string) T {
	v, _ := s.fields[field].(T)
	return v
}

// Lookup returns field as a T and whether it was present with that type.
func Lookup[T any](s Snapshot, field string) (T, bool) {
	v, ok := s.fields[field].(T)
	return v, ok
}
