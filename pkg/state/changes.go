package state

import (
	"maps"
	"slices"
)

// ChangeSet is a partial update requested against a snapshot.
type ChangeSet map[string]any

// Merge copies other into c, overwriting conflicting keys, and returns c.
// A nil receiver allocates a new map.
func (c ChangeSet) Merge(other ChangeSet) ChangeSet {
	if len(other) == 0 {
		return c
	}
	if c == nil {
		c = make(ChangeSet, len(other))
	}
	maps.Copy(c, other)
	return c
}

// Changed records which fields differ from a reference snapshot.
type Changed map[string]bool

// Has reports whether field is marked as changed.
func (c Changed) Has(field string) bool {
	return c[field]
}

// Any reports whether at least one of fields is marked as changed.
func (c Changed) Any(fields ...string) bool {
	for _, f := range fields {
		if c[f] {
			return true
		}
	}
	return false
}

// Merge marks every field of other as changed in c and returns c.
func (c Changed) Merge(other Changed) Changed {
	if len(other) == 0 {
		return c
	}
	if c == nil {
		c = make(Changed, len(other))
	}
	for k, v := range other {
		if v {
			c[k] = true
		}
	}
	return c
}

// Clone returns an independent copy of c.
func (c Changed) Clone() Changed {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

// Fields returns the changed field names in sorted order.
func (c Changed) Fields() []string {
	fields := make([]string, 0, len(c))
	for k, v := range c {
		if v {
			fields = append(fields, k)
		}
	}
	slices.Sort(fields)
	return fields
}

// Empty reports whether no field is marked as changed.
func (c Changed) Empty() bool {
	for _, v := range c {
		if v {
			return false
		}
	}
	return true
}
