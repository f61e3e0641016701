package state

import (
	"fmt"
	"strings"
)

// ReactionFunc derives field values from a snapshot. It must be a pure
// function of its arguments; side effects belong in render hooks.
type ReactionFunc func(s Snapshot, changed Changed) ChangeSet

// Reaction runs Fn whenever one of Fields changes. Fn receives the snapshot
// as merged so far and the fields changed by the preceding pass, and returns
// further changes (or nil).
type Reaction struct {
	Name   string
	Fields []string
	Fn     ReactionFunc
}

// OnChange is shorthand for a Reaction watching fields.
func OnChange(fields []string, fn ReactionFunc) Reaction {
	return Reaction{Fields: fields, Fn: fn}
}

func (r Reaction) watches(changed Changed) bool {
	for _, f := range r.Fields {
		if changed[f] {
			return true
		}
	}
	return false
}

// CycleError reports a reaction rule set that kept changing fields.
type CycleError struct {
	// Passes is the pass limit that was reached.
	Passes int
	// Fields are the fields still changing in the final pass.
	Fields []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("reactions did not converge after %d passes; still changing: %s",
		e.Passes, strings.Join(e.Fields, ", "))
}
