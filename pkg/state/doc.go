// Package state provides immutable component state snapshots.
//
// A Snapshot maps field names to values. Snapshots are never modified once
// created; CopyWithChanges returns a new snapshot together with the set of
// fields whose values differ from the original.
//
// # Reactions
//
// A Reaction computes derived fields when watched fields change:
//
//	s := state.New(state.ChangeSet{"count": 0}, state.Reaction{
//	    Fields: []string{"count"},
//	    Fn: func(s state.Snapshot, changed state.Changed) state.ChangeSet {
//	        return state.ChangeSet{"doubled": state.Value[int](s, "count") * 2}
//	    },
//	})
//	next, changed, err := s.CopyWithChanges(state.ChangeSet{"count": 3})
//	// next: {count: 3, doubled: 6}, changed: {count: true, doubled: true}
//
// Reactions run in the same pass as the change that triggered them and may
// chain. A rule set that keeps producing changes is reported as a
// *CycleError once the pass limit is reached.
package state
