// Package traits provides reusable component behaviors.
//
// Each trait is stacked onto a core.Component and communicates with the
// others only through state fields and capability interfaces:
//
//	list := core.New(host, loop, core.Options{},
//	    &traits.SingleSelection{},
//	    traits.KeyboardDirection{},
//	)
//
// Traits that hold per-instance data (SwipeCommands) must not be shared
// between components.
package traits
