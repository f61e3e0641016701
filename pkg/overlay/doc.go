// Package overlay provides traits for components that appear above the rest
// of the document: popups, menus and dialogs.
//
// An Overlay trait reacts to the opening and closing effects raised by
// traits.Effects. On opening it moves the host to the top level of the
// document body, raises it above every positioned element, shows it and
// takes focus; on closing it gives focus back and undoes the placement.
//
//	popup := core.New(host, loop, core.Options{},
//	    traits.OpenClose{},
//	    traits.Effects{},
//	    &overlay.Overlay{ForceTopLevel: true},
//	    &overlay.Barrier{Dismissible: true},
//	)
//	overlay.Open(popup)
package overlay
