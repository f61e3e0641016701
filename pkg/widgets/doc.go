// Package widgets provides ready-made components assembled from the traits
// in pkg/traits and pkg/overlay.
//
// Each constructor binds a trait stack to an existing host node and returns
// a handle that embeds the *core.Component:
//
//	list := widgets.NewListBox(host, loop, widgets.ListBoxOptions{
//	    SelectionRequired: true,
//	})
//	list.Select(2)
//
// # Widgets
//
//   - ListBox: a single-selection list navigated with arrow keys, with
//     optional swipe commands.
//   - Popup: an overlay that opens above the document, captures focus and
//     closes on Escape or a press on its backdrop.
//   - Explorer: a list of proxies beside a stage that shows the selected
//     item.
//
// Items are the element children of the host at construction time; call
// Refresh after changing them.
package widgets
