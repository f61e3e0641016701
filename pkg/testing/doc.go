// Package testing drives relm components on a simulated terminal.
//
// # Quick Start
//
// Create a tester, build components into its document, and make assertions:
//
//	func TestListBox(t *testing.T) {
//	    tester := relmtest.NewTesterWithT(t)
//	    host := tester.Doc.CreateElement("ul")
//	    // ... add items, bind a widgets.ListBox to host ...
//	    tester.Doc.Body().AppendChild(host)
//	    tester.Pump()
//
//	    tester.Tap(relmtest.ByText("Blue"))
//	    if !tester.Find(relmtest.ByClass("selected")).Exists() {
//	        t.Error("expected a selected item")
//	    }
//	}
//
// Import the package under an alias, since its name collides with the
// standard testing package:
//
//	import relmtest "github.com/go-drift/relm/pkg/testing"
//
// # Pumping
//
// Pump flushes the component loop, finishes pending effects and repaints
// the simulated screen. Key and pointer helpers pump after every event.
//
// # Snapshots
//
// CaptureSnapshot records the painted screen rows and the element tree.
// MatchesFile compares against a golden file; run with
// RELM_UPDATE_SNAPSHOTS=1 to rewrite it.
package testing
