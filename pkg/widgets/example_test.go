package widgets_test

import (
	"fmt"

	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
	"github.com/go-drift/relm/pkg/widgets"
)

// This example builds a list box over three items and moves the selection
// with the keyboard.
func ExampleListBox() {
	doc := dom.NewDocument()
	host := doc.CreateElement("ul")
	for _, label := range []string{"red", "green", "blue"} {
		item := doc.CreateElement("li")
		item.SetTextContent(label)
		host.AppendChild(item)
	}
	doc.Body().AppendChild(host)

	loop := core.NewLoop()
	list := widgets.NewListBox(host, loop, widgets.ListBoxOptions{SelectionRequired: true})
	loop.Flush()
	fmt.Println(list.SelectedItem().TextContent())

	host.DispatchEvent(&dom.Event{Type: dom.EventKeyDown, Key: "End"})
	loop.Flush()
	fmt.Println(list.SelectedItem().TextContent())
	// Output:
	// red
	// blue
}

// This example opens a popup that is not yet in the document.
func ExamplePopup() {
	doc := dom.NewDocument()
	host := doc.CreateElement("dialog")
	loop := core.NewLoop()
	popup := widgets.NewPopup(host, loop, widgets.PopupOptions{Dismissible: true})

	popup.Open()
	loop.Flush()
	fmt.Println(popup.Opened(), host.IsConnected(), host.HasFocus())

	popup.Close()
	loop.Flush()
	fmt.Println(popup.Opened(), host.IsConnected())
	// Output:
	// true true true
	// false false
}
