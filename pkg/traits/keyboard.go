package traits

import (
	"github.com/go-drift/relm/pkg/core"
	"github.com/go-drift/relm/pkg/dom"
)

// Key names understood by KeyboardDirection.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
)

var keyDirections = map[string]Direction{
	KeyArrowDown:  DirectionNext,
	KeyArrowRight: DirectionNext,
	KeyArrowUp:    DirectionPrevious,
	KeyArrowLeft:  DirectionPrevious,
	KeyHome:       DirectionFirst,
	KeyEnd:        DirectionLast,
}

// KeyboardDirection maps arrow, Home and End keys onto the component's
// Navigator. Without a Navigator it handles nothing.
type KeyboardDirection struct{}

func (KeyboardDirection) TraitName() string { return "keyboardDirection" }

func (KeyboardDirection) KeyDown(c *core.Component, ev *dom.Event) bool {
	d, ok := keyDirections[ev.Key]
	if !ok {
		return false
	}
	nav, ok := core.Lookup[Navigator](c)
	if !ok {
		return false
	}
	return nav.Navigate(c, d)
}
