// Package actions builds and performs WebDriver input action sequences, such
// as hovering over an element and clicking it, for one browser session.
//
// Sessions speaking the W3C protocol receive the whole sequence in a single
// "perform actions" command. Legacy sessions replay the sequence step by step
// through the JSON wire protocol mouse and keyboard commands.
package actions

import (
	"time"
)

// Input source types.
const (
	SourceKey     = "key"
	SourcePointer = "pointer"
)

// PointerKind is the kind of a pointer input source.
type PointerKind string

// The valid pointer kinds.
const (
	Mouse PointerKind = "mouse"
	Touch PointerKind = "touch"
	Pen   PointerKind = "pen"
)

func (k PointerKind) valid() bool {
	switch k {
	case Mouse, Touch, Pen:
		return true
	}
	return false
}

// MouseButton identifies a pointer button.
type MouseButton int

// Mouse buttons.
const (
	LeftButton MouseButton = iota
	MiddleButton
	RightButton
)

// Pointer move origins other than an element.
const (
	OriginViewport = "viewport"
	OriginPointer  = "pointer"
)

// DefaultMoveDuration is how long a pointer move takes.
const DefaultMoveDuration = 250 * time.Millisecond

// webElementKey is the W3C web element identifier.
const webElementKey = "element-6066-11e4-a52e-4f735466cecf"

// legacyElementKey is the JSON wire protocol element identifier.
const legacyElementKey = "ELEMENT"

func millis(d time.Duration) int64 {
	return int64(d / time.Millisecond)
}
