// Package input defines the discrete events and cursor sampling the sandbox
// consumes, and their backends.
package input

import (
	"fmt"
	"strings"
)

// EventKind identifies a discrete input event.
type EventKind uint8

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventMouseDown
	EventMouseUp
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "key"
	case EventMouseDown:
		return "mouse_down"
	case EventMouseUp:
		return "mouse_up"
	}
	return fmt.Sprintf("event(%d)", k)
}

// Button identifies a mouse button. ButtonNone is the released state.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return fmt.Sprintf("button(%d)", b)
}

// Key is a backend-independent key identifier.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyOne
	KeyTwo
	KeyThree
	KeyFour
	KeyFive
	KeySix
	KeySeven
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyA
	KeyS
	KeyD
)

var keyNames = map[string]Key{
	"escape": KeyEscape,
	"1":      KeyOne,
	"2":      KeyTwo,
	"3":      KeyThree,
	"4":      KeyFour,
	"5":      KeyFive,
	"6":      KeySix,
	"7":      KeySeven,
	"q":      KeyQ,
	"w":      KeyW,
	"e":      KeyE,
	"r":      KeyR,
	"t":      KeyT,
	"a":      KeyA,
	"s":      KeyS,
	"d":      KeyD,
}

// ParseKey resolves a key name such as "1", "q" or "escape".
func ParseKey(name string) (Key, error) {
	if k, ok := keyNames[strings.ToLower(name)]; ok {
		return k, nil
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// ParseButton resolves "left", "right" or "middle".
func ParseButton(name string) (Button, error) {
	switch strings.ToLower(name) {
	case "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	case "middle":
		return ButtonMiddle, nil
	}
	return ButtonNone, fmt.Errorf("unknown button %q", name)
}

// Event is one discrete input event.
type Event struct {
	Kind   EventKind
	Key    Key    // EventKeyDown
	Button Button // EventMouseDown, EventMouseUp
}

// Source is the input collaborator.
type Source interface {
	// Poll appends every pending event to buf and returns it. It never blocks.
	Poll(buf []Event) []Event
	// MousePosition returns the cursor position in window pixels.
	MousePosition() (x, y float32)
}
