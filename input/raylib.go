package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

var raylibKeys = map[int32]Key{
	rl.KeyEscape: KeyEscape,
	rl.KeyOne:    KeyOne,
	rl.KeyTwo:    KeyTwo,
	rl.KeyThree:  KeyThree,
	rl.KeyFour:   KeyFour,
	rl.KeyFive:   KeyFive,
	rl.KeySix:    KeySix,
	rl.KeySeven:  KeySeven,
	rl.KeyQ:      KeyQ,
	rl.KeyW:      KeyW,
	rl.KeyE:      KeyE,
	rl.KeyR:      KeyR,
	rl.KeyT:      KeyT,
	rl.KeyA:      KeyA,
	rl.KeyS:      KeyS,
	rl.KeyD:      KeyD,
}

var raylibButtons = []struct {
	rl  rl.MouseButton
	btn Button
}{
	{rl.MouseButtonLeft, ButtonLeft},
	{rl.MouseButtonRight, ButtonRight},
	{rl.MouseButtonMiddle, ButtonMiddle},
}

// RaylibSource reads input from the raylib window. Call rl.SetExitKey(0)
// so Escape arrives as a key event instead of closing the window.
type RaylibSource struct{}

// NewRaylibSource creates a source bound to the current raylib window.
func NewRaylibSource() *RaylibSource {
	return &RaylibSource{}
}

func (s *RaylibSource) Poll(buf []Event) []Event {
	if rl.WindowShouldClose() {
		buf = append(buf, Event{Kind: EventQuit})
	}

	// Drain the key queue; GetKeyPressed returns 0 once it is empty
	for code := rl.GetKeyPressed(); code != 0; code = rl.GetKeyPressed() {
		if k, ok := raylibKeys[code]; ok {
			buf = append(buf, Event{Kind: EventKeyDown, Key: k})
		}
	}

	for _, b := range raylibButtons {
		if rl.IsMouseButtonPressed(b.rl) {
			buf = append(buf, Event{Kind: EventMouseDown, Button: b.btn})
		}
		if rl.IsMouseButtonReleased(b.rl) {
			buf = append(buf, Event{Kind: EventMouseUp, Button: b.btn})
		}
	}
	return buf
}

func (s *RaylibSource) MousePosition() (float32, float32) {
	p := rl.GetMousePosition()
	return p.X, p.Y
}
