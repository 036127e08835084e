// Package renderer defines the drawing surface the sandbox renders into and
// its backends.
package renderer

import "image/color"

// Color is an 8-bit RGBA colour.
type Color = color.RGBA

// Common colours.
var (
	Black       = Color{A: 255}
	Transparent = Color{}
)

// Target is an off-screen, alpha-blendable render target.
type Target interface {
	Size() (w, h int)
}

// Surface is the rendering collaborator. Coordinates are pixels.
//
// A frame is BeginFrame, any number of draw calls, Present. SetTarget(nil)
// selects the main surface; callers must restore it before Present.
type Surface interface {
	Width() int
	Height() int

	NewTarget(w, h int) Target
	UnloadTarget(t Target)

	BeginFrame()
	SetTarget(t Target)
	Clear(c Color)

	FillRect(x, y, w, h float32, c Color)
	FillCircle(x, y, r float32, c Color)
	FillEllipse(x, y, rx, ry float32, c Color)
	FillTriangle(x1, y1, x2, y2, x3, y3 float32, c Color)

	// Blit copies t onto the current target at the given opacity.
	Blit(t Target, alpha float32)
	Present()
}
