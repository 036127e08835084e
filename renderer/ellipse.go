package renderer

import "math"

// ellipseSegments is the number of rim segments used to fill an ellipse.
const ellipseSegments = 32

// Point is a vertex in pixels.
type Point struct {
	X, Y float32
}

// ellipseFan appends the vertices of a triangle fan filling the ellipse at
// (x, y): the centre, then the rim clockwise in math terms (counter-clockwise
// on a y-down screen), closed by repeating the first rim point.
func ellipseFan(dst []Point, x, y, rx, ry float32) []Point {
	dst = append(dst, Point{x, y})
	for i := 0; i <= ellipseSegments; i++ {
		a := -2 * math.Pi * float64(i%ellipseSegments) / ellipseSegments
		dst = append(dst, Point{
			X: x + rx*float32(math.Cos(a)),
			Y: y + ry*float32(math.Sin(a)),
		})
	}
	return dst
}
