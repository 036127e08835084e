package components

import "math"

// Position is a point in tile space: one unit is one tile edge.
// floor(X), floor(Y) index the tile beneath it.
type Position struct {
	X, Y float32
}

// Tile returns the integer tile coordinates under the position.
func (p Position) Tile() (int, int) {
	return int(math.Floor(float64(p.X))), int(math.Floor(float64(p.Y)))
}

// DistSq returns the squared distance to q.
func (p Position) DistSq(q Position) float32 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Step returns the position moved by dist along heading (radians).
func (p Position) Step(heading, dist float32) Position {
	return Position{
		X: p.X + float32(math.Cos(float64(heading)))*dist,
		Y: p.Y + float32(math.Sin(float64(heading)))*dist,
	}
}

// Rotation represents an entity's heading.
type Rotation struct {
	Heading float32 // radians
}
