// Package components defines the plain data shared by sandbox entities.
package components

// Body holds physical properties of an entity.
type Body struct {
	Radius float32 // tiles
}

// CircleOverlap reports whether point lies within the body circle centred at
// center, grown by extra.
func (b Body) CircleOverlap(center, point Position, extra float32) bool {
	r := b.Radius + extra
	return center.DistSq(point) <= r*r
}

// CirclesOverlap reports whether two body circles intersect.
func CirclesOverlap(a Position, ra float32, b Position, rb float32) bool {
	r := ra + rb
	return a.DistSq(b) < r*r
}
