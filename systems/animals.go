package systems

import (
	"math"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/renderer"
)

// Animal is a mobile entity with a circular body.
type Animal struct {
	TypeID int
	Pos    components.Position
	Rot    components.Rotation
	Body   components.Body

	kind   *AnimalKind
	shadow renderer.Color
}

// NewAnimal creates an animal of kind typeID at pos facing heading.
// typeID must be valid for cat.
func NewAnimal(cat *Catalog, typeID int, pos components.Position, heading float32) *Animal {
	kind := &cat.Animals[typeID]
	return &Animal{
		TypeID: typeID,
		Pos:    pos,
		Rot:    components.Rotation{Heading: normalizeHeading(heading)},
		Body:   components.Body{Radius: kind.Radius},
		kind:   kind,
		shadow: cat.ShadowColor,
	}
}

// Kind returns the animal's kind.
func (a *Animal) Kind() *AnimalKind { return a.kind }

// CircleOverlap reports whether the circle at point with radius extra touches
// the animal's body.
func (a *Animal) CircleOverlap(point components.Position, extra float32) bool {
	return a.Body.CircleOverlap(a.Pos, point, extra)
}

// standable reports whether the tile under pos exists and is allowed.
func standable(l *Level, pos components.Position, allowed TileSet) bool {
	t, ok := l.Tile(pos.Tile())
	return ok && allowed.Has(t)
}

// AnimalPositionOK reports whether an animal of typeID may be placed at pos:
// the tile under its centre is allowed and its body overlaps no other animal.
func AnimalPositionOK(pos components.Position, typeID int, w World) bool {
	kind, ok := w.Catalog().Animal(typeID)
	if !ok {
		return false
	}
	if !standable(w.Level(), pos, kind.Tiles) {
		return false
	}
	for _, other := range w.Animals() {
		if components.CirclesOverlap(pos, kind.Radius, other.Pos, other.Body.Radius) {
			return false
		}
	}
	return true
}

// Update wanders: the heading drifts randomly and the animal steps forward.
// A step onto a disallowed tile, off the level, or further into another
// animal is rejected and the animal turns away instead.
func (a *Animal) Update(dt float32, w World) {
	if dt <= 0 {
		return
	}
	rng := w.Rand()

	a.Rot.Heading += (rng.Float32()*2 - 1) * a.kind.TurnRate * dt
	next := a.Pos.Step(a.Rot.Heading, a.kind.Speed*dt)

	if a.stepOK(next, w) {
		a.Pos = next
	} else {
		a.Rot.Heading += math.Pi * (0.5 + rng.Float32())
	}
	a.Rot.Heading = normalizeHeading(a.Rot.Heading)
}

func (a *Animal) stepOK(next components.Position, w World) bool {
	if !standable(w.Level(), next, a.kind.Tiles) {
		return false
	}
	for _, other := range w.Animals() {
		if other == a {
			continue
		}
		// Moving apart is always allowed so overlapping animals can separate
		if components.CirclesOverlap(next, a.Body.Radius, other.Pos, other.Body.Radius) &&
			next.DistSq(other.Pos) < a.Pos.DistSq(other.Pos) {
			return false
		}
	}
	return true
}

// TilesUnderOK checks the tile under the animal's centre.
func (a *Animal) TilesUnderOK(l *Level) bool {
	return standable(l, a.Pos, a.kind.Tiles)
}

// OverlapsCursor reports whether cursor lies inside the body circle.
func (a *Animal) OverlapsCursor(cursor components.Position) bool {
	return a.CircleOverlap(cursor, 0)
}

func (a *Animal) Draw(s renderer.Surface, tileSize float32) {
	x, y := a.Pos.X*tileSize, a.Pos.Y*tileSize
	r := a.Body.Radius * tileSize
	s.FillCircle(x, y, r, a.kind.Color)
	drawOrientedTriangle(s, x, y, a.Rot.Heading, r*0.8, lighten(a.kind.Color, 0.45))
}

func (a *Animal) DrawShadow(s renderer.Surface, tileSize float32) {
	x, y := a.Pos.X*tileSize, a.Pos.Y*tileSize
	r := a.Body.Radius * tileSize
	s.FillEllipse(x+r*0.4, y+r*0.6, r*1.1, r*0.7, a.shadow)
}

// drawOrientedTriangle draws a triangle pointing along heading.
func drawOrientedTriangle(s renderer.Surface, x, y, heading, radius float32, c renderer.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	// Front point
	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	backAngle := float64(heading) + math.Pi*0.8
	backLeftX := x + float32(math.Cos(backAngle))*radius
	backLeftY := y + float32(math.Sin(backAngle))*radius

	backAngle = float64(heading) - math.Pi*0.8
	backRightX := x + float32(math.Cos(backAngle))*radius
	backRightY := y + float32(math.Sin(backAngle))*radius

	s.FillTriangle(frontX, frontY, backLeftX, backLeftY, backRightX, backRightY, c)
}
