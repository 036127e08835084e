package systems

import (
	"math"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/renderer"
)

// Plant constants
const (
	plantSeedlingSize = float32(0.4) // Fraction of full size when placed
	plantSwaySpeed    = float32(1.7) // radians per second
	plantSwayAmount   = float32(0.03)
)

// Plant is a rooted entity occupying a square footprint of tiles.
type Plant struct {
	TypeID int
	Pos    components.Position

	kind   *PlantKind
	shadow renderer.Color
	growth float32 // fraction of full size
	sway   float32 // phase, radians
}

// NewPlant creates a plant of kind typeID at pos. typeID must be valid for cat.
func NewPlant(cat *Catalog, typeID int, pos components.Position) *Plant {
	return &Plant{
		TypeID: typeID,
		Pos:    pos,
		kind:   &cat.Plants[typeID],
		shadow: cat.ShadowColor,
		growth: plantSeedlingSize,
		sway:   pos.X * 3.1, // desync neighbours
	}
}

// Kind returns the plant's kind.
func (p *Plant) Kind() *PlantKind { return p.kind }

// Growth returns the plant's size as a fraction of full size.
func (p *Plant) Growth() float32 { return p.growth }

// footprint returns the inclusive tile range covered by a square of
// half-extent r around pos. Edges landing exactly on a tile border do not
// cover the next tile.
func footprint(pos components.Position, r float32) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(float64(pos.X - r)))
	y0 = int(math.Floor(float64(pos.Y - r)))
	x1 = int(math.Ceil(float64(pos.X+r))) - 1
	y1 = int(math.Ceil(float64(pos.Y+r))) - 1
	return
}

// footprintTilesOK reports whether every tile under the footprint exists and
// is in allowed.
func footprintTilesOK(l *Level, pos components.Position, r float32, allowed TileSet) bool {
	x0, y0, x1, y1 := footprint(pos, r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t, ok := l.Tile(x, y)
			if !ok || !allowed.Has(t) {
				return false
			}
		}
	}
	return true
}

// PlantPositionOK reports whether a plant of typeID may be placed at pos:
// the full-size footprint rests on allowed tiles and no other plant is closer
// than the larger of the two spacings.
func PlantPositionOK(pos components.Position, typeID int, w World) bool {
	kind, ok := w.Catalog().Plant(typeID)
	if !ok {
		return false
	}
	if !footprintTilesOK(w.Level(), pos, kind.Radius, kind.Tiles) {
		return false
	}

	for _, other := range w.Plants() {
		spacing := kind.Spacing
		if other.kind.Spacing > spacing {
			spacing = other.kind.Spacing
		}
		if pos.DistSq(other.Pos) < spacing*spacing {
			return false
		}
	}
	return true
}

// Update grows the plant toward full size and advances its sway.
func (p *Plant) Update(dt float32, _ World) {
	if p.growth < 1 {
		p.growth += p.kind.GrowthRate * dt
		if p.growth > 1 {
			p.growth = 1
		}
	}
	p.sway += plantSwaySpeed * dt
	if p.sway > 2*math.Pi {
		p.sway -= 2 * math.Pi
	}
}

// TilesUnderOK checks the full-size footprint, so growth never invalidates a
// plant.
func (p *Plant) TilesUnderOK(l *Level) bool {
	return footprintTilesOK(l, p.Pos, p.kind.Radius, p.kind.Tiles)
}

// OverlapsTile reports whether the footprint covers tile (tx, ty).
func (p *Plant) OverlapsTile(tx, ty int) bool {
	x0, y0, x1, y1 := footprint(p.Pos, p.kind.Radius)
	return tx >= x0 && tx <= x1 && ty >= y0 && ty <= y1
}

// OverlapsCursor tests the footprint against the tile under cursor.
func (p *Plant) OverlapsCursor(cursor components.Position) bool {
	return p.OverlapsTile(cursor.Tile())
}

func (p *Plant) screenCircle(tileSize float32) (x, y, r float32) {
	swayX := float32(math.Sin(float64(p.sway))) * plantSwayAmount
	return (p.Pos.X + swayX) * tileSize, p.Pos.Y * tileSize, p.kind.Radius * p.growth * tileSize
}

func (p *Plant) Draw(s renderer.Surface, tileSize float32) {
	x, y, r := p.screenCircle(tileSize)
	s.FillCircle(x, y, r, p.kind.Color)
	s.FillCircle(x-r*0.25, y-r*0.25, r*0.45, lighten(p.kind.Color, 0.25))
}

func (p *Plant) DrawShadow(s renderer.Surface, tileSize float32) {
	x, y, r := p.screenCircle(tileSize)
	off := r * 0.5
	s.FillEllipse(x+off, y+off, r, r*0.75, p.shadow)
}

// lighten blends c toward white by f in [0, 1].
func lighten(c renderer.Color, f float32) renderer.Color {
	mix := func(v uint8) uint8 {
		return uint8(float32(v) + (255-float32(v))*f)
	}
	return renderer.Color{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
