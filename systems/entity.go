package systems

import (
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/renderer"
)

// World is the read-only view of the simulation that placement predicates
// and animal updates inspect.
type World interface {
	Level() *Level
	Catalog() *Catalog
	Plants() []*Plant
	Animals() []*Animal
	Rand() *rand.Rand
}

// Entity is the capability set the simulation core relies on for every
// entity type.
type Entity interface {
	Update(dt float32, w World)
	Draw(s renderer.Surface, tileSize float32)
	DrawShadow(s renderer.Surface, tileSize float32)
	// TilesUnderOK reports whether the tiles beneath the entity still suit it.
	TilesUnderOK(l *Level) bool
	// OverlapsCursor reports whether a click at cursor hits the entity.
	OverlapsCursor(cursor components.Position) bool
}

// Population is an insertion-ordered collection of entities. Later entries
// draw on top of earlier ones.
type Population[E Entity] struct {
	items []E
}

// NewPopulation creates an empty population.
func NewPopulation[E Entity](capacity int) *Population[E] {
	return &Population[E]{items: make([]E, 0, capacity)}
}

// Add appends e.
func (p *Population[E]) Add(e E) {
	p.items = append(p.items, e)
}

// Len returns the number of entities.
func (p *Population[E]) Len() int {
	return len(p.items)
}

// Items returns the entities in insertion order. The slice is only valid
// until the next Add or removal.
func (p *Population[E]) Items() []E {
	return p.items
}

// RemoveIf removes every entity matching pred, keeping the order of the rest.
// Returns the number removed.
func (p *Population[E]) RemoveIf(pred func(E) bool) int {
	kept := 0
	for _, e := range p.items {
		if pred(e) {
			continue
		}
		p.items[kept] = e
		kept++
	}
	removed := len(p.items) - kept

	// Clear the tail so removed entities can be collected
	var zero E
	for i := kept; i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = p.items[:kept]
	return removed
}

// RemoveAtCursor removes every entity hit by a click at cursor.
func (p *Population[E]) RemoveAtCursor(cursor components.Position) int {
	return p.RemoveIf(func(e E) bool { return e.OverlapsCursor(cursor) })
}

// RemoveInvalid removes every entity whose tiles no longer suit it.
func (p *Population[E]) RemoveInvalid(l *Level) int {
	return p.RemoveIf(func(e E) bool { return !e.TilesUnderOK(l) })
}

// Update advances every entity by dt.
func (p *Population[E]) Update(dt float32, w World) {
	for _, e := range p.items {
		e.Update(dt, w)
	}
}

// Draw draws every entity body in insertion order.
func (p *Population[E]) Draw(s renderer.Surface, tileSize float32) {
	for _, e := range p.items {
		e.Draw(s, tileSize)
	}
}

// DrawShadow draws every entity shadow in insertion order.
func (p *Population[E]) DrawShadow(s renderer.Surface, tileSize float32) {
	for _, e := range p.items {
		e.DrawShadow(s, tileSize)
	}
}
