package systems

import (
	"fmt"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/renderer"
)

// TileSet is a bitset of tile types.
type TileSet uint64

// Has reports whether t is in the set.
func (s TileSet) Has(t TileType) bool {
	return t < 64 && s&(1<<t) != 0
}

// PlantKind describes one plant type.
type PlantKind struct {
	Name       string
	Tiles      TileSet
	Radius     float32 // footprint half-extent, tiles
	Spacing    float32 // minimum centre distance to other plants
	GrowthRate float32
	Color      renderer.Color
}

// AnimalKind describes one animal type.
type AnimalKind struct {
	Name     string
	Tiles    TileSet
	Radius   float32
	Speed    float32
	TurnRate float32
	Color    renderer.Color
}

// Catalog holds the plant and animal kinds, indexed by type id.
type Catalog struct {
	Plants      []PlantKind
	Animals     []AnimalKind
	ShadowColor renderer.Color
}

// NewCatalog resolves the kinds in cfg against its tile names.
func NewCatalog(cfg *config.Config) (*Catalog, error) {
	if len(cfg.Tiles) > 64 {
		return nil, fmt.Errorf("at most 64 tile types are supported, got %d", len(cfg.Tiles))
	}

	cat := &Catalog{
		Plants:      make([]PlantKind, len(cfg.Plants)),
		Animals:     make([]AnimalKind, len(cfg.Animals)),
		ShadowColor: cfg.Derived.ShadowColor,
	}

	for i, p := range cfg.Plants {
		tiles, err := tileSet(cfg, p.Tiles)
		if err != nil {
			return nil, fmt.Errorf("plant %q: %w", p.Name, err)
		}
		cat.Plants[i] = PlantKind{
			Name:       p.Name,
			Tiles:      tiles,
			Radius:     float32(p.Radius),
			Spacing:    float32(p.Spacing),
			GrowthRate: float32(p.GrowthRate),
			Color:      cfg.Derived.PlantColors[i],
		}
	}

	for i, a := range cfg.Animals {
		tiles, err := tileSet(cfg, a.Tiles)
		if err != nil {
			return nil, fmt.Errorf("animal %q: %w", a.Name, err)
		}
		cat.Animals[i] = AnimalKind{
			Name:     a.Name,
			Tiles:    tiles,
			Radius:   float32(a.Radius),
			Speed:    float32(a.Speed),
			TurnRate: float32(a.TurnRate),
			Color:    cfg.Derived.AnimalColors[i],
		}
	}

	return cat, nil
}

func tileSet(cfg *config.Config, names []string) (TileSet, error) {
	var s TileSet
	for _, n := range names {
		idx, ok := cfg.Derived.TileIndex[n]
		if !ok {
			return 0, fmt.Errorf("unknown tile %q", n)
		}
		s |= 1 << uint(idx)
	}
	return s, nil
}

// Plant returns the plant kind for id.
func (c *Catalog) Plant(id int) (*PlantKind, bool) {
	if id < 0 || id >= len(c.Plants) {
		return nil, false
	}
	return &c.Plants[id], true
}

// Animal returns the animal kind for id.
func (c *Catalog) Animal(id int) (*AnimalKind, bool) {
	if id < 0 || id >= len(c.Animals) {
		return nil, false
	}
	return &c.Animals[id], true
}
