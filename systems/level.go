// Package systems holds the sandbox's world: the tile level, the plant and
// animal kinds, and the rules that keep entities consistent with the tiles.
package systems

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/renderer"
)

// TileType indexes Level.Kinds.
type TileType uint8

// TileKind describes one tile type.
type TileKind struct {
	Name   string
	Color  renderer.Color
	Height float32 // Shadow-casting height in tiles
}

// Band maps normalized elevation below Below to Tile.
type Band struct {
	Below float64
	Tile  TileType
}

// Level is the tile grid.
type Level struct {
	width, height int
	tiles         []TileType
	kinds         []TileKind
	selected      TileType

	shadowColor  renderer.Color
	shadowOffset float32 // tiles of offset per tile of height
}

// NewLevel creates a width x height level filled with tile 0.
func NewLevel(width, height int, kinds []TileKind) *Level {
	return &Level{
		width:        width,
		height:       height,
		tiles:        make([]TileType, width*height),
		kinds:        kinds,
		shadowColor:  renderer.Black,
		shadowOffset: 0.35,
	}
}

// NewLevelFromConfig builds the level described by cfg. When level.generate
// is set the grid is filled from noise bands seeded by seed, otherwise with
// level.fill_tile.
func NewLevelFromConfig(cfg *config.Config, seed int64) *Level {
	kinds := make([]TileKind, len(cfg.Tiles))
	for i, t := range cfg.Tiles {
		kinds[i] = TileKind{
			Name:   t.Name,
			Color:  cfg.Derived.TileColors[i],
			Height: float32(t.Height),
		}
	}

	l := NewLevel(cfg.Derived.LevelW, cfg.Derived.LevelH, kinds)
	l.shadowColor = cfg.Derived.ShadowColor
	l.shadowOffset = float32(cfg.Shadows.Offset)

	l.Fill(TileType(cfg.Derived.TileIndex[cfg.Level.FillTile]))
	if cfg.Level.Generate && len(cfg.Level.Bands) > 0 {
		bands := make([]Band, len(cfg.Level.Bands))
		for i, b := range cfg.Level.Bands {
			bands[i] = Band{Below: b.Below, Tile: TileType(cfg.Derived.TileIndex[b.Tile])}
		}
		l.Generate(seed, cfg.Level.NoiseScale, bands)
	}
	return l
}

func (l *Level) Width() int  { return l.width }
func (l *Level) Height() int { return l.height }

// Kinds returns the tile kinds, indexed by TileType.
func (l *Level) Kinds() []TileKind { return l.kinds }

// InBounds reports whether (x, y) is a tile of the level.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.width && y < l.height
}

// Tile returns the tile at (x, y); ok is false outside the level.
func (l *Level) Tile(x, y int) (t TileType, ok bool) {
	if !l.InBounds(x, y) {
		return 0, false
	}
	return l.tiles[y*l.width+x], true
}

// SetTile overwrites one tile. Returns true if the tile changed.
func (l *Level) SetTile(x, y int, t TileType) bool {
	if !l.InBounds(x, y) || int(t) >= len(l.kinds) {
		return false
	}
	i := y*l.width + x
	if l.tiles[i] == t {
		return false
	}
	l.tiles[i] = t
	return true
}

// Fill sets every tile to t.
func (l *Level) Fill(t TileType) {
	for i := range l.tiles {
		l.tiles[i] = t
	}
}

// SetTileTypeIDSelected selects the tile type placed by PlaceTileTypeIDSelected.
// Out-of-range ids are ignored.
func (l *Level) SetTileTypeIDSelected(id int) {
	if id >= 0 && id < len(l.kinds) {
		l.selected = TileType(id)
	}
}

// TileTypeIDSelected returns the selected tile type.
func (l *Level) TileTypeIDSelected() int {
	return int(l.selected)
}

// PlaceTileTypeIDSelected writes the selected tile type at (x, y).
// Returns true if the tile changed.
func (l *Level) PlaceTileTypeIDSelected(x, y int) bool {
	return l.SetTile(x, y, l.selected)
}

// Count returns how many tiles are of type t.
func (l *Level) Count(t TileType) int {
	n := 0
	for _, tt := range l.tiles {
		if tt == t {
			n++
		}
	}
	return n
}

// Generate fills the grid from two octaves of simplex noise. Each tile takes
// the first band whose Below exceeds its elevation; tiles above every band
// keep their current type.
func (l *Level) Generate(seed int64, scale float64, bands []Band) {
	noise := opensimplex.NewNormalized(seed)

	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			fx, fy := float64(x)*scale, float64(y)*scale
			e := 0.7*noise.Eval2(fx, fy) + 0.3*noise.Eval2(fx*2.3+17, fy*2.3+17)
			for _, b := range bands {
				if e < b.Below {
					l.tiles[y*l.width+x] = b.Tile
					break
				}
			}
		}
	}
}

// Draw renders every tile as a filled square.
func (l *Level) Draw(s renderer.Surface, tileSize float32) {
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			k := &l.kinds[l.tiles[y*l.width+x]]
			s.FillRect(float32(x)*tileSize, float32(y)*tileSize, tileSize, tileSize, k.Color)
		}
	}
}

// DrawShadows renders the shadows of raised tiles, offset down-right by
// their height.
func (l *Level) DrawShadows(s renderer.Surface, tileSize float32) {
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			k := &l.kinds[l.tiles[y*l.width+x]]
			if k.Height <= 0 {
				continue
			}
			off := k.Height * l.shadowOffset * tileSize
			s.FillRect(float32(x)*tileSize+off, float32(y)*tileSize+off, tileSize, tileSize, l.shadowColor)
		}
	}
}
