// Package config provides configuration loading and access for the sandbox.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sandbox configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Level     LevelConfig     `yaml:"level"`
	Timing    TimingConfig    `yaml:"timing"`
	Shadows   ShadowsConfig   `yaml:"shadows"`
	Placement PlacementConfig `yaml:"placement"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Tiles     []TileConfig    `yaml:"tiles"`
	Plants    []PlantConfig   `yaml:"plants"`
	Animals   []AnimalConfig  `yaml:"animals"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"` // 0 = uncapped
	Title     string `yaml:"title"`
}

// LevelConfig holds tile grid parameters.
type LevelConfig struct {
	TileSize   int          `yaml:"tile_size"`   // Pixels per tile edge
	Generate   bool         `yaml:"generate"`    // Fill from noise bands instead of FillTile
	NoiseScale float64      `yaml:"noise_scale"` // Noise frequency per tile
	FillTile   string       `yaml:"fill_tile"`   // Tile used when Generate is false
	Bands      []BandConfig `yaml:"bands"`       // Elevation bands, ascending by Below
}

// BandConfig maps a normalized elevation range to a tile.
type BandConfig struct {
	Below float64 `yaml:"below"` // Upper bound (exclusive) of the band in [0, 1]
	Tile  string  `yaml:"tile"`
}

// MaxFrameDT is the largest elapsed time a single frame may simulate.
const MaxFrameDT = 1.0 / 20

// TimingConfig holds frame timing parameters.
type TimingConfig struct {
	MaxDT float64 `yaml:"max_dt"` // Upper clamp on a frame's elapsed time, seconds, in (0, MaxFrameDT]
}

// ShadowsConfig holds shadow layer parameters.
type ShadowsConfig struct {
	Alpha  float64 `yaml:"alpha"`  // Opacity of the composited shadow layer
	Offset float64 `yaml:"offset"` // Shadow offset in tiles per unit of height
	Color  string  `yaml:"color"`
}

// PlacementConfig holds entity placement parameters.
type PlacementConfig struct {
	PlantJitter float64 `yaml:"plant_jitter"` // Max offset from tile centre, tiles
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowFrames int  `yaml:"window_frames"`
	LogStats     bool `yaml:"log_stats"`
}

// TileConfig defines one tile type. Order matters: index i is selected by key i+1.
type TileConfig struct {
	Name   string  `yaml:"name"`
	Color  string  `yaml:"color"`
	Height float64 `yaml:"height"` // Shadow-casting height in tiles (0 = flat)
}

// PlantConfig defines one plant kind.
type PlantConfig struct {
	Name       string   `yaml:"name"`
	Tiles      []string `yaml:"tiles"`       // Tiles the footprint may rest on
	Radius     float64  `yaml:"radius"`      // Footprint half-extent at full size, tiles
	Spacing    float64  `yaml:"spacing"`     // Minimum centre distance to other plants
	GrowthRate float64  `yaml:"growth_rate"` // Fraction of full size gained per second
	Color      string   `yaml:"color"`
}

// AnimalConfig defines one animal kind.
type AnimalConfig struct {
	Name     string   `yaml:"name"`
	Tiles    []string `yaml:"tiles"`     // Tiles the body centre may stand on
	Radius   float64  `yaml:"radius"`    // Body circle radius, tiles
	Speed    float64  `yaml:"speed"`     // Tiles per second
	TurnRate float64  `yaml:"turn_rate"` // Max random heading change, radians per second
	Color    string   `yaml:"color"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TileSize32   float32        // Level.TileSize as float32
	MaxDT32      float32        // Timing.MaxDT as float32
	LevelW       int            // Level width in tiles, ceil(screen / tile)
	LevelH       int            // Level height in tiles
	TileColors   []color.RGBA   // Parsed Tiles[i].Color
	PlantColors  []color.RGBA   // Parsed Plants[i].Color
	AnimalColors []color.RGBA   // Parsed Animals[i].Color
	ShadowColor  color.RGBA     // Parsed Shadows.Color
	TileIndex    map[string]int // name -> index for tile lookup
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file; lists are replaced wholesale
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived validates the loaded config and calculates derived values.
func (c *Config) computeDerived() error {
	if c.Level.TileSize <= 0 {
		return fmt.Errorf("level.tile_size must be positive, got %d", c.Level.TileSize)
	}
	if c.Timing.MaxDT <= 0 || c.Timing.MaxDT > MaxFrameDT {
		return fmt.Errorf("timing.max_dt must be in (0, %g], got %g", MaxFrameDT, c.Timing.MaxDT)
	}
	if len(c.Tiles) == 0 {
		return fmt.Errorf("at least one tile type is required")
	}

	c.Derived.TileSize32 = float32(c.Level.TileSize)
	c.Derived.MaxDT32 = float32(c.Timing.MaxDT)

	// A partially visible tile at the window edge still counts
	ts := c.Level.TileSize
	c.Derived.LevelW = c.Screen.Width/ts + boolToInt(c.Screen.Width%ts > 0)
	c.Derived.LevelH = c.Screen.Height/ts + boolToInt(c.Screen.Height%ts > 0)

	c.Derived.TileIndex = make(map[string]int, len(c.Tiles))
	c.Derived.TileColors = make([]color.RGBA, len(c.Tiles))
	for i, t := range c.Tiles {
		if _, dup := c.Derived.TileIndex[t.Name]; dup {
			return fmt.Errorf("duplicate tile name %q", t.Name)
		}
		c.Derived.TileIndex[t.Name] = i
		col, err := ParseColor(t.Color)
		if err != nil {
			return fmt.Errorf("tile %q: %w", t.Name, err)
		}
		c.Derived.TileColors[i] = col
	}

	if _, ok := c.Derived.TileIndex[c.Level.FillTile]; !ok {
		return fmt.Errorf("level.fill_tile: unknown tile %q", c.Level.FillTile)
	}
	for _, b := range c.Level.Bands {
		if _, ok := c.Derived.TileIndex[b.Tile]; !ok {
			return fmt.Errorf("level.bands: unknown tile %q", b.Tile)
		}
	}

	c.Derived.PlantColors = make([]color.RGBA, len(c.Plants))
	for i, p := range c.Plants {
		if err := c.checkTileNames("plant", p.Name, p.Tiles); err != nil {
			return err
		}
		col, err := ParseColor(p.Color)
		if err != nil {
			return fmt.Errorf("plant %q: %w", p.Name, err)
		}
		c.Derived.PlantColors[i] = col
	}

	c.Derived.AnimalColors = make([]color.RGBA, len(c.Animals))
	for i, a := range c.Animals {
		if err := c.checkTileNames("animal", a.Name, a.Tiles); err != nil {
			return err
		}
		col, err := ParseColor(a.Color)
		if err != nil {
			return fmt.Errorf("animal %q: %w", a.Name, err)
		}
		c.Derived.AnimalColors[i] = col
	}

	shadow, err := ParseColor(c.Shadows.Color)
	if err != nil {
		return fmt.Errorf("shadows.color: %w", err)
	}
	c.Derived.ShadowColor = shadow

	return nil
}

func (c *Config) checkTileNames(what, name string, tiles []string) error {
	for _, t := range tiles {
		if _, ok := c.Derived.TileIndex[t]; !ok {
			return fmt.Errorf("%s %q: unknown tile %q", what, name, t)
		}
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Alpha defaults to 255.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	c := color.RGBA{A: 255}
	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, fmt.Errorf("invalid color %q", s)
	}
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
