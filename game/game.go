// Package game runs the sandbox: it turns input into placement and erase
// actions, advances entities, and draws each frame.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/input"
	"github.com/pthm-cable/terrarium/renderer"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// Game holds the complete sandbox state. It is owned by one goroutine.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	// Collaborators
	surface renderer.Surface
	input   input.Source
	overlay Overlay
	clock   *Clock

	// World
	level   *systems.Level
	catalog *systems.Catalog
	plants  *systems.Population[*systems.Plant]
	animals *systems.Population[*systems.Animal]

	// Input state
	selection Selection
	cursor    components.Position // tile space
	events    []input.Event

	// Rendering
	shadows     renderer.Target
	tileSize    float32
	shadowAlpha float32
	jitter      float32

	// State
	running   bool
	frame     int
	maxFrames int
	simTime   float64

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.FrameTimer
	output    *telemetry.OutputManager
	logStats  bool
}

// New creates a game from cfg. The shadow target is allocated on the surface
// and must be released with Unload.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if opts.Surface == nil {
		return nil, errors.New("game: surface is required")
	}
	if opts.Input == nil {
		return nil, errors.New("game: input source is required")
	}

	catalog, err := systems.NewCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		surface: opts.Surface,
		input:   opts.Input,
		overlay: opts.Overlay,
		clock:   NewClock(opts.Now, cfg.Derived.MaxDT32),

		level:   systems.NewLevelFromConfig(cfg, opts.Seed),
		catalog: catalog,
		plants:  systems.NewPopulation[*systems.Plant](64),
		animals: systems.NewPopulation[*systems.Animal](64),

		events: make([]input.Event, 0, 16),

		tileSize:    cfg.Derived.TileSize32,
		shadowAlpha: float32(cfg.Shadows.Alpha),
		jitter:      float32(cfg.Placement.PlantJitter),

		running:   true,
		maxFrames: opts.MaxFrames,

		collector: telemetry.NewCollector(cfg.Telemetry.WindowFrames),
		perf:      telemetry.NewFrameTimer(opts.CostNow),
		output:    output,
		logStats:  opts.LogStats || cfg.Telemetry.LogStats,
	}
	g.shadows = g.surface.NewTarget(g.surface.Width(), g.surface.Height())

	slog.Info("game_created",
		"seed", opts.Seed,
		"level_w", g.level.Width(),
		"level_h", g.level.Height(),
		"tile_size", g.tileSize,
		"tile_types", len(g.level.Kinds()),
		"plant_types", len(catalog.Plants),
		"animal_types", len(catalog.Animals),
		"output_dir", output.Dir(),
	)
	return g, nil
}

// Run steps frames until a quit request or the frame limit.
func (g *Game) Run() {
	for g.running {
		g.Frame()
	}
	slog.Info("session_end",
		"frames", g.frame,
		"sim_time", g.simTime,
		"plants", g.plants.Len(),
		"animals", g.animals.Len(),
	)
}

// Frame runs one iteration: input, update, draw. Draw always runs, even on
// the frame that requests quit.
func (g *Game) Frame() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.processInput()

	g.perf.StartPhase(telemetry.PhaseUpdate)
	dt := g.clock.Tick()
	g.update(dt)

	g.perf.StartPhase(telemetry.PhaseDraw)
	g.Draw()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.frame++
	g.simTime += float64(dt)
	g.collector.RecordFrame(dt)
	g.flushTelemetry()

	g.perf.EndFrame()

	if g.maxFrames > 0 && g.frame >= g.maxFrames {
		g.running = false
	}
}

// update advances every entity by dt seconds.
func (g *Game) update(dt float32) {
	g.plants.Update(dt, g)
	g.animals.Update(dt, g)
}

// Unload releases the shadow target and closes telemetry output.
func (g *Game) Unload() {
	if g.shadows != nil {
		g.surface.UnloadTarget(g.shadows)
		g.shadows = nil
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.output = nil
}

// Running reports whether the game has not been asked to quit.
func (g *Game) Running() bool { return g.running }

// FrameCount returns the number of completed frames.
func (g *Game) FrameCount() int { return g.frame }

// World accessors, used by placement predicates and animal updates.

func (g *Game) Level() *systems.Level      { return g.level }
func (g *Game) Catalog() *systems.Catalog  { return g.catalog }
func (g *Game) Plants() []*systems.Plant   { return g.plants.Items() }
func (g *Game) Animals() []*systems.Animal { return g.animals.Items() }
func (g *Game) Rand() *rand.Rand           { return g.rng }

// Status summarises the game for an overlay.
func (g *Game) Status() HUDStatus {
	tx, ty := g.cursor.Tile()
	return HUDStatus{
		Mode:       g.selection.Mode,
		Selected:   g.selectedName(),
		Plants:     g.plants.Len(),
		Animals:    g.animals.Len(),
		CursorX:    tx,
		CursorY:    ty,
		MouseDown:  g.selection.MouseDown.String(),
		Frame:      g.frame,
		SimTimeSec: g.simTime,
	}
}

func (g *Game) selectedName() string {
	switch g.selection.Mode {
	case ModeTiles:
		return g.level.Kinds()[g.level.TileTypeIDSelected()].Name
	case ModePlants:
		if k, ok := g.catalog.Plant(g.selection.PlantTypeID); ok {
			return k.Name
		}
	case ModeAnimals:
		if k, ok := g.catalog.Animal(g.selection.AnimalTypeID); ok {
			return k.Name
		}
	}
	return "-"
}
