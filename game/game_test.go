package game

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/input"
	"github.com/pthm-cable/terrarium/renderer"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// Kind ids from config/defaults.yaml.
const (
	tileGrass = 0
	tileSand  = 2

	plantTuft = 0
	plantBush = 1
	plantPine = 4

	animalRabbit = 0
	animalDeer   = 1
)

// stoppedClock never advances, so entities stay where they were placed.
func stoppedClock() time.Time { return time.Unix(0, 0) }

// newTestGame builds a game over an all-grass 20x12 level driven by steps.
func newTestGame(t *testing.T, steps []input.Step, tweak func(*config.Config, *Options)) (*Game, *renderer.Recorder) {
	t.Helper()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Level.Generate = false

	script, err := input.NewScript(steps)
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	rec := renderer.NewRecorder(cfg.Screen.Width, cfg.Screen.Height)
	opts := Options{Seed: 1, Surface: rec, Input: script, Now: stoppedClock}
	if tweak != nil {
		tweak(cfg, &opts)
	}

	g, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(g.Unload)
	return g, rec
}

func (g *Game) placePlant(typeID int, x, y float32) *systems.Plant {
	p := systems.NewPlant(g.catalog, typeID, components.Position{X: x, Y: y})
	g.plants.Add(p)
	return p
}

func (g *Game) placeAnimal(typeID int, x, y float32) *systems.Animal {
	a := systems.NewAnimal(g.catalog, typeID, components.Position{X: x, Y: y}, 0)
	g.animals.Add(a)
	return a
}

func TestTilePlacementSweepsPlants(t *testing.T) {
	ts := 64
	g, _ := newTestGame(t, []input.Step{
		{Frame: 0, Event: "key", Key: "3"},
		{Frame: 0, Event: "move", X: float32(ts*3 + 2), Y: float32(ts*1 + 5)},
		{Frame: 0, Event: "mouse_down", Button: "left"},
		{Frame: 1, Event: "mouse_up", Button: "left"},
	}, nil)
	g.placePlant(plantBush, 3.5, 1.5)

	g.Frame()

	if tile, _ := g.level.Tile(3, 1); tile != tileSand {
		t.Errorf("tile (3, 1) = %d, want sand", tile)
	}
	if g.level.TileTypeIDSelected() != tileSand || g.selection.Mode != ModeTiles {
		t.Errorf("selection = %+v, tile %d, want tiles/sand", g.selection, g.level.TileTypeIDSelected())
	}
	if g.plants.Len() != 0 {
		t.Errorf("bush on sand survived the sweep")
	}

	g.Frame()
	if g.selection.MouseDown != input.ButtonNone {
		t.Errorf("MouseDown = %v after release", g.selection.MouseDown)
	}
}

func TestAnimalPlacement(t *testing.T) {
	g, _ := newTestGame(t, []input.Step{
		{Frame: 0, Event: "key", Key: "s"},
		{Frame: 0, Event: "move", X: 288, Y: 160},
		{Frame: 0, Event: "mouse_down", Button: "left"},
	}, nil)

	g.Frame()

	if g.animals.Len() != 1 {
		t.Fatalf("animals = %d, want 1", g.animals.Len())
	}
	a := g.Animals()[0]
	if a.TypeID != animalDeer {
		t.Errorf("TypeID = %d, want deer", a.TypeID)
	}
	if a.Pos != (components.Position{X: 4.5, Y: 2.5}) {
		t.Errorf("Pos = %v, want (4.5, 2.5)", a.Pos)
	}
	if a.Rot.Heading < 0 || a.Rot.Heading >= 2*math.Pi {
		t.Errorf("heading %v outside [0, 2pi)", a.Rot.Heading)
	}

	// Still held: the same spot now overlaps the first deer
	g.Frame()
	if g.animals.Len() != 1 {
		t.Errorf("animals = %d after held frame, want 1", g.animals.Len())
	}
	if got := g.collector.Count(telemetry.EventAnimalDenied); got != 1 {
		t.Errorf("animal denials = %d, want 1", got)
	}
}

func TestPlantPlacementJitterAndSpacing(t *testing.T) {
	g, _ := newTestGame(t, []input.Step{
		{Frame: 0, Event: "key", Key: "w"},
		{Frame: 0, Event: "move", X: 64*3 + 10, Y: 64 + 40},
		{Frame: 0, Event: "mouse_down", Button: "left"},
	}, nil)

	g.Frame()
	g.Frame()

	if g.plants.Len() != 1 {
		t.Fatalf("plants = %d, want 1 (second blocked by spacing)", g.plants.Len())
	}
	p := g.Plants()[0]
	if p.TypeID != plantBush {
		t.Errorf("TypeID = %d, want bush", p.TypeID)
	}
	if math.Abs(float64(p.Pos.X-3.5)) > 0.1+1e-6 || math.Abs(float64(p.Pos.Y-1.5)) > 0.1+1e-6 {
		t.Errorf("Pos = %v, want within 0.1 of (3.5, 1.5)", p.Pos)
	}
}

func TestPlantJitterBounds(t *testing.T) {
	g, _ := newTestGame(t, nil, nil)

	jittered := false
	for y := 0; y < 12; y++ {
		for x := 0; x < 20; x++ {
			cursor := components.Position{X: float32(x) + 0.9, Y: float32(y) + 0.1}
			if !g.addPlant(plantTuft, cursor) {
				t.Fatalf("tuft rejected at tile (%d, %d)", x, y)
			}
		}
	}

	for _, p := range g.Plants() {
		tx, ty := p.Pos.Tile()
		dx := float64(p.Pos.X) - (float64(tx) + 0.5)
		dy := float64(p.Pos.Y) - (float64(ty) + 0.5)
		if math.Abs(dx) > 0.1+1e-6 || math.Abs(dy) > 0.1+1e-6 {
			t.Errorf("plant at %v is %.3f, %.3f from its cell centre", p.Pos, dx, dy)
		}
		if dx != 0 || dy != 0 {
			jittered = true
		}
	}
	if !jittered {
		t.Error("no plant was jittered")
	}
}

func TestRightClickErase(t *testing.T) {
	g, _ := newTestGame(t, []input.Step{
		{Frame: 0, Event: "move", X: 600, Y: 600},
		{Frame: 0, Event: "mouse_down", Button: "right"},
		{Frame: 1, Event: "move", X: 10.5 * 64, Y: 5.6 * 64},
	}, nil)
	bush := g.placePlant(plantBush, 3.5, 1.5)
	g.placeAnimal(animalDeer, 10.5, 5.5)

	// Nothing under the cursor
	g.Frame()
	if g.plants.Len() != 1 || g.animals.Len() != 1 {
		t.Fatalf("miss changed collections: %d plants, %d animals", g.plants.Len(), g.animals.Len())
	}

	g.Frame()
	if g.animals.Len() != 0 {
		t.Error("deer under cursor not erased")
	}
	if g.plants.Len() != 1 || g.Plants()[0] != bush {
		t.Error("bush away from cursor was erased")
	}
}

func TestRightDragErasesPath(t *testing.T) {
	g, _ := newTestGame(t, []input.Step{
		{Frame: 0, Event: "move", X: 160, Y: 96},
		{Frame: 0, Event: "mouse_down", Button: "right"},
		{Frame: 1, Event: "move", X: 224, Y: 96},
		{Frame: 2, Event: "move", X: 288, Y: 96},
	}, nil)
	for _, x := range []float32{2.5, 3.5, 4.5, 6.5} {
		g.placePlant(plantTuft, x, 1.5)
	}

	for i := 0; i < 3; i++ {
		g.Frame()
	}

	if g.plants.Len() != 1 || g.Plants()[0].Pos.X != 6.5 {
		t.Errorf("plants left = %d, want only the one off the path", g.plants.Len())
	}
}

func TestLatchPriority(t *testing.T) {
	g, _ := newTestGame(t, []input.Step{
		{Frame: 0, Event: "key", Key: "a"},
		{Frame: 0, Event: "move", X: 100, Y: 100},
		{Frame: 0, Event: "mouse_down", Button: "left"},
		{Frame: 1, Event: "mouse_down", Button: "right"},
		{Frame: 2, Event: "mouse_up", Button: "right"},
		{Frame: 3, Event: "mouse_down", Button: "right"},
	}, nil)

	want := []input.Button{input.ButtonLeft, input.ButtonLeft, input.ButtonNone, input.ButtonRight}
	for i, w := range want {
		g.Frame()
		if g.selection.MouseDown != w {
			t.Fatalf("frame %d: MouseDown = %v, want %v", i, g.selection.MouseDown, w)
		}
	}

	// The right press while left was held did not erase the rabbit; the
	// final right press does.
	if g.animals.Len() != 0 {
		t.Errorf("animals = %d after right press, want 0", g.animals.Len())
	}
	if g.collector.Count(telemetry.EventAnimalPlaced) != 1 || g.collector.Count(telemetry.EventAnimalErased) != 1 {
		t.Errorf("placed %d, erased %d, want 1 and 1",
			g.collector.Count(telemetry.EventAnimalPlaced), g.collector.Count(telemetry.EventAnimalErased))
	}
}

func TestEscapeQuitsAfterDrawing(t *testing.T) {
	g, rec := newTestGame(t, []input.Step{
		{Frame: 0, Event: "key", Key: "escape"},
	}, nil)

	g.Frame()

	if g.Running() {
		t.Error("game still running after escape")
	}
	if rec.Frames() != 1 {
		t.Errorf("presented %d frames, want 1", rec.Frames())
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	g, rec := newTestGame(t, []input.Step{
		{Frame: 2, Event: "quit"},
	}, nil)

	g.Run()

	if g.FrameCount() != 3 || rec.Frames() != 3 {
		t.Errorf("ran %d frames, presented %d, want 3", g.FrameCount(), rec.Frames())
	}
}

func TestRunFrameLimit(t *testing.T) {
	g, rec := newTestGame(t, nil, func(_ *config.Config, o *Options) { o.MaxFrames = 5 })

	g.Run()

	if rec.Frames() != 5 {
		t.Errorf("presented %d frames, want 5", rec.Frames())
	}
}

func TestDrawOrder(t *testing.T) {
	g, rec := newTestGame(t, nil, nil)
	g.placePlant(plantBush, 3.5, 1.5)
	g.placeAnimal(animalDeer, 8.5, 4.5)

	g.Frame()
	ops := rec.Ops()

	if ops[0].Kind != renderer.OpBeginFrame || ops[1].Kind != renderer.OpClear || ops[1].Color != renderer.Black {
		t.Fatalf("frame does not start with begin, clear black: %v %v", ops[0].Kind, ops[1].Kind)
	}
	for i := 2; i < 2+20*12; i++ {
		if ops[i].Kind != renderer.OpRect || ops[i].Target != nil {
			t.Fatalf("op %d = %v, want main-target tile rect", i, ops[i].Kind)
		}
	}

	rest := ops[2+20*12:]
	want := []struct {
		kind   renderer.OpKind
		shadow bool
	}{
		{renderer.OpSetTarget, true},
		{renderer.OpClear, true},
		{renderer.OpEllipse, true}, // plant shadow
		{renderer.OpEllipse, true}, // animal shadow
		{renderer.OpSetTarget, false},
		{renderer.OpBlit, false},
		{renderer.OpCircle, false}, // plant body
		{renderer.OpCircle, false},
		{renderer.OpCircle, false}, // animal body
		{renderer.OpTriangle, false},
		{renderer.OpPresent, false},
	}
	if len(rest) != len(want) {
		t.Fatalf("got %d ops after tiles, want %d", len(rest), len(want))
	}
	for i, w := range want {
		op := rest[i]
		if op.Kind != w.kind || (op.Target != nil) != w.shadow {
			t.Errorf("op %d = %v (shadow target %v), want %v (shadow target %v)",
				i, op.Kind, op.Target != nil, w.kind, w.shadow)
		}
	}
	if rest[1].Color != renderer.Transparent {
		t.Errorf("shadow target cleared to %v, want transparent", rest[1].Color)
	}
	if math.Abs(float64(rest[5].Alpha-0.6)) > 1e-6 {
		t.Errorf("blit alpha = %v, want 0.6", rest[5].Alpha)
	}
}

// checkTiles fails the test if any entity stands on unsuitable ground.
func checkTiles(t *testing.T, g *Game, frame int) {
	t.Helper()
	for _, p := range g.Plants() {
		if !p.TilesUnderOK(g.level) {
			t.Fatalf("frame %d: %s at %v on unsuitable tiles", frame, p.Kind().Name, p.Pos)
		}
	}
	for _, a := range g.Animals() {
		if !a.TilesUnderOK(g.level) {
			t.Fatalf("frame %d: %s at %v on unsuitable tiles", frame, a.Kind().Name, a.Pos)
		}
	}
}

func TestEntitiesStayOnSuitableTiles(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var steps []input.Step
	for i := 0; i < 300; i++ {
		steps = append(steps,
			input.Step{Frame: 2 * i, Event: "key", Key: strconv.Itoa(1 + rng.Intn(7))},
			input.Step{Frame: 2 * i, Event: "move", X: rng.Float32() * 1280, Y: rng.Float32() * 720},
			input.Step{Frame: 2 * i, Event: "mouse_down", Button: "left"},
			input.Step{Frame: 2*i + 1, Event: "mouse_up", Button: "left"},
		)
	}

	g, _ := newTestGame(t, steps, func(_ *config.Config, o *Options) {
		o.Now = FixedStep(time.Unix(0, 0), 20*time.Millisecond)
	})

	for y := 0; y < 12; y++ {
		for x := 0; x < 20; x++ {
			c := components.Position{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			switch (x + y) % 4 {
			case 0:
				g.addPlant(plantTuft, c)
			case 1:
				g.addPlant(plantPine, c)
			case 2:
				g.addAnimal(animalRabbit, c)
			}
		}
	}
	startPlants, startAnimals := g.plants.Len(), g.animals.Len()

	for i := 0; i < 600; i++ {
		g.Frame()
		checkTiles(t, g, i)
	}

	if g.plants.Len() >= startPlants || g.animals.Len() >= startAnimals {
		t.Errorf("painting removed nothing: plants %d -> %d, animals %d -> %d",
			startPlants, g.plants.Len(), startAnimals, g.animals.Len())
	}
}

func TestStatus(t *testing.T) {
	g, _ := newTestGame(t, []input.Step{
		{Frame: 0, Event: "key", Key: "w"},
		{Frame: 0, Event: "move", X: 130, Y: 70},
		{Frame: 1, Event: "key", Key: "5"},
	}, nil)

	g.Frame()
	st := g.Status()
	if st.Mode != ModePlants || st.Selected != "bush" {
		t.Errorf("status = %+v, want plants/bush", st)
	}
	if st.CursorX != 2 || st.CursorY != 1 {
		t.Errorf("cursor tile = (%d, %d), want (2, 1)", st.CursorX, st.CursorY)
	}

	g.Frame()
	if st := g.Status(); st.Mode != ModeTiles || st.Selected != "rock" {
		t.Errorf("status = %+v, want tiles/rock", st)
	}
}

type recordingOverlay struct {
	calls int
	last  HUDStatus
}

func (o *recordingOverlay) Draw(st HUDStatus) {
	o.calls++
	o.last = st
}

func TestOverlayDrawnEachFrame(t *testing.T) {
	ov := &recordingOverlay{}
	g, _ := newTestGame(t, nil, func(_ *config.Config, o *Options) { o.Overlay = ov })
	g.placeAnimal(animalDeer, 4.5, 4.5)

	g.Frame()
	g.Frame()

	if ov.calls != 2 || ov.last.Animals != 1 {
		t.Errorf("overlay calls %d, animals %d, want 2 and 1", ov.calls, ov.last.Animals)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	if _, err := New(cfg, Options{Input: &input.Script{}}); err == nil {
		t.Error("New accepted a nil surface")
	}
	if _, err := New(cfg, Options{Surface: renderer.NewRecorder(10, 10)}); err == nil {
		t.Error("New accepted a nil input source")
	}
}

func TestUnloadReleasesShadowTarget(t *testing.T) {
	g, rec := newTestGame(t, nil, nil)
	if rec.LiveTargets() != 1 {
		t.Fatalf("live targets = %d after New, want 1", rec.LiveTargets())
	}
	g.Unload()
	if rec.LiveTargets() != 0 {
		t.Errorf("live targets = %d after Unload, want 0", rec.LiveTargets())
	}
}

func TestTelemetryOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g, _ := newTestGame(t, []input.Step{
		{Frame: 0, Event: "key", Key: "q"},
		{Frame: 0, Event: "move", X: 96, Y: 96},
		{Frame: 0, Event: "mouse_down", Button: "left"},
	}, func(cfg *config.Config, o *Options) {
		cfg.Telemetry.WindowFrames = 2
		o.OutputDir = dir
		o.MaxFrames = 4
	})

	g.Run()
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2 windows", len(lines))
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestFrameCostOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g, _ := newTestGame(t, nil, func(cfg *config.Config, o *Options) {
		cfg.Telemetry.WindowFrames = 2
		o.OutputDir = dir
		o.MaxFrames = 4
		// Every timing sample is 1 ms after the previous one
		o.CostNow = FixedStep(time.Unix(0, 0), time.Millisecond)
	})

	g.Run()
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	var rows []telemetry.FrameCost
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing perf.csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("perf.csv has %d rows, want 2", len(rows))
	}

	// A window closes during its last frame, so that frame counts toward
	// the next one
	if rows[0].Frames != 1 || rows[1].Frames != 2 {
		t.Errorf("frames = %d, %d, want 1, 2", rows[0].Frames, rows[1].Frames)
	}
	last := rows[1]
	if last.WindowEnd != 4 || last.AvgFrameUS != 5000 {
		t.Errorf("last window = %+v, want window_end 4, avg 5000 us", last)
	}
	for name, pct := range map[string]float64{
		"input":     last.InputPct,
		"update":    last.UpdatePct,
		"draw":      last.DrawPct,
		"telemetry": last.TelemetryPct,
	} {
		if math.Abs(pct-20) > 1e-6 {
			t.Errorf("%s = %v%%, want 20", name, pct)
		}
	}
	if math.Abs(last.FPS-1000.0/6) > 1e-3 {
		t.Errorf("fps = %v, want %v", last.FPS, 1000.0/6)
	}
}
