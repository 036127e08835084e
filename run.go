package main

import (
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/input"
	"github.com/pthm-cable/terrarium/renderer"
	"github.com/pthm-cable/terrarium/ui"
)

var (
	flagOutputDir string
	flagLogStats  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the sandbox window",
	Args:  cobra.NoArgs,
	RunE:  runWindow,
}

func init() {
	runCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory for CSV telemetry and config snapshot")
	runCmd.Flags().BoolVar(&flagLogStats, "log-stats", false, "Log each telemetry window")
}

func runWindow(cmd *cobra.Command, args []string) error {
	if err := config.Init(flagConfig); err != nil {
		return err
	}
	cfg := config.Cfg()

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape is handled as an input event
	rl.SetExitKey(0)

	g, err := game.New(cfg, game.Options{
		Seed:      seed(),
		Surface:   renderer.NewRaylibSurface(),
		Input:     input.NewRaylibSource(),
		Overlay:   newHUD(cfg),
		OutputDir: flagOutputDir,
		LogStats:  flagLogStats || cfg.Telemetry.LogStats,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return err
	}
	defer g.Unload()

	g.Run()
	return nil
}

// newHUD builds the overlay legend from the configured palette.
func newHUD(cfg *config.Config) *ui.HUD {
	swatches := func(keys string, names []string, colors []color.RGBA) []ui.Swatch {
		labels := ui.KeyLabels(keys, len(names))
		out := make([]ui.Swatch, len(labels))
		for i := range labels {
			out[i] = ui.Swatch{Key: labels[i], Name: names[i], Color: colors[i]}
		}
		return out
	}

	var tiles, plants, animals []string
	for _, t := range cfg.Tiles {
		tiles = append(tiles, t.Name)
	}
	for _, p := range cfg.Plants {
		plants = append(plants, p.Name)
	}
	for _, a := range cfg.Animals {
		animals = append(animals, a.Name)
	}

	return ui.NewHUD(
		int32(cfg.Screen.Width), int32(cfg.Screen.Height),
		swatches("1234567", tiles, cfg.Derived.TileColors),
		swatches("QWERT", plants, cfg.Derived.PlantColors),
		swatches("ASD", animals, cfg.Derived.AnimalColors),
	)
}
