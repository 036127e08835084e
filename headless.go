package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/input"
	"github.com/pthm-cable/terrarium/renderer"
)

var (
	flagFrames int
	flagScript string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Step the sandbox without a window",
	Long: `Run the sandbox against an in-memory surface. Input comes from a
YAML script of timed key and mouse events, and frames advance on a fixed
clock at the configured target FPS, so runs with the same seed and script
are reproducible.

Examples:
  terrarium headless --frames 600
  terrarium headless --script demo.yaml --output-dir out/ --log-stats`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagFrames, "frames", 600, "Stop after N frames (0 = until the script quits, needs a quit step)")
	headlessCmd.Flags().StringVar(&flagScript, "script", "", "Input script YAML (empty = no input)")
	headlessCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory for CSV telemetry and config snapshot")
	headlessCmd.Flags().BoolVar(&flagLogStats, "log-stats", false, "Log each telemetry window")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if err := config.Init(flagConfig); err != nil {
		return err
	}
	cfg := config.Cfg()

	src, err := loadScript(flagScript)
	if err != nil {
		return err
	}
	if err := checkStop(flagFrames, src); err != nil {
		return err
	}

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rngSeed := seed()

	g, err := game.New(cfg, game.Options{
		Seed:      rngSeed,
		Surface:   renderer.NewRecorder(cfg.Screen.Width, cfg.Screen.Height),
		Input:     src,
		Now:       game.FixedStep(time.Unix(0, 0), time.Second/time.Duration(fps)),
		OutputDir: flagOutputDir,
		MaxFrames: flagFrames,
		LogStats:  flagLogStats || cfg.Telemetry.LogStats,
	})
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("headless_start",
		"seed", rngSeed,
		"frames", flagFrames,
		"script", flagScript,
		"fps", fps,
	)
	g.Run()
	return nil
}

// checkStop rejects runs that would never end: no frame limit and no quit in
// the script.
func checkStop(frames int, src *input.Script) error {
	if frames < 0 {
		return fmt.Errorf("--frames must not be negative, got %d", frames)
	}
	if frames == 0 && !src.Quits() {
		return errors.New("--frames 0 needs a --script with a quit step")
	}
	return nil
}

func loadScript(path string) (*input.Script, error) {
	if path == "" {
		return input.NewScript(nil)
	}
	return input.LoadScript(path)
}
