// terrarium is a tile-based sandbox: paint terrain, place plants and let
// animals wander over it.
//
// Usage:
//
//	terrarium run                  - Open the sandbox window
//	terrarium headless             - Step the sandbox without a window
//
// Global flags:
//
//	--config <path>     - Config YAML merged over the defaults
//	--seed <value>      - RNG seed (0 = time-based)
//	--log-format <fmt>  - text or json
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagSeed      int64
	flagLogFormat string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "terrarium",
	Short: "Terrarium - a tile sandbox with plants and animals",
	Long: `Terrarium is a small sandbox: paint a tile level, place plants on it and
drop in animals that wander the tiles they can stand on.

Controls:
  1-7        - Select a tile type
  Q W E R T  - Select a plant type
  A S D      - Select an animal type
  Left drag  - Place the selection
  Right drag - Erase plants and animals
  Esc        - Quit

Examples:
  terrarium run
  terrarium run --seed 42
  terrarium headless --frames 600 --script demo.yaml --output-dir out/`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(os.Stderr, flagLogFormat, flagLogLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
}

// seed returns the --seed flag, or a time-based seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
