package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/platform/tui"
)

var terrainCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Browse generated landscapes",
	Long: `Open an interactive browser for the landscape generator.

Controls:
  Left/Right - Scroll the noise window
  Up/Down    - Previous/next seed
  N          - Random seed
  Esc/Q      - Exit

The --seed flag picks the starting seed.

Examples:
  tankwar terrain
  tankwar terrain --seed 12345`,
	Run: runTerrain,
}

func runTerrain(_ *cobra.Command, _ []string) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	seed := uint32(flagSeed)
	if flagSeed == 0 {
		seed = rand.Uint32()
	}

	if err := tui.RunTerrainBrowser(cfg, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
