package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Cykooz/tank-war/internal/config"
	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/games/artillery"
	"github.com/Cykooz/tank-war/internal/platform/tui"
	"github.com/Cykooz/tank-war/internal/registry"
	"github.com/Cykooz/tank-war/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayers    int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a battle",
	Long: `Start an artillery battle.

Controls:
  Left/Right - Rotate the gun
  Up/Down    - Change shot power
  Space      - Fire
  P          - Pause
  R          - Restart (after the round ends)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - More armor, calmer wind, bigger blasts
  normal - The standard rules
  hard   - Less armor, stronger wind, smaller blasts

Examples:
  tankwar play
  tankwar play --players 3
  tankwar play --difficulty hard --seed 12345
  tankwar play --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagPlayers, "players", 0, "Number of tanks (2-5, 0 = from config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Configure the game before creation
	artillery.SetConfigPath(flagConfig)
	if flagDifficulty != "" {
		artillery.SetDifficulty(config.ParsePreset(flagDifficulty))
	}
	artillery.SetPlayers(flagPlayers)

	// Create game instance
	game, err := registry.Create("artillery")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
