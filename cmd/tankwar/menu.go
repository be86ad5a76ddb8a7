package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/games/artillery"
	"github.com/Cykooz/tank-war/internal/platform/tui"
	"github.com/Cykooz/tank-war/internal/registry"
	"github.com/Cykooz/tank-war/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive main menu",
	Long: `Start the game in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select an entry.
After a battle ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select entry
  Q            - Quit

Examples:
  tankwar menu
  tankwar menu --fps 30
  tankwar menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
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

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		switch menuResult.Entry {
		case tui.MenuEntryScores:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			// User quit from scoreboard
			closeStore(store)
			return

		case tui.MenuEntryTerrain:
			if err := tui.RunTerrainBrowser(cfg, rand.Uint32()); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue

		case tui.MenuEntryPlay:
			// Show battle setup
			selection, updatedCfg, selErr := tui.RunBattleMenu(cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			cfg = updatedCfg

			// User pressed back or quit
			if selection == nil {
				continue
			}

			artillery.SetDifficulty(selection.Difficulty)
			artillery.SetPlayers(selection.Players)

			// Create game instance
			game, err := registry.Create("artillery")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				continue
			}

			// Update seed for each battle
			cfg.Seed = time.Now().UnixNano()

			// Run the game
			if err := tui.Run(game, store, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}

			// Loop back to menu

		default:
			closeStore(store)
			return
		}
	}

	closeStore(store)
}

// closeStore closes the store if it was opened.
func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
