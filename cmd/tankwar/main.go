// tankwar is a turn-based artillery game played in the terminal.
//
// Usage:
//
//	tankwar play             - Start a battle
//	tankwar menu             - Start the interactive menu
//	tankwar terrain          - Browse generated landscapes
//	tankwar serve            - Start SSH server for remote play
//	tankwar scores           - Show high scores
//	tankwar list             - List available games
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible battles
//	--db <path>     - Set database path (default: ~/.tankwar/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/Cykooz/tank-war/internal/games/artillery"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tankwar",
	Short: "Tank War - Artillery battles in your terminal",
	Long: `Tank War is a terminal-based artillery game. Tanks take turns
lobbing shells over a destructible landscape; the last tank standing
wins the round.

Available commands:
  play     - Start a battle directly
  menu     - Interactive main menu
  terrain  - Browse generated landscapes
  serve    - Start SSH server for remote play
  scores   - View high scores
  list     - Show all available games

Examples:
  tankwar play
  tankwar play --players 3 --difficulty hard
  tankwar menu
  tankwar serve --ssh :2222
  tankwar scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tankwar/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(terrainCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
