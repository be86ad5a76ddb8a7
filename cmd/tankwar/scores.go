package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cykooz/tank-war/internal/registry"
	"github.com/Cykooz/tank-war/internal/storage"
)

var flagBattles int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores and recent battles.

Examples:
  tankwar scores
  tankwar scores --battles 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagBattles, "battles", 10, "How many recent battles to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := "artillery"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tankwar list' to see available games.")
		os.Exit(1)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tankwar play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	// Show high score
	fmt.Println()
	highScore, err := store.HighScore(gameID)
	if err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}

	// Show recent battles
	battles, err := store.RecentBattles(flagBattles)
	if err != nil || len(battles) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent battles:")
	fmt.Printf("  %-8s  %-7s  %-6s  %s\n", "Winner", "Tanks", "Score", "Date")
	fmt.Printf("  %-8s  %-7s  %-6s  %s\n", "------", "-----", "-----", "----")
	for _, b := range battles {
		winner := "draw"
		if b.Winner > 0 {
			winner = fmt.Sprintf("P%d", b.Winner)
		}
		dateStr := b.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-8s  %-7d  %-6d  %s\n", winner, b.Players, b.Score, dateStr)
	}
}
