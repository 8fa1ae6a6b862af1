package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dropcatch/internal/games/catch"
	"github.com/vovakirdan/dropcatch/internal/registry"
	"github.com/vovakirdan/dropcatch/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show recorded rounds",
	Long: `Display the top 10 recorded rounds for a variant (default "catch")
and the persisted high score.

Examples:
  dropcatch scores
  dropcatch scores catch_classic
  dropcatch scores --store gdata`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := catch.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'dropcatch list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dropcatch play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-6s  %-5s  %-10s  %-3s  %s\n", "Rank", "Score", "Coins", "Difficulty", "Won", "Date")
		fmt.Printf("  %-4s  %-6s  %-5s  %-10s  %-3s  %s\n", "----", "-----", "-----", "----------", "---", "----")

		for i, e := range scores {
			won := "no"
			if e.Won {
				won = "yes"
			}
			fmt.Printf("  %-4d  %-6d  %-5d  %-10s  %-3s  %s\n",
				i+1, e.Score, e.Coins, e.Difficulty, won, e.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	// The persisted high score is shared by both variants
	var high catch.HighScoreStore = store
	if flagStore == "gdata" {
		g, gErr := storage.OpenGdata(gdataAppName)
		if gErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open save data: %v\n", gErr)
			return
		}
		high = g
	}

	fmt.Println()
	if best, err := high.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
