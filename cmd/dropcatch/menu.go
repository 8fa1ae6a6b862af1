package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/games/catch"
	"github.com/vovakirdan/dropcatch/internal/platform/tui"
	"github.com/vovakirdan/dropcatch/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant and difficulty picker",
	Long: `Start Drop Catch in interactive menu mode.

Pick a variant with Up/Down and a difficulty with Left/Right, then press
Enter. Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k     - Choose variant
  Left/Right/h/l  - Choose difficulty
  Enter/Space     - Play
  Tab             - Recorded rounds
  Q               - Quit

Examples:
  dropcatch menu
  dropcatch menu --fps 30
  dropcatch menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("dropcatch")
	st := openStores(logger)
	defer st.Close()

	policy := config.NewPolicy(loadGameConfig().Difficulty)
	levels := policy.Names()
	difficulty := policy.Default()

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(st.scores, cfg, levels, difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Remember size changes and the highlighted difficulty
		cfg = menuResult.Config
		if menuResult.Difficulty != "" {
			difficulty = menuResult.Difficulty
		}

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(st.scores, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if g, ok := game.(*catch.Game); ok {
			g.SetDifficulty(difficulty)
		}

		// Fresh seed for each game
		cfg.Seed = time.Now().UnixNano()

		if err := tui.Run(game, st.scores, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}
}
