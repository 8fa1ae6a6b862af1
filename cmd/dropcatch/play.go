package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dropcatch/internal/core"
	"github.com/vovakirdan/dropcatch/internal/games/catch"
	"github.com/vovakirdan/dropcatch/internal/platform/tui"
	"github.com/vovakirdan/dropcatch/internal/registry"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start Drop Catch in the terminal. The game defaults to "catch";
"catch_classic" is the fixed 30 second round without a goal.

Controls:
  Left/Right, h/l  - Move the basket
  Mouse drag       - Drag the basket
  Enter/Space      - Start, or play again after a round
  1/2/3, d         - Pick easy/normal/hard, or cycle difficulty
  Ctrl+S           - Save a screenshot
  Esc/B            - Leave between rounds
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 40s, goal 10
  normal - 30s, goal 15
  hard   - 20s, goal 20

Examples:
  dropcatch play
  dropcatch play --difficulty hard
  dropcatch play catch_classic
  dropcatch play --config ./my-catch.yaml --store gdata`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := catch.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'dropcatch list' to see available games.")
		os.Exit(1)
	}

	catch.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger("dropcatch")
	st := openStores(logger)

	runErr := tui.Run(game, st.scores, terminalConfig(), logger)

	// Close store before potential exit
	st.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
