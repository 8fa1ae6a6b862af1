// dropcatch is a terminal and browser arcade game: catch falling drops and
// coins with a basket, dodge hazards, beat the clock.
//
// Usage:
//
//	dropcatch list              - List game variants
//	dropcatch play [game]       - Play in the terminal (default: catch)
//	dropcatch menu              - Start menu to pick a variant and difficulty
//	dropcatch serve             - Start SSH server for remote play
//	dropcatch web               - Serve the browser version over WebSocket
//	dropcatch scores [game]     - Show recorded rounds for a variant
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.dropcatch/scores.db)
//	--store <kind>    - High score store: sqlite or gdata
//	--config <path>   - Custom game config YAML
//
// Defaults may also come from DROPCATCH_* variables or a .env file.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/games/catch"
	"github.com/vovakirdan/dropcatch/internal/storage"
)

const (
	defaultDBPath = "~/.dropcatch/scores.db"
	gdataAppName  = "dropcatch"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagStore  string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dropcatch",
	Short: "Drop Catch - catch the drops, dodge the hazards",
	Long: `Drop Catch is an arcade game for the terminal and the browser.
Move the basket to catch falling drops (+1) and coins, avoid hazards (-3),
and reach the goal before the timer runs out.

Available commands:
  list     - Show game variants
  play     - Play directly in the terminal
  menu     - Interactive picker with difficulty selection
  serve    - Start SSH server for remote play
  web      - Serve the browser version
  scores   - View recorded rounds

Examples:
  dropcatch play
  dropcatch play catch_classic
  dropcatch menu
  dropcatch serve --ssh :2222
  dropcatch web --addr :8080
  dropcatch scores`,
	PersistentPreRunE: applyEnvironment,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "High score store: sqlite or gdata")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// applyEnvironment loads .env and fills flags the user did not set from
// DROPCATCH_* variables.
func applyEnvironment(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = config.GetEnv(config.EnvDB, flagDBPath)
	}
	if !flags.Changed("store") {
		flagStore = config.GetEnv(config.EnvStore, flagStore)
	}
	if !flags.Changed("config") {
		flagConfig = config.GetEnv(config.EnvConfig, flagConfig)
	}
	if flagStore != "sqlite" && flagStore != "gdata" {
		return fmt.Errorf("unknown store %q (expected sqlite or gdata)", flagStore)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive")
	}

	catch.SetConfigPath(flagConfig)
	return nil
}

// newLogger returns the CLI logger.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// stores holds the persistence chosen by --db and --store.
type stores struct {
	scores *storage.Store       // round history, nil when unavailable
	high   catch.HighScoreStore // nil when unavailable
}

// openStores opens the score database and the high score store and
// installs the latter for new games. Failures degrade to a warning.
func openStores(logger *log.Logger) stores {
	var s stores

	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
	} else {
		s.scores = db
		s.high = db
	}

	if flagStore == "gdata" {
		g, err := storage.OpenGdata(gdataAppName)
		if err != nil {
			logger.Warn("could not open save data, high score will not persist", "error", err)
			g = storage.NewGdataStore(nil)
		}
		s.high = g
	}

	if s.high != nil {
		catch.SetHighScoreStore(s.high)
	}
	return s
}

// Close releases the database.
func (s stores) Close() {
	if s.scores != nil {
		s.scores.Close()
	}
}

// loadGameConfig loads the game config for commands that need the presets.
func loadGameConfig() config.CatchConfig {
	cfg, err := config.LoadCatch(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultCatchConfig()
	}
	return cfg
}
