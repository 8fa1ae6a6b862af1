package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/games/catch"
	"github.com/vovakirdan/dropcatch/internal/platform/tui"
	"github.com/vovakirdan/dropcatch/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the variant and difficulty menu.
Rounds are recorded per server, so all users share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dropcatch/host_key

Examples:
  dropcatch serve                           # Listen on :23234 with auto-generated key
  dropcatch serve --ssh :2222               # Listen on port 2222
  dropcatch serve --host-key ./my_host_key  # Use specific host key
  dropcatch serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	if !cmd.Flags().Changed("ssh") {
		flagSSHAddr = config.GetEnv(config.EnvSSHAddr, flagSSHAddr)
	}

	policy := config.NewPolicy(loadGameConfig().Difficulty)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Levels:      policy.Names(),
		Difficulty:  policy.Default(),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	// The server owns the database; sessions ratchet the high score in it
	// unless save data was requested.
	if flagStore == "gdata" {
		g, gErr := storage.OpenGdata(gdataAppName)
		if gErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open save data: %v\n", gErr)
			g = storage.NewGdataStore(nil)
		}
		catch.SetHighScoreStore(g)
	} else if db := server.Store(); db != nil {
		catch.SetHighScoreStore(db)
	}

	fmt.Printf("Starting Drop Catch SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
