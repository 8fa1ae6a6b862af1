package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/platform/web"
)

var (
	flagWebAddr    string
	flagWebFrameHz int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser version",
	Long: `Serve a page that plays Drop Catch in the browser. The game runs on the
server; the page draws frames sent over a WebSocket and forwards input.

Endpoints:
  /                 - the game page
  /ws               - WebSocket, JSON envelopes {"t": type, "p": payload}
  /ws?codec=msgpack - same messages as MessagePack binary frames
  /ws?game=catch_classic - classic variant

Examples:
  dropcatch web
  dropcatch web --addr :9000
  dropcatch web --store gdata`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().IntVar(&flagWebFrameHz, "frame-hz", web.FrameHz, "Snapshot frames sent per second")
}

func runWeb(cmd *cobra.Command, _ []string) {
	if !cmd.Flags().Changed("addr") {
		flagWebAddr = config.GetEnv(config.EnvWebAddr, flagWebAddr)
	}

	logger := newLogger("dropcatch-web")
	st := openStores(logger)
	defer st.Close()

	cfg := web.Config{
		Address:    flagWebAddr,
		Catch:      loadGameConfig(),
		HighScores: st.high,
		TickHz:     flagFPS,
		FrameHz:    flagWebFrameHz,
		Seed:       flagSeed,
	}
	if st.scores != nil {
		cfg.Recorder = st.scores
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(cfg, logger)
	fmt.Printf("Open http://localhost:%s in a browser\n", portOf(cfg.Address))
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// portOf extracts the port from a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
