package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/games/catch"
)

//go:embed static
var staticFiles embed.FS

// Connection timing.
const (
	readLimit    = 1 << 16
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// Config holds configuration for the WebSocket bridge.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Catch is the game configuration every session starts from.
	Catch config.CatchConfig

	// Difficulty is the initial preset selector.
	Difficulty string

	// HighScores is shared by all sessions. May be nil.
	HighScores catch.HighScoreStore

	// Recorder stores finished rounds. May be nil.
	Recorder ScoreRecorder

	// TickHz and FrameHz default to SimTickHz and FrameHz.
	TickHz  int
	FrameHz int

	// Seed fixes the RNG of every session; 0 means time-based.
	Seed int64
}

// Server serves the page and the /ws endpoint.
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	server   *http.Server
}

// NewServer creates a bridge. logger may be nil.
func NewServer(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "dropcatch-web",
		})
	}
	if cfg.Address == "" {
		cfg.Address = ":8080"
	}

	s := &Server{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			// The page may be served from another origin during development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: the embedded page at / and the socket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embed directive guarantees the directory exists
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleWS)

	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting web server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	codec := CodecFor(r.URL.Query().Get("codec"))
	variant := catch.VariantStandard
	if r.URL.Query().Get("game") == catch.ClassicGameID {
		variant = catch.VariantClassic
	}

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id)
	run := newRunner(id, catch.Options{
		Config:     s.config.Catch,
		Variant:    variant,
		Difficulty: s.config.Difficulty,
		Seed:       seed,
		HighScores: s.config.HighScores,
	}, codec, s.config.TickHz, s.config.FrameHz, s.config.Recorder, logger)

	logger.Info("session started", "remote", r.RemoteAddr, "codec", codec.Name())

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	writerDone := make(chan struct{})
	go s.writeLoop(conn, run, writerDone)

	run.welcome()
	go run.Run()

	s.readLoop(conn, run, codec, logger)

	run.Stop()
	<-writerDone
	logger.Info("session ended", "remote", r.RemoteAddr)
}

// readLoop decodes client messages into the runner's inbox until the
// connection fails.
func (s *Server) readLoop(conn *websocket.Conn, run *runner, codec Codec, logger *log.Logger) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("read failed", "error", err)
			}
			return
		}

		env, err := codec.Decode(msg)
		if err != nil {
			logger.Debug("bad envelope", "error", err)
			continue
		}

		select {
		case run.inbox <- command{env: env}:
		case <-run.quit:
			return
		}
	}
}

// writeLoop is the only writer on conn: queued messages and pings.
func (s *Server) writeLoop(conn *websocket.Conn, run *runner, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case b := <-run.out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(run.codec.MessageType(), b); err != nil {
				conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		case <-run.quit:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
