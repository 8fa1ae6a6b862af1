package web

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dropcatch/internal/games/catch"
	"github.com/vovakirdan/dropcatch/internal/storage"
)

// ScoreRecorder stores finished rounds. *storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
}

// command is a decoded client message queued for the runner.
type command struct {
	env Envelope
}

// runner owns one session. Run is the only goroutine that touches it, so
// inbox commands and ticks are applied in arrival order.
type runner struct {
	id         string
	gameID     string
	session    *catch.Session
	codec      Codec
	inbox      chan command
	out        chan []byte
	quit       chan struct{}
	tickHz     int
	frameEvery int
	tick       int
	recorder   ScoreRecorder
	logger     *log.Logger
}

func newRunner(id string, opts catch.Options, codec Codec, tickHz, frameHz int, recorder ScoreRecorder, logger *log.Logger) *runner {
	if tickHz <= 0 {
		tickHz = SimTickHz
	}
	if frameHz <= 0 {
		frameHz = FrameHz
	}
	frameEvery := tickHz / frameHz
	if frameEvery <= 0 {
		frameEvery = 1
	}

	r := &runner{
		id:         id,
		gameID:     catch.GameID,
		codec:      codec,
		inbox:      make(chan command, 64),
		out:        make(chan []byte, 256),
		quit:       make(chan struct{}),
		tickHz:     tickHz,
		frameEvery: frameEvery,
		recorder:   recorder,
		logger:     logger,
	}
	if opts.Variant == catch.VariantClassic {
		r.gameID = catch.ClassicGameID
	}
	opts.Subscriber = r.onEvent
	r.session = catch.NewSession(opts)
	return r
}

// Stop ends Run. It must be called once.
func (r *runner) Stop() {
	close(r.quit)
}

// welcome sends the greeting. Called before Run starts.
func (r *runner) welcome() {
	field := r.session.Field()
	st := r.session.State()
	r.send(MsgWelcome, Welcome{
		SessionID:  r.id,
		Field:      FieldSize{W: field.Width, H: field.Height},
		Presets:    r.session.Difficulties(),
		Difficulty: st.Difficulty,
		HighScore:  st.HighScore,
	})
}

// Run drives the session until Stop.
func (r *runner) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	dt := time.Second / time.Duration(r.tickHz)
	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.inbox:
			r.handle(cmd.env)
		case <-ticker.C:
			r.session.Advance(dt)
			r.tick++
			if r.tick%r.frameEvery == 0 {
				r.send(MsgFrame, r.session.Snapshot())
			}
		}
	}
}

func (r *runner) handle(env Envelope) {
	switch env.T {
	case MsgStart:
		// An empty request keeps the preset shown on the page
		req, _ := DecodePayload[DifficultyRequest](r.codec, env)
		if req.Difficulty == "" {
			req.Difficulty = r.session.State().Difficulty
		}
		r.session.Start(req.Difficulty)
	case MsgReplay:
		r.session.Replay()
	case MsgDifficulty:
		req, err := DecodePayload[DifficultyRequest](r.codec, env)
		if err != nil {
			r.reject(err)
			return
		}
		r.session.ChangeDifficulty(req.Difficulty)
	case MsgKey:
		in, err := DecodePayload[KeyInput](r.codec, env)
		if err != nil {
			r.reject(err)
			return
		}
		switch in.Key {
		case "ArrowLeft", "a", "h":
			r.session.MoveLeft()
		case "ArrowRight", "d", "l":
			r.session.MoveRight()
		}
	case MsgPointer:
		in, err := DecodePayload[PointerInput](r.codec, env)
		if err != nil {
			r.reject(err)
			return
		}
		switch in.Phase {
		case "down":
			r.session.PointerDown(in.X, in.Y)
		case "move":
			r.session.PointerMove(in.X, in.Y)
		case "up":
			r.session.PointerUp()
		}
	default:
		r.send(MsgError, ErrorNotice{Message: "unknown message type " + env.T})
	}
}

func (r *runner) reject(err error) {
	r.logger.Debug("rejected message", "session", r.id, "error", err)
	r.send(MsgError, ErrorNotice{Message: err.Error()})
}

// onEvent runs on the Run goroutine, after the session lock is released.
func (r *runner) onEvent(e catch.Event) {
	if ended, ok := e.(catch.SessionEnded); ok {
		r.record(ended)
	}
	if t, payload := outgoing(e); t != "" {
		r.send(t, payload)
	}
}

func (r *runner) record(ev catch.SessionEnded) {
	res := ev.Result
	r.logger.Info("round ended",
		"session", r.id,
		"difficulty", res.Difficulty,
		"score", res.Score,
		"coins", res.Coins,
		"won", res.Won,
	)
	if ev.SaveErr != nil {
		r.logger.Warn("could not save high score", "session", r.id, "error", ev.SaveErr)
	}
	if r.recorder == nil {
		return
	}
	_, err := r.recorder.SaveScore(storage.ScoreEntry{
		SessionID:  r.id,
		GameID:     r.gameID,
		Difficulty: res.Difficulty,
		Score:      res.Score,
		Coins:      res.Coins,
		Goal:       res.Goal,
		Won:        res.Won,
	})
	if err != nil {
		r.logger.Warn("could not record round", "session", r.id, "error", err)
	}
}

// send encodes a message for the writer. It blocks when the writer is
// behind, until the connection goes away.
func (r *runner) send(t string, payload any) {
	b, err := r.codec.Encode(t, payload)
	if err != nil {
		r.logger.Error("encode failed", "type", t, "error", err)
		return
	}
	select {
	case r.out <- b:
	case <-r.quit:
	}
}
