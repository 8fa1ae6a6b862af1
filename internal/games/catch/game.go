// Package catch implements Drop Catch: a basket catches falling drops and
// coins while dodging hazards before the clock runs out.
//
// Session is the game core and knows nothing about terminals or sockets.
// Game adapts a Session to the registry so the terminal front-ends can host it.
package catch

import (
	"time"

	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/core"
	"github.com/vovakirdan/dropcatch/internal/registry"
)

// Game IDs registered by this package.
const (
	GameID        = "catch"
	ClassicGameID = "catch_classic"
)

// milestoneShowTime is how long a milestone message stays on screen.
const milestoneShowTime = 2500 * time.Millisecond

var (
	configPath       string
	difficultyPreset string
	highScores       HighScoreStore
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the initial difficulty selector.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetHighScoreStore sets the store new games read and ratchet the high score in.
func SetHighScoreStore(store HighScoreStore) {
	highScores = store
}

// Game hosts a Session behind the registry.Game interface.
type Game struct {
	id      string
	title   string
	variant Variant
	runtime core.RuntimeConfig

	difficulty string
	session    *Session

	milestone      string
	milestoneUntil time.Duration
	result         *Result
	saveErr        error
}

// New creates a standard Drop Catch game.
func New() *Game {
	return &Game{id: GameID, title: "Drop Catch", variant: VariantStandard}
}

// NewClassic creates the fixed 30 second variant without a goal.
func NewClassic() *Game {
	return &Game{id: ClassicGameID, title: "Drop Catch Classic", variant: VariantClassic}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset creates a fresh idle session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}

	cfg, err := config.LoadCatch(configPath)
	if err != nil {
		cfg = config.DefaultCatchConfig()
	}

	g.milestone = ""
	g.milestoneUntil = 0
	g.result = nil
	g.saveErr = nil

	selector := g.difficulty
	if selector == "" {
		selector = difficultyPreset
	}

	g.session = NewSession(Options{
		Config:     cfg,
		Variant:    g.variant,
		Difficulty: selector,
		Seed:       runtime.Seed,
		HighScores: highScores,
		Subscriber: g.onEvent,
	})
}

// SetDifficulty picks the preset for sessions created by later Resets,
// overriding SetDifficultyPreset for this game only.
func (g *Game) SetDifficulty(selector string) {
	g.difficulty = selector
}

// Resize updates the screen size used to map pointer cells without
// disturbing the running session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// Session returns the hosted session.
func (g *Game) Session() *Session {
	return g.session
}

// SaveErr returns the error from persisting the last high score, if any.
func (g *Game) SaveErr() error {
	return g.saveErr
}

// Step applies input and advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(g.runtime)
	}
	s := g.session

	switch {
	case in.Has(core.ActionEasy):
		s.ChangeDifficulty(string(config.DifficultyEasy))
	case in.Has(core.ActionNormal):
		s.ChangeDifficulty(string(config.DifficultyNormal))
	case in.Has(core.ActionHard):
		s.ChangeDifficulty(string(config.DifficultyHard))
	case in.Has(core.ActionDifficultyNext):
		s.ChangeDifficulty(s.NextDifficulty())
	}

	if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
		if s.Replay() {
			g.result = nil
			g.saveErr = nil
			g.milestone = ""
		}
	}

	if in.Has(core.ActionLeft) {
		s.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		s.MoveRight()
	}

	if len(in.Pointer) > 0 {
		l := newLayout(g.runtime.ScreenW, g.runtime.ScreenH, s.Field())
		for _, p := range in.Pointer {
			fx, fy := l.toField(p.X, p.Y)
			switch p.Phase {
			case core.PointerDown:
				s.PointerDown(fx, fy)
			case core.PointerMove:
				s.PointerMove(fx, fy)
			case core.PointerUp:
				s.PointerUp()
			}
		}
	}

	s.Advance(time.Second / time.Duration(g.runtime.TickRate))

	if g.milestone != "" && s.State().Now >= g.milestoneUntil {
		g.milestone = ""
	}

	return core.StepResult{State: g.State()}
}

// onEvent keeps the display-only state the session does not own.
func (g *Game) onEvent(e Event) {
	switch ev := e.(type) {
	case MilestoneReached:
		g.milestone = ev.Text
		g.milestoneUntil = g.session.State().Now + milestoneShowTime
	case SessionEnded:
		res := ev.Result
		g.result = &res
		g.saveErr = ev.SaveErr
		g.milestone = ""
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	gs := core.GameState{
		Score:      st.Score,
		Coins:      st.Coins,
		Goal:       st.Goal,
		TimeLeft:   st.TimeLeft,
		Difficulty: st.Difficulty,
		GameOver:   st.Phase == PhaseEnded,
		Running:    st.Phase == PhaseRunning,
	}
	if g.result != nil {
		gs.Won = g.result.Won
	}
	return gs
}

// Register the game variants with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ClassicGameID, func() registry.Game {
		return NewClassic()
	})
}
