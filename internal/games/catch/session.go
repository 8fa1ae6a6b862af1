package catch

import (
	"sync"
	"time"

	"github.com/vovakirdan/dropcatch/internal/config"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Variant selects between the goal-based game and the classic timed game.
type Variant int

const (
	VariantStandard Variant = iota
	VariantClassic          // Fixed preset, no goal, never won
)

// HighScoreStore persists the best score across sessions.
// Several sessions may share one store, so SetHighScore must never lower
// the persisted value.
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// Options configures a new session.
type Options struct {
	Config     config.CatchConfig
	Variant    Variant
	Difficulty string // Initial selector; empty means the configured default
	Seed       int64
	HighScores HighScoreStore // Optional
	Subscriber func(Event)    // Optional
}

// State is a point-in-time copy of the session counters.
type State struct {
	Phase      Phase
	Score      int
	Coins      int
	TimeLeft   int
	Goal       int
	HighScore  int
	Difficulty string
	Variant    Variant
	BasketX    float64
	Live       int // Number of falling entities
	Now        time.Duration
}

// Session runs one player's game: Idle, then Running, then Ended,
// and back to Running on replay.
//
// All methods are safe for concurrent use. A single mutex serializes
// input, ticks, and difficulty changes.
type Session struct {
	mu sync.Mutex

	cfg     config.CatchConfig
	policy  *config.Policy
	variant Variant
	preset  config.Preset

	phase     Phase
	score     int
	coins     int
	timeLeft  int
	goal      int
	highScore int

	sched      Scheduler
	spawner    *Spawner
	tracker    Tracker
	basket     Basket
	milestones MilestoneTracker

	store      HighScoreStore
	subscriber func(Event)
	pending    []Event
}

// NewSession creates an idle session. The high score is read from the
// store once; a missing store, a read error, or a negative value all read as 0.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg.Field.Width <= 0 {
		cfg = config.DefaultCatchConfig()
	}

	s := &Session{
		cfg:        cfg,
		policy:     config.NewPolicy(cfg.Difficulty),
		variant:    opts.Variant,
		spawner:    NewSpawner(opts.Seed, cfg.Field, cfg.Entities),
		basket:     NewBasket(cfg.Basket, cfg.Field),
		store:      opts.HighScores,
		subscriber: opts.Subscriber,
	}

	selector := opts.Difficulty
	if selector == "" {
		selector = s.policy.Default()
	}
	s.preset = s.resolve(selector)
	s.goal = s.preset.Goal
	s.timeLeft = s.preset.TotalTime
	s.milestones.Reset(s.goal)

	if s.store != nil {
		if hs, err := s.store.HighScore(); err == nil && hs > 0 {
			s.highScore = hs
		}
	}
	return s
}

// SetSubscriber replaces the event handler.
func (s *Session) SetSubscriber(fn func(Event)) {
	s.mu.Lock()
	s.subscriber = fn
	s.mu.Unlock()
}

// Start begins a new round with the given difficulty. It is a no-op
// returning false while a round is already running.
func (s *Session) Start(selector string) bool {
	var started bool
	s.do(func() {
		started = s.start(selector)
	})
	return started
}

// Replay starts a new round with the last used difficulty.
func (s *Session) Replay() bool {
	var started bool
	s.do(func() {
		started = s.start(s.preset.Name)
	})
	return started
}

// ChangeDifficulty switches presets in any phase. While running, the
// remaining time can only shrink and spawn streams pick up the new
// intervals; score, coins and falling entities are kept.
// The classic variant ignores difficulty changes.
func (s *Session) ChangeDifficulty(selector string) {
	s.do(func() {
		if s.variant == VariantClassic {
			return
		}
		s.preset = s.resolve(selector)
		s.goal = s.preset.Goal
		s.milestones.SetGoal(s.goal)

		if s.phase == PhaseRunning {
			s.timeLeft = min(s.timeLeft, s.preset.TotalTime)
			s.startSpawnStreams()
		} else {
			s.timeLeft = s.preset.TotalTime
		}
		s.emitStats()
	})
}

// Advance moves simulated time forward by dt. Time is processed in
// slices no longer than the poll interval; each slice fires due streams
// and then resolves every live entity once.
func (s *Session) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.do(func() {
		poll := s.cfg.Entities.PollInterval()
		if poll <= 0 {
			poll = dt
		}
		for dt > 0 {
			slice := min(dt, poll)
			dt -= slice
			s.sched.Advance(slice, s.fire)
			if s.phase == PhaseRunning {
				s.resolveEntities()
			}
		}
	})
}

// MoveLeft moves the basket one step left while running.
func (s *Session) MoveLeft() {
	s.do(func() {
		if s.phase == PhaseRunning {
			s.basket.MoveLeft()
		}
	})
}

// MoveRight moves the basket one step right while running.
func (s *Session) MoveRight() {
	s.do(func() {
		if s.phase == PhaseRunning {
			s.basket.MoveRight()
		}
	})
}

// PointerDown begins a drag when the point is on the basket.
func (s *Session) PointerDown(x, y float64) bool {
	var ok bool
	s.do(func() {
		if s.phase == PhaseRunning {
			ok = s.basket.PointerDown(x, y)
		}
	})
	return ok
}

// PointerMove drags the basket so the pointer keeps its grab offset.
func (s *Session) PointerMove(x, y float64) {
	s.do(func() {
		if s.phase == PhaseRunning {
			s.basket.PointerMove(x)
		}
	})
}

// PointerUp ends a drag.
func (s *Session) PointerUp() {
	s.do(func() {
		s.basket.PointerUp()
	})
}

// State returns the current counters.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Phase:      s.phase,
		Score:      s.score,
		Coins:      s.coins,
		TimeLeft:   s.timeLeft,
		Goal:       s.goal,
		HighScore:  s.highScore,
		Difficulty: s.preset.Name,
		Variant:    s.variant,
		BasketX:    s.basket.X(),
		Live:       s.tracker.Len(),
		Now:        s.sched.Now(),
	}
}

// HighScore returns the best score seen by this session.
func (s *Session) HighScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highScore
}

// Difficulties returns the selectable preset names, easiest first.
func (s *Session) Difficulties() []string {
	if s.variant == VariantClassic {
		return []string{string(config.DifficultyClassic)}
	}
	return s.policy.Names()
}

// NextDifficulty returns the preset after the current one.
func (s *Session) NextDifficulty() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Next(s.preset.Name)
}

// Field returns the logical field size.
func (s *Session) Field() config.FieldConfig {
	return s.cfg.Field
}

func (s *Session) resolve(selector string) config.Preset {
	if s.variant == VariantClassic {
		selector = string(config.DifficultyClassic)
	}
	return s.policy.Resolve(selector)
}

func (s *Session) start(selector string) bool {
	if s.phase == PhaseRunning {
		return false
	}

	s.preset = s.resolve(selector)
	s.score = 0
	s.coins = 0
	s.timeLeft = s.preset.TotalTime
	s.goal = s.preset.Goal
	s.milestones.Reset(s.goal)
	s.clearEntities()
	s.basket.Center()

	s.phase = PhaseRunning
	s.sched.StopAll()
	s.startSpawnStreams()
	s.sched.Start(StreamCountdown, time.Second)

	s.emitStats()
	return true
}

func (s *Session) startSpawnStreams() {
	s.sched.Start(StreamGood, s.preset.GoodInterval)
	s.sched.Start(StreamCoin, s.preset.CoinInterval)
	s.sched.Start(StreamHazard, s.preset.HazardInterval)
}

// fire handles one scheduler stream firing.
func (s *Session) fire(id StreamID) {
	if s.phase != PhaseRunning {
		return
	}

	if id == StreamCountdown {
		s.timeLeft--
		if s.timeLeft <= 0 {
			s.timeLeft = 0
			s.end()
			return
		}
		s.emitStats()
		return
	}

	for _, sp := range spawnStreams {
		if sp.id == id {
			e := s.spawner.Spawn(sp.kind, s.sched.Now())
			s.tracker.Add(e)
			s.emit(EntitySpawned{Entity: e})
			return
		}
	}
}

func (s *Session) resolveEntities() {
	resolved := s.tracker.Resolve(s.sched.Now(), s.cfg.Field.Height, s.basket.Rect())
	for _, r := range resolved {
		s.emit(EntityRemoved{Entity: r.Entity, Reason: r.Reason})
		if r.Reason == ReasonCaught {
			s.applyCatch(r.Entity.Kind)
		}
	}
}

func (s *Session) applyCatch(kind Kind) {
	dScore, dCoins := scoreDelta(s.cfg.Scoring, kind)
	s.score += dScore
	s.coins += dCoins
	s.emitStats()

	if dScore == 0 {
		return
	}
	if ms, ok := s.milestones.Observe(s.score); ok {
		s.emit(MilestoneReached{Milestone: ms, Text: ms.Text()})
	}
}

// end stops every stream, clears the field, ratchets the high score
// and reports the result.
func (s *Session) end() {
	s.sched.StopAll()
	s.clearEntities()
	s.basket.PointerUp()
	s.phase = PhaseEnded

	result := Result{
		Won:        s.variant == VariantStandard && s.goal > 0 && s.score >= s.goal,
		Score:      s.score,
		Coins:      s.coins,
		Goal:       s.goal,
		Difficulty: s.preset.Name,
	}

	// Another session sharing the store may have raised it since we read it
	if s.store != nil {
		if hs, err := s.store.HighScore(); err == nil && hs > s.highScore {
			s.highScore = hs
		}
	}

	var saveErr error
	if s.score > s.highScore {
		s.highScore = s.score
		result.NewHighScore = true
		if s.store != nil {
			saveErr = s.store.SetHighScore(s.score)
		}
	}
	result.HighScore = s.highScore

	s.emitStats()
	s.emit(SessionEnded{Result: result, SaveErr: saveErr})
}

func (s *Session) clearEntities() {
	for _, e := range s.tracker.Clear() {
		s.emit(EntityRemoved{Entity: e, Reason: ReasonCleared})
	}
}

func (s *Session) emitStats() {
	s.emit(StatsChanged{
		Phase:      s.phase,
		Score:      s.score,
		Coins:      s.coins,
		TimeLeft:   s.timeLeft,
		Goal:       s.goal,
		Difficulty: s.preset.Name,
	})
}

func (s *Session) emit(e Event) {
	s.pending = append(s.pending, e)
}

// do runs fn under the lock, then delivers the events it produced.
func (s *Session) do(fn func()) {
	s.mu.Lock()
	fn()
	events := s.pending
	s.pending = nil
	sub := s.subscriber
	s.mu.Unlock()

	if sub == nil {
		return
	}
	for _, e := range events {
		sub(e)
	}
}
