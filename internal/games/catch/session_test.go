package catch

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/dropcatch/internal/config"
)

// memStore is an in-memory HighScoreStore.
type memStore struct {
	value    int
	readErr  error
	writeErr error
	writes   []int
}

func (m *memStore) HighScore() (int, error) {
	return m.value, m.readErr
}

func (m *memStore) SetHighScore(score int) error {
	m.writes = append(m.writes, score)
	if m.writeErr != nil {
		return m.writeErr
	}
	m.value = score
	return nil
}

// recorder collects delivered events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func newTestSession(t *testing.T, opts Options) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	if opts.Config.Field.Width == 0 {
		opts.Config = config.DefaultCatchConfig()
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	opts.Subscriber = rec.handle
	return NewSession(opts), rec
}

// silenceSpawns stops the random spawn streams so tests control every entity.
func silenceSpawns(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sp := range spawnStreams {
		s.sched.streams[sp.id] = stream{}
	}
}

// dropOnBasket places an entity that overlaps the basket on the next slice.
func dropOnBasket(s *Session, kind Kind) Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.spawner.Spawn(kind, s.sched.Now()-3800*time.Millisecond)
	e.Size = 40
	e.X = s.basket.X() + 20
	s.tracker.Add(e)
	return e
}

// catchOne drops an entity onto the basket and advances one slice.
func catchOne(s *Session, kind Kind) {
	dropOnBasket(s, kind)
	s.Advance(20 * time.Millisecond)
}

func lastResult(t *testing.T, events []Event) SessionEnded {
	t.Helper()
	for i := len(events) - 1; i >= 0; i-- {
		if ev, ok := events[i].(SessionEnded); ok {
			return ev
		}
	}
	t.Fatal("no SessionEnded event")
	return SessionEnded{}
}

func TestSessionStartsIdle(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	st := s.State()

	if st.Phase != PhaseIdle {
		t.Errorf("Phase = %v, expected idle", st.Phase)
	}
	if st.Difficulty != "normal" || st.TimeLeft != 30 || st.Goal != 15 {
		t.Errorf("idle state = %+v, expected normal preset", st)
	}
}

func TestSessionStart(t *testing.T) {
	s, rec := newTestSession(t, Options{})

	if !s.Start("hard") {
		t.Fatal("Start should succeed from idle")
	}
	st := s.State()
	if st.Phase != PhaseRunning || st.Score != 0 || st.Coins != 0 || st.TimeLeft != 20 || st.Goal != 20 {
		t.Errorf("state after Start = %+v", st)
	}
	if s.Start("easy") {
		t.Error("duplicate Start while running should be a no-op")
	}
	if s.State().Difficulty != "hard" {
		t.Error("duplicate Start should not change difficulty")
	}

	events := rec.all()
	if len(events) != 1 {
		t.Fatalf("expected exactly one event from Start, got %v", events)
	}
	if ev, ok := events[0].(StatsChanged); !ok || ev.Phase != PhaseRunning {
		t.Errorf("first event = %#v, expected running stats", events[0])
	}
}

func TestSessionUnknownDifficultyFallsBack(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start("impossible")

	if st := s.State(); st.Difficulty != "normal" || st.TimeLeft != 30 {
		t.Errorf("unknown selector should resolve to normal, got %+v", st)
	}
}

func TestScenarioEasyGoodThenHazard(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start("easy")
	silenceSpawns(s)

	catchOne(s, KindGood)
	catchOne(s, KindHazard)

	st := s.State()
	if st.Score != -2 {
		t.Errorf("score = %d, expected -2", st.Score)
	}
	if st.Coins != 0 {
		t.Errorf("coins = %d, expected 0", st.Coins)
	}
}

func TestScoreIndependentOfOrder(t *testing.T) {
	sequences := [][]Kind{
		{KindGood, KindGood, KindHazard, KindGood, KindHazard},
		{KindHazard, KindHazard, KindGood, KindGood, KindGood},
		{KindGood, KindHazard, KindGood, KindHazard, KindGood},
	}

	for _, seq := range sequences {
		s, _ := newTestSession(t, Options{})
		s.Start("normal")
		silenceSpawns(s)

		n, m := 0, 0
		for _, kind := range seq {
			catchOne(s, kind)
			if kind == KindGood {
				n++
			} else {
				m++
			}
		}
		if got := s.State().Score; got != n-3*m {
			t.Errorf("sequence %v: score = %d, expected %d", seq, got, n-3*m)
		}
	}
}

func TestCoinsOnlyCountCoins(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start("normal")
	silenceSpawns(s)

	catchOne(s, KindGood)
	before := s.State()

	catchOne(s, KindCoin)
	after := s.State()
	if after.Coins != before.Coins+1 || after.Score != before.Score {
		t.Errorf("coin catch: before %+v after %+v", before, after)
	}

	catchOne(s, KindHazard)
	if s.State().Coins != after.Coins {
		t.Error("hazard should not change coins")
	}
}

func TestScenarioChangeDifficultyMidSession(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start("normal")
	s.Advance(5 * time.Second)

	if got := s.State().TimeLeft; got != 25 {
		t.Fatalf("timeLeft after 5s = %d, expected 25", got)
	}

	s.ChangeDifficulty("hard")
	st := s.State()
	if st.TimeLeft != 20 {
		t.Errorf("timeLeft after switching to hard = %d, expected 20", st.TimeLeft)
	}
	if st.Goal != 20 || st.Difficulty != "hard" {
		t.Errorf("goal/difficulty = %d/%s, expected 20/hard", st.Goal, st.Difficulty)
	}

	s.mu.Lock()
	good := s.sched.streams[StreamGood].interval
	hazard := s.sched.streams[StreamHazard].interval
	countdown := s.sched.streams[StreamCountdown].interval
	s.mu.Unlock()
	if good != 700*time.Millisecond || hazard != 1500*time.Millisecond {
		t.Errorf("spawn intervals = %v/%v, expected 700ms/1.5s", good, hazard)
	}
	if countdown != time.Second {
		t.Errorf("countdown interval = %v, expected 1s", countdown)
	}

	// A longer preset never extends remaining time
	s.ChangeDifficulty("easy")
	if got := s.State().TimeLeft; got != 20 {
		t.Errorf("timeLeft after switching to easy = %d, expected 20", got)
	}
}

func TestChangeDifficultyKeepsProgress(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start("normal")
	silenceSpawns(s)

	catchOne(s, KindGood)
	catchOne(s, KindCoin)
	inFlight := s.spawnAtTop(KindGood)

	s.ChangeDifficulty("hard")
	st := s.State()
	if st.Score != 1 || st.Coins != 1 {
		t.Errorf("difficulty change reset progress: %+v", st)
	}
	if st.Live != 1 {
		t.Errorf("in-flight entity %d was dropped, live = %d", inFlight.ID, st.Live)
	}
}

// spawnAtTop adds an entity that will not reach the basket soon.
func (s *Session) spawnAtTop(kind Kind) Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.spawner.Spawn(kind, s.sched.Now())
	s.tracker.Add(e)
	return e
}

func TestChangeDifficultyWhileIdle(t *testing.T) {
	s, rec := newTestSession(t, Options{})
	s.ChangeDifficulty("easy")

	st := s.State()
	if st.Phase != PhaseIdle || st.TimeLeft != 40 || st.Goal != 10 {
		t.Errorf("idle difficulty change = %+v, expected easy totals", st)
	}
	if len(rec.all()) != 1 {
		t.Errorf("expected one stats event, got %v", rec.all())
	}

	s.Start(st.Difficulty)
	if got := s.State().TimeLeft; got != 40 {
		t.Errorf("start after change = %d, expected 40", got)
	}
}

func TestTimeLeftMonotonic(t *testing.T) {
	s, rec := newTestSession(t, Options{Seed: 99})
	s.Start("hard")

	prev := s.State().TimeLeft
	steps := []time.Duration{
		16 * time.Millisecond, 250 * time.Millisecond, time.Second,
		3 * time.Second, 7 * time.Millisecond, 1500 * time.Millisecond,
	}
	for i := 0; s.State().Phase == PhaseRunning; i++ {
		s.Advance(steps[i%len(steps)])
		if i == 10 {
			s.ChangeDifficulty("easy")
		}
		st := s.State()
		if st.TimeLeft > prev {
			t.Fatalf("timeLeft increased from %d to %d", prev, st.TimeLeft)
		}
		prev = st.TimeLeft
	}

	if st := s.State(); st.TimeLeft != 0 || st.Phase != PhaseEnded {
		t.Errorf("final state = %+v, expected ended at 0", st)
	}

	for _, e := range rec.all() {
		if ev, ok := e.(StatsChanged); ok && ev.TimeLeft < 0 {
			t.Errorf("negative timeLeft in event %+v", ev)
		}
	}
}

func TestEntitiesResolveExactlyOnce(t *testing.T) {
	s, rec := newTestSession(t, Options{Seed: 2024})
	s.Start("hard")

	// Chase falling entities so some are caught and some expire
	for s.State().Phase == PhaseRunning {
		snap := s.Snapshot()
		if len(snap.Entities) > 0 {
			target := snap.Entities[0]
			if target.X+target.Size/2 < snap.Basket.X+snap.Basket.W/2 {
				s.MoveLeft()
			} else {
				s.MoveRight()
			}
		}
		s.Advance(50 * time.Millisecond)
	}

	spawned := map[int]bool{}
	removed := map[int]RemoveReason{}
	caught := 0
	for _, e := range rec.all() {
		switch ev := e.(type) {
		case EntitySpawned:
			if spawned[ev.Entity.ID] {
				t.Fatalf("entity %d spawned twice", ev.Entity.ID)
			}
			spawned[ev.Entity.ID] = true
		case EntityRemoved:
			if prev, dup := removed[ev.Entity.ID]; dup {
				t.Fatalf("entity %d resolved twice (%v then %v)", ev.Entity.ID, prev, ev.Reason)
			}
			if !spawned[ev.Entity.ID] {
				t.Fatalf("entity %d removed before spawn", ev.Entity.ID)
			}
			removed[ev.Entity.ID] = ev.Reason
			if ev.Reason == ReasonCaught {
				caught++
			}
		}
	}

	if len(spawned) == 0 {
		t.Fatal("expected entities to spawn during a full round")
	}
	if len(removed) != len(spawned) {
		t.Errorf("spawned %d entities but resolved %d", len(spawned), len(removed))
	}
	if caught == 0 {
		t.Error("expected the chasing basket to catch something")
	}
	if s.State().Live != 0 {
		t.Errorf("live entities after end = %d", s.State().Live)
	}
}

func TestScenarioReachGoalWins(t *testing.T) {
	store := &memStore{}
	s, rec := newTestSession(t, Options{HighScores: store})
	s.Start("normal")
	silenceSpawns(s)

	for i := 0; i < 15; i++ {
		catchOne(s, KindGood)
	}
	s.Advance(31 * time.Second)

	ended := lastResult(t, rec.all())
	want := Result{Won: true, Score: 15, Goal: 15, HighScore: 15, NewHighScore: true, Difficulty: "normal"}
	if ended.Result != want {
		t.Errorf("result = %+v, expected %+v", ended.Result, want)
	}
	if ended.SaveErr != nil {
		t.Errorf("unexpected SaveErr: %v", ended.SaveErr)
	}
	if len(store.writes) != 1 || store.value != 15 {
		t.Errorf("store writes = %v, value = %d", store.writes, store.value)
	}
}

func TestBelowGoalLoses(t *testing.T) {
	s, rec := newTestSession(t, Options{})
	s.Start("normal")
	silenceSpawns(s)

	for i := 0; i < 14; i++ {
		catchOne(s, KindGood)
	}
	s.Advance(31 * time.Second)

	if ended := lastResult(t, rec.all()); ended.Result.Won {
		t.Errorf("score 14 of 15 should lose, got %+v", ended.Result)
	}
}

func TestHighScoreRatchet(t *testing.T) {
	tests := []struct {
		name       string
		previous   int
		catches    []Kind
		wantHigh   int
		wantWrites int
	}{
		{"higher score is saved", 1, []Kind{KindGood, KindGood, KindGood}, 3, 1},
		{"equal score is not saved", 2, []Kind{KindGood, KindGood}, 2, 0},
		{"negative score keeps previous", 5, []Kind{KindHazard}, 5, 0},
		{"first positive score", 0, []Kind{KindGood}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{value: tt.previous}
			s, rec := newTestSession(t, Options{HighScores: store})
			if s.HighScore() != tt.previous {
				t.Fatalf("HighScore() = %d, expected %d read from store", s.HighScore(), tt.previous)
			}

			s.Start("normal")
			silenceSpawns(s)
			for _, k := range tt.catches {
				catchOne(s, k)
			}
			s.Advance(31 * time.Second)

			res := lastResult(t, rec.all()).Result
			if res.HighScore != tt.wantHigh || s.HighScore() != tt.wantHigh {
				t.Errorf("high score = %d/%d, expected %d", res.HighScore, s.HighScore(), tt.wantHigh)
			}
			if len(store.writes) != tt.wantWrites {
				t.Errorf("store writes = %v, expected %d", store.writes, tt.wantWrites)
			}
		})
	}
}

func TestHighScoreSharedStore(t *testing.T) {
	store := &memStore{}
	low, lowRec := newTestSession(t, Options{HighScores: store})
	high, highRec := newTestSession(t, Options{HighScores: store})

	low.Start("normal")
	high.Start("normal")
	silenceSpawns(low)
	silenceSpawns(high)
	for i := 0; i < 5; i++ {
		catchOne(low, KindGood)
	}
	for i := 0; i < 10; i++ {
		catchOne(high, KindGood)
	}

	// The better round ends first; the later, lower one must not undo it
	high.Advance(31 * time.Second)
	low.Advance(31 * time.Second)

	if store.value != 10 {
		t.Errorf("stored high score = %d, expected 10 (writes %v)", store.value, store.writes)
	}
	if len(store.writes) != 1 {
		t.Errorf("store writes = %v, expected only the better round", store.writes)
	}

	res := lastResult(t, lowRec.all()).Result
	if res.HighScore != 10 || res.NewHighScore {
		t.Errorf("lower round result = %+v, expected high score 10 and no new record", res)
	}
	if res := lastResult(t, highRec.all()).Result; !res.NewHighScore {
		t.Error("better round should report a new high score")
	}
}

func TestHighScoreInvalidStoreValue(t *testing.T) {
	tests := []struct {
		name  string
		store *memStore
	}{
		{"read error", &memStore{value: 50, readErr: errors.New("corrupt")}},
		{"negative value", &memStore{value: -4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, Options{HighScores: tt.store})
			if got := s.HighScore(); got != 0 {
				t.Errorf("HighScore() = %d, expected 0", got)
			}
		})
	}
}

func TestHighScoreSaveError(t *testing.T) {
	store := &memStore{writeErr: errors.New("disk full")}
	s, rec := newTestSession(t, Options{HighScores: store})
	s.Start("normal")
	silenceSpawns(s)
	catchOne(s, KindGood)
	s.Advance(31 * time.Second)

	ended := lastResult(t, rec.all())
	if ended.SaveErr == nil {
		t.Error("write failure should be reported in SaveErr")
	}
	if s.HighScore() != 1 {
		t.Errorf("in-memory high score should still ratchet, got %d", s.HighScore())
	}
}

func TestScenarioReplayResets(t *testing.T) {
	s, rec := newTestSession(t, Options{Seed: 5})
	s.Start("easy")
	silenceSpawns(s)
	catchOne(s, KindGood)
	catchOne(s, KindCoin)
	s.spawnAtTop(KindHazard)
	s.Advance(41 * time.Second)

	if s.State().Phase != PhaseEnded {
		t.Fatal("round should have ended")
	}
	if !s.Replay() {
		t.Fatal("Replay should start a new round")
	}
	rec.reset()

	st := s.State()
	if st.Phase != PhaseRunning || st.Score != 0 || st.Coins != 0 || st.TimeLeft != 40 || st.Live != 0 {
		t.Errorf("state after replay = %+v", st)
	}
	if st.Difficulty != "easy" {
		t.Errorf("replay should reuse last difficulty, got %s", st.Difficulty)
	}

	// New spawns only begin one interval after the restart
	s.Advance(1199 * time.Millisecond)
	for _, e := range rec.all() {
		if _, ok := e.(EntitySpawned); ok {
			t.Fatal("entity spawned before the first interval elapsed")
		}
	}
	s.Advance(time.Millisecond)
	spawned := 0
	for _, e := range rec.all() {
		if _, ok := e.(EntitySpawned); ok {
			spawned++
		}
	}
	if spawned != 1 {
		t.Errorf("expected the first good drop at 1.2s, got %d spawns", spawned)
	}
}

func TestEndClearsLiveEntities(t *testing.T) {
	s, rec := newTestSession(t, Options{})
	s.Start("hard")
	silenceSpawns(s)
	far := s.spawnAtTop(KindGood)

	s.mu.Lock()
	s.end()
	s.mu.Unlock()

	var cleared bool
	for _, e := range s.pendingForTest() {
		rec.handle(e)
	}
	for _, e := range rec.all() {
		if ev, ok := e.(EntityRemoved); ok && ev.Entity.ID == far.ID {
			cleared = ev.Reason == ReasonCleared
		}
	}
	if !cleared {
		t.Error("end should clear live entities with reason cleared")
	}
	if s.State().Live != 0 {
		t.Error("no entity should survive the end of a round")
	}
}

// pendingForTest drains events produced by direct calls to unexported methods.
func (s *Session) pendingForTest() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

func TestMilestonesDuringSession(t *testing.T) {
	s, rec := newTestSession(t, Options{})
	s.Start("easy") // goal 10
	silenceSpawns(s)

	for i := 0; i < 10; i++ {
		catchOne(s, KindGood)
	}

	var got []Milestone
	for _, e := range rec.all() {
		if ev, ok := e.(MilestoneReached); ok {
			if ev.Text != ev.Milestone.Text() {
				t.Errorf("milestone text mismatch: %+v", ev)
			}
			got = append(got, ev.Milestone)
		}
	}
	want := []Milestone{MilestoneQuarter, MilestoneHalf, MilestoneThreeQuarter, MilestoneGoal}
	if len(got) != len(want) {
		t.Fatalf("milestones = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("milestone %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestMilestonesResetOnGoalChange(t *testing.T) {
	s, rec := newTestSession(t, Options{})
	s.Start("easy") // goal 10
	silenceSpawns(s)
	for i := 0; i < 3; i++ {
		catchOne(s, KindGood)
	}

	s.ChangeDifficulty("hard") // goal 20, 25% = 5
	rec.reset()
	for i := 0; i < 2; i++ {
		catchOne(s, KindGood)
	}

	var got []Milestone
	for _, e := range rec.all() {
		if ev, ok := e.(MilestoneReached); ok {
			got = append(got, ev.Milestone)
		}
	}
	if len(got) != 1 || got[0] != MilestoneQuarter {
		t.Errorf("after goal change expected a fresh quarter milestone, got %v", got)
	}
}

func TestInputIgnoredUnlessRunning(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	x := s.State().BasketX

	s.MoveLeft()
	s.MoveRight()
	s.MoveRight()
	if s.PointerDown(x+10, 490) {
		t.Error("PointerDown should be ignored while idle")
	}
	s.PointerMove(0, 490)
	if s.State().BasketX != x {
		t.Errorf("basket moved while idle: %v -> %v", x, s.State().BasketX)
	}

	s.Start("normal")
	s.MoveLeft()
	if got := s.State().BasketX; got != x-30 {
		t.Errorf("BasketX after MoveLeft = %v, expected %v", got, x-30)
	}
}

func TestSessionPointerDrag(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start("normal")

	if !s.PointerDown(300, 480) {
		t.Fatal("PointerDown on the basket should start a drag")
	}
	s.PointerMove(140, 480)
	if got := s.State().BasketX; got != 100 {
		t.Errorf("BasketX = %v, expected 100", got)
	}
	s.PointerUp()
	s.PointerMove(500, 480)
	if got := s.State().BasketX; got != 100 {
		t.Errorf("move after PointerUp changed BasketX to %v", got)
	}
}

func TestBasketRecenteredOnStart(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start("hard")
	s.MoveLeft()
	s.MoveLeft()
	s.Advance(21 * time.Second)

	s.Replay()
	if got := s.State().BasketX; got != 260 {
		t.Errorf("BasketX after replay = %v, expected 260", got)
	}
}

func TestClassicVariant(t *testing.T) {
	s, rec := newTestSession(t, Options{Variant: VariantClassic})
	s.Start("hard")

	st := s.State()
	if st.Difficulty != "classic" || st.TimeLeft != 30 || st.Goal != 0 {
		t.Fatalf("classic state = %+v", st)
	}

	s.ChangeDifficulty("easy")
	if s.State().TimeLeft != 30 || s.State().Difficulty != "classic" {
		t.Error("classic variant should ignore difficulty changes")
	}

	silenceSpawns(s)
	for i := 0; i < 5; i++ {
		catchOne(s, KindGood)
	}
	s.Advance(31 * time.Second)

	for _, e := range rec.all() {
		if _, ok := e.(MilestoneReached); ok {
			t.Error("classic variant should not report milestones")
		}
	}
	if res := lastResult(t, rec.all()).Result; res.Won || res.Score != 5 {
		t.Errorf("classic result = %+v, expected loss with score 5", res)
	}
	if names := s.Difficulties(); len(names) != 1 || names[0] != "classic" {
		t.Errorf("Difficulties() = %v", names)
	}
}

func TestSubscriberMayReenter(t *testing.T) {
	var s *Session
	replays := 0
	s = NewSession(Options{
		Config: config.DefaultCatchConfig(),
		Seed:   3,
		Subscriber: func(e Event) {
			if _, ok := e.(SessionEnded); ok && replays == 0 {
				replays++
				s.Replay()
			}
		},
	})

	s.Start("hard")
	done := make(chan struct{})
	go func() {
		s.Advance(21 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber calling back into the session deadlocked")
	}
	if s.State().Phase != PhaseRunning || replays != 1 {
		t.Errorf("replay from subscriber failed: phase %v, replays %d", s.State().Phase, replays)
	}
}

func TestConcurrentInput(t *testing.T) {
	s, _ := newTestSession(t, Options{Seed: 11})
	s.Start("normal")

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				switch (i + w) % 4 {
				case 0:
					s.MoveLeft()
				case 1:
					s.MoveRight()
				case 2:
					s.PointerDown(s.State().BasketX+1, 490)
					s.PointerMove(float64(i*7%600), 490)
				case 3:
					s.Advance(10 * time.Millisecond)
				}
			}
		}(w)
	}
	wg.Wait()

	x := s.State().BasketX
	if x < 0 || x > 520 {
		t.Errorf("basket out of bounds after concurrent input: %v", x)
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s, _ := newTestSession(t, Options{Seed: 12345})
		s.Start("normal")
		for i := 0; i < 300; i++ {
			if i%7 == 0 {
				s.MoveLeft()
			}
			if i%11 == 0 {
				s.MoveRight()
			}
			s.Advance(33 * time.Millisecond)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Coins != b.Coins || a.TimeLeft != b.TimeLeft {
		t.Errorf("counters differ: %+v vs %+v", a, b)
	}
	if len(a.Entities) != len(b.Entities) {
		t.Fatalf("entity count differs: %d vs %d", len(a.Entities), len(b.Entities))
	}
	for i := range a.Entities {
		if a.Entities[i] != b.Entities[i] {
			t.Errorf("entity %d differs: %+v vs %+v", i, a.Entities[i], b.Entities[i])
		}
	}
}

func TestSnapshotGeometry(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start("normal")
	silenceSpawns(s)
	e := s.spawnAtTop(KindCoin)

	s.Advance(2 * time.Second)
	snap := s.Snapshot()

	if snap.Phase != "running" || snap.TimeLeft != 28 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Basket != (BasketView{X: 260, Y: 470, W: 80, H: 30}) {
		t.Errorf("basket view = %+v", snap.Basket)
	}
	if len(snap.Entities) != 1 {
		t.Fatalf("entities = %v", snap.Entities)
	}
	got := snap.Entities[0]
	// Halfway through a 4s fall: -40 + 540/2
	if got.ID != e.ID || got.Kind != "coin" || got.Y != 230 {
		t.Errorf("entity view = %+v, expected coin at y=230", got)
	}
}
