package catch

// EntityView is an entity's position at snapshot time.
type EntityView struct {
	ID   int     `json:"id" msgpack:"id"`
	Kind string  `json:"kind" msgpack:"kind"`
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	Size float64 `json:"size" msgpack:"size"`
}

// BasketView is the basket rectangle at snapshot time.
type BasketView struct {
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	W        float64 `json:"w" msgpack:"w"`
	H        float64 `json:"h" msgpack:"h"`
	Dragging bool    `json:"dragging" msgpack:"dragging"`
}

// Snapshot captures everything a front-end needs to draw one frame.
// Fields are primitive so it encodes directly to JSON or MessagePack.
type Snapshot struct {
	TimeMS     int64        `json:"timeMs" msgpack:"timeMs"`
	Phase      string       `json:"phase" msgpack:"phase"`
	Score      int          `json:"score" msgpack:"score"`
	Coins      int          `json:"coins" msgpack:"coins"`
	TimeLeft   int          `json:"timeLeft" msgpack:"timeLeft"`
	Goal       int          `json:"goal" msgpack:"goal"`
	HighScore  int          `json:"highScore" msgpack:"highScore"`
	Difficulty string       `json:"difficulty" msgpack:"difficulty"`
	Basket     BasketView   `json:"basket" msgpack:"basket"`
	Entities   []EntityView `json:"entities" msgpack:"entities"`
}

// Snapshot returns the current frame.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.sched.Now()
	fieldH := s.cfg.Field.Height
	live := s.tracker.Live()

	entities := make([]EntityView, 0, len(live))
	for _, e := range live {
		entities = append(entities, EntityView{
			ID:   e.ID,
			Kind: e.Kind.String(),
			X:    e.X,
			Y:    e.Y(now, fieldH),
			Size: e.Size,
		})
	}

	r := s.basket.Rect()
	return Snapshot{
		TimeMS:     now.Milliseconds(),
		Phase:      s.phase.String(),
		Score:      s.score,
		Coins:      s.coins,
		TimeLeft:   s.timeLeft,
		Goal:       s.goal,
		HighScore:  s.highScore,
		Difficulty: s.preset.Name,
		Basket: BasketView{
			X:        r.X,
			Y:        r.Y,
			W:        r.W,
			H:        r.H,
			Dragging: s.basket.Dragging(),
		},
		Entities: entities,
	}
}
