// Package web bridges a browser page to a Drop Catch session over WebSocket.
//
// Every connection owns one session driven by a single runner goroutine;
// the page only draws what it is sent and forwards input.
package web

import "github.com/vovakirdan/dropcatch/internal/games/catch"

// Client -> server message types.
const (
	MsgStart      = "start"
	MsgReplay     = "replay"
	MsgDifficulty = "difficulty"
	MsgKey        = "key"
	MsgPointer    = "pointer"
)

// Server -> client message types.
const (
	MsgWelcome   = "welcome"
	MsgStats     = "stats"
	MsgSpawn     = "spawn"
	MsgRemove    = "remove"
	MsgMilestone = "milestone"
	MsgResult    = "result"
	MsgFrame     = "frame"
	MsgError     = "error"
)

// Default rates of the runner loop.
const (
	SimTickHz = 60
	FrameHz   = 20
)

// DifficultyRequest is the payload of start and difficulty.
type DifficultyRequest struct {
	Difficulty string `json:"difficulty,omitempty" msgpack:"difficulty,omitempty"`
}

// KeyInput is a discrete key press, "ArrowLeft" or "ArrowRight".
type KeyInput struct {
	Key string `json:"key" msgpack:"key"`
}

// PointerInput is a pointer sample in field coordinates.
type PointerInput struct {
	Phase string  `json:"phase" msgpack:"phase"` // down, move or up
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
}

// FieldSize is the logical playfield the page scales to its canvas.
type FieldSize struct {
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

// Welcome is the first message on every connection.
type Welcome struct {
	SessionID  string    `json:"sessionId" msgpack:"sessionId"`
	Field      FieldSize `json:"field" msgpack:"field"`
	Presets    []string  `json:"presets" msgpack:"presets"`
	Difficulty string    `json:"difficulty" msgpack:"difficulty"`
	HighScore  int       `json:"highScore" msgpack:"highScore"`
}

// Stats mirrors catch.StatsChanged.
type Stats struct {
	Phase      string `json:"phase" msgpack:"phase"`
	Score      int    `json:"score" msgpack:"score"`
	Coins      int    `json:"coins" msgpack:"coins"`
	TimeLeft   int    `json:"timeLeft" msgpack:"timeLeft"`
	Goal       int    `json:"goal" msgpack:"goal"`
	Difficulty string `json:"difficulty" msgpack:"difficulty"`
}

// Removed announces that an entity left the field.
type Removed struct {
	ID     int    `json:"id" msgpack:"id"`
	Kind   string `json:"kind" msgpack:"kind"`
	Reason string `json:"reason" msgpack:"reason"`
}

// MilestoneNotice carries a progress message.
type MilestoneNotice struct {
	Percent int    `json:"percent" msgpack:"percent"`
	Text    string `json:"text" msgpack:"text"`
}

// ResultNotice mirrors catch.Result.
type ResultNotice struct {
	Won          bool   `json:"won" msgpack:"won"`
	Score        int    `json:"score" msgpack:"score"`
	Coins        int    `json:"coins" msgpack:"coins"`
	Goal         int    `json:"goal" msgpack:"goal"`
	HighScore    int    `json:"highScore" msgpack:"highScore"`
	NewHighScore bool   `json:"newHighScore" msgpack:"newHighScore"`
	Difficulty   string `json:"difficulty" msgpack:"difficulty"`
}

// ErrorNotice reports a rejected client message.
type ErrorNotice struct {
	Message string `json:"message" msgpack:"message"`
}

// outgoing converts a session event to its wire type and payload.
func outgoing(e catch.Event) (string, any) {
	switch ev := e.(type) {
	case catch.StatsChanged:
		return MsgStats, Stats{
			Phase:      ev.Phase.String(),
			Score:      ev.Score,
			Coins:      ev.Coins,
			TimeLeft:   ev.TimeLeft,
			Goal:       ev.Goal,
			Difficulty: ev.Difficulty,
		}
	case catch.EntitySpawned:
		return MsgSpawn, catch.EntityView{
			ID:   ev.Entity.ID,
			Kind: ev.Entity.Kind.String(),
			X:    ev.Entity.X,
			Y:    -ev.Entity.Size,
			Size: ev.Entity.Size,
		}
	case catch.EntityRemoved:
		return MsgRemove, Removed{
			ID:     ev.Entity.ID,
			Kind:   ev.Entity.Kind.String(),
			Reason: ev.Reason.String(),
		}
	case catch.MilestoneReached:
		return MsgMilestone, MilestoneNotice{Percent: int(ev.Milestone), Text: ev.Text}
	case catch.SessionEnded:
		r := ev.Result
		return MsgResult, ResultNotice{
			Won:          r.Won,
			Score:        r.Score,
			Coins:        r.Coins,
			Goal:         r.Goal,
			HighScore:    r.HighScore,
			NewHighScore: r.NewHighScore,
			Difficulty:   r.Difficulty,
		}
	}
	return "", nil
}
