package catch

// Event is a notification for the presentation layer.
// Events are delivered after the session lock is released, in the order
// they were produced, so handlers may call back into the session.
type Event interface {
	event()
}

// StatsChanged carries the live counters after any change.
type StatsChanged struct {
	Phase      Phase
	Score      int
	Coins      int
	TimeLeft   int
	Goal       int
	Difficulty string
}

// EntitySpawned announces a new falling entity.
type EntitySpawned struct {
	Entity Entity
}

// EntityRemoved announces that an entity left the field.
type EntityRemoved struct {
	Entity Entity
	Reason RemoveReason
}

// MilestoneReached announces a progress threshold.
type MilestoneReached struct {
	Milestone Milestone
	Text      string
}

// SessionEnded carries the final result.
// SaveErr is set when a new high score could not be persisted.
type SessionEnded struct {
	Result  Result
	SaveErr error
}

func (StatsChanged) event()     {}
func (EntitySpawned) event()    {}
func (EntityRemoved) event()    {}
func (MilestoneReached) event() {}
func (SessionEnded) event()     {}

// Result is the outcome of a finished session.
type Result struct {
	Won          bool
	Score        int
	Coins        int
	Goal         int
	HighScore    int
	NewHighScore bool
	Difficulty   string
}
