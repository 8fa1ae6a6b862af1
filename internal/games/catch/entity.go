package catch

import (
	"time"

	"github.com/vovakirdan/dropcatch/internal/core"
)

// Kind identifies what a falling entity does when caught.
type Kind int

const (
	KindGood   Kind = iota // Adds to score
	KindCoin               // Adds to coins
	KindHazard             // Subtracts from score
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGood:
		return "good"
	case KindCoin:
		return "coin"
	case KindHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Entity is a falling object between spawn and resolution.
// Its vertical position is not stored; it is derived from the time since spawn.
type Entity struct {
	ID        int
	Kind      Kind
	X         float64 // Left edge in field units
	Size      float64 // Width and height
	SpawnedAt time.Duration
	Lifetime  time.Duration
}

// Age returns how long the entity has been falling at now.
func (e Entity) Age(now time.Duration) time.Duration {
	if now < e.SpawnedAt {
		return 0
	}
	return now - e.SpawnedAt
}

// Expired reports whether the entity has reached the end of its fall.
func (e Entity) Expired(now time.Duration) bool {
	return e.Age(now) >= e.Lifetime
}

// Y returns the top edge at now. The entity starts fully above the field
// and reaches the bottom edge when its lifetime runs out.
func (e Entity) Y(now time.Duration, fieldH float64) float64 {
	if e.Lifetime <= 0 {
		return fieldH
	}
	progress := float64(e.Age(now)) / float64(e.Lifetime)
	if progress > 1 {
		progress = 1
	}
	return -e.Size + (fieldH+e.Size)*progress
}

// Rect returns the bounding box at now.
func (e Entity) Rect(now time.Duration, fieldH float64) core.RectF {
	return core.NewRectF(e.X, e.Y(now, fieldH), e.Size, e.Size)
}
