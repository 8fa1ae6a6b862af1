package catch

import (
	"time"

	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/core"
)

// RemoveReason tells why an entity left the field.
type RemoveReason int

const (
	ReasonCaught  RemoveReason = iota // Overlapped the basket
	ReasonExpired                     // Reached the end of its lifetime
	ReasonCleared                     // Discarded when the session ended
)

// String returns the wire name of the reason.
func (r RemoveReason) String() string {
	switch r {
	case ReasonCaught:
		return "caught"
	case ReasonExpired:
		return "expired"
	case ReasonCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Resolution records how a live entity was retired.
type Resolution struct {
	Entity Entity
	Reason RemoveReason
}

// Tracker holds the live entities. Every entity leaves it exactly once.
type Tracker struct {
	live []Entity
}

// Add starts tracking an entity.
func (t *Tracker) Add(e Entity) {
	t.live = append(t.live, e)
}

// Len returns the number of live entities.
func (t *Tracker) Len() int {
	return len(t.live)
}

// Live returns a copy of the live entities in spawn order.
func (t *Tracker) Live() []Entity {
	out := make([]Entity, len(t.live))
	copy(out, t.live)
	return out
}

// Clear retires every live entity and returns them in spawn order.
func (t *Tracker) Clear() []Entity {
	out := t.live
	t.live = nil
	return out
}

// Resolve checks every live entity once at time now.
// Expiry is checked before overlap, so an entity whose lifetime ran out
// in this slice is never caught.
func (t *Tracker) Resolve(now time.Duration, fieldH float64, basket core.RectF) []Resolution {
	var resolved []Resolution
	kept := t.live[:0]

	for _, e := range t.live {
		switch {
		case e.Expired(now):
			resolved = append(resolved, Resolution{Entity: e, Reason: ReasonExpired})
		case e.Rect(now, fieldH).Overlaps(basket):
			resolved = append(resolved, Resolution{Entity: e, Reason: ReasonCaught})
		default:
			kept = append(kept, e)
		}
	}

	// Zero the tail so retired entities are not retained by the backing array
	for i := len(kept); i < len(t.live); i++ {
		t.live[i] = Entity{}
	}
	t.live = kept
	return resolved
}

// scoreDelta returns the score and coin change for catching an entity.
func scoreDelta(cfg config.ScoringConfig, kind Kind) (score, coins int) {
	switch kind {
	case KindGood:
		return cfg.GoodPoints, 0
	case KindCoin:
		return 0, cfg.CoinValue
	case KindHazard:
		return -cfg.HazardPenalty, 0
	default:
		return 0, 0
	}
}
