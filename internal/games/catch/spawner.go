package catch

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/dropcatch/internal/config"
)

// Spawner creates falling entities with randomized position and size.
type Spawner struct {
	rng    *rand.Rand
	nextID int
	fieldW float64
	cfg    config.EntityConfig
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, field config.FieldConfig, cfg config.EntityConfig) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewSource(seed)),
		fieldW: field.Width,
		cfg:    cfg,
	}
}

// Spawn creates one entity of the given kind at simulated time at.
// Good drops and hazards are scaled from the base size; coins have a fixed size.
// The left edge is uniform in [0, fieldWidth-size].
func (sp *Spawner) Spawn(kind Kind, at time.Duration) Entity {
	size := sp.cfg.CoinSize
	if kind != KindCoin {
		scale := sp.cfg.DropScaleMin + sp.rng.Float64()*(sp.cfg.DropScaleMax-sp.cfg.DropScaleMin)
		size = sp.cfg.DropBaseSize * scale
	}

	x := 0.0
	if span := sp.fieldW - size; span > 0 {
		x = sp.rng.Float64() * span
	}

	sp.nextID++
	return Entity{
		ID:        sp.nextID,
		Kind:      kind,
		X:         x,
		Size:      size,
		SpawnedAt: at,
		Lifetime:  sp.cfg.Lifetime(),
	}
}
