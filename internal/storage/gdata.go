package storage

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// Object and property under which GdataStore keeps the high score.
const (
	gdataObject = "dropcatch"
	gdataProp   = HighScoreKey
)

// GdataStore persists the high score with quasilyte/gdata, which maps to
// a per-user data directory on desktop and to localStorage in browsers.
// A nil manager runs in degraded mode: reads return 0 and writes are dropped.
type GdataStore struct {
	mu sync.Mutex
	m  *gdata.Manager
}

// OpenGdata opens the gdata storage for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata %s: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

// NewGdataStore wraps an existing manager. m may be nil.
func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{m: m}
}

// HighScore returns the persisted high score.
// A missing or unparsable value reads as 0.
func (g *GdataStore) HighScore() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load()
}

// SetHighScore raises the persisted high score to score. A value that is
// not higher than the stored one is ignored.
func (g *GdataStore) SetHighScore(score int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.m == nil {
		return nil
	}
	current, err := g.load()
	if err != nil {
		return err
	}
	if score <= current {
		return nil
	}
	if err := g.m.SaveObjectProp(gdataObject, gdataProp, []byte(strconv.Itoa(score))); err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

func (g *GdataStore) load() (int, error) {
	if g.m == nil || !g.m.ObjectPropExists(gdataObject, gdataProp) {
		return 0, nil
	}

	data, err := g.m.LoadObjectProp(gdataObject, gdataProp)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load high score: %w", err)
	}
	return parseHighScore(data), nil
}
