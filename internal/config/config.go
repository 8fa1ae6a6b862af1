// Package config provides YAML-based game configuration loading and
// difficulty presets for Drop Catch.
package config

import "time"

// CatchConfig contains all configuration for the catch game.
type CatchConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Basket     BasketConfig     `yaml:"basket"`
	Entities   EntityConfig     `yaml:"entities"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the logical play area.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BasketConfig defines the player-controlled basket.
type BasketConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Step   float64 `yaml:"step"` // Distance per discrete move
}

// EntityConfig defines falling entity geometry and timing.
type EntityConfig struct {
	LifetimeMS   int     `yaml:"lifetime_ms"`
	PollMS       int     `yaml:"poll_ms"` // Collision slice length
	DropBaseSize float64 `yaml:"drop_base_size"`
	DropScaleMin float64 `yaml:"drop_scale_min"`
	DropScaleMax float64 `yaml:"drop_scale_max"`
	CoinSize     float64 `yaml:"coin_size"`
}

// Lifetime returns the fall duration of an entity.
func (e EntityConfig) Lifetime() time.Duration {
	return time.Duration(e.LifetimeMS) * time.Millisecond
}

// PollInterval returns the longest simulated slice between collision checks.
func (e EntityConfig) PollInterval() time.Duration {
	return time.Duration(e.PollMS) * time.Millisecond
}

// ScoringConfig defines per-catch deltas.
type ScoringConfig struct {
	GoodPoints    int `yaml:"good_points"`
	HazardPenalty int `yaml:"hazard_penalty"` // Subtracted from score
	CoinValue     int `yaml:"coin_value"`
}

// DifficultyConfig lists the named presets.
type DifficultyConfig struct {
	Default string                  `yaml:"default"`
	Presets map[string]PresetConfig `yaml:"presets"`
}

// PresetConfig is the YAML form of a difficulty preset.
type PresetConfig struct {
	Time             int `yaml:"time"` // Seconds
	GoodIntervalMS   int `yaml:"good_interval_ms"`
	CoinIntervalMS   int `yaml:"coin_interval_ms"`
	HazardIntervalMS int `yaml:"hazard_interval_ms"`
	Goal             int `yaml:"goal"`
}

// valid reports whether every timing field is positive and the goal non-negative.
func (p PresetConfig) valid() bool {
	return p.Time > 0 &&
		p.GoodIntervalMS > 0 &&
		p.CoinIntervalMS > 0 &&
		p.HazardIntervalMS > 0 &&
		p.Goal >= 0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic" // Fixed 30s, no goal
)
