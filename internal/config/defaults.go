package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// DefaultCatchConfig returns the built-in catch configuration.
// It mirrors defaults/catch.yaml and backs it up when the embed cannot be parsed.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Field: FieldConfig{
			Width:  600,
			Height: 500,
		},
		Basket: BasketConfig{
			Width:  80,
			Height: 30,
			Step:   30,
		},
		Entities: EntityConfig{
			LifetimeMS:   4000,
			PollMS:       20,
			DropBaseSize: 60,
			DropScaleMin: 0.5,
			DropScaleMax: 1.3,
			CoinSize:     40,
		},
		Scoring: ScoringConfig{
			GoodPoints:    1,
			HazardPenalty: 3,
			CoinValue:     1,
		},
		Difficulty: DifficultyConfig{
			Default: string(DifficultyNormal),
			Presets: defaultPresets(),
		},
	}
}

func defaultPresets() map[string]PresetConfig {
	return map[string]PresetConfig{
		string(DifficultyEasy): {
			Time:             40,
			GoodIntervalMS:   1200,
			CoinIntervalMS:   6000,
			HazardIntervalMS: 4000,
			Goal:             10,
		},
		string(DifficultyNormal): {
			Time:             30,
			GoodIntervalMS:   1000,
			CoinIntervalMS:   5000,
			HazardIntervalMS: 2500,
			Goal:             15,
		},
		string(DifficultyHard): {
			Time:             20,
			GoodIntervalMS:   700,
			CoinIntervalMS:   4000,
			HazardIntervalMS: 1500,
			Goal:             20,
		},
		string(DifficultyClassic): {
			Time:             30,
			GoodIntervalMS:   1000,
			CoinIntervalMS:   5000,
			HazardIntervalMS: 2500,
			Goal:             0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultCatchYAML
}
