package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const catchConfigFile = "catch.yaml"

// LoadCatch loads Drop Catch configuration.
// Search order: customPath -> ~/.dropcatch/configs/catch.yaml -> ./configs/catch.yaml -> embedded default
// Missing or invalid sections are completed from the defaults.
func LoadCatch(customPath string) (CatchConfig, error) {
	var cfg CatchConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.withDefaults(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(catchConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.withDefaults(), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", catchConfigFile)); err == nil {
		cfg = CatchConfig{}
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.withDefaults(), nil
		}
	}

	// Use embedded default YAML
	cfg = CatchConfig{}
	if err := yaml.Unmarshal(defaultCatchYAML, &cfg); err != nil {
		return DefaultCatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.withDefaults(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dropcatch", "configs", filename)
}

// withDefaults replaces non-positive values with their defaults.
func (c CatchConfig) withDefaults() CatchConfig {
	def := DefaultCatchConfig()

	if c.Field.Width <= 0 {
		c.Field.Width = def.Field.Width
	}
	if c.Field.Height <= 0 {
		c.Field.Height = def.Field.Height
	}
	if c.Basket.Width <= 0 || c.Basket.Width > c.Field.Width {
		c.Basket.Width = def.Basket.Width
	}
	if c.Basket.Height <= 0 {
		c.Basket.Height = def.Basket.Height
	}
	if c.Basket.Step <= 0 {
		c.Basket.Step = def.Basket.Step
	}
	if c.Entities.LifetimeMS <= 0 {
		c.Entities.LifetimeMS = def.Entities.LifetimeMS
	}
	if c.Entities.PollMS <= 0 {
		c.Entities.PollMS = def.Entities.PollMS
	}
	if c.Entities.DropBaseSize <= 0 {
		c.Entities.DropBaseSize = def.Entities.DropBaseSize
	}
	if c.Entities.DropScaleMin <= 0 || c.Entities.DropScaleMax <= c.Entities.DropScaleMin {
		c.Entities.DropScaleMin = def.Entities.DropScaleMin
		c.Entities.DropScaleMax = def.Entities.DropScaleMax
	}
	if c.Entities.CoinSize <= 0 {
		c.Entities.CoinSize = def.Entities.CoinSize
	}
	if c.Scoring.GoodPoints <= 0 {
		c.Scoring.GoodPoints = def.Scoring.GoodPoints
	}
	if c.Scoring.HazardPenalty <= 0 {
		c.Scoring.HazardPenalty = def.Scoring.HazardPenalty
	}
	// Coins only ever go up
	if c.Scoring.CoinValue <= 0 {
		c.Scoring.CoinValue = def.Scoring.CoinValue
	}
	if c.Difficulty.Default == "" {
		c.Difficulty.Default = def.Difficulty.Default
	}
	if c.Difficulty.Presets == nil {
		c.Difficulty.Presets = def.Difficulty.Presets
	}
	return c
}
