package config

import (
	"sort"
	"strings"
	"time"
)

// Preset is a resolved difficulty level with typed durations.
type Preset struct {
	Name           string
	TotalTime      int // Round length in whole seconds
	GoodInterval   time.Duration
	CoinInterval   time.Duration
	HazardInterval time.Duration
	Goal           int // 0 disables winning and milestones
}

// Duration returns the round length.
func (p Preset) Duration() time.Duration {
	return time.Duration(p.TotalTime) * time.Second
}

func presetFrom(name string, pc PresetConfig) Preset {
	return Preset{
		Name:           name,
		TotalTime:      pc.Time,
		GoodInterval:   time.Duration(pc.GoodIntervalMS) * time.Millisecond,
		CoinInterval:   time.Duration(pc.CoinIntervalMS) * time.Millisecond,
		HazardInterval: time.Duration(pc.HazardIntervalMS) * time.Millisecond,
		Goal:           pc.Goal,
	}
}

// Policy maps difficulty selectors to presets.
// Unknown selectors always resolve to normal; the configured default only
// picks the initial selection.
type Policy struct {
	presets map[string]Preset
	initial string
}

// NewPolicy builds a policy from configuration.
// Built-in presets missing from cfg or carrying invalid values are taken
// from the defaults; invalid custom presets are dropped.
func NewPolicy(cfg DifficultyConfig) *Policy {
	defaults := defaultPresets()
	p := &Policy{presets: make(map[string]Preset, len(defaults))}

	for name, pc := range defaults {
		p.presets[name] = presetFrom(name, pc)
	}
	for name, pc := range cfg.Presets {
		key := normalizeSelector(name)
		if key == "" || !pc.valid() {
			continue
		}
		if key != string(DifficultyClassic) && pc.Goal == 0 {
			if def, ok := defaults[key]; ok {
				pc.Goal = def.Goal
			}
		}
		p.presets[key] = presetFrom(key, pc)
	}

	p.initial = string(DifficultyNormal)
	if def := normalizeSelector(cfg.Default); def != "" && def != string(DifficultyClassic) {
		if _, ok := p.presets[def]; ok {
			p.initial = def
		}
	}
	return p
}

// DefaultPolicy returns the policy built from the hardcoded defaults.
func DefaultPolicy() *Policy {
	return NewPolicy(DefaultCatchConfig().Difficulty)
}

// Resolve returns the preset for a selector.
// Selectors are matched case-insensitively after trimming whitespace.
func (p *Policy) Resolve(selector string) Preset {
	if preset, ok := p.presets[normalizeSelector(selector)]; ok {
		return preset
	}
	return p.presets[string(DifficultyNormal)]
}

// Has reports whether selector names a known preset.
func (p *Policy) Has(selector string) bool {
	_, ok := p.presets[normalizeSelector(selector)]
	return ok
}

// Default returns the preset selected before the player picks one.
func (p *Policy) Default() string {
	return p.initial
}

// Names returns the selectable preset names, easiest first.
// The classic preset belongs to its own variant and is not listed.
func (p *Policy) Names() []string {
	names := make([]string, 0, len(p.presets))
	for name := range p.presets {
		if name == string(DifficultyClassic) {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := p.presets[names[i]], p.presets[names[j]]
		if a.GoodInterval != b.GoodInterval {
			return a.GoodInterval > b.GoodInterval
		}
		return names[i] < names[j]
	})
	return names
}

// Next returns the preset that follows current in Names order, wrapping around.
func (p *Policy) Next(current string) string {
	names := p.Names()
	if len(names) == 0 {
		return p.initial
	}
	current = normalizeSelector(current)
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func normalizeSelector(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
