// Package meta exposes read-only meta-progression to the simulation.
package meta

import (
	"maps"
	"slices"

	"github.com/zeusync/wavecore/internal/game/component"
)

// Upgrade keys understood by Upgrades.
const (
	KeyExtraMeleeTargets = "extra_melee_targets"
	KeyMeleeRangeRings   = "melee_range_rings"
	KeyStunPulse         = "stun_pulse"
	KeyKnockback         = "knockback"
	KeyTargetingMode     = "targeting_mode"
	KeyRanged            = "ranged"
)

// Progression is the persistent meta service. The simulation only reads it.
type Progression interface {
	UpgradeLevel(key string) int
	Score() int
}

// Static is a fixed snapshot of progression, usually loaded from config.
type Static struct {
	Levels     map[string]int `yaml:"upgrades"`
	TotalScore int            `yaml:"score"`
}

var _ Progression = (*Static)(nil)

func (s *Static) UpgradeLevel(key string) int {
	if s == nil {
		return 0
	}
	return max(0, s.Levels[key])
}

func (s *Static) Score() int {
	if s == nil {
		return 0
	}
	return s.TotalScore
}

// Keys lists upgrade keys with a positive level, sorted.
func (s *Static) Keys() []string {
	if s == nil {
		return nil
	}
	keys := slices.Collect(maps.Keys(s.Levels))
	keys = slices.DeleteFunc(keys, func(k string) bool { return s.Levels[k] <= 0 })
	slices.Sort(keys)
	return keys
}

// Upgrades builds the core's MetaUpgrade component from p.
func Upgrades(p Progression) *component.MetaUpgrade {
	ranged := p.UpgradeLevel(KeyRanged)
	mode := component.TargetingMode(min(p.UpgradeLevel(KeyTargetingMode), int(component.TargetStrongest)))
	return &component.MetaUpgrade{
		ExtraMeleeTargets: p.UpgradeLevel(KeyExtraMeleeTargets),
		MeleeRangeRings:   p.UpgradeLevel(KeyMeleeRangeRings),
		StunPulseLevel:    p.UpgradeLevel(KeyStunPulse),
		KnockbackLevel:    p.UpgradeLevel(KeyKnockback),
		TargetingMode:     mode,
		RangedUnlocked:    ranged > 0,
		RangedLevel:       max(0, ranged-1),
	}
}
