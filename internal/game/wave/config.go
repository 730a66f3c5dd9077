package wave

import (
	"fmt"

	"github.com/zeusync/wavecore/internal/core/systems/physics"
	"github.com/zeusync/wavecore/internal/game/difficulty"
)

type ScalingMode string

const (
	// ScaleByTier multiplies base stats by the difficulty scaler.
	ScaleByTier ScalingMode = "scaler"
	// ScaleFlat adds FlatHPBonus per wave after the first and leaves speed
	// and damage alone.
	ScaleFlat ScalingMode = "flat"
)

// EnemyStats are unscaled per-kind base stats.
type EnemyStats struct {
	HP     float64 `yaml:"hp"`
	Speed  float64 `yaml:"speed"`
	Damage float64 `yaml:"damage"`
	Score  int     `yaml:"score"`
}

type Config struct {
	SpawnRadiusMin float64               `yaml:"spawn_radius_min"`
	SpawnRadiusMax float64               `yaml:"spawn_radius_max"`
	Scaling        ScalingMode           `yaml:"scaling"`
	FlatHPBonus    float64               `yaml:"flat_hp_bonus"`
	DefaultEnemy   string                `yaml:"default_enemy"`
	Enemies        map[string]EnemyStats `yaml:"enemies"`
}

func DefaultConfig() Config {
	return Config{
		SpawnRadiusMin: 18,
		SpawnRadiusMax: 24,
		Scaling:        ScaleByTier,
		FlatHPBonus:    5,
		DefaultEnemy:   "basic",
		Enemies: map[string]EnemyStats{
			"basic": {HP: 20, Speed: 2.0, Damage: 5, Score: 10},
			"fast":  {HP: 12, Speed: 3.5, Damage: 3, Score: 15},
			"tank":  {HP: 60, Speed: 1.2, Damage: 12, Score: 30},
		},
	}
}

func (c Config) Validate() error {
	if c.SpawnRadiusMin < 0 || c.SpawnRadiusMax < c.SpawnRadiusMin {
		return fmt.Errorf("spawn radius range [%v, %v] is invalid", c.SpawnRadiusMin, c.SpawnRadiusMax)
	}
	switch c.Scaling {
	case ScaleByTier, ScaleFlat:
	default:
		return fmt.Errorf("unknown scaling mode %q", c.Scaling)
	}
	if _, ok := c.Enemies[c.DefaultEnemy]; !ok {
		return fmt.Errorf("default enemy %q has no stats", c.DefaultEnemy)
	}
	for kind, s := range c.Enemies {
		if s.HP <= 0 {
			return fmt.Errorf("enemy %q: hp must be positive", kind)
		}
	}
	return nil
}

// EnemySpec is a fully resolved spawn request handed to the factory.
type EnemySpec struct {
	Kind     string
	Wave     int
	Position physics.Vec3
	HP       float64
	Speed    float64
	Damage   float64
	Score    int
}

// Source yields the round list for a wave.
type Source func(wave int) difficulty.WaveConfig

// ScaledSource scales base for each wave through s.
func ScaledSource(s *difficulty.Scaler, base difficulty.WaveConfig) Source {
	return func(wave int) difficulty.WaveConfig {
		return s.ScaleWaveConfig(base, wave)
	}
}

// FixedSource returns cfg for every wave unchanged.
func FixedSource(cfg difficulty.WaveConfig) Source {
	return func(int) difficulty.WaveConfig { return cfg }
}
