// Package config loads simulation settings from YAML on top of defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/game/collision"
	"github.com/zeusync/wavecore/internal/game/combat"
	"github.com/zeusync/wavecore/internal/game/difficulty"
	"github.com/zeusync/wavecore/internal/game/factory"
	"github.com/zeusync/wavecore/internal/game/meta"
	"github.com/zeusync/wavecore/internal/game/projectile"
	"github.com/zeusync/wavecore/internal/game/wave"
)

var (
	ErrInvalidSimulation = errors.New("invalid simulation settings")
	ErrInvalidWaves      = errors.New("invalid wave table")
	ErrInvalidSystem     = errors.New("invalid system settings")
)

type Simulation struct {
	Seed       string  `yaml:"seed"`
	FixedDelta float64 `yaml:"fixed_delta"`
	LogLevel   string  `yaml:"log_level"`
	// AutoBreaks lets the driver end breaks after their advisory duration.
	AutoBreaks bool `yaml:"auto_breaks"`
}

type Config struct {
	Simulation Simulation            `yaml:"simulation"`
	Difficulty []difficulty.Tier     `yaml:"difficulty"`
	Waves      difficulty.WaveConfig `yaml:"waves"`
	Spawner    wave.Config           `yaml:"spawner"`
	Entities   factory.Config        `yaml:"entities"`
	Projectile projectile.Config     `yaml:"projectile"`
	Combat     combat.Config         `yaml:"combat"`
	Collision  collision.Options     `yaml:"collision"`
	Meta       meta.Static           `yaml:"meta"`
}

func Default() *Config {
	return &Config{
		Simulation: Simulation{Seed: "wavecore", FixedDelta: 1.0 / 60, LogLevel: "info", AutoBreaks: true},
		Difficulty: difficulty.DefaultTiers(),
		Waves:      difficulty.DefaultWaveConfig(),
		Spawner:    wave.DefaultConfig(),
		Entities:   factory.DefaultConfig(),
		Projectile: projectile.DefaultConfig(),
		Combat:     combat.DefaultConfig(),
		Collision:  collision.DefaultOptions(),
		Meta:       meta.Static{Levels: map[string]int{}},
	}
}

// LoadYAML decodes r over Default and validates the result. Lists such as
// the tier table and rounds replace the defaults; maps are merged by key.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

func (c *Config) Validate() error {
	if c.Simulation.FixedDelta <= 0 {
		return fmt.Errorf("%w: fixed_delta must be positive", ErrInvalidSimulation)
	}
	if _, err := difficulty.NewScaler(c.Difficulty); err != nil {
		return fmt.Errorf("difficulty: %w", err)
	}
	if err := validateWaves(c.Waves); err != nil {
		return err
	}
	checks := []struct {
		name string
		fn   func() error
	}{
		{"spawner", c.Spawner.Validate},
		{"entities", c.Entities.Validate},
		{"projectile", c.Projectile.Validate},
		{"combat", c.Combat.Validate},
		{"collision", c.Collision.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSystem, check.name, err)
		}
	}
	for _, r := range c.Waves.Rounds {
		if _, ok := c.Spawner.Enemies[r.Enemy]; r.Enemy != "" && !ok {
			return fmt.Errorf("%w: round enemy %q has no stats", ErrInvalidWaves, r.Enemy)
		}
	}
	return nil
}

func validateWaves(w difficulty.WaveConfig) error {
	if len(w.Rounds) != difficulty.RoundsPerWave {
		return fmt.Errorf("%w: need %d rounds, got %d", ErrInvalidWaves, difficulty.RoundsPerWave, len(w.Rounds))
	}
	for i, r := range w.Rounds {
		if r.TotalBatches < 0 || r.BatchSize < 1 || r.SpawnInterval <= 0 {
			return fmt.Errorf("%w: round %d needs batches >= 0, batch size >= 1 and a positive interval", ErrInvalidWaves, i+1)
		}
	}
	if w.RoundBreak < 0 || w.WaveBreak < 0 {
		return fmt.Errorf("%w: breaks must be non-negative", ErrInvalidWaves)
	}
	return nil
}

func (c *Config) LogLevel() log.Level { return log.ParseLevel(c.Simulation.LogLevel) }

// Seed hashes the configured seed string.
func (c *Config) Seed() uint64 { return xxhash.Sum64String(c.Simulation.Seed) }

// RunSeed derives an independent seed for the i-th run of a batch.
func (c *Config) RunSeed(i int) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%s#%d", c.Simulation.Seed, i))
}

// Scaler builds the difficulty scaler from the validated tier table.
func (c *Config) Scaler() (*difficulty.Scaler, error) {
	return difficulty.NewScaler(c.Difficulty)
}
