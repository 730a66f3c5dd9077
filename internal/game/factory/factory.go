// Package factory assembles core, enemy and projectile entities from
// resolved specs and configuration.
package factory

import (
	"errors"
	"fmt"

	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
	"github.com/zeusync/wavecore/internal/game/combat"
	"github.com/zeusync/wavecore/internal/game/component"
	"github.com/zeusync/wavecore/internal/game/meta"
	"github.com/zeusync/wavecore/internal/game/scene"
	"github.com/zeusync/wavecore/internal/game/wave"
)

var ErrNoCore = errors.New("factory: core has not been spawned")

type CoreConfig struct {
	HP             float64 `yaml:"hp"`
	Damage         float64 `yaml:"damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	SearchRange    float64 `yaml:"search_range"`
	Radius         float64 `yaml:"radius"`
	PulseCooldown  float64 `yaml:"pulse_cooldown"`
	PulseRadius    float64 `yaml:"pulse_radius"`
}

type EnemyConfig struct {
	Radius         float64 `yaml:"radius"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	SearchRange    float64 `yaml:"search_range"`
	Acceleration   float64 `yaml:"acceleration"`
	Deceleration   float64 `yaml:"deceleration"`
}

type Config struct {
	Core  CoreConfig  `yaml:"core"`
	Enemy EnemyConfig `yaml:"enemy"`
}

func DefaultConfig() Config {
	return Config{
		Core: CoreConfig{
			HP:             200,
			Damage:         8,
			AttackRange:    3,
			AttackCooldown: 0.8,
			SearchRange:    25,
			Radius:         1.5,
			PulseCooldown:  6,
			PulseRadius:    5,
		},
		Enemy: EnemyConfig{
			Radius:         0.5,
			AttackRange:    1.0,
			AttackCooldown: 1.0,
			SearchRange:    40,
			Acceleration:   8,
			Deceleration:   12,
		},
	}
}

func (c Config) Validate() error {
	if c.Core.HP <= 0 || c.Core.Radius <= 0 {
		return fmt.Errorf("core hp and radius must be positive")
	}
	if c.Core.AttackRange < 0 || c.Core.AttackCooldown < 0 || c.Core.SearchRange < 0 {
		return fmt.Errorf("core attack range, cooldown and search range must be non-negative")
	}
	if c.Enemy.SearchRange < 0 || c.Enemy.AttackRange < 0 || c.Enemy.AttackCooldown < 0 {
		return fmt.Errorf("enemy search range, attack range and cooldown must be non-negative")
	}
	if c.Enemy.Radius <= 0 || c.Enemy.Acceleration <= 0 || c.Enemy.Deceleration <= 0 {
		return fmt.Errorf("enemy radius, acceleration and deceleration must be positive")
	}
	return nil
}

// Factory creates entities through the registry and, when a bridge is set,
// attaches their visuals.
type Factory struct {
	registry *models.Registry
	bridge   *scene.Bridge
	logger   log.Log
	cfg      Config
	core     *models.Entity
}

var (
	_ wave.EnemyFactory = (*Factory)(nil)
	_ combat.Launcher   = (*Factory)(nil)
)

func New(registry *models.Registry, bridge *scene.Bridge, logger log.Log, cfg Config) *Factory {
	return &Factory{
		registry: registry,
		bridge:   bridge,
		logger:   logger.With(log.String("component", "factory")),
		cfg:      cfg,
	}
}

func (f *Factory) Core() *models.Entity { return f.core }

// SpawnCore creates the defended entity at the origin with meta upgrades
// from p applied.
func (f *Factory) SpawnCore(p meta.Progression) (*models.Entity, error) {
	c := f.cfg.Core
	up := meta.Upgrades(p)
	components := []models.Component{
		&component.Team{Type: component.TeamCore},
		component.NewHealth(c.HP),
		component.NewPosition(physics.Vec3{}),
		&component.Collision{Radius: c.Radius, Immovable: true},
		&component.Attack{Damage: c.Damage, Range: c.AttackRange, Cooldown: c.AttackCooldown},
		&component.Target{SearchRange: c.SearchRange},
		up,
	}
	switch {
	case up.StunPulseLevel > 0:
		components = append(components, &component.Ability{
			Kind: component.AbilityStunPulse, Level: up.StunPulseLevel, Cooldown: c.PulseCooldown, Radius: c.PulseRadius,
		})
	case up.KnockbackLevel > 0:
		components = append(components, &component.Ability{
			Kind: component.AbilityKnockback, Level: up.KnockbackLevel, Cooldown: c.PulseCooldown, Radius: c.PulseRadius,
		})
	}

	e, err := f.build("core", components...)
	if err != nil {
		return nil, err
	}
	f.core = e
	return e, nil
}

// SpawnEnemy creates an enemy that walks toward the core and stops at
// striking distance.
func (f *Factory) SpawnEnemy(spec wave.EnemySpec) (*models.Entity, error) {
	if f.core == nil {
		return nil, ErrNoCore
	}
	corePos, _ := component.PositionOf(f.core)
	c := f.cfg.Enemy

	mv := &component.Movement{
		MaxSpeed:     spec.Speed,
		Acceleration: c.Acceleration,
		Deceleration: c.Deceleration,
		StopDistance: f.cfg.Core.Radius + c.Radius + c.AttackRange*0.5,
	}
	mv.SetTarget(corePos.Vec3)

	return f.build("enemy:"+spec.Kind,
		&component.Team{Type: component.TeamEnemy},
		component.NewHealth(spec.HP),
		component.NewPosition(spec.Position),
		&component.Collision{Radius: c.Radius},
		mv,
		&component.Attack{Damage: spec.Damage, Range: f.cfg.Core.Radius + c.Radius + c.AttackRange, Cooldown: c.AttackCooldown},
		&component.Target{SearchRange: c.SearchRange},
		&component.EnemyType{Kind: component.EnemyKind(spec.Kind), Wave: spec.Wave, ScoreValue: spec.Score},
	)
}

func (f *Factory) LaunchProjectile(spec combat.LaunchSpec) (*models.Entity, error) {
	proj := component.NewProjectile(spec.From, spec.Velocity, spec.Damage, spec.MaxRange, spec.AttackerID, spec.SpawnTime)
	proj.TargetID = spec.TargetID
	proj.Knockback = spec.Knockback
	return f.build("projectile",
		proj,
		component.NewPosition(spec.From),
		&component.Team{Type: spec.Team},
	)
}

func (f *Factory) build(kind string, components ...models.Component) (*models.Entity, error) {
	e := f.registry.Create()
	for _, c := range components {
		if err := e.Add(c); err != nil {
			f.registry.Destroy(e)
			return nil, fmt.Errorf("build %s: %w", kind, err)
		}
	}
	if f.bridge != nil {
		if err := f.bridge.Attach(e, kind); err != nil {
			f.logger.Warn("visual not attached", log.String("kind", kind), log.Error(err))
		}
	}
	f.logger.Debug("entity built", log.String("kind", kind), log.Uint64("entity_id", uint64(e.ID())))
	return e, nil
}
