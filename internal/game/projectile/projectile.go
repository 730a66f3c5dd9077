package projectile

import (
	"fmt"

	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/spatial"
	"github.com/zeusync/wavecore/internal/core/systems"
	"github.com/zeusync/wavecore/internal/game/component"
)

type Config struct {
	Lifetime     float64 `yaml:"lifetime"`
	VisualRadius float64 `yaml:"visual_radius"`
	Speed        float64 `yaml:"speed"`
	MaxRange     float64 `yaml:"max_range"`
}

func DefaultConfig() Config {
	return Config{Lifetime: 4.0, VisualRadius: 0.3, Speed: 15, MaxRange: 25}
}

func (c Config) Validate() error {
	if c.Lifetime <= 0 || c.VisualRadius <= 0 || c.Speed <= 0 || c.MaxRange <= 0 {
		return fmt.Errorf("projectile lifetime, visual radius, speed and max range must be positive")
	}
	return nil
}

// HitRadius is the query radius around a projectile.
func (c Config) HitRadius() float64 { return 2 * c.VisualRadius }

// Clock reports simulation time in seconds.
type Clock interface {
	Now() float64
}

// System integrates projectiles, expires them on lifetime or range, and
// reports the first hostile they touch.
type System struct {
	registry *models.Registry
	bus      *bus.Bus
	logger   log.Log
	clock    Clock
	cfg      Config
	grid     *spatial.Grid
}

var _ systems.System = (*System)(nil)

func NewSystem(registry *models.Registry, b *bus.Bus, logger log.Log, clock Clock, cfg Config) *System {
	return &System{
		registry: registry,
		bus:      b,
		logger:   logger.With(log.String("system", "projectile")),
		clock:    clock,
		cfg:      cfg,
		grid:     spatial.NewGrid(max(cfg.HitRadius()*4, 1)),
	}
}

func (s *System) Name() string                  { return "projectile" }
func (s *System) Phase() systems.ExecutionPhase { return systems.PhaseProjectile }

func (s *System) Update(deltaTime float64) error {
	now := s.clock.Now()
	var projectiles []*models.Entity

	s.grid.Clear()
	for e := range s.registry.All() {
		if e.Has(component.ProjectileID) {
			projectiles = append(projectiles, e)
			continue
		}
		if !e.Has(component.TeamID) || !component.IsAlive(e) {
			continue
		}
		if pos, ok := component.PositionOf(e); ok {
			s.grid.Insert(e.ID(), pos.Vec3)
		}
	}

	for _, e := range projectiles {
		if e.Destroyed() {
			continue
		}
		s.step(e, now, deltaTime)
	}
	return nil
}

func (s *System) step(e *models.Entity, now, deltaTime float64) {
	proj, _ := component.ProjectileOf(e)
	pos, ok := component.PositionOf(e)
	if !ok {
		s.registry.Destroy(e)
		return
	}

	if proj.Age(now) > s.cfg.Lifetime {
		s.registry.Destroy(e)
		return
	}

	pos.Set(pos.Add(proj.Velocity.Scale(deltaTime)))
	if proj.DistanceTraveled(pos.Vec3) >= proj.MaxRange {
		s.registry.Destroy(e)
		return
	}

	team, ok := s.teamOf(e, proj)
	if !ok {
		return
	}
	for _, id := range s.grid.QueryRadius(pos.Vec3, s.cfg.HitRadius()) {
		if id == proj.AttackerID {
			continue
		}
		target, found := s.registry.FindByID(id)
		if !found || !component.IsAlive(target) {
			continue
		}
		tt, ok := component.TeamOf(target)
		if !ok || !team.HostileTo(tt.Type) {
			continue
		}
		s.hit(e, proj, target, pos)
		return
	}
}

// teamOf prefers the projectile's own team and falls back to its attacker's.
func (s *System) teamOf(e *models.Entity, proj *component.Projectile) (component.TeamType, bool) {
	if t, ok := component.TeamOf(e); ok {
		return t.Type, true
	}
	if attacker, ok := s.registry.FindByID(proj.AttackerID); ok {
		if t, ok := component.TeamOf(attacker); ok {
			return t.Type, true
		}
	}
	return 0, false
}

func (s *System) hit(e *models.Entity, proj *component.Projectile, target *models.Entity, pos *component.Position) {
	err := s.bus.Dispatch(bus.NewEvent(bus.ProjectileHit, bus.Payload{
		bus.KeyProjectileID: uint64(e.ID()),
		bus.KeyAttackerID:   uint64(proj.AttackerID),
		bus.KeyTargetID:     uint64(target.ID()),
		bus.KeyDamage:       proj.Damage,
		bus.KeyPosition:     pos.Vec3,
		bus.KeyKnockback:    proj.Knockback,
	}))
	if err != nil {
		s.logger.Error("projectile hit listener failed", log.Uint64("projectile_id", uint64(e.ID())), log.Error(err))
	}
	s.registry.Destroy(e)
}
