package combat

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/spatial"
	"github.com/zeusync/wavecore/internal/core/systems"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
	"github.com/zeusync/wavecore/internal/game/component"
	"github.com/zeusync/wavecore/internal/game/projectile"
)

type Config struct {
	MeleeRingWidth    float64 `yaml:"melee_ring_width"`
	KnockbackPerLevel float64 `yaml:"knockback_per_level"`
	StunPerLevel      float64 `yaml:"stun_per_level"`
	RangedDamageBonus float64 `yaml:"ranged_damage_bonus"`
}

func DefaultConfig() Config {
	return Config{
		MeleeRingWidth:    1.0,
		KnockbackPerLevel: 0.5,
		StunPerLevel:      0.5,
		RangedDamageBonus: 0.25,
	}
}

func (c Config) Validate() error {
	if c.MeleeRingWidth < 0 || c.KnockbackPerLevel < 0 || c.StunPerLevel < 0 || c.RangedDamageBonus < 0 {
		return fmt.Errorf("combat ring width, knockback, stun and bonus must be non-negative")
	}
	return nil
}

// LaunchSpec is a fully resolved projectile to create.
type LaunchSpec struct {
	AttackerID models.EntityID
	TargetID   models.EntityID
	Team       component.TeamType
	From       physics.Vec3
	Velocity   physics.Vec3
	Damage     float64
	MaxRange   float64
	Knockback  float64
	SpawnTime  float64
}

// Launcher creates projectile entities.
type Launcher interface {
	LaunchProjectile(spec LaunchSpec) (*models.Entity, error)
}

type Clock interface {
	Now() float64
}

// System resolves Attack/Target components, ability pulses and projectile
// hits into damage. Enemies that reach zero HP are announced with
// EnemyKilled and destroyed; the core is never destroyed.
type System struct {
	registry *models.Registry
	bus      *bus.Bus
	logger   log.Log
	launcher Launcher
	clock    Clock
	cfg      Config
	shots    projectile.Config
	grid     *spatial.Grid
}

var _ systems.System = (*System)(nil)

const projectileHitListener = "combat.projectile_hit"

// NewSystem registers the ProjectileHit listener on b. Ranged shots use the
// speed and max range of shots.
func NewSystem(registry *models.Registry, b *bus.Bus, logger log.Log, launcher Launcher, clock Clock, cfg Config, shots projectile.Config) *System {
	s := &System{
		registry: registry,
		bus:      b,
		logger:   logger.With(log.String("system", "combat")),
		launcher: launcher,
		clock:    clock,
		cfg:      cfg,
		shots:    shots,
		grid:     spatial.NewGrid(4),
	}
	b.On(bus.ProjectileHit, projectileHitListener, s.onProjectileHit)
	return s
}

func (s *System) Name() string                  { return "combat" }
func (s *System) Phase() systems.ExecutionPhase { return systems.PhaseCombat }

func (s *System) Update(deltaTime float64) error {
	entities := s.registry.Snapshot()

	s.grid.Clear()
	for _, e := range entities {
		if e.Has(component.ProjectileID) || !e.Has(component.TeamID) || !component.IsAlive(e) {
			continue
		}
		if pos, ok := component.PositionOf(e); ok {
			s.grid.Insert(e.ID(), pos.Vec3)
		}
	}

	for _, e := range entities {
		if !component.IsAlive(e) {
			continue
		}
		if ab, ok := component.AbilityOf(e); ok {
			ab.CooldownRemaining = max(0, ab.CooldownRemaining-deltaTime)
			if ab.Ready() {
				s.useAbility(e, ab)
			}
		}
		atk, ok := component.AttackOf(e)
		if !ok {
			continue
		}
		atk.Tick(deltaTime)
		s.engage(e, atk)
	}
	return nil
}

func (s *System) engage(e *models.Entity, atk *component.Attack) {
	tgt, ok := component.TargetOf(e)
	if !ok {
		return
	}
	pos, ok := component.PositionOf(e)
	if !ok {
		return
	}
	target := s.acquire(e, pos.Vec3, tgt)
	if target == nil {
		tgt.Clear()
		return
	}
	tgt.CurrentTarget = target.ID()
	if !atk.Ready() {
		return
	}

	meta, _ := component.MetaUpgradeOf(e)
	reach := atk.Range
	if meta != nil {
		reach += float64(meta.MeleeRangeRings) * s.cfg.MeleeRingWidth
	}
	tpos, _ := component.PositionOf(target)
	dist := physics.DistanceGround(pos.Vec3, tpos.Vec3)

	switch {
	case dist <= reach && meta != nil:
		for _, victim := range s.meleeVictims(e, target, pos.Vec3, reach, meta.MeleeTargets()) {
			s.ApplyDamage(e.ID(), victim, atk.Damage)
		}
	case dist <= reach:
		s.ApplyDamage(e.ID(), target, atk.Damage)
	case meta != nil && meta.RangedUnlocked && dist <= s.shots.MaxRange:
		if !s.fire(e, pos.Vec3, target, tpos.Vec3, atk, meta) {
			return
		}
	default:
		return
	}
	atk.Trigger()
}

// acquire keeps the current target while it stays valid and in search range,
// otherwise picks a new one according to the targeting mode.
func (s *System) acquire(e *models.Entity, from physics.Vec3, tgt *component.Target) *models.Entity {
	if tgt.HasTarget() {
		if cur, ok := s.registry.FindByID(tgt.CurrentTarget); ok && s.valid(e, cur, from, tgt.SearchRange) {
			return cur
		}
	}

	mode := component.TargetNearest
	if meta, ok := component.MetaUpgradeOf(e); ok {
		mode = meta.TargetingMode
	}
	candidates := s.hostilesWithin(e, from, tgt.SearchRange)
	if len(candidates) == 0 {
		return nil
	}
	switch mode {
	case component.TargetWeakest:
		return slices.MinFunc(candidates, func(a, b *models.Entity) int { return cmp.Compare(hp(a), hp(b)) })
	case component.TargetStrongest:
		return slices.MaxFunc(candidates, func(a, b *models.Entity) int { return cmp.Compare(hp(a), hp(b)) })
	default:
		id, ok := s.grid.Nearest(from, tgt.SearchRange, func(id models.EntityID) bool {
			other, found := s.registry.FindByID(id)
			return found && component.Hostile(e, other) && component.IsAlive(other)
		})
		if !ok {
			return nil
		}
		target, _ := s.registry.FindByID(id)
		return target
	}
}

func (s *System) valid(e, other *models.Entity, from physics.Vec3, searchRange float64) bool {
	if !component.Hostile(e, other) || !component.IsAlive(other) {
		return false
	}
	pos, ok := component.PositionOf(other)
	return ok && physics.DistanceGround(from, pos.Vec3) <= searchRange
}

// hostilesWithin lists live hostiles in range, nearest first.
func (s *System) hostilesWithin(e *models.Entity, from physics.Vec3, radius float64) []*models.Entity {
	var out []*models.Entity
	for _, id := range s.grid.QueryRadiusGround(from, radius) {
		other, ok := s.registry.FindByID(id)
		if ok && component.Hostile(e, other) && component.IsAlive(other) {
			out = append(out, other)
		}
	}
	slices.SortStableFunc(out, func(a, b *models.Entity) int {
		pa, _ := component.PositionOf(a)
		pb, _ := component.PositionOf(b)
		return cmp.Compare(physics.DistanceGround(from, pa.Vec3), physics.DistanceGround(from, pb.Vec3))
	})
	return out
}

// meleeVictims is the engaged target followed by the nearest other hostiles
// in reach, n in total.
func (s *System) meleeVictims(e, target *models.Entity, from physics.Vec3, reach float64, n int) []*models.Entity {
	victims := []*models.Entity{target}
	for _, other := range s.hostilesWithin(e, from, reach) {
		if len(victims) >= n {
			break
		}
		if other != target {
			victims = append(victims, other)
		}
	}
	return victims
}

func (s *System) fire(e *models.Entity, from physics.Vec3, target *models.Entity, to physics.Vec3, atk *component.Attack, meta *component.MetaUpgrade) bool {
	if s.launcher == nil {
		return false
	}
	team, _ := component.TeamOf(e)
	dir := to.Sub(from).Flat().Normalize()
	_, err := s.launcher.LaunchProjectile(LaunchSpec{
		AttackerID: e.ID(),
		TargetID:   target.ID(),
		Team:       team.Type,
		From:       from,
		Velocity:   dir.Scale(s.shots.Speed),
		Damage:     atk.Damage * (1 + s.cfg.RangedDamageBonus*float64(meta.RangedLevel)),
		MaxRange:   s.shots.MaxRange,
		Knockback:  s.cfg.KnockbackPerLevel * float64(meta.KnockbackLevel),
		SpawnTime:  s.clock.Now(),
	})
	if err != nil {
		s.logger.Error("projectile launch failed", log.Uint64("attacker_id", uint64(e.ID())), log.Error(err))
		return false
	}
	return true
}

func (s *System) useAbility(e *models.Entity, ab *component.Ability) {
	pos, ok := component.PositionOf(e)
	if !ok {
		return
	}
	switch ab.Kind {
	case component.AbilityStunPulse:
		for _, victim := range s.hostilesWithin(e, pos.Vec3, ab.Radius) {
			if mv, ok := component.MovementOf(victim); ok {
				mv.Stun(s.cfg.StunPerLevel * float64(ab.Level))
			}
		}
	case component.AbilityKnockback:
		for _, victim := range s.hostilesWithin(e, pos.Vec3, ab.Radius) {
			knockback(victim, pos.Vec3, s.cfg.KnockbackPerLevel*float64(ab.Level))
		}
	}
	ab.CooldownRemaining = ab.Cooldown
}

func (s *System) onProjectileHit(ev bus.Event) error {
	targetID, ok := ev.Payload.Uint64(bus.KeyTargetID)
	if !ok {
		return fmt.Errorf("projectile hit without target id")
	}
	target, ok := s.registry.FindByID(models.EntityID(targetID))
	if !ok {
		return nil
	}
	attackerID, _ := ev.Payload.Uint64(bus.KeyAttackerID)
	damage, _ := ev.Payload.Float64(bus.KeyDamage)
	if kb, _ := ev.Payload.Float64(bus.KeyKnockback); kb > 0 {
		if at, ok := ev.Payload.Vec(bus.KeyPosition); ok {
			knockback(target, at, kb)
		}
	}
	s.ApplyDamage(models.EntityID(attackerID), target, damage)
	return nil
}

// ApplyDamage removes HP from target and resolves a kill.
func (s *System) ApplyDamage(attacker models.EntityID, target *models.Entity, amount float64) {
	h, ok := component.HealthOf(target)
	if !ok || !h.Alive() || target.Destroyed() {
		return
	}
	h.Damage(amount)
	if h.Alive() {
		return
	}
	if _, isEnemy := component.EnemyTypeOf(target); isEnemy {
		Kill(s.registry, s.bus, s.logger, target, attacker)
		return
	}
	s.logger.Warn("defended entity fell", log.Uint64("entity_id", uint64(target.ID())))
}

// Kill announces EnemyKilled and destroys the enemy.
func Kill(registry *models.Registry, b *bus.Bus, logger log.Log, target *models.Entity, killer models.EntityID) {
	payload := bus.Payload{
		bus.KeyEntityID: uint64(target.ID()),
		bus.KeyKillerID: uint64(killer),
	}
	if et, ok := component.EnemyTypeOf(target); ok {
		payload[bus.KeyEnemyType] = string(et.Kind)
		payload[bus.KeyWave] = et.Wave
		payload[bus.KeyScore] = et.ScoreValue
	}
	if err := b.Dispatch(bus.NewEvent(bus.EnemyKilled, payload)); err != nil {
		logger.Error("enemy killed listener failed", log.Uint64("entity_id", uint64(target.ID())), log.Error(err))
	}
	registry.Destroy(target)
}

// knockback pushes a movable target away from origin on the ground plane.
func knockback(target *models.Entity, origin physics.Vec3, distance float64) {
	if distance <= 0 {
		return
	}
	if col, ok := component.CollisionOf(target); ok && col.Immovable {
		return
	}
	if !target.Has(component.MovementID) {
		return
	}
	pos, ok := component.PositionOf(target)
	if !ok {
		return
	}
	dir := pos.Sub(origin).Flat().Normalize()
	if dir.IsZero() {
		return
	}
	pos.Translate(dir.Scale(distance))
}

func hp(e *models.Entity) float64 {
	if h, ok := component.HealthOf(e); ok {
		return h.Current
	}
	return 0
}
