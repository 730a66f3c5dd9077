package projectile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
	"github.com/zeusync/wavecore/internal/game/component"
)

type manualClock struct{ now float64 }

func (c *manualClock) Now() float64 { return c.now }

type fixture struct {
	registry *models.Registry
	bus      *bus.Bus
	clock    *manualClock
	system   *System
	hits     []bus.Event
	core     *models.Entity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{bus: bus.New(), clock: &manualClock{}}
	f.registry = models.NewRegistry(f.bus, log.NewNop())
	f.bus.On(bus.ProjectileHit, "hits", func(e bus.Event) error {
		f.hits = append(f.hits, e)
		return nil
	})
	f.system = NewSystem(f.registry, f.bus, log.NewNop(), f.clock, DefaultConfig())
	f.core = f.registry.Create().MustAdd(
		&component.Team{Type: component.TeamCore},
		component.NewHealth(100),
		component.NewPosition(physics.V(0, 0, 0)),
	)
	return f
}

func (f *fixture) fire(velocity physics.Vec3, maxRange float64) *models.Entity {
	start := physics.V(0, 0, 0)
	return f.registry.Create().MustAdd(
		component.NewProjectile(start, velocity, 7, maxRange, f.core.ID(), f.clock.now),
		component.NewPosition(start),
		&component.Team{Type: component.TeamCore},
	)
}

func (f *fixture) enemy(pos physics.Vec3) *models.Entity {
	return f.registry.Create().MustAdd(
		&component.Team{Type: component.TeamEnemy},
		component.NewHealth(10),
		component.NewPosition(pos),
	)
}

func (f *fixture) tick(dt float64) {
	f.clock.now += dt
	_ = f.system.Update(dt)
}

func TestRangeExpiryAnyDirection(t *testing.T) {
	dirs := []physics.Vec3{
		physics.V(1, 0, 0),
		physics.V(0, 0, -1),
		physics.V(0.6, 0, 0.8),
		physics.V(-0.6, 0, -0.8),
		physics.V(0, 1, 0),
	}
	for _, d := range dirs {
		f := newFixture(t)
		p := f.fire(d.Scale(15), 25)
		ticks := 0
		for !p.Destroyed() && ticks < 100 {
			f.tick(0.1)
			ticks++
			if !p.Destroyed() {
				pos, _ := component.PositionOf(p)
				proj, _ := component.ProjectileOf(p)
				require.Less(t, proj.DistanceTraveled(pos.Vec3), 25.0)
			}
		}
		assert.Equal(t, 17, ticks, "direction %+v", d)
	}
}

func TestLifetimeExpiry(t *testing.T) {
	f := newFixture(t)
	f.clock.now = 10
	p := f.fire(physics.V(0.1, 0, 0), 1000)

	for i := 0; i < 4; i++ {
		f.tick(1.0)
		require.False(t, p.Destroyed(), "age %v", f.clock.now-10)
	}
	f.tick(1.0)
	assert.True(t, p.Destroyed())
	assert.Empty(t, f.hits)
}

func TestHitPublishesAndDestroys(t *testing.T) {
	f := newFixture(t)
	target := f.enemy(physics.V(5, 0, 0))
	p := f.fire(physics.V(10, 0, 0), 25)
	proj, _ := component.ProjectileOf(p)
	proj.Knockback = 2

	for i := 0; i < 5; i++ {
		f.tick(0.1)
	}
	require.True(t, p.Destroyed())
	require.Len(t, f.hits, 1)

	hit := f.hits[0].Payload
	id, _ := hit.Uint64(bus.KeyTargetID)
	assert.EqualValues(t, target.ID(), id)
	id, _ = hit.Uint64(bus.KeyAttackerID)
	assert.EqualValues(t, f.core.ID(), id)
	id, _ = hit.Uint64(bus.KeyProjectileID)
	assert.EqualValues(t, p.ID(), id)
	dmg, _ := hit.Float64(bus.KeyDamage)
	assert.Equal(t, 7.0, dmg)
	kb, _ := hit.Float64(bus.KeyKnockback)
	assert.Equal(t, 2.0, kb)
	pos, ok := hit.Vec(bus.KeyPosition)
	require.True(t, ok)
	assert.InDelta(t, 5.0, pos.X, 0.6)
}

func TestIgnoresFriendlyAndDead(t *testing.T) {
	f := newFixture(t)
	f.registry.Create().MustAdd(
		&component.Team{Type: component.TeamCore},
		component.NewHealth(10),
		component.NewPosition(physics.V(1, 0, 0)),
	)
	dead := f.enemy(physics.V(2, 0, 0))
	hp, _ := component.HealthOf(dead)
	hp.Damage(100)
	live := f.enemy(physics.V(3, 0, 0))

	p := f.fire(physics.V(10, 0, 0), 25)
	for i := 0; i < 3; i++ {
		f.tick(0.1)
	}
	require.True(t, p.Destroyed())
	require.Len(t, f.hits, 1)
	id, _ := f.hits[0].Payload.Uint64(bus.KeyTargetID)
	assert.EqualValues(t, live.ID(), id)
}

func TestFirstQualifyingTargetWins(t *testing.T) {
	f := newFixture(t)
	first := f.enemy(physics.V(1.2, 0, 0.3))
	f.enemy(physics.V(1.0, 0, 0))

	p := f.fire(physics.V(10, 0, 0), 25)
	f.tick(0.1)
	require.True(t, p.Destroyed())
	require.Len(t, f.hits, 1)
	id, _ := f.hits[0].Payload.Uint64(bus.KeyTargetID)
	assert.EqualValues(t, first.ID(), id, "registry order, not distance")
}

func TestTargetKilledByEarlierHitIsSkipped(t *testing.T) {
	f := newFixture(t)
	target := f.enemy(physics.V(1, 0, 0))
	f.bus.On(bus.ProjectileHit, "kill", func(e bus.Event) error {
		id, _ := e.Payload.Uint64(bus.KeyTargetID)
		f.registry.DestroyByID(models.EntityID(id))
		return nil
	})
	a := f.fire(physics.V(10, 0, 0), 25)
	b := f.fire(physics.V(10, 0, 0), 25)

	f.tick(0.1)
	assert.True(t, a.Destroyed())
	assert.False(t, b.Destroyed())
	assert.True(t, target.Destroyed())
	assert.Len(t, f.hits, 1)
}

func TestProjectileWithoutTeamUsesAttacker(t *testing.T) {
	f := newFixture(t)
	f.enemy(physics.V(1, 0, 0))
	start := physics.V(0, 0, 0)
	p := f.registry.Create().MustAdd(
		component.NewProjectile(start, physics.V(10, 0, 0), 1, 25, f.core.ID(), 0),
		component.NewPosition(start),
	)
	f.tick(0.1)
	assert.True(t, p.Destroyed())
	assert.Len(t, f.hits, 1)
}

func TestConfig(t *testing.T) {
	c := DefaultConfig()
	assert.NoError(t, c.Validate())
	assert.InDelta(t, 0.6, c.HitRadius(), 1e-12)
	c.Lifetime = 0
	assert.Error(t, c.Validate())
}
