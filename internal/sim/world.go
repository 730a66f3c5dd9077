// Package sim composes the registry, bus and gameplay systems into a single
// world driven by fixed ticks.
package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/zeusync/wavecore/internal/config"
	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/systems"
	"github.com/zeusync/wavecore/internal/game/collision"
	"github.com/zeusync/wavecore/internal/game/combat"
	"github.com/zeusync/wavecore/internal/game/component"
	"github.com/zeusync/wavecore/internal/game/factory"
	"github.com/zeusync/wavecore/internal/game/meta"
	"github.com/zeusync/wavecore/internal/game/movement"
	"github.com/zeusync/wavecore/internal/game/projectile"
	"github.com/zeusync/wavecore/internal/game/scene"
	"github.com/zeusync/wavecore/internal/game/wave"
)

// World owns one simulation. It is not safe for concurrent use; run
// independent worlds on separate goroutines instead.
type World struct {
	runID    uuid.UUID
	cfg      *config.Config
	logger   log.Log
	bus      *bus.Bus
	registry *models.Registry
	manager  *systems.Manager
	spawner  *wave.Spawner
	factory  *factory.Factory
	clock    *Clock
	core     *models.Entity
	stats    *Stats
	ticks    int
	coreLost bool
}

// New builds a world seeded from cfg. progression may be nil.
func New(cfg *config.Config, logger log.Log, sink scene.Sink, progression meta.Progression, seed uint64) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	scaler, err := cfg.Scaler()
	if err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	if progression == nil {
		progression = &cfg.Meta
	}

	runID := uuid.New()
	logger = logger.With(log.String("run_id", runID.String()))

	w := &World{
		runID:   runID,
		cfg:     cfg,
		logger:  logger,
		bus:     bus.New(),
		manager: systems.NewManager(logger),
		clock:   &Clock{},
		stats:   newStats(),
	}
	w.registry = models.NewRegistry(w.bus, logger)
	w.stats.listen(w.bus)

	var bridge *scene.Bridge
	if sink != nil {
		bridge = scene.NewBridge(w.bus, sink, logger)
	}
	w.factory = factory.New(w.registry, bridge, logger, cfg.Entities)
	w.core, err = w.factory.SpawnCore(progression)
	if err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}

	w.spawner = wave.NewSpawner(wave.Deps{
		Registry: w.registry,
		Bus:      w.bus,
		Logger:   logger,
		Factory:  w.factory,
		Scaler:   scaler,
		Source:   wave.ScaledSource(scaler, cfg.Waves),
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, w.core, cfg.Spawner)

	for _, s := range []systems.System{
		w.spawner,
		movement.NewSystem(w.registry),
		projectile.NewSystem(w.registry, w.bus, logger, w.clock, cfg.Projectile),
		collision.NewSystem(w.registry, cfg.Collision),
		combat.NewSystem(w.registry, w.bus, logger, w.factory, w.clock, cfg.Combat, cfg.Projectile),
		combat.NewCleanup(w.registry, w.bus, logger),
	} {
		if err := w.manager.Register(s); err != nil {
			return nil, fmt.Errorf("new world: %w", err)
		}
	}

	logger.Info("world created",
		log.Uint64("seed", seed),
		log.Uint64("core_id", uint64(w.core.ID())),
		log.Int("meta_score", progression.Score()),
	)
	return w, nil
}

// Start begins wave 1.
func (w *World) Start() bool { return w.spawner.Start() }

// Tick advances the clock by dt and runs every system once in phase order.
// When auto breaks are enabled, a break whose advisory duration has passed
// is completed afterwards.
func (w *World) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	w.clock.Advance(dt)
	w.manager.Update(dt)
	w.ticks++

	if !w.coreLost && !component.IsAlive(w.core) {
		w.coreLost = true
		w.logger.Warn("core destroyed", log.Int("wave", w.spawner.Wave()), log.Int("round", w.spawner.Round()))
	}
	if w.cfg.Simulation.AutoBreaks {
		w.advanceBreak()
	}
}

func (w *World) advanceBreak() {
	if w.spawner.BreakElapsed() < w.spawner.BreakDuration() {
		return
	}
	switch {
	case w.spawner.IsRoundBreak():
		w.spawner.CompleteRoundBreak()
	case w.spawner.IsWaveBreak() && w.spawner.Wave() > 0:
		w.spawner.CompleteWaveBreak()
	}
}

// CompleteRoundBreak and CompleteWaveBreak are for drivers that time breaks
// themselves.
func (w *World) CompleteRoundBreak() bool { return w.spawner.CompleteRoundBreak() }
func (w *World) CompleteWaveBreak() bool  { return w.spawner.CompleteWaveBreak() }

func (w *World) RunID() uuid.UUID            { return w.runID }
func (w *World) Now() float64                { return w.clock.Now() }
func (w *World) Ticks() int                  { return w.ticks }
func (w *World) Bus() *bus.Bus               { return w.bus }
func (w *World) Registry() *models.Registry  { return w.registry }
func (w *World) Systems() *systems.Manager   { return w.manager }
func (w *World) Core() *models.Entity        { return w.core }
func (w *World) CoreAlive() bool             { return component.IsAlive(w.core) }
func (w *World) Wave() int                   { return w.spawner.Wave() }
func (w *World) Round() int                  { return w.spawner.Round() }
func (w *World) State() wave.StateKind       { return w.spawner.State() }
func (w *World) IsRoundBreak() bool          { return w.spawner.IsRoundBreak() }
func (w *World) IsWaveBreak() bool           { return w.spawner.IsWaveBreak() }
func (w *World) BreakElapsed() float64       { return w.spawner.BreakElapsed() }
func (w *World) BreakDuration() float64      { return w.spawner.BreakDuration() }
func (w *World) LiveEnemies() int            { return w.spawner.LiveEnemies() }
func (w *World) EnemiesSpawnedThisWave() int { return w.spawner.EnemiesSpawnedThisWave() }
func (w *World) TotalEnemiesForWave() int    { return w.spawner.TotalEnemiesForWave() }
func (w *World) EnemiesForRound(n int) int   { return w.spawner.EnemiesForRound(n) }

func (w *World) FindEntity(id models.EntityID) (*models.Entity, bool) {
	return w.registry.FindByID(id)
}

// CoreHealth returns current and max HP of the core.
func (w *World) CoreHealth() (current, maximum float64) {
	h, ok := component.HealthOf(w.core)
	if !ok {
		return 0, 0
	}
	return h.Current, h.Max
}

// CoreHealthFraction is current over max HP of the core, in [0, 1].
func (w *World) CoreHealthFraction() float64 {
	h, ok := component.HealthOf(w.core)
	if !ok {
		return 0
	}
	return h.Fraction()
}

// Stats returns a copy of the accumulated run statistics.
func (w *World) Stats() Stats { return w.stats.snapshot() }

// Logger is the world's run-scoped logger.
func (w *World) Logger() log.Log { return w.logger }
