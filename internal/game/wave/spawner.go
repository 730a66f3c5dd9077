package wave

import (
	"math"
	"math/rand/v2"

	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/systems"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
	"github.com/zeusync/wavecore/internal/game/component"
	"github.com/zeusync/wavecore/internal/game/difficulty"
)

// EnemyFactory creates one enemy entity through the registry.
type EnemyFactory interface {
	SpawnEnemy(spec EnemySpec) (*models.Entity, error)
}

type Deps struct {
	Registry *models.Registry
	Bus      *bus.Bus
	Logger   log.Log
	Factory  EnemyFactory
	Scaler   *difficulty.Scaler
	Source   Source
	Rand     *rand.Rand
}

// Spawner drives waves, rounds and batches. It starts in WAVE_BREAK and
// cycles forever while the core is alive; while the core is dead every
// update is a no-op and the state is kept as is.
//
// Breaks are not self-timed: the spawner only reports elapsed and advisory
// durations, and waits for CompleteRoundBreak or CompleteWaveBreak.
type Spawner struct {
	registry *models.Registry
	bus      *bus.Bus
	logger   log.Log
	factory  EnemyFactory
	scaler   *difficulty.Scaler
	source   Source
	rng      *rand.Rand
	cfg      Config
	core     *models.Entity

	state   state
	wave    int
	round   int
	waveCfg difficulty.WaveConfig

	spawnedThisWave  int
	spawnedThisRound int
}

var _ systems.System = (*Spawner)(nil)

func NewSpawner(deps Deps, core *models.Entity, cfg Config) *Spawner {
	if deps.Scaler == nil {
		deps.Scaler = difficulty.MustDefault()
	}
	if deps.Source == nil {
		deps.Source = ScaledSource(deps.Scaler, difficulty.DefaultWaveConfig())
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(1, 1))
	}
	return &Spawner{
		registry: deps.Registry,
		bus:      deps.Bus,
		logger:   deps.Logger.With(log.String("system", "wave_spawner")),
		factory:  deps.Factory,
		scaler:   deps.Scaler,
		source:   deps.Source,
		rng:      deps.Rand,
		cfg:      cfg,
		core:     core,
		state:    &waveBreak{},
	}
}

func (s *Spawner) Name() string                  { return "wave_spawner" }
func (s *Spawner) Phase() systems.ExecutionPhase { return systems.PhaseSpawn }

// Update advances the state machine by deltaTime seconds.
func (s *Spawner) Update(deltaTime float64) error {
	if !component.IsAlive(s.core) {
		return nil
	}

	switch st := s.state.(type) {
	case *spawningRound:
		s.updateSpawning(st, deltaTime)
	case *waitingForRoundClear:
		if s.liveHostiles() > 0 || (s.spawnedThisRound == 0 && st.expected > 0) {
			return nil
		}
		if s.round < difficulty.RoundsPerWave && s.round < len(s.waveCfg.Rounds) {
			s.state = &roundBreak{}
			s.logger.Info("round completed", log.Int("wave", s.wave), log.Int("round", s.round))
			s.publish(bus.RoundCompleted, bus.Payload{bus.KeyWave: s.wave, bus.KeyRound: s.round})
			return nil
		}
		s.state = &waitingForWaveClear{}
	case *roundBreak:
		st.elapsed += deltaTime
	case *waitingForWaveClear:
		if s.liveHostiles() > 0 {
			return nil
		}
		s.state = &waveBreak{}
		s.logger.Info("wave completed", log.Int("wave", s.wave))
		s.publish(bus.WaveCompleted, bus.Payload{bus.KeyWave: s.wave})
	case *waveBreak:
		st.elapsed += deltaTime
	}
	return nil
}

// timerEpsilon absorbs float drift from summing fractional deltas.
const timerEpsilon = 1e-9

func (s *Spawner) updateSpawning(st *spawningRound, deltaTime float64) {
	if st.batchesSpawned >= st.cfg.TotalBatches {
		s.state = &waitingForRoundClear{expected: st.cfg.Enemies()}
		return
	}
	st.timer += deltaTime
	if st.timer+timerEpsilon < st.cfg.SpawnInterval {
		return
	}
	s.spawnBatch(st.cfg)
	st.batchesSpawned++
	// Carry the overshoot so batch times stay on the interval grid.
	st.timer = max(0, st.timer-st.cfg.SpawnInterval)
	if st.batchesSpawned >= st.cfg.TotalBatches {
		s.state = &waitingForRoundClear{expected: st.cfg.Enemies()}
	}
}

// Start begins the first wave. It is CompleteWaveBreak under a name that
// reads better at game start.
func (s *Spawner) Start() bool {
	return s.CompleteWaveBreak()
}

// CompleteRoundBreak advances from ROUND_BREAK into the next round.
func (s *Spawner) CompleteRoundBreak() bool {
	if _, ok := s.state.(*roundBreak); !ok || !component.IsAlive(s.core) {
		return false
	}
	return s.startRound(s.round + 1)
}

// CompleteWaveBreak advances from WAVE_BREAK into round 1 of the next wave.
func (s *Spawner) CompleteWaveBreak() bool {
	if _, ok := s.state.(*waveBreak); !ok || !component.IsAlive(s.core) {
		return false
	}
	next := s.wave + 1
	cfg := s.source(next)
	if len(cfg.Rounds) == 0 {
		s.logger.Error("wave has no rounds", log.Int("wave", next))
		return false
	}

	s.wave = next
	s.round = 0
	s.waveCfg = cfg
	s.spawnedThisWave = 0
	s.logger.Info("wave started",
		log.Int("wave", s.wave),
		log.Int("total_enemies", cfg.TotalEnemies()),
		log.String("tier", s.scaler.TierFor(s.wave).Name),
	)
	s.publish(bus.WaveStarted, bus.Payload{bus.KeyWave: s.wave})
	return s.startRound(1)
}

func (s *Spawner) startRound(n int) bool {
	if n > difficulty.RoundsPerWave {
		s.logger.Error("round index out of range", log.Int("wave", s.wave), log.Int("round", n))
		return false
	}
	cfg, ok := s.waveCfg.Round(n)
	if !ok {
		s.logger.Error("round not configured", log.Int("wave", s.wave), log.Int("round", n))
		return false
	}
	s.round = n
	s.spawnedThisRound = 0
	s.state = &spawningRound{cfg: cfg}
	s.logger.Info("round started",
		log.Int("wave", s.wave),
		log.Int("round", n),
		log.Int("batches", cfg.TotalBatches),
		log.Int("batch_size", cfg.BatchSize),
	)
	s.publish(bus.RoundStarted, bus.Payload{bus.KeyWave: s.wave, bus.KeyRound: n})
	return true
}

func (s *Spawner) spawnBatch(cfg difficulty.RoundConfig) {
	corePos, _ := component.PositionOf(s.core)
	center := physics.Vec3{}
	if corePos != nil {
		center = corePos.Vec3
	}
	for i := 0; i < cfg.BatchSize; i++ {
		spec := s.resolveEnemy(cfg.Enemy)
		spec.Position = center.Add(s.annulusOffset())
		if _, err := s.factory.SpawnEnemy(spec); err != nil {
			s.logger.Error("enemy spawn failed", log.String("enemy", spec.Kind), log.Int("wave", s.wave), log.Error(err))
			continue
		}
		s.spawnedThisWave++
		s.spawnedThisRound++
	}
}

// annulusOffset samples uniformly by area between the two spawn radii.
func (s *Spawner) annulusOffset() physics.Vec3 {
	angle := s.rng.Float64() * 2 * math.Pi
	rMin, rMax := s.cfg.SpawnRadiusMin, s.cfg.SpawnRadiusMax
	r := math.Sqrt(rMin*rMin + s.rng.Float64()*(rMax*rMax-rMin*rMin))
	return physics.PointOnAnnulus(angle, r)
}

func (s *Spawner) resolveEnemy(kind string) EnemySpec {
	if kind == "" {
		kind = s.cfg.DefaultEnemy
	}
	base, ok := s.cfg.Enemies[kind]
	if !ok {
		kind = s.cfg.DefaultEnemy
		base = s.cfg.Enemies[kind]
	}
	spec := EnemySpec{Kind: kind, Wave: s.wave, Score: base.Score}
	switch s.cfg.Scaling {
	case ScaleFlat:
		spec.HP = base.HP + s.cfg.FlatHPBonus*float64(s.wave-1)
		spec.Speed = base.Speed
		spec.Damage = base.Damage
	default:
		m := s.scaler.ScalersForWave(s.wave)
		spec.HP = base.HP * m.HP
		spec.Speed = base.Speed * m.Speed
		spec.Damage = base.Damage * m.Damage
	}
	return spec
}

// liveHostiles counts alive entities hostile to the core.
func (s *Spawner) liveHostiles() int {
	n := 0
	for e := range s.registry.All() {
		if component.Hostile(s.core, e) && component.IsAlive(e) {
			n++
		}
	}
	return n
}

func (s *Spawner) publish(kind bus.Kind, payload bus.Payload) {
	if err := s.bus.Dispatch(bus.NewEvent(kind, payload)); err != nil {
		s.logger.Error("wave listener failed", log.String("event", string(kind)), log.Error(err))
	}
}

func (s *Spawner) State() StateKind { return s.state.kind() }
func (s *Spawner) Wave() int        { return s.wave }
func (s *Spawner) Round() int       { return s.round }
func (s *Spawner) IsRoundBreak() bool {
	return s.state.kind() == RoundBreak
}
func (s *Spawner) IsWaveBreak() bool {
	return s.state.kind() == WaveBreak
}

// BreakElapsed is the time spent in the current break, zero outside breaks.
func (s *Spawner) BreakElapsed() float64 {
	switch st := s.state.(type) {
	case *roundBreak:
		return st.elapsed
	case *waveBreak:
		return st.elapsed
	default:
		return 0
	}
}

// BreakDuration is the advisory length of the current break for the layer
// that decides when to advance. Zero before the first wave.
func (s *Spawner) BreakDuration() float64 {
	switch s.state.(type) {
	case *roundBreak:
		return s.waveCfg.RoundBreak
	case *waveBreak:
		if s.wave == 0 {
			return 0
		}
		return s.waveCfg.WaveBreak
	default:
		return 0
	}
}

// BatchesSpawned reports progress of the round being spawned.
func (s *Spawner) BatchesSpawned() int {
	if st, ok := s.state.(*spawningRound); ok {
		return st.batchesSpawned
	}
	return 0
}

func (s *Spawner) EnemiesSpawnedThisWave() int { return s.spawnedThisWave }

// TotalEnemiesForWave is Σ TotalBatches×BatchSize over the current wave.
func (s *Spawner) TotalEnemiesForWave() int { return s.waveCfg.TotalEnemies() }

// EnemiesForRound returns the configured enemy count of 1-based round n.
func (s *Spawner) EnemiesForRound(n int) int {
	r, ok := s.waveCfg.Round(n)
	if !ok {
		return 0
	}
	return r.Enemies()
}

// LiveEnemies counts enemies still alive.
func (s *Spawner) LiveEnemies() int { return s.liveHostiles() }
