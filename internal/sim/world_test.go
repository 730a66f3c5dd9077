package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wavecore/internal/config"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/game/difficulty"
	"github.com/zeusync/wavecore/internal/game/meta"
	"github.com/zeusync/wavecore/internal/game/scene"
	"github.com/zeusync/wavecore/internal/game/wave"
)

const dt = 1.0 / 20

func smallConfig() *config.Config {
	cfg := config.Default()
	round := difficulty.RoundConfig{TotalBatches: 1, BatchSize: 1, SpawnInterval: 0.5, Enemy: "basic"}
	cfg.Waves = difficulty.WaveConfig{
		Rounds:     []difficulty.RoundConfig{round, round, round},
		RoundBreak: 2,
		WaveBreak:  3,
	}
	cfg.Meta = meta.Static{Levels: map[string]int{meta.KeyRanged: 1}}
	return cfg
}

func run(w *World, seconds float64) {
	for i := 0; i < int(seconds/dt); i++ {
		w.Tick(dt)
	}
}

func TestSystemsRunInPhaseOrder(t *testing.T) {
	w, err := New(smallConfig(), log.NewNop(), nil, nil, 1)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"wave_spawner", "movement", "projectile", "collision", "combat", "cleanup"},
		w.Systems().ExecutionOrder(),
	)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Waves.Rounds = cfg.Waves.Rounds[:2]
	_, err := New(cfg, log.NewNop(), nil, nil, 1)
	assert.ErrorIs(t, err, config.ErrInvalidWaves)
}

func TestStartBeginsFirstWave(t *testing.T) {
	w, err := New(smallConfig(), log.NewNop(), nil, nil, 1)
	require.NoError(t, err)
	require.True(t, w.IsWaveBreak())
	assert.Zero(t, w.BreakDuration())
	assert.Equal(t, 1.0, w.CoreHealthFraction())

	w.Tick(1)
	assert.Zero(t, w.Wave(), "no auto start before the first wave")

	require.True(t, w.Start())
	assert.Equal(t, 1, w.Wave())
	assert.Equal(t, 1, w.Round())
	assert.Equal(t, wave.SpawningRound, w.State())
	assert.Equal(t, 3, w.TotalEnemiesForWave())
	assert.Equal(t, 1, w.EnemiesForRound(2))
	assert.False(t, w.Start())
}

func TestTickIgnoresNonPositiveDelta(t *testing.T) {
	w, err := New(smallConfig(), log.NewNop(), nil, nil, 1)
	require.NoError(t, err)
	w.Tick(0)
	w.Tick(-1)
	assert.Zero(t, w.Now())
	assert.Zero(t, w.Ticks())
}

func TestWavesProgressWithRangedCore(t *testing.T) {
	sink := scene.NewHeadless()
	w, err := New(smallConfig(), log.NewNop(), sink, nil, 7)
	require.NoError(t, err)
	require.True(t, w.Start())

	run(w, 120)

	stats := w.Stats()
	require.True(t, w.CoreAlive())
	assert.GreaterOrEqual(t, stats.WavesCompleted, 1)
	assert.GreaterOrEqual(t, stats.HighestWave, 2)
	assert.GreaterOrEqual(t, stats.RoundsCompleted, 2)
	assert.Equal(t, stats.Kills["basic"], stats.TotalKills())
	assert.Equal(t, 10*stats.TotalKills(), stats.Score)

	attached, detached := sink.Totals()
	assert.Equal(t, w.Registry().Count(), attached-detached)
	assert.Equal(t, 1, sink.Live()["core"])
}

func TestSameSeedSameOutcome(t *testing.T) {
	outcome := func() (int, int, float64) {
		w, err := New(smallConfig(), log.NewNop(), nil, nil, 99)
		require.NoError(t, err)
		require.True(t, w.Start())
		run(w, 30)
		hp, _ := w.CoreHealth()
		return w.Wave(), w.Stats().TotalKills(), hp
	}
	w1, k1, hp1 := outcome()
	w2, k2, hp2 := outcome()
	assert.Equal(t, w1, w2)
	assert.Equal(t, k1, k2)
	assert.Equal(t, hp1, hp2)
}

func TestDeadCoreFreezesSpawner(t *testing.T) {
	cfg := smallConfig()
	cfg.Meta = meta.Static{}
	cfg.Entities.Core.HP = 1
	cfg.Entities.Core.Damage = 0
	cfg.Waves.Rounds[0].BatchSize = 3

	w, err := New(cfg, log.NewNop(), nil, nil, 3)
	require.NoError(t, err)
	require.True(t, w.Start())

	for i := 0; i < int(60/dt) && w.CoreAlive(); i++ {
		w.Tick(dt)
	}
	require.False(t, w.CoreAlive())

	state, waveN, round, live := w.State(), w.Wave(), w.Round(), w.LiveEnemies()
	run(w, 10)
	assert.Equal(t, state, w.State())
	assert.Equal(t, waveN, w.Wave())
	assert.Equal(t, round, w.Round())
	assert.Equal(t, live, w.LiveEnemies())

	_, found := w.FindEntity(w.Core().ID())
	assert.True(t, found, "core stays in the registry")
	hp, maxHP := w.CoreHealth()
	assert.Zero(t, hp)
	assert.Equal(t, 1.0, maxHP)
	assert.Zero(t, w.CoreHealthFraction())
	assert.False(t, w.CompleteWaveBreak())
}
