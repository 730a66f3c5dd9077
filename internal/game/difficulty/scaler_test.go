package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalersForWaveTierBases(t *testing.T) {
	s := MustDefault()

	m := s.ScalersForWave(1)
	assert.InDelta(t, 1.0, m.HP, 1e-9)
	assert.InDelta(t, 1.0, m.Damage, 1e-9)
	assert.InDelta(t, 1.0, m.Speed, 1e-9)

	assert.InDelta(t, 1.3, s.ScalersForWave(4).HP, 1e-9)
	assert.InDelta(t, 3.5, s.ScalersForWave(11).HP, 1e-9)

	assert.Equal(t, "EARLY", s.TierFor(3).Name)
	assert.Equal(t, "MID", s.TierFor(6).Name)
	assert.Equal(t, "LATE", s.TierFor(7).Name)
	assert.Equal(t, "EXTREME", s.TierFor(500).Name)
}

func TestScalersForWaveGrowth(t *testing.T) {
	s := MustDefault()
	m := s.ScalersForWave(3)
	assert.InDelta(t, 1.1025, m.HP, 1e-9)
	assert.InDelta(t, 1/1.1025, m.SpawnInterval, 1e-9)
	assert.InDelta(t, 1/1.1025, m.BreakDuration, 1e-9)

	m = s.ScalersForWave(13)
	assert.InDelta(t, 3.5*1.15*1.15, m.HP, 1e-9)
}

func TestScalersMonotone(t *testing.T) {
	s := MustDefault()
	prev := s.ScalersForWave(1)
	for w := 2; w <= 40; w++ {
		cur := s.ScalersForWave(w)
		assert.GreaterOrEqual(t, cur.HP, prev.HP, "hp wave %d", w)
		assert.GreaterOrEqual(t, cur.Damage, prev.Damage, "damage wave %d", w)
		assert.GreaterOrEqual(t, cur.Speed, prev.Speed, "speed wave %d", w)
		assert.GreaterOrEqual(t, cur.BatchSize, prev.BatchSize, "batch wave %d", w)
		assert.LessOrEqual(t, cur.SpawnInterval, prev.SpawnInterval, "interval wave %d", w)
		assert.LessOrEqual(t, cur.BreakDuration, prev.BreakDuration, "break wave %d", w)
		prev = cur
	}
}

func TestScaledHelpers(t *testing.T) {
	s := MustDefault()
	assert.InDelta(t, 130, s.ScaledHP(100, 4), 1e-9)
	assert.InDelta(t, 12, s.ScaledDamage(10, 4), 1e-9)
	assert.InDelta(t, 11.5, s.ScaledSpeed(10, 4), 1e-9)
	assert.InDelta(t, 100, s.ScaledHP(100, 0), 1e-9, "waves below 1 clamp to 1")
}

func TestScaleWaveConfigClamps(t *testing.T) {
	s := MustDefault()
	base := WaveConfig{
		Rounds: []RoundConfig{
			{TotalBatches: 4, BatchSize: 0, SpawnInterval: 0.2},
			{TotalBatches: 2, BatchSize: 3, SpawnInterval: 4},
		},
		RoundBreak: 1,
		WaveBreak:  1,
	}
	out := s.ScaleWaveConfig(base, 20)

	require.Len(t, out.Rounds, 2)
	assert.Equal(t, 1, out.Rounds[0].BatchSize)
	assert.Equal(t, 4, out.Rounds[0].TotalBatches)
	assert.Equal(t, MinSpawnInterval, out.Rounds[0].SpawnInterval)
	assert.Greater(t, out.Rounds[1].BatchSize, 3)
	assert.Equal(t, MinRoundBreak, out.RoundBreak)
	assert.Equal(t, MinWaveBreak, out.WaveBreak)
	assert.Equal(t, 0, base.Rounds[0].BatchSize, "input untouched")
}

func TestScaleWaveConfigWaveOneIsIdentity(t *testing.T) {
	s := MustDefault()
	base := DefaultWaveConfig()
	out := s.ScaleWaveConfig(base, 1)
	assert.Equal(t, base, out)
}

func TestTotalEnemies(t *testing.T) {
	assert.Equal(t, 37, DefaultWaveConfig().TotalEnemies())
	_, ok := DefaultWaveConfig().Round(4)
	assert.False(t, ok)
	r, ok := DefaultWaveConfig().Round(2)
	require.True(t, ok)
	assert.Equal(t, 10, r.Enemies())
}

func TestNewScalerValidation(t *testing.T) {
	_, err := NewScaler(nil)
	assert.ErrorIs(t, err, ErrInvalidTiers)

	gap := DefaultTiers()
	gap[1].MinWave = 5
	_, err = NewScaler(gap)
	assert.ErrorIs(t, err, ErrInvalidTiers)

	bounded := DefaultTiers()
	bounded[3].MaxWave = 20
	_, err = NewScaler(bounded)
	assert.ErrorIs(t, err, ErrInvalidTiers)

	late := DefaultTiers()
	late[0].MinWave = 2
	_, err = NewScaler(late)
	assert.ErrorIs(t, err, ErrInvalidTiers)

	shuffled := DefaultTiers()
	shuffled[0], shuffled[3] = shuffled[3], shuffled[0]
	s, err := NewScaler(shuffled)
	require.NoError(t, err)
	assert.Equal(t, "EARLY", s.TierFor(1).Name)
}
