package difficulty

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Floors applied by ScaleWaveConfig.
const (
	MinBatchSize     = 1
	MinSpawnInterval = 0.5
	MinRoundBreak    = 2.0
	MinWaveBreak     = 3.0
)

var ErrInvalidTiers = errors.New("invalid difficulty tiers")

// Scaler maps a wave number to its multiplier set. It is immutable and safe
// to share.
type Scaler struct {
	tiers []Tier
}

// NewScaler validates that tiers partition [1,∞) without gaps or overlaps.
func NewScaler(tiers []Tier) (*Scaler, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers", ErrInvalidTiers)
	}
	sorted := slices.Clone(tiers)
	slices.SortFunc(sorted, func(a, b Tier) int { return a.MinWave - b.MinWave })

	if sorted[0].MinWave != 1 {
		return nil, fmt.Errorf("%w: first tier %q starts at wave %d", ErrInvalidTiers, sorted[0].Name, sorted[0].MinWave)
	}
	for i, t := range sorted {
		if t.GrowthRate < 0 {
			return nil, fmt.Errorf("%w: tier %q has negative growth", ErrInvalidTiers, t.Name)
		}
		if t.Base.SpawnInterval <= 0 || t.Base.BreakDuration <= 0 {
			return nil, fmt.Errorf("%w: tier %q interval and break multipliers must be positive", ErrInvalidTiers, t.Name)
		}
		last := i == len(sorted)-1
		if last {
			if t.MaxWave != 0 {
				return nil, fmt.Errorf("%w: last tier %q must be unbounded", ErrInvalidTiers, t.Name)
			}
			break
		}
		if t.MaxWave < t.MinWave {
			return nil, fmt.Errorf("%w: tier %q ends before it starts", ErrInvalidTiers, t.Name)
		}
		if next := sorted[i+1]; next.MinWave != t.MaxWave+1 {
			return nil, fmt.Errorf("%w: gap or overlap between %q and %q", ErrInvalidTiers, t.Name, next.Name)
		}
	}
	return &Scaler{tiers: sorted}, nil
}

// MustDefault returns a Scaler over DefaultTiers.
func MustDefault() *Scaler {
	s, err := NewScaler(DefaultTiers())
	if err != nil {
		panic(err)
	}
	return s
}

// TierFor returns the tier containing wave, falling back to the highest tier.
func (s *Scaler) TierFor(wave int) Tier {
	wave = max(wave, 1)
	for _, t := range s.tiers {
		if t.Contains(wave) {
			return t
		}
	}
	return s.tiers[len(s.tiers)-1]
}

// ScalersForWave applies growth (1+r)^n, n being the offset into the tier.
func (s *Scaler) ScalersForWave(wave int) Multipliers {
	wave = max(wave, 1)
	tier := s.TierFor(wave)
	n := max(wave-tier.MinWave, 0)
	growth := math.Pow(1+tier.GrowthRate, float64(n))
	b := tier.Base
	return Multipliers{
		HP:            b.HP * growth,
		Damage:        b.Damage * growth,
		Speed:         b.Speed * growth,
		BatchSize:     b.BatchSize * growth,
		SpawnInterval: b.SpawnInterval / growth,
		BreakDuration: b.BreakDuration / growth,
	}
}

func (s *Scaler) ScaledHP(base float64, wave int) float64 {
	return base * s.ScalersForWave(wave).HP
}

func (s *Scaler) ScaledDamage(base float64, wave int) float64 {
	return base * s.ScalersForWave(wave).Damage
}

func (s *Scaler) ScaledSpeed(base float64, wave int) float64 {
	return base * s.ScalersForWave(wave).Speed
}

// ScaleWaveConfig applies the wave's pacing multipliers to every round and
// both break durations. The input is not modified.
func (s *Scaler) ScaleWaveConfig(cfg WaveConfig, wave int) WaveConfig {
	m := s.ScalersForWave(wave)
	out := WaveConfig{
		Rounds:     make([]RoundConfig, len(cfg.Rounds)),
		RoundBreak: max(cfg.RoundBreak*m.BreakDuration, MinRoundBreak),
		WaveBreak:  max(cfg.WaveBreak*m.BreakDuration, MinWaveBreak),
	}
	for i, r := range cfg.Rounds {
		r.BatchSize = max(int(math.Round(float64(r.BatchSize)*m.BatchSize)), MinBatchSize)
		r.SpawnInterval = max(r.SpawnInterval*m.SpawnInterval, MinSpawnInterval)
		out.Rounds[i] = r
	}
	return out
}
