package difficulty

// RoundsPerWave is the number of sequential rounds in every wave.
const RoundsPerWave = 3

// RoundConfig describes one round: TotalBatches bursts of BatchSize enemies,
// SpawnInterval seconds apart.
type RoundConfig struct {
	TotalBatches  int     `yaml:"total_batches"`
	BatchSize     int     `yaml:"batch_size"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	Enemy         string  `yaml:"enemy"`
}

func (r RoundConfig) Enemies() int { return r.TotalBatches * r.BatchSize }

// WaveConfig is the round list for a wave plus advisory break durations
// reported to whoever drives the breaks.
type WaveConfig struct {
	Rounds     []RoundConfig `yaml:"rounds"`
	RoundBreak float64       `yaml:"round_break"`
	WaveBreak  float64       `yaml:"wave_break"`
}

// TotalEnemies sums TotalBatches×BatchSize over all rounds.
func (w WaveConfig) TotalEnemies() int {
	total := 0
	for _, r := range w.Rounds {
		total += r.Enemies()
	}
	return total
}

// Round returns the 1-based round config.
func (w WaveConfig) Round(n int) (RoundConfig, bool) {
	if n < 1 || n > len(w.Rounds) {
		return RoundConfig{}, false
	}
	return w.Rounds[n-1], true
}

func DefaultWaveConfig() WaveConfig {
	return WaveConfig{
		Rounds: []RoundConfig{
			{TotalBatches: 6, BatchSize: 1, SpawnInterval: 2.0, Enemy: "basic"},
			{TotalBatches: 5, BatchSize: 2, SpawnInterval: 2.5, Enemy: "fast"},
			{TotalBatches: 7, BatchSize: 3, SpawnInterval: 3.0, Enemy: "tank"},
		},
		RoundBreak: 4.0,
		WaveBreak:  8.0,
	}
}
