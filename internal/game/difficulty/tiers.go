package difficulty

// Multipliers scale enemy stats and spawn pacing for one wave.
// SpawnInterval and BreakDuration shrink as difficulty grows.
type Multipliers struct {
	HP            float64 `yaml:"hp"`
	Damage        float64 `yaml:"damage"`
	Speed         float64 `yaml:"speed"`
	BatchSize     float64 `yaml:"batch_size"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	BreakDuration float64 `yaml:"break_duration"`
}

// Tier covers waves [MinWave, MaxWave]; MaxWave 0 means unbounded.
type Tier struct {
	Name       string      `yaml:"name"`
	MinWave    int         `yaml:"min_wave"`
	MaxWave    int         `yaml:"max_wave"`
	Base       Multipliers `yaml:"base"`
	GrowthRate float64     `yaml:"growth_rate"`
}

func (t Tier) Contains(wave int) bool {
	return wave >= t.MinWave && (t.MaxWave == 0 || wave <= t.MaxWave)
}

// DefaultTiers partitions [1,∞). Base tables are chosen so every multiplier
// stays monotone across tier boundaries.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Name: "EARLY", MinWave: 1, MaxWave: 3, GrowthRate: 0.05,
			Base: Multipliers{HP: 1.0, Damage: 1.0, Speed: 1.0, BatchSize: 1.0, SpawnInterval: 1.0, BreakDuration: 1.0},
		},
		{
			Name: "MID", MinWave: 4, MaxWave: 6, GrowthRate: 0.08,
			Base: Multipliers{HP: 1.3, Damage: 1.2, Speed: 1.15, BatchSize: 1.2, SpawnInterval: 0.9, BreakDuration: 0.9},
		},
		{
			Name: "LATE", MinWave: 7, MaxWave: 10, GrowthRate: 0.12,
			Base: Multipliers{HP: 2.0, Damage: 1.5, Speed: 1.35, BatchSize: 1.5, SpawnInterval: 0.75, BreakDuration: 0.75},
		},
		{
			Name: "EXTREME", MinWave: 11, MaxWave: 0, GrowthRate: 0.15,
			Base: Multipliers{HP: 3.5, Damage: 2.2, Speed: 1.9, BatchSize: 2.2, SpawnInterval: 0.5, BreakDuration: 0.5},
		},
	}
}
