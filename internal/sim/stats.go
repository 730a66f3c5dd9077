package sim

import (
	"maps"

	"github.com/zeusync/wavecore/internal/core/events/bus"
)

// Stats accumulates run outcomes from bus events.
type Stats struct {
	Kills           map[string]int
	Score           int
	RoundsCompleted int
	WavesCompleted  int
	HighestWave     int
}

func newStats() *Stats {
	return &Stats{Kills: make(map[string]int)}
}

func (s *Stats) listen(b *bus.Bus) {
	b.On(bus.EnemyKilled, "sim.stats.kills", func(ev bus.Event) error {
		kind, _ := ev.Payload.String(bus.KeyEnemyType)
		s.Kills[kind]++
		score, _ := ev.Payload.Int(bus.KeyScore)
		s.Score += score
		return nil
	})
	b.On(bus.RoundCompleted, "sim.stats.rounds", func(bus.Event) error {
		s.RoundsCompleted++
		return nil
	})
	b.On(bus.WaveStarted, "sim.stats.waves_started", func(ev bus.Event) error {
		if w, ok := ev.Payload.Int(bus.KeyWave); ok {
			s.HighestWave = max(s.HighestWave, w)
		}
		return nil
	})
	b.On(bus.WaveCompleted, "sim.stats.waves", func(bus.Event) error {
		s.WavesCompleted++
		return nil
	})
}

func (s Stats) TotalKills() int {
	n := 0
	for _, k := range s.Kills {
		n += k
	}
	return n
}

func (s *Stats) snapshot() Stats {
	c := *s
	c.Kills = maps.Clone(s.Kills)
	return c
}
