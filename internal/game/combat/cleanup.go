package combat

import (
	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/systems"
	"github.com/zeusync/wavecore/internal/game/component"
)

// Cleanup removes enemies whose HP reached zero outside ApplyDamage, e.g.
// through direct component edits by tooling.
type Cleanup struct {
	registry *models.Registry
	bus      *bus.Bus
	logger   log.Log
}

var _ systems.System = (*Cleanup)(nil)

func NewCleanup(registry *models.Registry, b *bus.Bus, logger log.Log) *Cleanup {
	return &Cleanup{registry: registry, bus: b, logger: logger.With(log.String("system", "cleanup"))}
}

func (c *Cleanup) Name() string                  { return "cleanup" }
func (c *Cleanup) Phase() systems.ExecutionPhase { return systems.PhaseCleanup }

func (c *Cleanup) Update(float64) error {
	for e := range c.registry.All() {
		if !e.Has(component.EnemyTypeID) || e.Destroyed() {
			continue
		}
		if h, ok := component.HealthOf(e); ok && !h.Alive() {
			Kill(c.registry, c.bus, c.logger, e, 0)
		}
	}
	return nil
}
