package collision

import (
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/systems"
	"github.com/zeusync/wavecore/internal/game/component"
)

// System applies Resolve to every entity with Collision and Position.
type System struct {
	registry *models.Registry
	opts     Options
}

var _ systems.System = (*System)(nil)

func NewSystem(registry *models.Registry, opts Options) *System {
	return &System{registry: registry, opts: opts}
}

func (s *System) Name() string                  { return "collision" }
func (s *System) Phase() systems.ExecutionPhase { return systems.PhaseCollision }

func (s *System) Update(float64) error {
	var (
		bodies    []Body
		positions []*component.Position
	)
	for e := range s.registry.All() {
		col, ok := component.CollisionOf(e)
		if !ok {
			continue
		}
		pos, ok := component.PositionOf(e)
		if !ok {
			continue
		}
		bodies = append(bodies, Body{Position: pos.Vec3, Radius: col.Radius, Immovable: col.Immovable})
		positions = append(positions, pos)
	}
	if len(bodies) < 2 {
		return nil
	}
	for i, p := range Resolve(bodies, s.opts) {
		if !bodies[i].Immovable {
			positions[i].Set(p)
		}
	}
	return nil
}
