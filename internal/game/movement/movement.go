package movement

import (
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/systems"
	"github.com/zeusync/wavecore/internal/game/component"
)

// System steers Movement entities across the ground plane. Speed ramps up by
// Acceleration and ramps down by Deceleration once the remaining distance is
// within braking distance.
type System struct {
	registry *models.Registry
}

var _ systems.System = (*System)(nil)

func NewSystem(registry *models.Registry) *System {
	return &System{registry: registry}
}

func (s *System) Name() string                  { return "movement" }
func (s *System) Phase() systems.ExecutionPhase { return systems.PhaseMovement }

func (s *System) Update(deltaTime float64) error {
	for e := range s.registry.All() {
		mv, ok := component.MovementOf(e)
		if !ok || !component.IsAlive(e) {
			continue
		}
		pos, ok := component.PositionOf(e)
		if !ok {
			continue
		}
		step(mv, pos, deltaTime)
	}
	return nil
}

func step(mv *component.Movement, pos *component.Position, dt float64) {
	if mv.Stunned > 0 {
		mv.Stunned = max(0, mv.Stunned-dt)
		mv.Speed = 0
		return
	}
	if !mv.HasTarget {
		mv.Speed = 0
		return
	}

	delta := mv.Target.Sub(pos.Vec3).Flat()
	remaining := delta.Length() - mv.StopDistance
	if remaining <= 0 {
		mv.Speed = 0
		return
	}

	braking := 0.0
	if mv.Deceleration > 0 {
		braking = mv.Speed * mv.Speed / (2 * mv.Deceleration)
	}
	if mv.Deceleration > 0 && braking >= remaining {
		mv.Speed = max(0, mv.Speed-mv.Deceleration*dt)
	} else {
		mv.Speed = min(mv.MaxSpeed, mv.Speed+mv.Acceleration*dt)
	}

	travel := mv.Speed * dt
	if travel >= remaining {
		travel = remaining
		mv.Speed = 0
	}
	pos.Translate(delta.Normalize().Scale(travel))
}
