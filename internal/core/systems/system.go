package systems

import "time"

// System is one simulation pass run once per tick.
type System interface {
	Name() string
	Phase() ExecutionPhase
	Update(deltaTime float64) error
}

// ExecutionPhase defines when a system runs within a tick. Systems in the
// same phase run in registration order.
type ExecutionPhase uint8

const (
	PhaseSpawn ExecutionPhase = iota
	PhaseMovement
	PhaseProjectile
	PhaseCollision
	PhaseCombat
	PhaseCleanup
)

func (p ExecutionPhase) String() string {
	switch p {
	case PhaseSpawn:
		return "spawn"
	case PhaseMovement:
		return "movement"
	case PhaseProjectile:
		return "projectile"
	case PhaseCollision:
		return "collision"
	case PhaseCombat:
		return "combat"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount     uint64
	TotalExecutionTime time.Duration
	MaxExecutionTime   time.Duration
	ErrorCount         uint64
	LastError          error
}

func (m Metrics) AverageExecutionTime() time.Duration {
	if m.ExecutionCount == 0 {
		return 0
	}
	return m.TotalExecutionTime / time.Duration(m.ExecutionCount)
}
