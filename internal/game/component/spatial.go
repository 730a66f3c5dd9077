package component

import (
	"errors"
	"fmt"

	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
)

type Position struct {
	physics.Vec3
}

func NewPosition(v physics.Vec3) *Position { return &Position{Vec3: v} }

func (*Position) TypeID() models.ComponentID { return PositionID }
func (*Position) Validate() error            { return nil }
func (p *Position) Clone() models.Component  { c := *p; return &c }
func (p *Position) Set(v physics.Vec3)       { p.Vec3 = v }
func (p *Position) Translate(d physics.Vec3) { p.Vec3 = p.Vec3.Add(d) }

// Movement steers an entity toward Target. Speed is the current scalar speed
// along the heading and is owned by the movement system. The entity stops
// once within StopDistance of Target.
type Movement struct {
	Target       physics.Vec3
	HasTarget    bool
	MaxSpeed     float64
	Acceleration float64
	Deceleration float64
	StopDistance float64
	Speed        float64
	Stunned      float64
}

func (*Movement) TypeID() models.ComponentID { return MovementID }

func (m *Movement) Validate() error {
	if m.MaxSpeed < 0 || m.Acceleration < 0 || m.Deceleration < 0 || m.StopDistance < 0 {
		return errors.New("movement: speed and rates must be non-negative")
	}
	return nil
}

func (m *Movement) Clone() models.Component { c := *m; return &c }

func (m *Movement) SetTarget(v physics.Vec3) {
	m.Target = v
	m.HasTarget = true
}

// Stun halts the entity for at least d seconds.
func (m *Movement) Stun(d float64) {
	m.Stunned = max(m.Stunned, d)
	m.Speed = 0
}

// Collision describes a collidable circle (sphere in 3D mode).
type Collision struct {
	Radius    float64
	Immovable bool
}

func (*Collision) TypeID() models.ComponentID { return CollisionID }

func (c *Collision) Validate() error {
	if c.Radius < 0 {
		return fmt.Errorf("collision: radius %v must be non-negative", c.Radius)
	}
	return nil
}

func (c *Collision) Clone() models.Component { cp := *c; return &cp }
