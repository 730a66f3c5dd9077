package component

import (
	"errors"

	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
)

// Projectile is created through NewProjectile; its start position cannot
// change afterwards and all traveled distance is measured from it.
type Projectile struct {
	Velocity   physics.Vec3
	Damage     float64
	MaxRange   float64
	AttackerID models.EntityID
	TargetID   models.EntityID
	Knockback  float64
	SpawnTime  float64

	start physics.Vec3
}

func NewProjectile(start, velocity physics.Vec3, damage, maxRange float64, attacker models.EntityID, spawnTime float64) *Projectile {
	return &Projectile{
		Velocity:   velocity,
		Damage:     damage,
		MaxRange:   maxRange,
		AttackerID: attacker,
		SpawnTime:  spawnTime,
		start:      start,
	}
}

func (*Projectile) TypeID() models.ComponentID { return ProjectileID }

func (p *Projectile) Validate() error {
	if p.MaxRange <= 0 {
		return errors.New("projectile: max range must be positive")
	}
	if p.Damage < 0 {
		return errors.New("projectile: damage must be non-negative")
	}
	return nil
}

func (p *Projectile) Clone() models.Component { c := *p; return &c }

func (p *Projectile) StartPosition() physics.Vec3 { return p.start }

func (p *Projectile) DistanceTraveled(pos physics.Vec3) float64 {
	return physics.Distance(p.start, pos)
}

func (p *Projectile) HasTarget() bool { return p.TargetID != 0 }

// Age is the time elapsed since the projectile was fired.
func (p *Projectile) Age(now float64) float64 { return now - p.SpawnTime }
