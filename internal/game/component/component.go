// Package component holds the capability records attached to entities.
// An entity's capabilities are exactly the set of components it carries;
// there is no type hierarchy.
package component

import "github.com/zeusync/wavecore/internal/core/models"

const (
	HealthID models.ComponentID = iota + 1
	PositionID
	TeamID
	AttackID
	TargetID
	MovementID
	CollisionID
	ProjectileID
	AbilityID
	MetaUpgradeID
	EnemyTypeID
	VisualID
)

func HealthOf(e *models.Entity) (*Health, bool)           { return models.Get[*Health](e) }
func PositionOf(e *models.Entity) (*Position, bool)       { return models.Get[*Position](e) }
func TeamOf(e *models.Entity) (*Team, bool)               { return models.Get[*Team](e) }
func AttackOf(e *models.Entity) (*Attack, bool)           { return models.Get[*Attack](e) }
func TargetOf(e *models.Entity) (*Target, bool)           { return models.Get[*Target](e) }
func MovementOf(e *models.Entity) (*Movement, bool)       { return models.Get[*Movement](e) }
func CollisionOf(e *models.Entity) (*Collision, bool)     { return models.Get[*Collision](e) }
func ProjectileOf(e *models.Entity) (*Projectile, bool)   { return models.Get[*Projectile](e) }
func AbilityOf(e *models.Entity) (*Ability, bool)         { return models.Get[*Ability](e) }
func MetaUpgradeOf(e *models.Entity) (*MetaUpgrade, bool) { return models.Get[*MetaUpgrade](e) }
func EnemyTypeOf(e *models.Entity) (*EnemyType, bool)     { return models.Get[*EnemyType](e) }
func VisualOf(e *models.Entity) (*Visual, bool)           { return models.Get[*Visual](e) }

// IsAlive reports whether e is registered and, if it has Health, has HP left.
func IsAlive(e *models.Entity) bool {
	if e == nil || e.Destroyed() {
		return false
	}
	if h, ok := HealthOf(e); ok {
		return h.Alive()
	}
	return true
}

// Hostile reports whether a and b both carry teams that may damage each other.
func Hostile(a, b *models.Entity) bool {
	ta, ok := TeamOf(a)
	if !ok {
		return false
	}
	tb, ok := TeamOf(b)
	if !ok {
		return false
	}
	return ta.Type.HostileTo(tb.Type)
}
