package component

import (
	"errors"

	"github.com/zeusync/wavecore/internal/core/models"
)

type Attack struct {
	Damage            float64
	Range             float64
	Cooldown          float64
	CooldownRemaining float64
}

func (*Attack) TypeID() models.ComponentID { return AttackID }

func (a *Attack) Validate() error {
	if a.Damage < 0 || a.Range < 0 || a.Cooldown < 0 {
		return errors.New("attack: damage, range and cooldown must be non-negative")
	}
	return nil
}

func (a *Attack) Clone() models.Component { c := *a; return &c }

func (a *Attack) Ready() bool { return a.CooldownRemaining <= 0 }

func (a *Attack) Tick(dt float64) {
	a.CooldownRemaining = max(0, a.CooldownRemaining-dt)
}

func (a *Attack) Trigger() { a.CooldownRemaining = a.Cooldown }

// Target tracks the entity currently engaged. CurrentTarget is zero when idle.
type Target struct {
	SearchRange   float64
	CurrentTarget models.EntityID
}

func (*Target) TypeID() models.ComponentID { return TargetID }

func (t *Target) Validate() error {
	if t.SearchRange < 0 {
		return errors.New("target: search range must be non-negative")
	}
	return nil
}

func (t *Target) Clone() models.Component { c := *t; return &c }

func (t *Target) HasTarget() bool { return t.CurrentTarget != 0 }

func (t *Target) Clear() { t.CurrentTarget = 0 }

type AbilityKind uint8

const (
	AbilityStunPulse AbilityKind = iota + 1
	AbilityKnockback
)

// Ability is an active skill with its own cooldown.
type Ability struct {
	Kind              AbilityKind
	Level             int
	Cooldown          float64
	CooldownRemaining float64
	Radius            float64
}

func (*Ability) TypeID() models.ComponentID { return AbilityID }

func (a *Ability) Validate() error {
	if a.Level < 0 || a.Cooldown < 0 || a.Radius < 0 {
		return errors.New("ability: level, cooldown and radius must be non-negative")
	}
	return nil
}

func (a *Ability) Clone() models.Component { c := *a; return &c }

func (a *Ability) Ready() bool { return a.Level > 0 && a.CooldownRemaining <= 0 }

type EnemyKind string

const (
	EnemyBasic EnemyKind = "basic"
	EnemyFast  EnemyKind = "fast"
	EnemyTank  EnemyKind = "tank"
)

// EnemyType tags an entity as a spawned enemy.
type EnemyType struct {
	Kind       EnemyKind
	Wave       int
	ScoreValue int
}

func (*EnemyType) TypeID() models.ComponentID { return EnemyTypeID }

func (e *EnemyType) Validate() error {
	if e.Kind == "" {
		return errors.New("enemy type: kind is required")
	}
	return nil
}

func (e *EnemyType) Clone() models.Component { c := *e; return &c }
