package bus

import (
	"fmt"

	"github.com/zeusync/wavecore/internal/core/systems/physics"
)

// Kind names an event. Listeners filter on it.
type Kind string

const (
	EntityCreated   Kind = "EntityCreated"
	EntityDestroyed Kind = "EntityDestroyed"
	EnemyKilled     Kind = "EnemyKilled"
	WaveStarted     Kind = "WaveStarted"
	RoundStarted    Kind = "RoundStarted"
	RoundCompleted  Kind = "RoundCompleted"
	WaveCompleted   Kind = "WaveCompleted"
	ProjectileHit   Kind = "ProjectileHit"
)

// Payload keys shared by publishers and listeners.
const (
	KeyEntityID     = "entityId"
	KeyEntity       = "entity"
	KeyWave         = "wave"
	KeyRound        = "round"
	KeyProjectileID = "projectileId"
	KeyAttackerID   = "attackerId"
	KeyTargetID     = "targetId"
	KeyKillerID     = "killerId"
	KeyDamage       = "damage"
	KeyPosition     = "position"
	KeyKnockback    = "knockback"
	KeyEnemyType    = "enemyType"
	KeyScore        = "score"
)

// Event is a named occurrence with an unordered key/value payload.
// Treat it as read-only once dispatched.
type Event struct {
	Kind    Kind
	Payload Payload
}

// NewEvent builds an Event; a nil payload is replaced by an empty one.
func NewEvent(kind Kind, payload Payload) Event {
	if payload == nil {
		payload = Payload{}
	}
	return Event{Kind: kind, Payload: payload}
}

func (e Event) String() string {
	return fmt.Sprintf("%s%v", e.Kind, map[string]any(e.Payload))
}

type Payload map[string]any

// Int returns an integer value, accepting any of the integer kinds publishers use.
func (p Payload) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	default:
		return 0, false
	}
}

func (p Payload) Uint64(key string) (uint64, bool) {
	switch v := p[key].(type) {
	case uint64:
		return v, true
	default:
		if n, ok := p.Int(key); ok && n >= 0 {
			return uint64(n), true
		}
		return 0, false
	}
}

func (p Payload) Float64(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func (p Payload) Vec(key string) (physics.Vec3, bool) {
	v, ok := p[key].(physics.Vec3)
	return v, ok
}

func (p Payload) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Listener receives every event dispatched on the bus it is registered with.
// A returned error is aggregated by Dispatch and never stops delivery.
type Listener interface {
	HandleEvent(event Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event Event) error

func (f ListenerFunc) HandleEvent(event Event) error { return f(event) }

// Observer is notified about deliveries. Observers should return quickly.
type Observer interface {
	OnPublish(event Event)
	OnDelivered(event Event, listeners int, err error)
}

// Metrics is only updated while at least one observer is registered.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	ListenersActive   uint64
}
