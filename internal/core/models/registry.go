package models

import (
	"iter"
	"slices"

	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/observability/log"
)

// Registry owns entity identity and the live-entity list. All entity
// creation and destruction goes through it so lifecycle events stay
// consistent. It is not safe for concurrent use; a simulation runs on one
// goroutine.
type Registry struct {
	bus      *bus.Bus
	logger   log.Log
	entities []*Entity
	byID     map[EntityID]*Entity
}

func NewRegistry(b *bus.Bus, logger log.Log) *Registry {
	return &Registry{
		bus:    b,
		logger: logger,
		byID:   make(map[EntityID]*Entity),
	}
}

// Create allocates a fresh entity with no components and publishes EntityCreated.
func (r *Registry) Create() *Entity {
	e := &Entity{id: nextEntityID(), components: make(map[ComponentID]Component)}
	r.entities = append(r.entities, e)
	r.byID[e.id] = e
	r.publish(bus.EntityCreated, e)
	return e
}

// Destroy removes e from the live list. Absent entities are ignored.
// EntityDestroyed is delivered while the components are still attached so
// listeners can release resources tied to them; they are detached afterwards.
func (r *Registry) Destroy(e *Entity) {
	if e == nil {
		return
	}
	idx := slices.Index(r.entities, e)
	if idx < 0 {
		return
	}
	r.entities = slices.Delete(r.entities, idx, idx+1)
	delete(r.byID, e.id)
	r.publish(bus.EntityDestroyed, e)
	e.detachAll()
	r.logger.Debug("entity destroyed", log.Uint64("entity_id", uint64(e.id)))
}

// DestroyByID reports whether an entity with id was present.
func (r *Registry) DestroyByID(id EntityID) bool {
	e, ok := r.byID[id]
	if !ok {
		return false
	}
	r.Destroy(e)
	return true
}

func (r *Registry) FindByID(id EntityID) (*Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// All iterates a snapshot of the live entities in creation order, so
// destroying entities during iteration neither skips nor repeats any.
func (r *Registry) All() iter.Seq[*Entity] {
	snapshot := r.Snapshot()
	return func(yield func(*Entity) bool) {
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// Snapshot copies the live-entity list.
func (r *Registry) Snapshot() []*Entity {
	return slices.Clone(r.entities)
}

func (r *Registry) Count() int { return len(r.entities) }

// ClearAll destroys every entity present at the time of the call.
func (r *Registry) ClearAll() {
	for _, e := range r.Snapshot() {
		r.Destroy(e)
	}
}

func (r *Registry) publish(kind bus.Kind, e *Entity) {
	err := r.bus.Dispatch(bus.NewEvent(kind, bus.Payload{
		bus.KeyEntityID: uint64(e.id),
		bus.KeyEntity:   e,
	}))
	if err != nil {
		r.logger.Error("entity lifecycle listener failed",
			log.String("event", string(kind)),
			log.Uint64("entity_id", uint64(e.id)),
			log.Error(err),
		)
	}
}
