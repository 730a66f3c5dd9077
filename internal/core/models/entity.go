package models

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
)

type EntityID uint64
type ComponentID uint32

// Component is a capability record attached to at most one entity per kind.
// TypeID must not dereference its receiver: Get calls it on a nil value.
type Component interface {
	TypeID() ComponentID
	Validate() error
	Clone() Component
}

var ErrEntityDestroyed = errors.New("entity destroyed")

// Ids are allocated process-wide so two registries never hand out the same id.
var idSeq atomic.Uint64

func nextEntityID() EntityID {
	return EntityID(idSeq.Add(1))
}

// Entity is an id plus the sparse set of components attached to it.
type Entity struct {
	id         EntityID
	components map[ComponentID]Component
	destroyed  bool
}

func (e *Entity) ID() EntityID { return e.id }

// Destroyed reports whether the entity has been removed from its registry.
func (e *Entity) Destroyed() bool { return e.destroyed }

// Add attaches c, replacing any component of the same kind.
func (e *Entity) Add(c Component) error {
	if e.destroyed {
		return fmt.Errorf("add component %d to entity %d: %w", c.TypeID(), e.id, ErrEntityDestroyed)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("add component %d to entity %d: %w", c.TypeID(), e.id, err)
	}
	e.components[c.TypeID()] = c
	return nil
}

// MustAdd is Add for callers constructing components from validated config.
func (e *Entity) MustAdd(components ...Component) *Entity {
	for _, c := range components {
		if err := e.Add(c); err != nil {
			panic(err)
		}
	}
	return e
}

func (e *Entity) Remove(id ComponentID) bool {
	if _, ok := e.components[id]; !ok {
		return false
	}
	delete(e.components, id)
	return true
}

func (e *Entity) Component(id ComponentID) (Component, bool) {
	c, ok := e.components[id]
	return c, ok
}

func (e *Entity) Has(id ComponentID) bool {
	_, ok := e.components[id]
	return ok
}

// ComponentIDs lists attached kinds in ascending order.
func (e *Entity) ComponentIDs() []ComponentID {
	ids := make([]ComponentID, 0, len(e.components))
	for id := range e.components {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (e *Entity) detachAll() {
	clear(e.components)
	e.destroyed = true
}

// Get returns the component of kind C attached to e.
func Get[C Component](e *Entity) (C, bool) {
	var zero C
	if e == nil {
		return zero, false
	}
	c, ok := e.components[zero.TypeID()]
	if !ok {
		return zero, false
	}
	typed, ok := c.(C)
	return typed, ok
}
