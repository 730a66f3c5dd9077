package bus

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

type registration struct {
	name     string
	listener Listener
}

// Bus is a synchronous, in-process publish/subscribe channel.
//
// Key characteristics:
//   - Listeners are registered under a unique name; re-registering a name
//     replaces the listener in place and keeps its delivery position.
//   - Dispatch invokes every listener in registration order on the caller's
//     goroutine and returns only after all of them have returned.
//   - Dispatch is re-entrant: a listener may dispatch, and that nested delivery
//     runs to completion before the outer one continues.
//   - Listener errors are joined and returned from Dispatch.
//   - Metrics are produced only while observers are registered.
type Bus struct {
	mu        sync.RWMutex
	order     []*registration
	byName    map[string]*registration
	metrics   Metrics
	observers map[Observer]struct{}
}

// New creates a bus. A simulation run owns exactly one.
func New() *Bus {
	return &Bus{
		byName:    make(map[string]*registration),
		observers: make(map[Observer]struct{}),
	}
}

// RegisterListener registers l under name.
func (b *Bus) RegisterListener(name string, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if reg, ok := b.byName[name]; ok {
		reg.listener = l
		return
	}
	reg := &registration{name: name, listener: l}
	b.byName[name] = reg
	b.order = append(b.order, reg)
}

// On registers fn under name, invoked only for events of the given kind.
func (b *Bus) On(kind Kind, name string, fn func(Event) error) {
	b.RegisterListener(name, ListenerFunc(func(e Event) error {
		if e.Kind != kind {
			return nil
		}
		return fn(e)
	}))
}

// Subscribe is On with a generated listener name, which is returned.
func (b *Bus) Subscribe(kind Kind, fn func(Event) error) string {
	name := uuid.NewString()
	b.On(kind, name, fn)
	return name
}

// UnregisterListener removes the listener registered under name.
func (b *Bus) UnregisterListener(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	reg, ok := b.byName[name]
	if !ok {
		return false
	}
	delete(b.byName, name)
	for i, r := range b.order {
		if r == reg {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Listeners returns registered names in delivery order.
func (b *Bus) Listeners() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.order))
	for i, r := range b.order {
		out[i] = r.name
	}
	return out
}

// Dispatch delivers event to every listener registered at the time of the call.
func (b *Bus) Dispatch(event Event) error {
	b.mu.RLock()
	regs := make([]*registration, len(b.order))
	copy(regs, b.order)
	var observers []Observer
	if len(b.observers) > 0 {
		observers = make([]Observer, 0, len(b.observers))
		for obs := range b.observers {
			observers = append(observers, obs)
		}
	}
	b.mu.RUnlock()

	for _, obs := range observers {
		obs.OnPublish(event)
	}

	var all error
	for _, r := range regs {
		if err := r.listener.HandleEvent(event); err != nil {
			all = errors.Join(all, err)
		}
	}

	if len(observers) > 0 {
		for _, obs := range observers {
			obs.OnDelivered(event, len(regs), all)
		}
		b.mu.Lock()
		b.metrics.Published++
		b.metrics.DeliveredHandlers += uint64(len(regs))
		if all != nil {
			b.metrics.Errors++
		}
		b.metrics.ListenersActive = uint64(len(b.order))
		b.mu.Unlock()
	}
	return all
}

func (b *Bus) AddObserver(obs Observer) {
	b.mu.Lock()
	b.observers[obs] = struct{}{}
	b.mu.Unlock()
}

func (b *Bus) RemoveObserver(obs Observer) {
	b.mu.Lock()
	delete(b.observers, obs)
	b.mu.Unlock()
}

// GetMetrics returns a snapshot of accumulated metrics.
func (b *Bus) GetMetrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}
