// Package scene links entities to presentation handles owned by an outer
// layer. The simulation never renders; it only attaches and detaches.
package scene

import (
	"fmt"

	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
	"github.com/zeusync/wavecore/internal/game/component"
)

// Sink owns visual handles.
type Sink interface {
	Attach(id models.EntityID, kind string, at physics.Vec3) (component.VisualHandle, error)
	Detach(handle component.VisualHandle)
}

const detachListener = "scene.detach"

// Bridge attaches visuals for new entities and releases them when the
// registry destroys their owner.
type Bridge struct {
	sink   Sink
	logger log.Log
}

func NewBridge(b *bus.Bus, sink Sink, logger log.Log) *Bridge {
	br := &Bridge{sink: sink, logger: logger.With(log.String("component", "scene"))}
	b.On(bus.EntityDestroyed, detachListener, br.onDestroyed)
	return br
}

// Attach asks the sink for a handle and stores it on e as a Visual.
func (br *Bridge) Attach(e *models.Entity, kind string) error {
	var at physics.Vec3
	if pos, ok := component.PositionOf(e); ok {
		at = pos.Vec3
	}
	handle, err := br.sink.Attach(e.ID(), kind, at)
	if err != nil {
		return fmt.Errorf("attach %s visual to entity %d: %w", kind, e.ID(), err)
	}
	return e.Add(&component.Visual{Handle: handle, Attached: true})
}

func (br *Bridge) onDestroyed(ev bus.Event) error {
	e, ok := ev.Payload[bus.KeyEntity].(*models.Entity)
	if !ok {
		return nil
	}
	v, ok := component.VisualOf(e)
	if !ok || !v.Attached {
		return nil
	}
	br.sink.Detach(v.Handle)
	v.Attached = false
	br.logger.Debug("visual detached", log.Uint64("entity_id", uint64(e.ID())), log.Uint64("handle", uint64(v.Handle)))
	return nil
}
