package scene

import (
	"sync"

	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
	"github.com/zeusync/wavecore/internal/game/component"
)

// Headless is a Sink that only books handles. It backs simulations run
// without a renderer.
type Headless struct {
	mu       sync.Mutex
	next     component.VisualHandle
	live     map[component.VisualHandle]string
	attached int
	detached int
}

var _ Sink = (*Headless)(nil)

func NewHeadless() *Headless {
	return &Headless{live: make(map[component.VisualHandle]string)}
}

func (h *Headless) Attach(_ models.EntityID, kind string, _ physics.Vec3) (component.VisualHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.live[h.next] = kind
	h.attached++
	return h.next, nil
}

func (h *Headless) Detach(handle component.VisualHandle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.live[handle]; !ok {
		return
	}
	delete(h.live, handle)
	h.detached++
}

// Live counts attached handles by kind.
func (h *Headless) Live() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]int)
	for _, kind := range h.live {
		out[kind]++
	}
	return out
}

func (h *Headless) Totals() (attached, detached int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.attached, h.detached
}
