package component

import (
	"fmt"

	"github.com/zeusync/wavecore/internal/core/models"
)

// Health keeps Current within [0, Max].
type Health struct {
	Current float64
	Max     float64
}

func NewHealth(max float64) *Health {
	return &Health{Current: max, Max: max}
}

func (*Health) TypeID() models.ComponentID { return HealthID }

func (h *Health) Validate() error {
	if h.Max <= 0 {
		return fmt.Errorf("health: max %v must be positive", h.Max)
	}
	h.Current = clamp(h.Current, 0, h.Max)
	return nil
}

func (h *Health) Clone() models.Component { c := *h; return &c }

func (h *Health) Alive() bool { return h.Current > 0 }

// Damage subtracts amount and returns the HP actually removed.
func (h *Health) Damage(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := h.Current
	h.Current = clamp(h.Current-amount, 0, h.Max)
	return before - h.Current
}

// Heal adds amount and returns the HP actually restored.
func (h *Health) Heal(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := h.Current
	h.Current = clamp(h.Current+amount, 0, h.Max)
	return h.Current - before
}

func (h *Health) Fraction() float64 {
	return h.Current / h.Max
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
