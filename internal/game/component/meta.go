package component

import (
	"errors"

	"github.com/zeusync/wavecore/internal/core/models"
)

type TargetingMode uint8

const (
	TargetNearest TargetingMode = iota
	TargetWeakest
	TargetStrongest
)

// MetaUpgrade carries purchased meta-progression levels onto the core.
type MetaUpgrade struct {
	ExtraMeleeTargets int
	MeleeRangeRings   int
	StunPulseLevel    int
	KnockbackLevel    int
	TargetingMode     TargetingMode
	RangedUnlocked    bool
	RangedLevel       int
}

func (*MetaUpgrade) TypeID() models.ComponentID { return MetaUpgradeID }

func (m *MetaUpgrade) Validate() error {
	if m.ExtraMeleeTargets < 0 || m.MeleeRangeRings < 0 || m.StunPulseLevel < 0 ||
		m.KnockbackLevel < 0 || m.RangedLevel < 0 {
		return errors.New("meta upgrade: levels must be non-negative")
	}
	return nil
}

func (m *MetaUpgrade) Clone() models.Component { c := *m; return &c }

// MeleeTargets is how many enemies a single melee strike hits.
func (m *MetaUpgrade) MeleeTargets() int { return 1 + m.ExtraMeleeTargets }

// VisualHandle is an opaque reference owned by the scene collaborator.
type VisualHandle uint64

// Visual links an entity to its presentation handle.
type Visual struct {
	Handle   VisualHandle
	Attached bool
}

func (*Visual) TypeID() models.ComponentID { return VisualID }
func (*Visual) Validate() error            { return nil }
func (v *Visual) Clone() models.Component  { c := *v; return &c }
