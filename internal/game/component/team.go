package component

import (
	"fmt"

	"github.com/zeusync/wavecore/internal/core/models"
)

type TeamType uint8

const (
	TeamCore TeamType = iota + 1
	TeamEnemy
)

func (t TeamType) String() string {
	switch t {
	case TeamCore:
		return "CORE"
	case TeamEnemy:
		return "ENEMY"
	default:
		return fmt.Sprintf("TeamType(%d)", uint8(t))
	}
}

// HostileTo is symmetric: CORE and ENEMY are mutually hostile and no team is
// hostile to itself.
func (t TeamType) HostileTo(other TeamType) bool {
	return (t == TeamCore && other == TeamEnemy) || (t == TeamEnemy && other == TeamCore)
}

type Team struct {
	Type TeamType
}

func (*Team) TypeID() models.ComponentID { return TeamID }

func (t *Team) Validate() error {
	if t.Type != TeamCore && t.Type != TeamEnemy {
		return fmt.Errorf("team: unknown type %d", t.Type)
	}
	return nil
}

func (t *Team) Clone() models.Component { c := *t; return &c }
