package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
	"github.com/zeusync/wavecore/internal/game/component"
)

var opts = Options{Margin: 0.1, PushStrength: 1.0, Ground: true}

func TestNoOverlapNoMovement(t *testing.T) {
	bodies := []Body{
		{Position: physics.V(0, 0, 0), Radius: 1},
		{Position: physics.V(2.2, 0, 0), Radius: 1},
	}
	assert.Empty(t, Overlaps(bodies, opts))
	out := Resolve(bodies, opts)
	assert.Equal(t, bodies[0].Position, out[0])
	assert.Equal(t, bodies[1].Position, out[1])
}

func TestMovablePairSplitsPush(t *testing.T) {
	bodies := []Body{
		{Position: physics.V(0, 0, 0), Radius: 1},
		{Position: physics.V(1.5, 0, 0), Radius: 1},
	}
	pairs := Overlaps(bodies, opts)
	require.Len(t, pairs, 1)
	assert.InDelta(t, 0.6, pairs[0].Depth, 1e-9)

	out := Resolve(bodies, opts)
	assert.InDelta(t, -0.3, out[0].X, 1e-9)
	assert.InDelta(t, 1.8, out[1].X, 1e-9)
}

func TestImmovableNeverDisplaced(t *testing.T) {
	bodies := []Body{
		{Position: physics.V(0, 0, 0), Radius: 2, Immovable: true},
		{Position: physics.V(0, 0, 1), Radius: 1},
		{Position: physics.V(0.5, 0, 0), Radius: 1, Immovable: true},
	}
	out := Resolve(bodies, opts)
	assert.Equal(t, bodies[0].Position, out[0])
	assert.Equal(t, bodies[2].Position, out[2])
	assert.Greater(t, out[1].Z, 1.0)
}

func TestGroundModeIgnoresHeight(t *testing.T) {
	bodies := []Body{
		{Position: physics.V(0, 0, 0), Radius: 1},
		{Position: physics.V(1, 50, 0), Radius: 1},
	}
	require.Len(t, Overlaps(bodies, opts), 1)
	out := Resolve(bodies, opts)
	assert.Equal(t, 0.0, out[0].Y)
	assert.Equal(t, 50.0, out[1].Y, "push has no vertical component")

	full := opts
	full.Ground = false
	assert.Empty(t, Overlaps(bodies, full))
}

func TestCoincidentCentersSeparate(t *testing.T) {
	bodies := []Body{
		{Position: physics.V(3, 0, 3), Radius: 0.5},
		{Position: physics.V(3, 0, 3), Radius: 0.5},
	}
	out := Resolve(bodies, opts)
	assert.Less(t, out[0].X, 3.0)
	assert.Greater(t, out[1].X, 3.0)
}

func TestSystemWritesBackMovableOnly(t *testing.T) {
	r := models.NewRegistry(bus.New(), log.NewNop())
	core := r.Create().MustAdd(
		component.NewPosition(physics.V(0, 0, 0)),
		&component.Collision{Radius: 2, Immovable: true},
	)
	enemy := r.Create().MustAdd(
		component.NewPosition(physics.V(1, 0, 0)),
		&component.Collision{Radius: 1},
	)
	r.Create().MustAdd(component.NewPosition(physics.V(1, 0, 0)))

	require.NoError(t, NewSystem(r, opts).Update(0.016))
	cp, _ := component.PositionOf(core)
	ep, _ := component.PositionOf(enemy)
	assert.Equal(t, physics.V(0, 0, 0), cp.Vec3)
	assert.InDelta(t, 3.1, ep.X, 1e-9)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	assert.Error(t, Options{Margin: -1}.Validate())
}
