package models

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wavecore/internal/core/events/bus"
	"github.com/zeusync/wavecore/internal/core/observability/log"
)

const (
	testTagID ComponentID = iota + 1000
	testRadiusID
)

type testTag struct{ Name string }

func (*testTag) TypeID() ComponentID { return testTagID }
func (*testTag) Validate() error     { return nil }
func (t *testTag) Clone() Component  { c := *t; return &c }

type testRadius struct{ R float64 }

func (*testRadius) TypeID() ComponentID { return testRadiusID }
func (r *testRadius) Validate() error {
	if r.R < 0 {
		return errors.New("negative radius")
	}
	return nil
}
func (r *testRadius) Clone() Component { c := *r; return &c }

type lifecycle struct {
	created   []EntityID
	destroyed []EntityID
}

func newTestRegistry(t *testing.T) (*Registry, *bus.Bus, *lifecycle) {
	t.Helper()
	b := bus.New()
	lc := &lifecycle{}
	b.On(bus.EntityCreated, "created", func(e bus.Event) error {
		id, _ := e.Payload.Uint64(bus.KeyEntityID)
		lc.created = append(lc.created, EntityID(id))
		return nil
	})
	b.On(bus.EntityDestroyed, "destroyed", func(e bus.Event) error {
		id, _ := e.Payload.Uint64(bus.KeyEntityID)
		lc.destroyed = append(lc.destroyed, EntityID(id))
		return nil
	})
	return NewRegistry(b, log.NewNop()), b, lc
}

func TestCreateAllocatesUniqueIDs(t *testing.T) {
	r, _, lc := newTestRegistry(t)
	seen := map[EntityID]bool{}
	for i := 0; i < 50; i++ {
		e := r.Create()
		require.False(t, seen[e.ID()], "id reused")
		seen[e.ID()] = true
	}
	assert.Equal(t, 50, r.Count())
	assert.Len(t, lc.created, 50)

	other, _, _ := newTestRegistry(t)
	assert.False(t, seen[other.Create().ID()], "ids must be unique across registries")
}

func TestDestroyIsIdempotent(t *testing.T) {
	r, _, lc := newTestRegistry(t)
	e := r.Create()
	r.Create()

	r.Destroy(e)
	r.Destroy(e)
	r.Destroy(nil)

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []EntityID{e.ID()}, lc.destroyed)
	assert.True(t, e.Destroyed())
	_, ok := r.FindByID(e.ID())
	assert.False(t, ok)
}

func TestDestroyByIDReportsPresence(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	e := r.Create()
	assert.True(t, r.DestroyByID(e.ID()))
	assert.False(t, r.DestroyByID(e.ID()))
	assert.False(t, r.DestroyByID(EntityID(1<<62)))
}

func TestCountMatchesCreatesMinusDestroys(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	rng := rand.New(rand.NewPCG(1, 2))
	var ids []EntityID
	want := 0
	for i := 0; i < 500; i++ {
		if len(ids) == 0 || rng.IntN(3) > 0 {
			ids = append(ids, r.Create().ID())
			want++
			continue
		}
		id := ids[rng.IntN(len(ids))]
		if r.DestroyByID(id) {
			want--
		}
		require.Equal(t, want, r.Count())
	}
	assert.Equal(t, want, r.Count())
}

func TestDestroyedEventSeesComponents(t *testing.T) {
	r, b, _ := newTestRegistry(t)
	e := r.Create()
	require.NoError(t, e.Add(&testTag{Name: "visual"}))

	var seen string
	b.On(bus.EntityDestroyed, "inspect", func(ev bus.Event) error {
		ent := ev.Payload[bus.KeyEntity].(*Entity)
		if tag, ok := Get[*testTag](ent); ok {
			seen = tag.Name
		}
		return nil
	})
	r.Destroy(e)

	assert.Equal(t, "visual", seen)
	assert.Empty(t, e.ComponentIDs())
	assert.ErrorIs(t, e.Add(&testTag{}), ErrEntityDestroyed)
}

func TestClearAllTwice(t *testing.T) {
	r, _, lc := newTestRegistry(t)
	for i := 0; i < 5; i++ {
		r.Create()
	}
	r.ClearAll()
	r.ClearAll()
	assert.Zero(t, r.Count())
	assert.Len(t, lc.destroyed, 5)
}

func TestClearAllWithCascadingDestroy(t *testing.T) {
	r, b, lc := newTestRegistry(t)
	first := r.Create()
	second := r.Create()
	r.Create()
	b.On(bus.EntityDestroyed, "cascade", func(ev bus.Event) error {
		if ev.Payload[bus.KeyEntity] == first {
			r.Destroy(second)
		}
		return nil
	})

	r.ClearAll()
	assert.Zero(t, r.Count())
	assert.Len(t, lc.destroyed, 3)
}

func TestComponentAccessors(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	e := r.Create()

	_, ok := Get[*testTag](e)
	assert.False(t, ok)
	_, ok = Get[*testTag](nil)
	assert.False(t, ok)

	require.NoError(t, e.Add(&testTag{Name: "a"}))
	require.NoError(t, e.Add(&testTag{Name: "b"}))
	tag, ok := Get[*testTag](e)
	require.True(t, ok)
	assert.Equal(t, "b", tag.Name)

	assert.Error(t, e.Add(&testRadius{R: -1}))
	assert.False(t, e.Has(testRadiusID))
	require.NoError(t, e.Add(&testRadius{R: 2}))
	assert.Equal(t, []ComponentID{testTagID, testRadiusID}, e.ComponentIDs())

	assert.True(t, e.Remove(testTagID))
	assert.False(t, e.Remove(testTagID))
}

func TestAllIteratesSnapshot(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	for i := 0; i < 4; i++ {
		r.Create()
	}
	visited := 0
	for e := range r.All() {
		visited++
		r.Destroy(e)
	}
	assert.Equal(t, 4, visited)
	assert.Zero(t, r.Count())
}
