package spatial

import (
	"math"
	"slices"

	"github.com/zeusync/wavecore/internal/core/models"
	"github.com/zeusync/wavecore/internal/core/systems/physics"
)

type cell struct{ x, z int64 }

type item struct {
	id  models.EntityID
	pos physics.Vec3
	seq int
}

// Grid is a uniform ground-plane bucket index. Systems rebuild it each tick
// from the entities they care about; queries return ids in insertion order so
// callers that insert in registry order get deterministic results.
type Grid struct {
	cellSize float64
	cells    map[cell][]item
	count    int
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{cellSize: cellSize, cells: make(map[cell][]item)}
}

func (g *Grid) cellOf(p physics.Vec3) cell {
	return cell{
		x: int64(math.Floor(p.X / g.cellSize)),
		z: int64(math.Floor(p.Z / g.cellSize)),
	}
}

func (g *Grid) Insert(id models.EntityID, pos physics.Vec3) {
	c := g.cellOf(pos)
	g.cells[c] = append(g.cells[c], item{id: id, pos: pos, seq: g.count})
	g.count++
}

func (g *Grid) Len() int { return g.count }

func (g *Grid) Clear() {
	clear(g.cells)
	g.count = 0
}

// QueryRadius returns ids whose full 3D distance to center is at most radius.
func (g *Grid) QueryRadius(center physics.Vec3, radius float64) []models.EntityID {
	return g.query(center, radius, physics.Distance)
}

// QueryRadiusGround is QueryRadius measured on the ground plane only.
func (g *Grid) QueryRadiusGround(center physics.Vec3, radius float64) []models.EntityID {
	return g.query(center, radius, physics.DistanceGround)
}

// Nearest returns the closest id within radius on the ground plane; ties go
// to the earlier insertion.
func (g *Grid) Nearest(center physics.Vec3, radius float64, accept func(models.EntityID) bool) (models.EntityID, bool) {
	var (
		best     models.EntityID
		bestDist = math.Inf(1)
		bestSeq  = math.MaxInt
		found    bool
	)
	g.visit(center, radius, func(it item) {
		if accept != nil && !accept(it.id) {
			return
		}
		d := physics.DistanceGround(center, it.pos)
		if d > radius {
			return
		}
		if d < bestDist || (d == bestDist && it.seq < bestSeq) {
			best, bestDist, bestSeq, found = it.id, d, it.seq, true
		}
	})
	return best, found
}

func (g *Grid) query(center physics.Vec3, radius float64, dist func(a, b physics.Vec3) float64) []models.EntityID {
	var hits []item
	g.visit(center, radius, func(it item) {
		if dist(center, it.pos) <= radius {
			hits = append(hits, it)
		}
	})
	slices.SortFunc(hits, func(a, b item) int { return a.seq - b.seq })
	out := make([]models.EntityID, len(hits))
	for i, it := range hits {
		out[i] = it.id
	}
	return out
}

func (g *Grid) visit(center physics.Vec3, radius float64, fn func(item)) {
	if radius < 0 {
		return
	}
	lo := g.cellOf(physics.Vec3{X: center.X - radius, Z: center.Z - radius})
	hi := g.cellOf(physics.Vec3{X: center.X + radius, Z: center.Z + radius})
	for x := lo.x; x <= hi.x; x++ {
		for z := lo.z; z <= hi.z; z++ {
			for _, it := range g.cells[cell{x, z}] {
				fn(it)
			}
		}
	}
}
