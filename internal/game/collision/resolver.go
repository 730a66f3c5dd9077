package collision

import (
	"fmt"

	"github.com/zeusync/wavecore/internal/core/systems/physics"
)

type Body struct {
	Position  physics.Vec3
	Radius    float64
	Immovable bool
}

type Options struct {
	// Margin is extra separation required beyond the sum of radii.
	Margin       float64 `yaml:"margin"`
	PushStrength float64 `yaml:"push_strength"`
	// Ground ignores the vertical axis for distance and push direction.
	Ground bool `yaml:"ground"`
}

func DefaultOptions() Options {
	return Options{Margin: 0.1, PushStrength: 0.5, Ground: true}
}

func (o Options) Validate() error {
	if o.Margin < 0 || o.PushStrength < 0 {
		return fmt.Errorf("collision margin and push strength must be non-negative")
	}
	return nil
}

// Pair indexes two overlapping bodies, I < J.
type Pair struct {
	I, J  int
	Depth float64
}

func (o Options) separation(a, b physics.Vec3) physics.Vec3 {
	d := b.Sub(a)
	if o.Ground {
		d = d.Flat()
	}
	return d
}

// Overlaps returns every overlapping pair in index order.
func Overlaps(bodies []Body, opts Options) []Pair {
	var pairs []Pair
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := opts.separation(bodies[i].Position, bodies[j].Position).Length()
			minDist := bodies[i].Radius + bodies[j].Radius + opts.Margin
			if d < minDist {
				pairs = append(pairs, Pair{I: i, J: j, Depth: minDist - d})
			}
		}
	}
	return pairs
}

// Resolve returns the positions after one separation pass. All pushes are
// computed from the input positions. Two movable bodies split the push; a
// movable body against an immovable one takes all of it; immovable bodies
// never move. Coincident centers separate along +X.
func Resolve(bodies []Body, opts Options) []physics.Vec3 {
	out := make([]physics.Vec3, len(bodies))
	for i, b := range bodies {
		out[i] = b.Position
	}
	for _, p := range Overlaps(bodies, opts) {
		a, b := bodies[p.I], bodies[p.J]
		if a.Immovable && b.Immovable {
			continue
		}
		dir := opts.separation(a.Position, b.Position).Normalize()
		if dir.IsZero() {
			dir = physics.V(1, 0, 0)
		}
		push := p.Depth * opts.PushStrength
		switch {
		case a.Immovable:
			out[p.J] = out[p.J].Add(dir.Scale(push))
		case b.Immovable:
			out[p.I] = out[p.I].Sub(dir.Scale(push))
		default:
			out[p.I] = out[p.I].Sub(dir.Scale(push / 2))
			out[p.J] = out[p.J].Add(dir.Scale(push / 2))
		}
	}
	return out
}
