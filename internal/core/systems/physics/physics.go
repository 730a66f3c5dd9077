package physics

import "math"

// Vec3 is a point or direction in world space. Y is the vertical axis; the
// ground plane is X/Z.
type Vec3 struct{ X, Y, Z float64 }

func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 { return Vec3{v.X, 0, v.Z} }

// Normalize returns the unit vector, or the zero vector for zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Distance computes Euclidean distance between two points.
func Distance(a, b Vec3) float64 { return b.Sub(a).Length() }

// DistanceGround computes distance on the ground plane, ignoring Y.
func DistanceGround(a, b Vec3) float64 { return math.Hypot(b.X-a.X, b.Z-a.Z) }

// PointOnAnnulus returns the ground-plane offset at angle (radians) and radius.
func PointOnAnnulus(angle, radius float64) Vec3 {
	return Vec3{X: math.Cos(angle) * radius, Z: math.Sin(angle) * radius}
}
