// Package vec provides fixed-size real vector arithmetic for the conversion
// engine: 3-D vectors for Cartesian coordinates and 4-D vectors for the
// regularized parametric coordinates.
//
// Vectors carry a cached Euclidean norm in the Abs field. General arithmetic
// does not refresh the cache (the result's Abs is zero); only operations
// documented to set it — Norm assignment by the caller, Unit, ScaleTo — leave
// a valid value there. Callers must not read Abs unless the producing
// operation guarantees it.
package vec

import "math"

// Vector3 is a 3-D real vector with a cached Euclidean norm.
type Vector3 struct {
	X, Y, Z float64
	Abs     float64 // cached norm, valid only when the producing op sets it
}

// Dot returns the inner product <v|w>.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Norm returns the Euclidean norm of v. It does not update v.Abs.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Scale returns s * v.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: s * v.X, Y: s * v.Y, Z: s * v.Z}
}

// MAdd returns v + w*s.
func (v Vector3) MAdd(w Vector3, s float64) Vector3 {
	return Vector3{X: v.X + w.X*s, Y: v.Y + w.Y*s, Z: v.Z + w.Z*s}
}

// MAdd2 returns a*v + b*w.
func MAdd2(a float64, v Vector3, b float64, w Vector3) Vector3 {
	return Vector3{X: a*v.X + b*w.X, Y: a*v.Y + b*w.Y, Z: a*v.Z + b*w.Z}
}

// Cross returns the outer product v x w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// MatVec returns m * v, with the matrix given as three row vectors.
func MatVec(m [3]Vector3, v Vector3) Vector3 {
	return Vector3{X: m[0].Dot(v), Y: m[1].Dot(v), Z: m[2].Dot(v)}
}

// Angle returns the angle between v and w via acos(<v|w> / (|v||w|)).
// When either operand has zero length the angle is defined as 0; this is a
// documented policy for the degenerate case, not an error.
func (v Vector3) Angle(w Vector3) float64 {
	den := v.Norm() * w.Norm()
	if den > 0.0 {
		return math.Acos(v.Dot(w) / den)
	}
	return 0.0
}

// InvPow3 returns 1/|v|^3, or 0 for a zero vector.
func (v Vector3) InvPow3() float64 {
	n := v.Norm()
	if n > 0.0 {
		return 1.0 / (n * n * n)
	}
	return 0.0
}

// Unit returns v scaled to unit length with Abs set to 1.
// For a zero vector it reports false and returns v unchanged.
func (v Vector3) Unit() (Vector3, bool) {
	return v.ScaleTo(1.0)
}

// ScaleTo returns v scaled to the target length with Abs set to that length.
// For a zero vector it reports false and returns v unchanged.
func (v Vector3) ScaleTo(length float64) (Vector3, bool) {
	n := v.Norm()
	if n > 0.0 {
		out := v.Scale(length / n)
		out.Abs = length
		return out, true
	}
	return v, false
}
