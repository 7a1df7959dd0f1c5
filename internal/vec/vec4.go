package vec

import "math"

// Vector4 is a 4-D real vector with a cached Euclidean norm. It carries the
// Kustaanheimo-Stiefel regularized parametric coordinates.
type Vector4 struct {
	U1, U2, U3, U4 float64
	Abs            float64 // cached norm, valid only when the producing op sets it
}

// Dot returns the inner product <v|w>.
func (v Vector4) Dot(w Vector4) float64 {
	return v.U1*w.U1 + v.U2*w.U2 + v.U3*w.U3 + v.U4*w.U4
}

// Norm returns the Euclidean norm of v. It does not update v.Abs.
func (v Vector4) Norm() float64 {
	return math.Sqrt(v.U1*v.U1 + v.U2*v.U2 + v.U3*v.U3 + v.U4*v.U4)
}

// Bilinear returns the alternating bilinear form
// (v,w) = v.U4*w.U1 - v.U3*w.U2 + v.U2*w.U3 - v.U1*w.U4
// used by Kustaanheimo-Stiefel algebra. It vanishes for v == w.
func (v Vector4) Bilinear(w Vector4) float64 {
	return v.U4*w.U1 - v.U3*w.U2 + v.U2*w.U3 - v.U1*w.U4
}
