// Package body defines the data model of the conversion engine — the
// coordinate and element representations a body can hold — plus the
// frame utilities (mass-weighted barycenter, recentering) shared by the
// converters.
package body

import "github.com/akobaz/libcoocvt/internal/vec"

// Frame names a Cartesian coordinate frame held by a Body. The frames are
// structurally identical position/velocity pairs; only the physical meaning
// the caller attaches distinguishes them.
type Frame int

const (
	FrameNone Frame = iota
	FrameBarycentric
	FrameHeliocentric
	FrameJacobi
	FramePoincare
)

// String returns the short tag used in logs and table headers.
func (f Frame) String() string {
	switch f {
	case FrameBarycentric:
		return "bco"
	case FrameHeliocentric:
		return "hco"
	case FrameJacobi:
		return "jco"
	case FramePoincare:
		return "pco"
	}
	return "none"
}

// Cartesian is one body's state in one Cartesian frame: position in AU,
// velocity in AU/day.
type Cartesian struct {
	Pos vec.Vector3
	Vel vec.Vector3
}

// Regularized is one body's state in Kustaanheimo-Stiefel regularized
// parametric coordinates. The type is representable but no conversion to or
// from it exists in this engine; barycenter support for it is also absent.
type Regularized struct {
	Pos vec.Vector4
	Vel vec.Vector4
}

// Keplerian holds heliocentric orbital elements for elliptic motion.
// All angles are radians; degree conversion is an I/O-boundary concern.
type Keplerian struct {
	SMA  float64 // semi-major axis, AU; must be > 0 for conversion
	Ecc  float64 // eccentricity; must satisfy 0 <= e < 1
	Inc  float64 // inclination
	Peri float64 // argument of perihelion
	Node float64 // longitude of ascending node
	Mean float64 // mean anomaly
}

// Delaunay holds canonical action-angle elements. Representable only:
// no conversion logic exists for them in this engine.
type Delaunay struct {
	L, G, H float64 // action variables
	Mean    float64 // angle conjugate to L: mean anomaly
	Peri    float64 // angle conjugate to G: argument of perihelion
	Node    float64 // angle conjugate to H: longitude of ascending node
}

// Body aggregates every representation of a single object. A body may hold
// cached states in several systems at once; only the representation most
// recently written by a conversion is guaranteed consistent with the others.
// Nothing here invalidates a field when another is written — staleness
// tracking is the caller's responsibility.
type Body struct {
	Mass float64 // solar masses; >= 0 for a meaningful barycenter

	Bary     Cartesian
	Helio    Cartesian
	Jacobi   Cartesian
	Poincare Cartesian
	Reg      Regularized

	Kep Keplerian
	Del Delaunay
}

// FrameState returns a pointer to the body's Cartesian state for the given
// frame, or nil for an unknown frame.
func (b *Body) FrameState(f Frame) *Cartesian {
	switch f {
	case FrameBarycentric:
		return &b.Bary
	case FrameHeliocentric:
		return &b.Helio
	case FrameJacobi:
		return &b.Jacobi
	case FramePoincare:
		return &b.Poincare
	}
	return nil
}
