package convert

import (
	"fmt"
	"math"

	"github.com/akobaz/libcoocvt/internal/body"
	"github.com/akobaz/libcoocvt/internal/kepler"
	"github.com/akobaz/libcoocvt/internal/units"
	"github.com/akobaz/libcoocvt/internal/vec"
)

func vec3(x, y, z float64) vec.Vector3 {
	return vec.Vector3{X: x, Y: y, Z: z}
}

// mu returns the gravitational parameter G*(m[central] + m[i]) with the
// squared Gaussian constant as G.
func mu(pop []body.Body, central, i int) float64 {
	return units.Gauss2 * (pop[central].Mass + pop[i].Mass)
}

// HeliocentricToKeplerian derives Keplerian elements from every body's
// heliocentric Cartesian state. The central body's elements are zeroed.
// Bodies whose state is not elliptic (vis-viva 1/a <= 0, or derived
// eccentricity outside [0,1)) are collected into one aggregate BodyError;
// the loop itself never stops early.
func HeliocentricToKeplerian(pop []body.Body, central int) error {
	if len(pop) == 0 {
		return ErrEmptyPopulation
	}
	if central < 0 || central >= len(pop) {
		return fmt.Errorf("%w: %d with %d bodies", ErrCentralIndex, central, len(pop))
	}

	pop[central].Kep = body.Keplerian{}

	var failed []int
	for i := range pop {
		if i == central {
			continue
		}
		if err := cartesianToElements(&pop[i].Kep, &pop[i].Helio, mu(pop, central, i)); err != nil {
			failed = append(failed, i)
		}
	}

	if len(failed) > 0 {
		return &BodyError{Mode: ModeHelioToKepler, Bodies: failed}
	}
	return nil
}

// KeplerianToHeliocentric derives heliocentric Cartesian states from every
// body's Keplerian elements. The central body's state is zeroed. Bodies with
// invalid elements (a <= 0 or e outside [0,1)) are collected into one
// aggregate BodyError; the loop itself never stops early.
func KeplerianToHeliocentric(pop []body.Body, central int) error {
	if len(pop) == 0 {
		return ErrEmptyPopulation
	}
	if central < 0 || central >= len(pop) {
		return fmt.Errorf("%w: %d with %d bodies", ErrCentralIndex, central, len(pop))
	}

	pop[central].Helio = body.Cartesian{}

	var failed []int
	for i := range pop {
		if i == central {
			continue
		}
		if err := elementsToCartesian(&pop[i].Helio, &pop[i].Kep, mu(pop, central, i)); err != nil {
			failed = append(failed, i)
		}
	}

	if len(failed) > 0 {
		return &BodyError{Mode: ModeKeplerToHelio, Bodies: failed}
	}
	return nil
}

// cartesianToElements converts one heliocentric state to Keplerian elements
// for the gravitational parameter mu. Elements already derived before a
// validation failure stay written; nothing is substituted for them.
func cartesianToElements(ele *body.Keplerian, coo *body.Cartesian, mu float64) error {
	pabs := coo.Pos.Norm()

	// Velocity normalized by sqrt(mu) so the vis-viva relation below reads
	// 1/a = 2/|r| - |v|^2 without the mass parameter.
	nvel := coo.Vel.Scale(1.0 / math.Sqrt(mu))
	nvel.Abs = nvel.Norm()

	// Specific angular momentum of the normalized state.
	angm := coo.Pos.Cross(nvel)
	angm.Abs = angm.Norm()

	ele.Inc = math.Atan2(math.Hypot(angm.X, angm.Y), angm.Z)
	ele.Node = math.Atan2(angm.X, -angm.Y)

	// Argument of latitude u = true anomaly + argument of perihelion.
	u := math.Atan2(coo.Pos.Z*angm.Abs, coo.Pos.Y*angm.X-coo.Pos.X*angm.Y)

	inva := 2.0/pabs - nvel.Abs*nvel.Abs
	if inva <= 0.0 {
		return fmt.Errorf("%w: 1/a = %g", ErrNonElliptic, inva)
	}
	ele.SMA = 1.0 / inva

	ecosE := 1.0 - pabs*inva
	esinE := coo.Pos.Dot(nvel) * math.Sqrt(inva)
	ea := math.Atan2(esinE, ecosE)

	ele.Ecc = math.Hypot(esinE, ecosE)
	if ele.Ecc < 0.0 || ele.Ecc >= 1.0 {
		return fmt.Errorf("%w: e = %g", ErrEccentricity, ele.Ecc)
	}

	ele.Mean = ea - esinE

	e2 := ele.Ecc * ele.Ecc
	trueAnom := math.Atan2(math.Sqrt(1.0-e2)*esinE, ecosE-e2)
	ele.Peri = u - trueAnom

	// Fold the angular elements into [0, 2*pi).
	if ele.Inc < 0.0 {
		ele.Inc += units.TwoPi
	}
	if ele.Peri < 0.0 {
		ele.Peri += units.TwoPi
	}
	if ele.Node < 0.0 {
		ele.Node += units.TwoPi
	}
	if ele.Mean < 0.0 {
		ele.Mean += units.TwoPi
	}

	return nil
}

// elementsToCartesian converts one set of Keplerian elements to a
// heliocentric state for the gravitational parameter mu.
func elementsToCartesian(coo *body.Cartesian, ele *body.Keplerian, mu float64) error {
	if ele.SMA <= 0.0 {
		return fmt.Errorf("%w: a = %g", ErrSemiMajorAxis, ele.SMA)
	}
	if ele.Ecc < 0.0 || ele.Ecc >= 1.0 {
		return fmt.Errorf("%w: e = %g", ErrEccentricity, ele.Ecc)
	}

	sinInc, cosInc := kepler.SinCos(ele.Inc)
	sinPeri, cosPeri := kepler.SinCos(ele.Peri)
	sinNode, cosNode := kepler.SinCos(ele.Node)

	// Rotation from the orbital plane into the reference frame.
	s11 := cosNode*cosPeri - sinNode*sinPeri*cosInc
	s21 := sinNode*cosPeri + cosNode*sinPeri*cosInc
	s31 := sinPeri * sinInc
	s12 := -cosNode*sinPeri - sinNode*cosPeri*cosInc
	s22 := -sinNode*sinPeri + cosNode*cosPeri*cosInc
	s32 := cosPeri * sinInc

	ea := kepler.Solve(ele.Ecc, ele.Mean)
	sinE, cosE := kepler.SinCos(ea)

	ome := math.Sqrt(1.0 - ele.Ecc*ele.Ecc)

	// In-plane position rotated into the frame.
	q1 := ele.SMA * (cosE - ele.Ecc)
	q2 := ele.SMA * ome * sinE
	coo.Pos = vec3(s11*q1+s12*q2, s21*q1+s22*q2, s31*q1+s32*q2)

	// In-plane velocity, scaled by sqrt(mu) / (a * (1 - e*cos E)).
	q1 = math.Sqrt(mu) / ((1.0 - ele.Ecc*cosE) * math.Sqrt(ele.SMA))
	q2 = q1 * ome * cosE
	q1 *= -sinE
	coo.Vel = vec3(s11*q1+s12*q2, s21*q1+s22*q2, s31*q1+s32*q2)

	return nil
}
