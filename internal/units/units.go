// Package units provides the physical constants and unit conventions shared
// by the conversion engine.
//
// The library works in heliocentric astronomical units throughout: distances
// in AU, velocities in AU/day, masses in solar masses. The gravitational
// parameter of a pair of bodies is Gauss2 * (m0 + m), where Gauss2 is the
// square of the Gaussian gravitational constant (IAU 1976 definition).
package units

import "math"

const (
	// Gauss is the Gaussian gravitational constant k.
	Gauss = 0.01720209895

	// Gauss2 is k squared, in AU^3 solarMass^-1 day^-2.
	Gauss2 = 2.9591220828559115e-04

	// TwoPi is one full turn in radians.
	TwoPi = 2.0 * math.Pi

	// PiSq is pi squared.
	PiSq = math.Pi * math.Pi

	// DegToRad converts degrees to radians.
	DegToRad = math.Pi / 180.0

	// RadToDeg converts radians to degrees.
	RadToDeg = 180.0 / math.Pi
)
