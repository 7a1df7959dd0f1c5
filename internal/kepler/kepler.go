// Package kepler solves the elliptic Kepler equation E - e*sin(E) = M.
//
// No closed form exists, so Solve combines Markley's (1995) quasi-analytic
// starter with a single fifth-order Danby-Burkardt correction pass. That
// fixed two-stage computation reaches machine precision for all supported
// eccentricities without an outer iteration loop, trading a variable-cost
// Newton loop for predictable, branch-free work per call.
//
// References:
//   - Markley (1995), Celest. Mech. Dyn. Astron. 63, 101-111.
//   - Danby & Burkardt (1983), Celest. Mech. 31, 95-107.
package kepler

import (
	"math"

	"github.com/akobaz/libcoocvt/internal/units"
)

// addZero regularizes the first derivative of the Kepler equation to avoid
// division by zero at the degenerate point (E, e) = (0, 1).
const addZero = 1.0e-19

// reduce maps x into [-pi, pi) modulo 2*pi.
func reduce(x float64) float64 {
	x -= math.Floor(x/units.TwoPi) * units.TwoPi
	if x > math.Pi {
		x -= units.TwoPi
	}
	if x < -math.Pi {
		x += units.TwoPi
	}
	return x
}

// SinCos evaluates sin(x) and cos(x) simultaneously from tan(x/2),
// spending a single transcendental call for both.
func SinCos(x float64) (sin, cos float64) {
	tx := math.Tan(0.5 * x)
	den := 1.0 / (1.0 + tx*tx)
	return 2.0 * tx * den, (1.0 - tx*tx) * den
}

// scaledSinCos returns ecc*sin(x) and ecc*cos(x) via SinCos.
func scaledSinCos(x, ecc float64) (esin, ecos float64) {
	sin, cos := SinCos(x)
	return ecc * sin, ecc * cos
}

// correct applies one Danby-Burkardt pass with quintic convergence to the
// starter x, chaining Newton, Halley, quartic and quintic corrections so
// that each stage feeds the next one's denominator. The chained form keeps
// the correction bounded near e ~ 1, M ~ 0 where a plain Newton step
// blows up.
func correct(ecc, ma, x float64) float64 {
	esin, ecos := scaledSinCos(x, ecc)

	// Residual of the Kepler equation and its scaled derivatives.
	f0 := ma - x + esin
	f1 := 1.0 - ecos + addZero
	f2 := esin / 2.0
	f3 := ecos / 6.0
	f4 := -esin / 24.0

	dx := f0 / f1                                  // Newton-Raphson, quadratic
	dx = f0 / (f1 + f2*dx)                         // Halley, cubic
	dx = f0 / (f1 + f2*dx + f3*dx*dx)              // Danby-Burkardt, quartic
	dx = f0 / (f1 + f2*dx + f3*dx*dx + f4*dx*dx*dx) // Danby-Burkardt, quintic

	return x + dx
}

// markley returns the eccentric anomaly for 0 <= ma < pi: the Pade-form
// starter of Markley (1995) eqs. (5), (9), (10), (14), (15), refined by one
// quintic correction pass.
func markley(ecc, ma float64) float64 {
	tmp := 1.0 / (units.PiSq - 6.0)
	ad := 3.0 * units.PiSq * tmp
	ak := 1.6 * math.Pi * tmp

	a := ad + ak*(math.Pi-ma)/(1.0+ecc)
	d := 3.0*(1.0-ecc) + a*ecc
	q := 2.0*a*d*(1.0-ecc) - ma*ma
	r := 3.0*a*d*(d-1.0+ecc)*ma + ma*ma*ma
	w := math.Cbrt(math.Abs(r) + math.Sqrt(q*q*q+r*r))
	w *= w

	x0 := 0.0
	if w > 0.0 {
		x0 = (2.0*r*w/(w*w+q*w+q*q) + ma) / d
	}

	return correct(ecc, ma, x0)
}

// Solve returns the eccentric anomaly E in [0, 2*pi) satisfying
// E - ecc*sin(E) = ma (mod 2*pi), for any real mean anomaly ma.
//
// The caller must ensure 0 <= ecc < 1; eccentricities outside that range are
// not validated here and produce meaningless results. Solve always returns
// a number — there is no failure mode for valid input.
func Solve(ecc, ma float64) float64 {
	mr := reduce(ma)

	// The Kepler equation is odd in M, so a negative reduced anomaly is
	// solved through its mirror image. This halves the range the starter
	// has to cover.
	if mr < 0.0 {
		return units.TwoPi - markley(ecc, -mr)
	}
	return markley(ecc, mr)
}
