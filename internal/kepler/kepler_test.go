package kepler

import (
	"math"
	"testing"

	"github.com/akobaz/libcoocvt/internal/units"
)

// residual evaluates |E - e*sin(E) - M| with M folded into [0, 2*pi).
func residual(ecc, ma, ea float64) float64 {
	m := math.Mod(ma, units.TwoPi)
	if m < 0 {
		m += units.TwoPi
	}
	r := ea - ecc*math.Sin(ea) - m
	// The solution may legitimately sit one turn away after folding.
	for r > math.Pi {
		r -= units.TwoPi
	}
	for r < -math.Pi {
		r += units.TwoPi
	}
	return math.Abs(r)
}

// TestSolveResidual sweeps eccentricity and mean anomaly and checks that the
// returned eccentric anomaly satisfies the Kepler equation to near machine
// precision. The single starter-plus-quintic-pass design has no iteration to
// fall back on, so this grid is the accuracy contract.
func TestSolveResidual(t *testing.T) {
	eccs := []float64{0, 0.01, 0.1, 0.3, 0.5, 0.7, 0.9, 0.99, 0.999}
	for _, ecc := range eccs {
		for k := 0; k < 64; k++ {
			ma := units.TwoPi * float64(k) / 64.0
			ea := Solve(ecc, ma)

			if ea < 0 || ea > units.TwoPi {
				t.Fatalf("Solve(%g, %g) = %g outside [0, 2pi]", ecc, ma, ea)
			}
			if res := residual(ecc, ma, ea); res > 1e-13 {
				t.Errorf("Solve(%g, %g): residual %.3e exceeds 1e-13", ecc, ma, res)
			}
		}
	}
}

// TestSolveCircular checks the degenerate circular case: for e = 0 the
// equation collapses to E = M.
func TestSolveCircular(t *testing.T) {
	for _, ma := range []float64{0, 0.25, 1, math.Pi / 2, 2, 3, 5, 6.28} {
		ea := Solve(0, ma)
		if diff := math.Abs(ea - ma); diff > 1e-14 {
			t.Errorf("Solve(0, %g) = %.17g, want %.17g (diff %.3e)", ma, ea, ma, diff)
		}
	}
}

// TestSolveSymmetry checks the odd symmetry the solver exploits:
// solve(e, -M) == 2*pi - solve(e, M).
func TestSolveSymmetry(t *testing.T) {
	for _, ecc := range []float64{0.05, 0.3, 0.65, 0.95} {
		for _, ma := range []float64{0.1, 0.5, 1.5, 2.5, 3.0} {
			pos := Solve(ecc, ma)
			neg := Solve(ecc, -ma)
			if diff := math.Abs(neg - (units.TwoPi - pos)); diff > 1e-12 {
				t.Errorf("symmetry broken at e=%g M=%g: solve(-M)=%.17g, 2pi-solve(M)=%.17g",
					ecc, ma, neg, units.TwoPi-pos)
			}
		}
	}
}

// TestSolvePeriodic checks that mean anomalies a full turn apart give the
// same eccentric anomaly.
func TestSolvePeriodic(t *testing.T) {
	for _, ecc := range []float64{0.1, 0.6} {
		for _, ma := range []float64{0.3, 1.7, 4.2} {
			base := Solve(ecc, ma)
			shifted := Solve(ecc, ma+3*units.TwoPi)
			if diff := math.Abs(base - shifted); diff > 1e-12 {
				t.Errorf("periodicity broken at e=%g M=%g: %g vs %g", ecc, ma, base, shifted)
			}
		}
	}
}

// TestSolveNearDegenerate exercises the regularized corner e ~ 1, M ~ 0
// where the first derivative of the Kepler equation vanishes.
func TestSolveNearDegenerate(t *testing.T) {
	for _, ma := range []float64{0, 1e-12, 1e-8, 1e-4} {
		ea := Solve(0.999, ma)
		if math.IsNaN(ea) || math.IsInf(ea, 0) {
			t.Fatalf("Solve(0.999, %g) = %v", ma, ea)
		}
		if res := residual(0.999, ma, ea); res > 1e-13 {
			t.Errorf("Solve(0.999, %g): residual %.3e", ma, res)
		}
	}
}

func TestSinCos(t *testing.T) {
	for _, x := range []float64{-2.5, -1, -0.1, 0, 0.1, 0.5, 1, 2, 3, 3.1} {
		sin, cos := SinCos(x)
		if diff := math.Abs(sin - math.Sin(x)); diff > 1e-14 {
			t.Errorf("SinCos(%g) sin diff %.3e", x, diff)
		}
		if diff := math.Abs(cos - math.Cos(x)); diff > 1e-14 {
			t.Errorf("SinCos(%g) cos diff %.3e", x, diff)
		}
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2},
		{units.TwoPi, 0},
		{units.TwoPi + 0.5, 0.5},
		{-units.TwoPi - 0.5, -0.5},
		{2.5 * math.Pi, 0.5 * math.Pi},
		{-2.5 * math.Pi, -0.5 * math.Pi},
	}
	for _, tt := range tests {
		if got := reduce(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("reduce(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
