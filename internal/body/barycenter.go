package body

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRange reports an empty or inverted index range.
	ErrEmptyRange = errors.New("body: empty index range")

	// ErrZeroMass reports a population whose total mass is not positive,
	// which leaves the barycenter undefined.
	ErrZeroMass = errors.New("body: total mass is not positive")

	// ErrUnknownFrame reports a frame with no barycenter support.
	ErrUnknownFrame = errors.New("body: unknown frame")
)

// TotalMass sums the masses of pop[from:upto] with compensated (Kahan)
// summation. The running correction term keeps the rounding error of many
// small masses from biasing the total; the later division by this sum in
// Barycenter amplifies any bias, so the extra bookkeeping matters.
// Elements are processed in index order so the result is reproducible.
func TotalMass(pop []Body, from, upto int) float64 {
	var sum, comp float64
	for i := from; i < upto; i++ {
		inc := comp + pop[i].Mass
		next := sum + inc
		comp = (sum - next) + inc
		sum = next
	}
	return sum
}

// Barycenter returns the mass-weighted center of pop[from:upto] read from
// the given Cartesian frame: (sum m*pos, sum m*vel) / (sum m).
//
// The range must be non-empty and the total mass positive; otherwise a
// zeroed Cartesian and an error are returned, with no partial computation.
func Barycenter(pop []Body, from, upto int, frame Frame) (Cartesian, error) {
	var bc Cartesian

	if from >= upto || from < 0 || upto > len(pop) {
		return bc, fmt.Errorf("%w: [%d, %d) over %d bodies", ErrEmptyRange, from, upto, len(pop))
	}

	for i := from; i < upto; i++ {
		st := pop[i].FrameState(frame)
		if st == nil {
			return Cartesian{}, fmt.Errorf("%w: %d", ErrUnknownFrame, frame)
		}
		bc.Pos = bc.Pos.MAdd(st.Pos, pop[i].Mass)
		bc.Vel = bc.Vel.MAdd(st.Vel, pop[i].Mass)
	}

	mtot := TotalMass(pop, from, upto)
	if mtot <= 0.0 {
		return Cartesian{}, fmt.Errorf("%w: %g", ErrZeroMass, mtot)
	}

	inv := 1.0 / mtot
	bc.Pos = bc.Pos.Scale(inv)
	bc.Vel = bc.Vel.Scale(inv)
	return bc, nil
}

// Recenter translates src to the given center: src - center, componentwise
// for position and velocity independently. Pure translation, no rotation.
func Recenter(src, center Cartesian) Cartesian {
	return Cartesian{
		Pos: src.Pos.Sub(center.Pos),
		Vel: src.Vel.Sub(center.Vel),
	}
}
