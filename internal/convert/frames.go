package convert

import (
	"fmt"

	"github.com/akobaz/libcoocvt/internal/body"
)

// BarycentricToHeliocentric rewrites every body's heliocentric state as its
// barycentric state relative to the central body:
//
//	hco[i] = bco[i] - bco[central]
//
// The central body itself lands exactly at the zero state. There is no
// per-body failure mode.
func BarycentricToHeliocentric(pop []body.Body, central int) error {
	if len(pop) == 0 {
		return ErrEmptyPopulation
	}
	if central < 0 || central >= len(pop) {
		return fmt.Errorf("%w: %d with %d bodies", ErrCentralIndex, central, len(pop))
	}

	// Copy the center first: the loop overwrites pop[central].Helio too.
	cen := pop[central].Bary
	for i := range pop {
		pop[i].Helio = body.Recenter(pop[i].Bary, cen)
	}
	return nil
}

// HeliocentricToBarycentric computes the barycenter of the whole
// population's heliocentric states and subtracts it from every body:
//
//	bco[i] = hco[i] - barycenter(hco)
//
// It fails without touching the population when the barycenter is undefined
// (empty range or non-positive total mass).
func HeliocentricToBarycentric(pop []body.Body, central int) error {
	if len(pop) == 0 {
		return ErrEmptyPopulation
	}
	if central < 0 || central >= len(pop) {
		return fmt.Errorf("%w: %d with %d bodies", ErrCentralIndex, central, len(pop))
	}

	bc, err := body.Barycenter(pop, 0, len(pop), body.FrameHeliocentric)
	if err != nil {
		return fmt.Errorf("heliocentric barycenter: %w", err)
	}

	for i := range pop {
		pop[i].Bary = body.Recenter(pop[i].Helio, bc)
	}
	return nil
}
