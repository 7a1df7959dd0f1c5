// Package convert implements the four elementary conversions between body
// representations — barycentric/heliocentric Cartesian frames and
// heliocentric Keplerian elements — and the dispatcher that selects one by
// mode tag.
//
// All converters operate in place on a population slice relative to one
// designated central body. The central body's own target field is always
// written as the explicit zero state, since a body's relation to itself is
// degenerate. Per-body work is independent; WorkerPool offers an optional
// parallel path for the element conversions.
//
// Error policy: the element converters process every body and never abort
// the loop on a per-body domain failure. Failures are collected and reported
// as one aggregate BodyError naming the failed indices; those bodies' output
// fields are left exactly as the math produced them, never masked with a
// default. The frame converters fail the whole call or not at all.
package convert

import (
	"errors"
	"fmt"

	"github.com/akobaz/libcoocvt/internal/body"
)

// Mode selects one of the four elementary conversions.
type Mode int

const (
	ModeNone Mode = iota
	ModeBaryToHelio
	ModeHelioToBary
	ModeHelioToKepler
	ModeKeplerToHelio
)

var modeNames = map[Mode]string{
	ModeBaryToHelio:   "bco2hco",
	ModeHelioToBary:   "hco2bco",
	ModeHelioToKepler: "hco2hel",
	ModeKeplerToHelio: "hel2hco",
}

// String returns the mode tag, e.g. "hco2hel".
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "none"
}

// ParseMode resolves a mode tag to its Mode. Unrecognized tags are an error.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if s == name {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

var (
	// ErrEmptyPopulation reports a nil or empty body slice.
	ErrEmptyPopulation = errors.New("convert: empty population")

	// ErrCentralIndex reports a central-body index outside the population.
	ErrCentralIndex = errors.New("convert: central index out of bounds")

	// ErrUnknownMode reports an unrecognized or none conversion mode.
	ErrUnknownMode = errors.New("convert: unknown mode")

	// ErrNonElliptic reports a state whose vis-viva energy gives a
	// non-positive inverse semi-major axis. Parabolic and hyperbolic
	// motion are unsupported.
	ErrNonElliptic = errors.New("convert: non-elliptic motion")

	// ErrEccentricity reports an eccentricity outside [0, 1).
	ErrEccentricity = errors.New("convert: eccentricity outside [0,1)")

	// ErrSemiMajorAxis reports a semi-major axis that is not positive.
	ErrSemiMajorAxis = errors.New("convert: semi-major axis not positive")
)

// BodyError aggregates per-body domain failures from one whole-population
// element conversion. Bodies holds the failed indices in ascending order;
// all other bodies were converted normally.
type BodyError struct {
	Mode   Mode
	Bodies []int
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("convert: %s failed for bodies %v", e.Mode, e.Bodies)
}

// Convert applies the conversion selected by mode to pop in place, anchored
// at the central body. It validates the population, the central index and
// the mode before dispatching; the elementary converters report their own
// domain failures.
func Convert(pop []body.Body, central int, mode Mode) error {
	if len(pop) == 0 {
		return ErrEmptyPopulation
	}
	if central < 0 || central >= len(pop) {
		return fmt.Errorf("%w: %d with %d bodies", ErrCentralIndex, central, len(pop))
	}

	switch mode {
	case ModeBaryToHelio:
		return BarycentricToHeliocentric(pop, central)
	case ModeHelioToBary:
		return HeliocentricToBarycentric(pop, central)
	case ModeHelioToKepler:
		return HeliocentricToKeplerian(pop, central)
	case ModeKeplerToHelio:
		return KeplerianToHeliocentric(pop, central)
	}
	return fmt.Errorf("%w: %d", ErrUnknownMode, mode)
}
