// Package table reads and writes whitespace-separated body tables, the text
// interchange format of the converter.
//
// Every representation uses one record per line. Input records carry the
// coordinate or element values followed by the body's mass; anything after
// the expected columns on a line is ignored. Output records carry an integer
// index column followed by high-precision scientific-notation columns and no
// mass.
//
// The engine works in radians; the Degrees option converts the angular
// element fields at this boundary only.
package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/akobaz/libcoocvt/internal/body"
	"github.com/akobaz/libcoocvt/internal/units"
)

// Representation names the body field a table maps onto.
type Representation int

const (
	RepNone Representation = iota
	RepBarycentric
	RepHeliocentric
	RepJacobi
	RepPoincare
	RepRegularized
	RepKeplerian
	RepDelaunay
)

var repNames = map[Representation]string{
	RepBarycentric:  "bco",
	RepHeliocentric: "hco",
	RepJacobi:       "jco",
	RepPoincare:     "pco",
	RepRegularized:  "rco",
	RepKeplerian:    "hel",
	RepDelaunay:     "del",
}

// String returns the short tag, e.g. "hel".
func (r Representation) String() string {
	if s, ok := repNames[r]; ok {
		return s
	}
	return "none"
}

// ParseRepresentation resolves a short tag to its Representation.
func ParseRepresentation(s string) (Representation, error) {
	for r, name := range repNames {
		if s == name {
			return r, nil
		}
	}
	return RepNone, fmt.Errorf("table: unknown representation %q", s)
}

// frame maps a Cartesian representation to its body.Frame.
func (r Representation) frame() (body.Frame, bool) {
	switch r {
	case RepBarycentric:
		return body.FrameBarycentric, true
	case RepHeliocentric:
		return body.FrameHeliocentric, true
	case RepJacobi:
		return body.FrameJacobi, true
	case RepPoincare:
		return body.FramePoincare, true
	}
	return body.FrameNone, false
}

// columns returns the number of required input columns including the mass.
func (r Representation) columns() int {
	if r == RepRegularized {
		return 9
	}
	return 7
}

// Options control the boundary behavior of reads and writes.
type Options struct {
	// Degrees interprets (on read) or emits (on write) the angular element
	// fields in degrees instead of radians. It has no effect on Cartesian
	// or regularized tables.
	Degrees bool
}

// ReadBodies parses one body record per non-empty line from r into the given
// representation. It returns the bodies read so far together with an error
// naming the first malformed line, if any.
func ReadBodies(r io.Reader, rep Representation, opt Options) ([]body.Body, error) {
	if _, ok := repNames[rep]; !ok {
		return nil, fmt.Errorf("table: unknown representation %d", rep)
	}
	cols := rep.columns()

	var pop []body.Body
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < cols {
			return pop, fmt.Errorf("table: line %d: got %d columns, need %d", lineNo, len(fields), cols)
		}

		// Extra trailing tokens are ignored.
		vals := make([]float64, cols)
		for i := 0; i < cols; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return pop, fmt.Errorf("table: line %d, column %d: %w", lineNo, i+1, err)
			}
			vals[i] = v
		}

		var b body.Body
		b.Mass = vals[cols-1]
		fillBody(&b, rep, vals, opt)
		pop = append(pop, b)
	}
	if err := scanner.Err(); err != nil {
		return pop, fmt.Errorf("table: reading input: %w", err)
	}
	return pop, nil
}

func fillBody(b *body.Body, rep Representation, vals []float64, opt Options) {
	ang := 1.0
	if opt.Degrees {
		ang = units.DegToRad
	}

	switch rep {
	case RepRegularized:
		b.Reg.Pos.U1, b.Reg.Pos.U2, b.Reg.Pos.U3, b.Reg.Pos.U4 = vals[0], vals[1], vals[2], vals[3]
		b.Reg.Vel.U1, b.Reg.Vel.U2, b.Reg.Vel.U3, b.Reg.Vel.U4 = vals[4], vals[5], vals[6], vals[7]
	case RepKeplerian:
		b.Kep = body.Keplerian{
			SMA:  vals[0],
			Ecc:  vals[1],
			Inc:  vals[2] * ang,
			Peri: vals[3] * ang,
			Node: vals[4] * ang,
			Mean: vals[5] * ang,
		}
	case RepDelaunay:
		b.Del = body.Delaunay{
			L:    vals[0],
			G:    vals[1],
			H:    vals[2],
			Mean: vals[3] * ang,
			Peri: vals[4] * ang,
			Node: vals[5] * ang,
		}
	default:
		f, _ := rep.frame()
		st := b.FrameState(f)
		st.Pos.X, st.Pos.Y, st.Pos.Z = vals[0], vals[1], vals[2]
		st.Vel.X, st.Vel.Y, st.Vel.Z = vals[3], vals[4], vals[5]
	}
}

// WriteBodies formats one record per body to w: an index column followed by
// the representation's values in %+.15e notation. Masses are not emitted.
func WriteBodies(w io.Writer, pop []body.Body, rep Representation, opt Options) error {
	if _, ok := repNames[rep]; !ok {
		return fmt.Errorf("table: unknown representation %d", rep)
	}

	ang := 1.0
	if opt.Degrees {
		ang = units.RadToDeg
	}

	for i := range pop {
		var err error
		switch rep {
		case RepRegularized:
			p, v := pop[i].Reg.Pos, pop[i].Reg.Vel
			_, err = fmt.Fprintf(w, "%2d   %+.15e %+.15e %+.15e %+.15e   %+.15e %+.15e %+.15e %+.15e\n",
				i, p.U1, p.U2, p.U3, p.U4, v.U1, v.U2, v.U3, v.U4)
		case RepKeplerian:
			e := pop[i].Kep
			_, err = fmt.Fprintf(w, "%2d   %+.15e %+.15e %+.15e %+.15e %+.15e %+.15e\n",
				i, e.SMA, e.Ecc, e.Inc*ang, e.Peri*ang, e.Node*ang, e.Mean*ang)
		case RepDelaunay:
			d := pop[i].Del
			_, err = fmt.Fprintf(w, "%2d   %+.15e %+.15e %+.15e %+.15e %+.15e %+.15e\n",
				i, d.L, d.G, d.H, d.Mean*ang, d.Peri*ang, d.Node*ang)
		default:
			f, ok := rep.frame()
			if !ok {
				return fmt.Errorf("table: unknown representation %d", rep)
			}
			st := pop[i].FrameState(f)
			_, err = fmt.Fprintf(w, "%2d   %+.15e %+.15e %+.15e   %+.15e %+.15e %+.15e\n",
				i, st.Pos.X, st.Pos.Y, st.Pos.Z, st.Vel.X, st.Vel.Y, st.Vel.Z)
		}
		if err != nil {
			return fmt.Errorf("table: writing body %d: %w", i, err)
		}
	}
	return nil
}
