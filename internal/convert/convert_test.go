package convert

import (
	"errors"
	"testing"

	"github.com/akobaz/libcoocvt/internal/body"
	"github.com/akobaz/libcoocvt/internal/units"
	"github.com/akobaz/libcoocvt/internal/vec"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"bco2hco", ModeBaryToHelio, false},
		{"hco2bco", ModeHelioToBary, false},
		{"hco2hel", ModeHelioToKepler, false},
		{"hel2hco", ModeKeplerToHelio, false},
		{"none", ModeNone, true},
		{"", ModeNone, true},
		{"hel2del", ModeNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownMode) {
				t.Errorf("error = %v, want ErrUnknownMode", err)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if got := ModeHelioToKepler.String(); got != "hco2hel" {
		t.Errorf("String() = %q, want %q", got, "hco2hel")
	}
	if got := ModeNone.String(); got != "none" {
		t.Errorf("String() = %q, want %q", got, "none")
	}
	if got := Mode(99).String(); got != "none" {
		t.Errorf("String() = %q, want %q", got, "none")
	}
}

func TestConvertValidation(t *testing.T) {
	pop := []body.Body{{Mass: 1}, {Mass: 0}}

	tests := []struct {
		name    string
		pop     []body.Body
		central int
		mode    Mode
		wantErr error
	}{
		{"nil population", nil, 0, ModeBaryToHelio, ErrEmptyPopulation},
		{"empty population", []body.Body{}, 0, ModeBaryToHelio, ErrEmptyPopulation},
		{"central too large", pop, 2, ModeBaryToHelio, ErrCentralIndex},
		{"central negative", pop, -1, ModeBaryToHelio, ErrCentralIndex},
		{"mode none", pop, 0, ModeNone, ErrUnknownMode},
		{"mode out of range", pop, 0, Mode(42), ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Convert(tt.pop, tt.central, tt.mode); !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestConvertDispatch drives each mode once through the dispatcher and
// checks that the matching target field was written.
func TestConvertDispatch(t *testing.T) {
	state := body.Cartesian{
		Pos: vec.Vector3{X: 1},
		Vel: vec.Vector3{Y: units.Gauss},
	}

	t.Run("bco2hco", func(t *testing.T) {
		pop := []body.Body{{Mass: 1}, {Mass: 0, Bary: state}}
		if err := Convert(pop, 0, ModeBaryToHelio); err != nil {
			t.Fatal(err)
		}
		if pop[1].Helio.Pos.X != 1 {
			t.Errorf("heliocentric not written: %+v", pop[1].Helio)
		}
	})

	t.Run("hco2bco", func(t *testing.T) {
		pop := []body.Body{{Mass: 1}, {Mass: 0, Helio: state}}
		if err := Convert(pop, 0, ModeHelioToBary); err != nil {
			t.Fatal(err)
		}
		// Massless secondary: the barycenter coincides with the primary.
		if pop[1].Bary.Pos.X != 1 {
			t.Errorf("barycentric not written: %+v", pop[1].Bary)
		}
	})

	t.Run("hco2hel", func(t *testing.T) {
		pop := []body.Body{{Mass: 1}, {Mass: 0, Helio: state}}
		if err := Convert(pop, 0, ModeHelioToKepler); err != nil {
			t.Fatal(err)
		}
		if pop[1].Kep.SMA == 0 {
			t.Errorf("elements not written: %+v", pop[1].Kep)
		}
	})

	t.Run("hel2hco", func(t *testing.T) {
		pop := []body.Body{{Mass: 1}, {Mass: 0, Kep: body.Keplerian{SMA: 1, Ecc: 0.1}}}
		if err := Convert(pop, 0, ModeKeplerToHelio); err != nil {
			t.Fatal(err)
		}
		if pop[1].Helio.Pos.Norm() == 0 {
			t.Errorf("heliocentric not written: %+v", pop[1].Helio)
		}
	})
}
