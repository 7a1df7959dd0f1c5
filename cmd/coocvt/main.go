package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/akobaz/libcoocvt/internal/convert"
	"github.com/akobaz/libcoocvt/internal/table"
	"github.com/akobaz/libcoocvt/internal/version"
)

// modeReps maps each conversion mode to the table representations it reads
// and writes.
var modeReps = map[convert.Mode][2]table.Representation{
	convert.ModeBaryToHelio:   {table.RepBarycentric, table.RepHeliocentric},
	convert.ModeHelioToBary:   {table.RepHeliocentric, table.RepBarycentric},
	convert.ModeHelioToKepler: {table.RepHeliocentric, table.RepKeplerian},
	convert.ModeKeplerToHelio: {table.RepKeplerian, table.RepHeliocentric},
}

func main() {
	var (
		modeStr     = flag.String("mode", "", "conversion mode: bco2hco, hco2bco, hco2hel, hel2hco")
		inPath      = flag.String("in", "", "input table (default stdin)")
		outPath     = flag.String("out", "", "output table (default stdout)")
		central     = flag.Int("central", 0, "index of the central body")
		degrees     = flag.Bool("degrees", false, "angles in tables are degrees instead of radians")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("coocvt %s\n", version.Version)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(logger, *modeStr, *inPath, *outPath, *central, *degrees); err != nil {
		fmt.Fprintln(os.Stderr, "coocvt:", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, modeStr, inPath, outPath string, central int, degrees bool) error {
	if modeStr == "" {
		return fmt.Errorf("no conversion mode given (-mode)")
	}
	mode, err := convert.ParseMode(modeStr)
	if err != nil {
		return err
	}
	reps := modeReps[mode]
	opt := table.Options{Degrees: degrees}

	var in io.Reader = os.Stdin
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	pop, err := table.ReadBodies(in, reps[0], opt)
	if err != nil {
		return err
	}

	// A per-body failure still leaves every other body converted, so the
	// table is written either way; the error is reported after.
	convErr := convert.Convert(pop, central, mode)
	if convErr != nil {
		var be *convert.BodyError
		if !errors.As(convErr, &be) {
			return convErr
		}
		logger.Warn("some bodies failed to convert",
			"mode", mode.String(),
			"bodies", be.Bodies,
		)
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := table.WriteBodies(out, pop, reps[1], opt); err != nil {
		return err
	}

	return convErr
}
