package convert

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/akobaz/libcoocvt/internal/body"
)

// convertResult is the outcome of converting a single body.
type convertResult struct {
	idx int
	err error
}

// WorkerPool runs the per-body element conversions across a fixed number of
// goroutines. The per-body work is independent — the only shared inputs are
// the central body's mass and the read-only source fields — so no ordering
// between bodies is required and the outcome matches the sequential path.
//
// Only the element modes are parallelized. The frame modes stay sequential:
// the compensated barycenter reduction must process bodies in a fixed order
// to keep its rounding behavior reproducible.
type WorkerPool struct {
	workers int
	logger  *slog.Logger
}

// NewWorkerPool creates a pool with the given number of workers.
func NewWorkerPool(workers int, logger *slog.Logger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{workers: workers, logger: logger}
}

// ConvertBatch applies the conversion selected by mode to pop in place,
// spreading per-body work over the pool. It honors the same validation and
// error policy as Convert; per-body domain failures are logged, collected
// and reported as one aggregate BodyError with ascending indices.
// Cancelling ctx abandons unprocessed bodies and returns ctx.Err().
func (wp *WorkerPool) ConvertBatch(ctx context.Context, pop []body.Body, central int, mode Mode) error {
	if len(pop) == 0 {
		return ErrEmptyPopulation
	}
	if central < 0 || central >= len(pop) {
		return ErrCentralIndex
	}

	var per func(i int) error
	switch mode {
	case ModeHelioToKepler:
		pop[central].Kep = body.Keplerian{}
		per = func(i int) error {
			return cartesianToElements(&pop[i].Kep, &pop[i].Helio, mu(pop, central, i))
		}
	case ModeKeplerToHelio:
		pop[central].Helio = body.Cartesian{}
		per = func(i int) error {
			return elementsToCartesian(&pop[i].Helio, &pop[i].Kep, mu(pop, central, i))
		}
	default:
		// Nothing to spread across workers.
		return Convert(pop, central, mode)
	}

	jobs := make(chan int, wp.workers*2)
	results := make(chan convertResult, wp.workers*2)

	var wg sync.WaitGroup
	for w := 0; w < wp.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res := convertResult{idx: i, err: per(i)}
				select {
				case results <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range pop {
			if i == central {
				continue
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var failed []int
	for res := range results {
		if res.err != nil {
			if wp.logger != nil {
				wp.logger.Warn("body conversion failed",
					"mode", mode.String(),
					"body", res.idx,
					"error", res.err,
				)
			}
			failed = append(failed, res.idx)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if len(failed) > 0 {
		sort.Ints(failed)
		return &BodyError{Mode: mode, Bodies: failed}
	}
	return nil
}
