// Package escape computes escape times of the quadratic Julia recurrence
// z -> z² + c over a grid of starting points.
package escape

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/willbeason/julia-escape/pkg/grid"
	"github.com/willbeason/julia-escape/pkg/transforms"
)

// ErrInvalidArgument is returned for inputs outside the evaluator's contract.
var ErrInvalidArgument = errors.New("invalid argument")

// Params are the parameters of a single evaluation.
type Params struct {
	// C is the constant of the recurrence.
	C complex128

	// MaxIters bounds the number of steps. Escape indices lie in
	// [0, MaxIters-1].
	MaxIters int

	// EscapeRadius is the magnitude beyond which an orbit counts as escaped.
	// The comparison is strict.
	EscapeRadius float64

	// Sentinel is recorded for cells that never escape.
	Sentinel Sentinel
}

// DefaultParams renders the dendrite Julia set, c = i.
func DefaultParams() Params {
	return Params{
		C:            1i,
		MaxIters:     300,
		EscapeRadius: 10.0,
		Sentinel:     SentinelZero,
	}
}

func (p Params) Validate() error {
	if cmplx.IsNaN(p.C) || cmplx.IsInf(p.C) {
		return fmt.Errorf("%w: c must be finite, got %v", ErrInvalidArgument, p.C)
	}
	if p.MaxIters < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidArgument, p.MaxIters)
	}
	if !(p.EscapeRadius > 0) || math.IsInf(p.EscapeRadius, 1) {
		return fmt.Errorf("%w: escape radius must be positive and finite, got %v", ErrInvalidArgument, p.EscapeRadius)
	}
	if _, ok := sentinelNames[p.Sentinel]; !ok {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, p.Sentinel)
	}
	return nil
}

// Step is the evaluator state after one iteration. Z and Active alias the
// evaluator's working arrays: they must not be modified or retained after the
// hook returns.
type Step struct {
	Index     int
	Z         []complex128
	Active    []bool
	Remaining int
}

type config struct {
	workers int
	hook    func(Step)
}

type Option func(*config)

// WithWorkers sets the number of goroutines sharing each step. Defaults to
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithStepHook calls fn after every step, once all cells have been updated.
func WithStepHook(fn func(Step)) Option {
	return func(c *config) {
		c.hook = fn
	}
}

// Evaluate iterates every point of g under z -> z² + p.C and records the
// step at which |z| first exceeds p.EscapeRadius.
//
// Once a cell escapes its orbit is frozen: it receives no further updates.
// Steps run in order; within a step, rows are split between workers. The
// loop stops early once every cell has escaped. g is not modified.
func Evaluate(g *grid.Grid, p Params, opts ...Option) (*Field, error) {
	if g == nil || g.Rows < 1 || g.Cols < 1 || len(g.Points) != g.Rows*g.Cols {
		return nil, fmt.Errorf("%w: empty or malformed grid", ErrInvalidArgument)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cfg := config{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		return nil, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidArgument, cfg.workers)
	}

	n := g.Len()
	z := make([]complex128, n)
	copy(z, g.Points)
	active := make([]bool, n)
	for k := range active {
		active[k] = true
	}
	result := make([]float64, n)

	f := transforms.Quadratic{C: p.C}
	bands := splitRows(g.Rows, g.Cols, cfg.workers)
	escaped := make([]int, len(bands))

	log := Logger()
	log.Debug("evaluating",
		slog.Int("rows", g.Rows),
		slog.Int("cols", g.Cols),
		slog.String("c", fmt.Sprint(p.C)),
		slog.Int("max_iters", p.MaxIters),
		slog.Float64("escape_radius", p.EscapeRadius),
		slog.Int("workers", len(bands)))

	remaining := n
	steps := 0
	for i := 0; i < p.MaxIters && remaining > 0; i++ {
		if len(bands) == 1 {
			escaped[0] = advance(f, p.EscapeRadius, i, z, active, result)
		} else {
			var eg errgroup.Group
			for b, band := range bands {
				b, band := b, band
				eg.Go(func() error {
					lo, hi := band[0], band[1]
					escaped[b] = advance(f, p.EscapeRadius, i, z[lo:hi], active[lo:hi], result[lo:hi])
					return nil
				})
			}
			// advance never fails.
			_ = eg.Wait()
		}

		for _, e := range escaped {
			remaining -= e
		}
		steps++

		log.Debug("step", slog.Int("step", i), slog.Int("active", remaining))
		if cfg.hook != nil {
			cfg.hook(Step{Index: i, Z: z, Active: active, Remaining: remaining})
		}
	}

	if remaining > 0 && p.Sentinel != SentinelZero {
		v := p.Sentinel.value(p.MaxIters)
		for k, a := range active {
			if a {
				result[k] = v
			}
		}
	}

	done := make([]bool, n)
	for k, a := range active {
		done[k] = !a
	}

	log.Debug("evaluated", slog.Int("steps", steps), slog.Int("unescaped", remaining))

	return &Field{
		Rows:     g.Rows,
		Cols:     g.Cols,
		Values:   result,
		Escaped:  done,
		MaxIters: p.MaxIters,
		Sentinel: p.Sentinel,
	}, nil
}

// advance applies one step to the active cells of z and returns how many
// escaped.
func advance(f transforms.Quadratic, radius float64, step int, z []complex128, active []bool, result []float64) int {
	escaped := 0
	for k := range z {
		if !active[k] {
			continue
		}

		z[k] = f.Next(z[k])
		// NaN magnitudes compare false and stay active.
		if cmplx.Abs(z[k]) > radius {
			result[k] = float64(step)
			active[k] = false
			escaped++
		}
	}
	return escaped
}

// splitRows divides rows into at most workers contiguous bands, returned as
// [lo, hi) ranges of cell indices.
func splitRows(rows, cols, workers int) [][2]int {
	if workers > rows {
		workers = rows
	}

	bands := make([][2]int, 0, workers)
	lo := 0
	for w := 0; w < workers; w++ {
		// Spread the remainder over the first bands.
		height := rows / workers
		if w < rows%workers {
			height++
		}
		hi := lo + height*cols
		bands = append(bands, [2]int{lo, hi})
		lo = hi
	}
	return bands
}
