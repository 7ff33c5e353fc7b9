// Package spline turns a contour into a function-valid point set and fits an
// interpolating cubic spline through it.
package spline

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// DefaultOversample is the number of curve samples drawn per input point.
const DefaultOversample = 3

// ErrTooFewPoints is returned when fewer than two distinct x values remain.
var ErrTooFewPoints = errors.New("se necesitan al menos 2 valores de x distintos para interpolar")

// Boundary selects the end conditions of the fitted spline.
type Boundary string

const (
	// NotAKnot makes the third derivative continuous at the second and
	// penultimate knots.
	NotAKnot Boundary = "not-a-knot"

	// Natural sets the second derivative to zero at both ends.
	Natural Boundary = "natural"

	// Clamped sets the first derivative to zero at both ends.
	Clamped Boundary = "clamped"

	// Akima uses Akima's local slope estimate; it overshoots less on noisy
	// steps.
	Akima Boundary = "akima"

	// FritschButland is monotonicity-preserving.
	FritschButland Boundary = "fritsch-butland"
)

// Options configures Fit.
type Options struct {
	Boundary   Boundary
	Oversample int
}

// DefaultOptions returns not-a-knot end conditions sampled at 3x density.
func DefaultOptions() Options {
	return Options{Boundary: NotAKnot, Oversample: DefaultOversample}
}

// Normalize sorts points by x, keeping the input order among equal x, and
// keeps only the first point of each run of equal x. The result has strictly
// increasing x and is safe to pass to Fit. The input is not modified.
func Normalize(points []image.Point) []image.Point {
	sorted := make([]image.Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	out := sorted[:0]
	for i, p := range sorted {
		if i > 0 && p.X == out[len(out)-1].X {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Curve is a spline fitted through a normalized point set.
type Curve struct {
	xs, ys     []float64
	pred       interp.Predictor
	oversample int
}

// Fit builds an interpolating curve through points.
//
// Parameters:
//   - points: Strictly increasing in x, as produced by Normalize.
//   - opts: End conditions and sampling density. A zero Boundary means
//     NotAKnot and a non-positive Oversample means DefaultOversample.
//
// Returns:
//   - *Curve: Passes exactly through every input point.
//   - error: Wraps ErrTooFewPoints for fewer than two points; non-nil if x is
//     not strictly increasing or the boundary is unknown.
//
// # Small Inputs
//
// With two points every boundary reduces to the straight line. With three,
// not-a-knot reduces to the interpolating parabola, and Akima and
// Fritsch-Butland fall back to Natural.
func Fit(points []image.Point, opts Options) (*Curve, error) {
	if opts.Boundary == "" {
		opts.Boundary = NotAKnot
	}
	if opts.Oversample <= 0 {
		opts.Oversample = DefaultOversample
	}

	n := len(points)
	if n < 2 {
		return nil, fmt.Errorf("%w (hay %d)", ErrTooFewPoints, n)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		if i > 0 && p.X <= points[i-1].X {
			return nil, fmt.Errorf("x values must be strictly increasing: x[%d]=%d follows x[%d]=%d",
				i, p.X, i-1, points[i-1].X)
		}
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}

	pred, err := predictorFor(opts.Boundary, n)
	if err != nil {
		return nil, err
	}
	if err := pred.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("failed to fit %s spline through %d points: %w", opts.Boundary, n, err)
	}

	return &Curve{xs: xs, ys: ys, pred: pred, oversample: opts.Oversample}, nil
}

func predictorFor(b Boundary, n int) (interp.FittablePredictor, error) {
	switch b {
	case NotAKnot, Natural, Clamped, Akima, FritschButland:
	default:
		return nil, fmt.Errorf("unknown spline boundary %q", b)
	}

	switch {
	case n == 2:
		return &interp.PiecewiseLinear{}, nil
	case n == 3 && b == NotAKnot:
		return &parabola{}, nil
	case n == 3 && (b == Akima || b == FritschButland):
		return &interp.NaturalCubic{}, nil
	}

	switch b {
	case Natural:
		return &interp.NaturalCubic{}, nil
	case Clamped:
		return &interp.ClampedCubic{}, nil
	case Akima:
		return &interp.AkimaSpline{}, nil
	case FritschButland:
		return &interp.FritschButland{}, nil
	default:
		return &interp.NotAKnotCubic{}, nil
	}
}

// At evaluates the curve at x. Outside the knot range the result is the
// underlying predictor's extrapolation and should not be relied on.
func (c *Curve) At(x float64) float64 {
	return c.pred.Predict(x)
}

// Len returns the number of knots.
func (c *Curve) Len() int {
	return len(c.xs)
}

// Domain returns the smallest and largest knot x.
func (c *Curve) Domain() (lo, hi float64) {
	return c.xs[0], c.xs[len(c.xs)-1]
}

// Knots returns copies of the knot coordinates.
func (c *Curve) Knots() (xs, ys []float64) {
	return append([]float64(nil), c.xs...), append([]float64(nil), c.ys...)
}

// Samples evaluates the curve at Oversample*Len() evenly spaced x values from
// the first knot to the last, both included.
func (c *Curve) Samples() (xs, ys []float64) {
	m := c.oversample * len(c.xs)
	lo, hi := c.Domain()
	xs = floats.Span(make([]float64, m), lo, hi)
	xs[m-1] = hi // keep the last sample on the knot despite rounding
	ys = make([]float64, m)
	for i, x := range xs {
		ys[i] = c.pred.Predict(x)
	}
	return xs, ys
}

// parabola is the quadratic through exactly three points, which is what a
// not-a-knot cubic degenerates to.
type parabola struct {
	xs, ys [3]float64
}

func (p *parabola) Fit(xs, ys []float64) error {
	if len(xs) != 3 || len(ys) != 3 {
		return fmt.Errorf("parabola needs exactly 3 points, got %d", len(xs))
	}
	copy(p.xs[:], xs)
	copy(p.ys[:], ys)
	return nil
}

// Predict evaluates the Lagrange form.
func (p *parabola) Predict(x float64) float64 {
	x0, x1, x2 := p.xs[0], p.xs[1], p.xs[2]
	l0 := (x - x1) * (x - x2) / ((x0 - x1) * (x0 - x2))
	l1 := (x - x0) * (x - x2) / ((x1 - x0) * (x1 - x2))
	l2 := (x - x0) * (x - x1) / ((x2 - x0) * (x2 - x1))
	return p.ys[0]*l0 + p.ys[1]*l1 + p.ys[2]*l2
}
