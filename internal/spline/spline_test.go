package spline

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pts(coords ...int) []image.Point {
	out := make([]image.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, image.Point{X: coords[i], Y: coords[i+1]})
	}
	return out
}

// wavy returns n normalized points along a bumpy curve.
func wavy(n int) []image.Point {
	out := make([]image.Point, n)
	for i := range out {
		x := 3*i + 1
		out[i] = image.Point{X: x, Y: int(40 + 15*math.Sin(float64(x)/7) + float64(i%3))}
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []image.Point
		want []image.Point
	}{
		{"empty", nil, []image.Point{}},
		{"already sorted", pts(1, 5, 2, 6, 3, 7), pts(1, 5, 2, 6, 3, 7)},
		{"reversed", pts(3, 7, 2, 6, 1, 5), pts(1, 5, 2, 6, 3, 7)},
		// Equal x keeps the first occurrence in input order.
		{"duplicates", pts(4, 1, 2, 9, 4, 3, 2, 8, 4, 0), pts(2, 9, 4, 1)},
		{"single", pts(7, 7), pts(7, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Normalize(tt.in)); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	in := pts(3, 1, 1, 2, 3, 9)
	orig := append([]image.Point(nil), in...)
	Normalize(in)
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestNormalize_IdempotentAndIncreasing(t *testing.T) {
	// A closed contour visits most x values twice.
	var contour []image.Point
	for x := 0; x <= 50; x++ {
		contour = append(contour, image.Point{X: x, Y: 10})
	}
	for x := 50; x >= 0; x-- {
		contour = append(contour, image.Point{X: x, Y: 30 + x%4})
	}

	once := Normalize(contour)
	twice := Normalize(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Normalize not idempotent (-once +twice):\n%s", diff)
	}
	if len(once) != 51 {
		t.Errorf("got %d points, want 51", len(once))
	}
	for i := 1; i < len(once); i++ {
		if once[i].X <= once[i-1].X {
			t.Fatalf("x not strictly increasing at %d: %d after %d", i, once[i].X, once[i-1].X)
		}
	}
	// The upper run came first in the contour, so it wins.
	for _, p := range once {
		if p.Y != 10 {
			t.Fatalf("point %v should come from the first run", p)
		}
	}
}

func TestFit_Interpolates(t *testing.T) {
	points := wavy(25)

	for _, b := range []Boundary{NotAKnot, Natural, Clamped, Akima, FritschButland} {
		t.Run(string(b), func(t *testing.T) {
			c, err := Fit(points, Options{Boundary: b, Oversample: 3})
			if err != nil {
				t.Fatalf("Fit failed: %v", err)
			}
			for _, p := range points {
				if got := c.At(float64(p.X)); math.Abs(got-float64(p.Y)) > 1e-9 {
					t.Errorf("At(%d): got %v, want %d", p.X, got, p.Y)
				}
			}
		})
	}
}

func TestFit_NotAKnotReproducesCubic(t *testing.T) {
	// Not-a-knot conditions recover any cubic exactly. f is integer on
	// multiples of 10, so the knots carry no rounding.
	f := func(x float64) float64 { return x*(x-10)*(x-20)/100 + 5 }
	var points []image.Point
	for x := 0; x <= 60; x += 10 {
		points = append(points, image.Point{X: x, Y: int(f(float64(x)))})
	}

	c, err := Fit(points, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	for x := 0.5; x < 60; x += 2.25 {
		if got := c.At(x); math.Abs(got-f(x)) > 1e-6 {
			t.Errorf("At(%v): got %v, want %v", x, got, f(x))
		}
	}
}

func TestCurve_Samples(t *testing.T) {
	points := wavy(17)
	c, err := Fit(points, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	xs, ys := c.Samples()
	if len(xs) != 3*len(points) || len(ys) != len(xs) {
		t.Fatalf("got %d/%d samples, want %d", len(xs), len(ys), 3*len(points))
	}

	lo, hi := c.Domain()
	if lo != float64(points[0].X) || hi != float64(points[len(points)-1].X) {
		t.Errorf("Domain: got [%v, %v], want [%d, %d]", lo, hi, points[0].X, points[len(points)-1].X)
	}
	if xs[0] != lo || xs[len(xs)-1] != hi {
		t.Errorf("samples span [%v, %v], want [%v, %v]", xs[0], xs[len(xs)-1], lo, hi)
	}

	step := (hi - lo) / float64(len(xs)-1)
	for i := 1; i < len(xs); i++ {
		if d := xs[i] - xs[i-1]; math.Abs(d-step) > 1e-9 {
			t.Fatalf("uneven spacing at %d: %v, want %v", i, d, step)
		}
	}
	for i, x := range xs {
		if ys[i] != c.At(x) {
			t.Fatalf("sample %d: y=%v, At(%v)=%v", i, ys[i], x, c.At(x))
		}
	}
}

func TestCurve_CustomOversample(t *testing.T) {
	c, err := Fit(wavy(10), Options{Boundary: Natural, Oversample: 5})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if xs, _ := c.Samples(); len(xs) != 50 {
		t.Errorf("got %d samples, want 50", len(xs))
	}
}

func TestFit_SmallInputs(t *testing.T) {
	t.Run("two points is a line", func(t *testing.T) {
		c, err := Fit(pts(0, 0, 10, 20), DefaultOptions())
		if err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		if got := c.At(2.5); math.Abs(got-5) > 1e-12 {
			t.Errorf("At(2.5): got %v, want 5", got)
		}
		if xs, _ := c.Samples(); len(xs) != 6 {
			t.Errorf("got %d samples, want 6", len(xs))
		}
	})

	t.Run("three points not-a-knot is a parabola", func(t *testing.T) {
		// y = x^2
		c, err := Fit(pts(0, 0, 2, 4, 5, 25), DefaultOptions())
		if err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		if got := c.At(3); math.Abs(got-9) > 1e-12 {
			t.Errorf("At(3): got %v, want 9", got)
		}
	})

	for _, b := range []Boundary{Natural, Clamped, Akima, FritschButland} {
		t.Run("three points "+string(b), func(t *testing.T) {
			points := pts(0, 3, 4, 8, 9, 1)
			c, err := Fit(points, Options{Boundary: b})
			if err != nil {
				t.Fatalf("Fit failed: %v", err)
			}
			for _, p := range points {
				if got := c.At(float64(p.X)); math.Abs(got-float64(p.Y)) > 1e-9 {
					t.Errorf("At(%d): got %v, want %d", p.X, got, p.Y)
				}
			}
		})
	}
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name   string
		points []image.Point
		opts   Options
		tooFew bool
	}{
		{"no points", nil, DefaultOptions(), true},
		{"one point", pts(4, 4), DefaultOptions(), true},
		{"duplicate x", pts(1, 1, 1, 2, 3, 3), DefaultOptions(), false},
		{"decreasing x", pts(5, 1, 3, 2), DefaultOptions(), false},
		{"unknown boundary", pts(1, 1, 2, 2, 3, 3, 4, 4), Options{Boundary: "periodic"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.points, tt.opts)
			if err == nil {
				t.Fatal("Fit should fail")
			}
			if got := errors.Is(err, ErrTooFewPoints); got != tt.tooFew {
				t.Errorf("errors.Is(err, ErrTooFewPoints) = %v, want %v (err: %v)", got, tt.tooFew, err)
			}
		})
	}
}

func TestFit_NormalizedContourAlwaysFits(t *testing.T) {
	var contour []image.Point
	for i := 0; i < 400; i++ {
		a := float64(i) / 400 * 2 * math.Pi
		contour = append(contour, image.Point{
			X: int(math.Round(200 + 150*math.Cos(a))),
			Y: int(math.Round(200 + 150*math.Sin(a))),
		})
	}

	normalized := Normalize(contour)
	c, err := Fit(normalized, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if c.Len() != len(normalized) {
		t.Errorf("Len: got %d, want %d", c.Len(), len(normalized))
	}
	xs, ys := c.Knots()
	for i, p := range normalized {
		if xs[i] != float64(p.X) || ys[i] != float64(p.Y) {
			t.Fatalf("knot %d: got (%v,%v), want %v", i, xs[i], ys[i], p)
		}
	}
}
