package detection

import (
	"errors"
	"fmt"
	"image"

	"gonum.org/v1/gonum/stat"
)

// DefaultMinPoints is the smallest simplified contour kept as a candidate.
// Smaller contours are treated as noise.
const DefaultMinPoints = 300

// ErrInsufficientContours is returned when no contour passes the size filter.
var ErrInsufficientContours = errors.New("no se encontraron contornos suficientemente grandes")

// Candidate is a contour that passed the size filter, with summary statistics.
type Candidate struct {
	// Index is the contour's position in the extraction order.
	Index int `json:"index"`

	// Span is the horizontal extent, max(x) - min(x).
	Span int `json:"span"`

	// MeanY is the arithmetic mean of the point Y values.
	MeanY float64 `json:"mean_y"`

	// MinY is the smallest Y value (the topmost point).
	MinY int `json:"min_y"`

	// Points is the contour itself. It is shared with the extraction result
	// and must not be modified.
	Points Contour `json:"-"`
}

// Len returns the number of points in the candidate's contour.
func (c Candidate) Len() int {
	return len(c.Points)
}

// Candidates filters contours by size and annotates each survivor.
//
// Parameters:
//   - contours: Contours in extraction order.
//   - minPoints: Contours with fewer points are discarded.
//
// Returns:
//   - []Candidate: Survivors in extraction order.
//   - error: Wraps ErrInsufficientContours when nothing survives.
func Candidates(contours []Contour, minPoints int) ([]Candidate, error) {
	cands := make([]Candidate, 0)
	for idx, c := range contours {
		if len(c) < minPoints || len(c) == 0 {
			continue
		}
		cands = append(cands, summarize(idx, c))
	}

	if len(cands) == 0 {
		return nil, fmt.Errorf("%w (%d contornos, mínimo %d puntos)", ErrInsufficientContours, len(contours), minPoints)
	}
	return cands, nil
}

func summarize(idx int, c Contour) Candidate {
	b := c.Bounds()
	ys := make([]float64, len(c))
	for i, p := range c {
		ys[i] = float64(p.Y)
	}

	return Candidate{
		Index:  idx,
		Span:   b.Dx(),
		MeanY:  stat.Mean(ys, nil),
		MinY:   b.Min.Y,
		Points: c,
	}
}

// Widest returns the candidate with the greatest span. Ties resolve to the
// earliest candidate in the slice. It panics on an empty slice.
func Widest(cands []Candidate) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Span > best.Span {
			best = c
		}
	}
	return best
}

// ByIndex returns the candidate whose extraction index is idx.
func ByIndex(cands []Candidate, idx int) (Candidate, bool) {
	for _, c := range cands {
		if c.Index == idx {
			return c, true
		}
	}
	return Candidate{}, false
}

// Bounds returns the extreme coordinates of the contour. Unlike the usual
// image.Rectangle convention Max is inclusive: it holds the largest X and Y
// present, so Dx() is the horizontal span.
func (c Contour) Bounds() image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c[0], Max: c[0]}
	for _, p := range c[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}
