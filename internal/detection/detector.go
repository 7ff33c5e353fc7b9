package detection

import (
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/contour-spline/internal/imaging"
)

// Extraction is the immutable output of the edge and contour stages.
type Extraction struct {
	// Edges is the binary edge raster, EdgeOn on edge pixels.
	Edges *image.Gray

	// Contours are the external borders of Edges in extraction order.
	Contours []Contour
}

// Detector turns a grayscale raster into an edge map and its external contours.
type Detector interface {
	Detect(gray *image.Gray) (*Extraction, error)
}

// Params configures a Detector.
type Params struct {
	// ThresholdLow and ThresholdHigh are the Canny hysteresis thresholds.
	ThresholdLow  float64
	ThresholdHigh float64

	// BlurRadius pre-blurs the input when > 0.
	BlurRadius float64
}

// DefaultParams returns the thresholds used for typical photographs of a
// single subject on a plain background.
func DefaultParams() Params {
	return Params{ThresholdLow: 50, ThresholdHigh: 150}
}

// NativeDetector runs the pure-Go Canny and border-following implementations.
type NativeDetector struct {
	Params Params
}

// Detect implements Detector.
func (d NativeDetector) Detect(gray *image.Gray) (*Extraction, error) {
	if gray == nil || gray.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty raster", imaging.ErrLoad)
	}
	src := imaging.Blur(gray, d.Params.BlurRadius)
	edges := imaging.Canny(src, d.Params.ThresholdLow, d.Params.ThresholdHigh)
	return &Extraction{
		Edges:    edges,
		Contours: FindExternalContours(edges),
	}, nil
}

// factories maps backend names to constructors. Optional backends register
// themselves from build-tagged files.
var factories = map[string]func(Params) Detector{
	"native": func(p Params) Detector { return NativeDetector{Params: p} },
}

// NewDetector returns the detector registered under backend.
func NewDetector(backend string, p Params) (Detector, error) {
	f, ok := factories[backend]
	if !ok {
		return nil, fmt.Errorf("edge backend %q is not available in this build (have %v)", backend, Backends())
	}
	return f(p), nil
}

// Backends lists the detector backends compiled into this binary.
func Backends() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
