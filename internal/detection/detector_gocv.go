//go:build gocv

package detection

// The OpenCV backend. Build with -tags gocv on a machine with OpenCV 4
// installed; see https://gocv.io/getting-started/.

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/contour-spline/internal/imaging"
)

func init() {
	factories["gocv"] = func(p Params) Detector { return GoCVDetector{Params: p} }
}

// GoCVDetector delegates edge detection and contour tracing to OpenCV.
type GoCVDetector struct {
	Params Params
}

// Detect implements Detector.
func (d GoCVDetector) Detect(gray *image.Gray) (*Extraction, error) {
	if gray == nil || gray.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty raster", imaging.ErrLoad)
	}

	src, err := gocv.ImageGrayToMatGray(imaging.Blur(gray, d.Params.BlurRadius))
	if err != nil {
		return nil, fmt.Errorf("failed to convert raster to Mat: %w", err)
	}
	defer src.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(src, &edges, float32(d.Params.ThresholdLow), float32(d.Params.ThresholdHigh))

	found := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]Contour, 0, found.Size())
	for _, pts := range found.ToPoints() {
		contours = append(contours, Contour(pts))
	}

	edgeImg, err := edges.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert edge Mat: %w", err)
	}

	return &Extraction{
		Edges:    imaging.ToGray(edgeImg),
		Contours: contours,
	}, nil
}
