// Package detection extracts candidate contours from a grayscale raster.
//
// The package covers three pipeline stages:
//
//  1. Edge Detection: Canny with hysteresis thresholds (see imaging.Canny)
//  2. Contour Extraction: Suzuki-Abe border following, outer borders only,
//     with straight runs compressed to their endpoints
//  3. Filtering: contours shorter than a minimum point count are dropped and
//     the rest annotated with span, mean Y and minimum Y
//
// # Backends
//
// Stages 1 and 2 sit behind the Detector interface. NativeDetector is pure Go
// and always available. Building with -tags gocv adds GoCVDetector, which
// hands both stages to OpenCV (cv::Canny and cv::findContours with
// RETR_EXTERNAL and CHAIN_APPROX_SIMPLE). Point counts from the two backends
// agree closely but not exactly, so candidate sets near the size threshold can
// differ.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Limitations
//
// The candidate filter counts points after compression, not boundary pixels.
// A large but simple shape (an axis-aligned rectangle has four points) never
// qualifies, while an irregular outline of the same size easily does.
package detection
