package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
)

// Edge and background values written to the binary edge raster.
const (
	EdgeOn  = 255
	EdgeOff = 0
)

// tan(22.5°) and tan(67.5°), used to bucket gradient directions.
const (
	tan22 = 0.41421356237
	tan67 = 2.41421356237
)

// Canny performs Canny edge detection on a grayscale raster.
//
// Parameters:
//   - gray: Source raster. Intensities are used as-is (0-255).
//   - thresholdLow: Hysteresis low threshold on the gradient magnitude.
//     Typical value: 50.
//   - thresholdHigh: Hysteresis high threshold. Typical value: 150.
//
// Returns a raster with the same bounds as gray where EdgeOn marks edge pixels.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators with replicated borders,
//     magnitude = |Gx| + |Gy| (so thresholds range over 0-1020)
//
//  2. Non-maximum suppression: keep a pixel only if its magnitude is a local
//     maximum along the gradient direction, quantised to 0°, 45°, 90°, 135°
//
//  3. Hysteresis thresholding:
//     - Pixels above thresholdHigh are strong edges (always kept)
//     - Pixels above thresholdLow are kept when 8-connected, directly or
//     through other kept pixels, to a strong edge
//
// No smoothing is applied; use Blur first for noisy input.
func Canny(gray *image.Gray, thresholdLow, thresholdHigh float64) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := image.NewGray(bounds)
	if width == 0 || height == 0 {
		return result
	}

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
	}

	gradX := make([]float64, width*height)
	gradY := make([]float64, width*height)
	magnitude := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) -
				2*at(x-1, y) + 2*at(x+1, y) -
				at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			i := y*width + x
			gradX[i] = gx
			gradY[i] = gy
			magnitude[i] = abs(gx) + abs(gy)
		}
	}

	mag := func(x, y int) float64 {
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0
		}
		return magnitude[y*width+x]
	}

	// Non-maximum suppression. The strict/non-strict comparison pair keeps
	// exactly one pixel of a plateau.
	const (
		none = iota
		weak
		strong
	)
	class := make([]uint8, width*height)
	var stack []image.Point

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			m := magnitude[i]
			if m <= thresholdLow {
				continue
			}

			ax := abs(gradX[i])
			ay := abs(gradY[i])

			var isMax bool
			switch {
			case ay < ax*tan22:
				isMax = m > mag(x-1, y) && m >= mag(x+1, y)
			case ay > ax*tan67:
				isMax = m > mag(x, y-1) && m >= mag(x, y+1)
			case (gradX[i] < 0) != (gradY[i] < 0):
				isMax = m > mag(x-1, y+1) && m >= mag(x+1, y-1)
			default:
				isMax = m > mag(x-1, y-1) && m >= mag(x+1, y+1)
			}
			if !isMax {
				continue
			}

			if m > thresholdHigh {
				class[i] = strong
				stack = append(stack, image.Point{X: x, Y: y})
			} else {
				class[i] = weak
			}
		}
	}

	// Hysteresis: promote weak pixels reachable from strong ones.
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result.SetGray(p.X+bounds.Min.X, p.Y+bounds.Min.Y, color.Gray{Y: EdgeOn})

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if class[ny*width+nx] == weak {
					class[ny*width+nx] = strong
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	return result
}

// Blur applies a Gaussian blur of the given radius and returns a new raster.
// A radius <= 0 returns gray unchanged.
func Blur(gray *image.Gray, radius float64) *image.Gray {
	if radius <= 0 {
		return gray
	}
	return ToGray(blur.Gaussian(gray, radius))
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
