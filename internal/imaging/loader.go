package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"
)

// ErrLoad is returned when a path does not resolve to a decodable raster.
var ErrLoad = errors.New("no se encontró la imagen")

// LoadGray reads the image at path and converts it to an 8-bit grayscale raster.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are those
//     registered by disintegration/imaging (JPEG, PNG, GIF, TIFF, BMP).
//
// Returns:
//   - *image.Gray: The grayscale raster, with bounds starting at (0,0).
//   - error: Non-nil, wrapping ErrLoad, if the file is missing, cannot be
//     decoded, or has no pixels.
//
// # Orientation
//
// JPEG files carrying an EXIF orientation tag are rotated upright before
// conversion so that contour coordinates match what a viewer shows.
//
// # Luminance
//
// Conversion goes through color.GrayModel, which applies the ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B).
func LoadGray(path string) (*image.Gray, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w en %s: %v", ErrLoad, path, err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w en %s: failed to decode image: %v", ErrLoad, path, err)
	}

	gray := ToGray(img)
	if gray.Bounds().Empty() {
		return nil, fmt.Errorf("%w en %s: image has no pixels", ErrLoad, path)
	}
	return gray, nil
}

// ToGray converts any image to *image.Gray with bounds rebased to (0,0).
// An *image.Gray that already starts at the origin is returned as is.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}
