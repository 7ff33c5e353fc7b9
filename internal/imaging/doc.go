// Package imaging provides the raster stages of the contour pipeline: loading
// an image as 8-bit grayscale and turning it into a binary edge raster.
//
// All operations work with *image.Gray and use a coordinate system where
// (0,0) is at the top-left corner, X increases rightward, and Y increases
// downward. Rasters returned by this package are never mutated afterwards;
// downstream stages may share them freely.
//
// # Edge Rasters
//
// Canny writes EdgeOn (255) for edge pixels and EdgeOff (0) elsewhere, with
// the same bounds as its input.
//
// # Error Handling
//
// LoadGray wraps every failure (missing file, undecodable data, empty
// raster) in ErrLoad so callers can treat them as one fatal condition.
package imaging
