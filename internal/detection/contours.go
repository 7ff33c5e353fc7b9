package detection

import (
	"image"
)

// Contour is an ordered boundary trace of a connected region.
//
// Points are pixel coordinates in the source raster's coordinate space.
// Consecutive points are joined by straight horizontal, vertical or
// diagonal runs of boundary pixels.
type Contour []image.Point

// neighbours lists the 8-neighbourhood clockwise on screen (Y down),
// starting east.
var neighbours = [8]image.Point{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// direction returns the neighbours index of the unit step d.
func direction(d image.Point) int {
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return -1
}

// FindExternalContours traces the outermost borders of the nonzero regions of
// a binary raster.
//
// Parameters:
//   - edges: Binary raster; any nonzero pixel is foreground.
//
// Returns contours in the raster-scan order of their first pixel. Borders of
// holes, and outer borders of regions nested inside holes, are discarded.
// Each contour keeps only the points where the 8-connected chain changes
// direction, so a straight run is represented by its two endpoints.
//
// # Algorithm (Suzuki-Abe border following)
//
//  1. Copy the raster into a label grid padded with a zero frame. The frame
//     acts as the outermost hole border (label 1).
//  2. Scan rows top to bottom. A foreground pixel with background on its left
//     starts an outer border; a foreground pixel with background on its right
//     starts a hole border.
//  3. Follow each new border counterclockwise, relabelling its pixels with a
//     fresh border number (negated where the pixel's right neighbour is
//     background), so no border is followed twice.
//  4. The last border number seen on the current row gives the parent of
//     the next border. Outer borders whose parent is the frame are returned.
func FindExternalContours(edges *image.Gray) []Contour {
	bounds := edges.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	stride := width + 2
	f := make([]int, stride*(height+2))
	for y := 0; y < height; y++ {
		row := edges.Pix[y*edges.Stride : y*edges.Stride+width]
		for x, v := range row {
			if v != 0 {
				f[(y+1)*stride+x+1] = 1
			}
		}
	}

	at := func(p image.Point) int { return f[p.Y*stride+p.X] }
	set := func(p image.Point, v int) { f[p.Y*stride+p.X] = v }

	// Index 0 is unused; index 1 is the frame.
	isHole := []bool{false, true}
	parent := []int{0, 0}
	nbd := 1

	contours := make([]Contour, 0)

	for py := 1; py <= height; py++ {
		lnbd := 1
		for px := 1; px <= width; px++ {
			p := image.Point{X: px, Y: py}
			v := at(p)
			if v == 0 {
				continue
			}

			west := image.Point{X: px - 1, Y: py}
			east := image.Point{X: px + 1, Y: py}

			var from image.Point
			var hole bool
			switch {
			case v == 1 && at(west) == 0:
				from = west
			case v >= 1 && at(east) == 0:
				from = east
				hole = true
				if v > 1 {
					lnbd = v
				}
			default:
				if v != 1 {
					lnbd = abs(v)
				}
				continue
			}

			nbd++
			var par int
			if hole == isHole[lnbd] {
				par = parent[lnbd]
			} else {
				par = lnbd
			}
			isHole = append(isHole, hole)
			parent = append(parent, par)

			chain := followBorder(at, set, p, from, nbd)

			if !hole && par == 1 {
				c := make(Contour, 0, len(chain))
				for _, q := range compressChain(chain) {
					c = append(c, image.Point{X: q.X - 1 + bounds.Min.X, Y: q.Y - 1 + bounds.Min.Y})
				}
				contours = append(contours, c)
			}

			if v := at(p); v != 1 {
				lnbd = abs(v)
			}
		}
	}

	return contours
}

// followBorder traces one border starting at start, entering from the
// background pixel from. Visited pixels are relabelled with nbd (or -nbd when
// their right neighbour is background). The returned chain lists each border
// pixel once per visit, beginning with start.
func followBorder(at func(image.Point) int, set func(image.Point, int), start, from image.Point, nbd int) []image.Point {
	// Look clockwise around start for the first foreground neighbour.
	d0 := direction(from.Sub(start))
	var p1 image.Point
	found := false
	for k := 0; k < 8; k++ {
		q := start.Add(neighbours[(d0+k)%8])
		if at(q) != 0 {
			p1 = q
			found = true
			break
		}
	}
	if !found {
		// Isolated pixel.
		set(start, -nbd)
		return []image.Point{start}
	}

	chain := make([]image.Point, 0, 64)
	p2, p3 := p1, start
	for {
		// Search counterclockwise around p3, starting just after p2.
		d := direction(p2.Sub(p3))
		eastZero := false
		var p4 image.Point
		for k := 1; k <= 8; k++ {
			dd := (d - k + 8) % 8
			q := p3.Add(neighbours[dd])
			if at(q) != 0 {
				p4 = q
				break
			}
			if dd == 0 {
				eastZero = true
			}
		}

		if eastZero {
			set(p3, -nbd)
		} else if at(p3) == 1 {
			set(p3, nbd)
		}
		chain = append(chain, p3)

		if p4 == start && p3 == p1 {
			return chain
		}
		p2, p3 = p3, p4
	}
}

// compressChain drops every point that continues the previous step's
// direction, treating the chain as closed. Chains of fewer than three points
// are returned unchanged.
func compressChain(chain []image.Point) []image.Point {
	n := len(chain)
	if n < 3 {
		return chain
	}
	out := make([]image.Point, 0, n/2+1)
	for i, p := range chain {
		prev := chain[(i-1+n)%n]
		next := chain[(i+1)%n]
		if p.Sub(prev) != next.Sub(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		// A closed chain always turns somewhere; keep the start as a guard.
		out = append(out, chain[0])
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
