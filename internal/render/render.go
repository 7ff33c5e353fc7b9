// Package render draws the fitted contour next to the edge map and writes the
// figure as a PNG.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Style holds the figure geometry and series colors.
type Style struct {
	DPI         float64
	Width       vg.Length
	Height      vg.Length
	PointsColor color.Color
	CurveColor  color.Color

	// MaxPanelPx caps the longest side of a raster drawn into a panel. The
	// axes keep the original pixel coordinates. Zero draws at full size.
	MaxPanelPx int
}

// DefaultStyle returns a 12x6 inch figure at 300 DPI with red points and a
// green curve.
func DefaultStyle() Style {
	return Style{
		DPI:         300,
		Width:       12 * vg.Inch,
		Height:      6 * vg.Inch,
		PointsColor: color.RGBA{R: 0xff, A: 0xff},
		CurveColor:  color.RGBA{G: 0x80, A: 0xff},
		MaxPanelPx:  1600,
	}
}

// NewStyle builds a Style from inch dimensions and hex colors such as
// "#ff0000".
func NewStyle(dpi, widthIn, heightIn float64, pointsHex, curveHex string, maxPanelPx int) (Style, error) {
	points, err := colorful.Hex(pointsHex)
	if err != nil {
		return Style{}, fmt.Errorf("invalid points color %q: %w", pointsHex, err)
	}
	curve, err := colorful.Hex(curveHex)
	if err != nil {
		return Style{}, fmt.Errorf("invalid curve color %q: %w", curveHex, err)
	}
	return Style{
		DPI:         dpi,
		Width:       vg.Length(widthIn) * vg.Inch,
		Height:      vg.Length(heightIn) * vg.Inch,
		PointsColor: points,
		CurveColor:  curve,
		MaxPanelPx:  maxPanelPx,
	}, nil
}

// Figure is everything drawn for one selected contour.
type Figure struct {
	// Index is the extraction index shown in the left panel title.
	Index int

	Gray  *image.Gray
	Edges *image.Gray

	// Points are the normalized contour points in pixel coordinates.
	Points []image.Point

	// CurveX and CurveY are the sampled spline.
	CurveX, CurveY []float64
}

// PNG renders figures to PNG files.
type PNG struct {
	Style Style
}

// Render draws fig and writes it to path, replacing any existing file.
func (r PNG) Render(fig Figure, path string) error {
	if fig.Gray == nil || fig.Edges == nil {
		return errors.New("figure needs both the grayscale and the edge raster")
	}
	if len(fig.CurveX) != len(fig.CurveY) {
		return fmt.Errorf("curve has %d x values but %d y values", len(fig.CurveX), len(fig.CurveY))
	}
	if r.Style.DPI <= 0 || r.Style.Width <= 0 || r.Style.Height <= 0 {
		return fmt.Errorf("invalid figure geometry: dpi=%g size=%vx%v", r.Style.DPI, r.Style.Width, r.Style.Height)
	}

	left, err := r.contourPanel(fig)
	if err != nil {
		return err
	}
	right := r.rasterPanel("Bordes Detectados", fig.Edges)

	c := vgimg.NewWith(vgimg.UseWH(r.Style.Width, r.Style.Height), vgimg.UseDPI(int(r.Style.DPI)))
	dc := draw.New(c)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Points(18),
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(6),
	}
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func (r PNG) contourPanel(fig Figure) (*plot.Plot, error) {
	p := r.rasterPanel(fmt.Sprintf("Contorno #%d - Imagen Original", fig.Index), fig.Gray)
	h := float64(fig.Gray.Bounds().Dy())

	pts := make(plotter.XYs, len(fig.Points))
	for i, pt := range fig.Points {
		pts[i] = plotter.XY{X: float64(pt.X), Y: flip(h, float64(pt.Y))}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to build point series: %w", err)
	}
	scatter.GlyphStyle.Color = r.Style.PointsColor
	scatter.GlyphStyle.Radius = vg.Points(1.8)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	curve := make(plotter.XYs, len(fig.CurveX))
	for i := range fig.CurveX {
		curve[i] = plotter.XY{X: fig.CurveX[i], Y: flip(h, fig.CurveY[i])}
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, fmt.Errorf("failed to build curve series: %w", err)
	}
	line.Color = r.Style.CurveColor
	line.Width = vg.Points(1.5)

	p.Add(scatter, line)
	p.Legend.Add("Puntos", scatter)
	p.Legend.Add("Spline Cúbico", line)
	p.Legend.Top = true
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// rasterPanel shows img with one plot unit per pixel and row 0 at the top.
func (r PNG) rasterPanel(title string, img *image.Gray) *plot.Plot {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	p := plot.New()
	p.Title.Text = title
	p.Add(plotter.NewImage(panelImage(img, r.Style.MaxPanelPx), -0.5, -0.5, w-0.5, h-0.5))

	p.X.Min, p.X.Max = -0.5, w-0.5
	p.Y.Min, p.Y.Max = -0.5, h-0.5
	p.Y.Tick.Marker = rowTicks{height: h}
	return p
}

// panelImage downsamples img so neither side exceeds maxPx.
func panelImage(img *image.Gray, maxPx int) image.Image {
	b := img.Bounds()
	if maxPx <= 0 || (b.Dx() <= maxPx && b.Dy() <= maxPx) {
		return img
	}
	return imaging.Fit(img, maxPx, maxPx, imaging.Box)
}

// flip maps a pixel row to the upward plot axis.
func flip(height, y float64) float64 {
	return height - 1 - y
}

// rowTicks labels the upward Y axis with pixel rows, which grow downward.
type rowTicks struct {
	height float64
}

func (t rowTicks) Ticks(min, max float64) []plot.Tick {
	// Pick round values in row space, then move them into plot space.
	ticks := plot.DefaultTicks{}.Ticks(flip(t.height, max), flip(t.height, min))
	for i := range ticks {
		ticks[i].Value = flip(t.height, ticks[i].Value)
	}
	return ticks
}
