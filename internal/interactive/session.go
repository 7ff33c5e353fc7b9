// Package interactive runs the terminal loop in which the operator picks a
// candidate contour, sees its spline fit, and decides whether to try another.
package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"strings"

	"github.com/ironsheep/contour-spline/internal/detection"
	"github.com/ironsheep/contour-spline/internal/render"
	"github.com/ironsheep/contour-spline/internal/spline"
	"github.com/ironsheep/contour-spline/internal/viewer"
)

const (
	indexPrompt    = "Ingresa el índice (Idx) del contorno a usar: "
	continuePrompt = "¿Quieres probar otro contorno? (s/n): "
	fallbackNotice = "Índice inválido. Usando el contorno más ancho por defecto."
)

// Renderer draws one figure to path.
type Renderer interface {
	Render(fig render.Figure, path string) error
}

// Options configures each round of the loop.
type Options struct {
	// OutputPath is overwritten on every round.
	OutputPath string

	Spline spline.Options

	// Verbose enables debug logging.
	Verbose bool
}

// Session holds everything the loop needs between rounds.
type Session struct {
	Candidates []detection.Candidate

	Gray  *image.Gray
	Edges *image.Gray

	Renderer Renderer
	Viewer   viewer.Viewer
	Options  Options

	In  io.Reader
	Out io.Writer
}

// Run prints the candidate table and loops until the operator answers
// anything other than "s" to the continue prompt, or input ends.
//
// Errors inside a round (a degenerate point set, a failed render) are printed
// and the loop moves on to the continue prompt. Run itself only fails on
// invalid session state or a read error.
func (s *Session) Run() error {
	if len(s.Candidates) == 0 {
		return detection.ErrInsufficientContours
	}
	if s.Renderer == nil {
		return errors.New("session has no renderer")
	}
	if s.Viewer == nil {
		s.Viewer = viewer.None{}
	}

	PrintTable(s.Out, s.Candidates)

	scanner := bufio.NewScanner(s.In)
	for round := 1; ; round++ {
		fmt.Fprint(s.Out, indexPrompt)
		input, _ := readLine(scanner)

		sel := Choose(s.Candidates, input)
		if sel.Fallback {
			fmt.Fprintln(s.Out, fallbackNotice)
		}
		if s.Options.Verbose {
			log.Printf("Round %d: input %q selected contour %d (fallback=%v)", round, input, sel.Candidate.Index, sel.Fallback)
		}

		if err := s.Round(sel); err != nil {
			fmt.Fprintf(s.Out, "Error: %v\n", err)
		}

		fmt.Fprint(s.Out, continuePrompt)
		answer, ok := readLine(scanner)
		if !ok || strings.ToLower(strings.TrimSpace(answer)) != "s" {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read operator input: %w", err)
	}
	return nil
}

// Round fits, renders and shows one selected candidate.
func (s *Session) Round(sel Selection) error {
	c := sel.Candidate
	fmt.Fprintf(s.Out, "\nContorno seleccionado: #%d (ancho: %.1f, y_prom: %.1f)\n", c.Index, float64(c.Span), c.MeanY)

	points := spline.Normalize(c.Points)
	fmt.Fprintf(s.Out, "Puntos extraídos: %d\n", len(points))

	curve, err := spline.Fit(points, s.Options.Spline)
	if err != nil {
		return err
	}
	xs, ys := curve.Samples()

	if s.Options.Verbose {
		lo, hi := curve.Domain()
		log.Printf("Fitted %d knots over x=[%g, %g], %d samples", curve.Len(), lo, hi, len(xs))
	}

	fig := render.Figure{
		Index:  c.Index,
		Gray:   s.Gray,
		Edges:  s.Edges,
		Points: points,
		CurveX: xs,
		CurveY: ys,
	}
	if err := s.Renderer.Render(fig, s.Options.OutputPath); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "Imagen guardada como %s\n", s.Options.OutputPath)

	title := fmt.Sprintf("Contorno #%d", c.Index)
	if err := s.Viewer.Show(title, s.Options.OutputPath); err != nil {
		return fmt.Errorf("failed to show figure: %w", err)
	}
	return nil
}

// readLine returns the next input line and false once input is exhausted.
func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}
