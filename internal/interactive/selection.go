package interactive

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/contour-spline/internal/detection"
)

// Selection is the outcome of one index prompt.
type Selection struct {
	Candidate detection.Candidate

	// Fallback is set when Input named no candidate and the widest one was
	// used instead.
	Fallback bool

	// Input is the raw line the operator typed.
	Input string
}

// Choose resolves the operator's input to a candidate. Input that is not an
// integer, or an integer that is not a candidate's extraction index, falls
// back to the widest candidate. cands must not be empty.
func Choose(cands []detection.Candidate, input string) Selection {
	if idx, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
		if c, ok := detection.ByIndex(cands, idx); ok {
			return Selection{Candidate: c, Input: input}
		}
	}
	return Selection{Candidate: detection.Widest(cands), Fallback: true, Input: input}
}

// PrintTotal reports how many contours were extracted before filtering.
func PrintTotal(w io.Writer, total int) {
	fmt.Fprintf(w, "Total de contornos encontrados: %d\n", total)
}

// PrintTable writes the candidate table.
func PrintTable(w io.Writer, cands []detection.Candidate) {
	fmt.Fprint(w, "\nContornos candidatos encontrados:\n\n")
	fmt.Fprintf(w, "%-5s %-8s %-10s %-8s %-8s\n", "Idx", "Ancho", "Y_prom", "Y_min", "Puntos")
	fmt.Fprintln(w, strings.Repeat("-", 45))
	for _, c := range cands {
		fmt.Fprintf(w, "%-5d %-8.1f %-10.1f %-8.1f %-8d\n",
			c.Index, float64(c.Span), c.MeanY, float64(c.MinY), c.Len())
	}
	fmt.Fprint(w, "\n\n")
}
