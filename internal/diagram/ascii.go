package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"
)

// BeamDiagramData holds the data for drawing a single-span beam
type BeamDiagramData struct {
	// Section dimensions
	Width  float64 // mm
	Height float64 // mm

	// Span and material
	Span     float64 // mm
	Material string

	// Values sampled along the span
	X          []float64 // cm from the left support
	Moment     []float64 // kgf·cm
	Deflection []float64 // cm, positive downward
}

// DrawSectionSketch creates a proportional ASCII sketch of a rectangular section
func DrawSectionSketch(width, height float64) string {
	var sb strings.Builder

	// Terminal cells are roughly twice as tall as they are wide
	maxRows := 12
	maxCols := 30

	rows := maxRows
	cols := int(math.Round(2 * width / height * float64(rows)))
	if cols > maxCols {
		cols = maxCols
		rows = int(math.Round(float64(cols) * height / width / 2))
	}
	if rows < 1 {
		rows = 1
	}
	if cols < 2 {
		cols = 2
	}

	label := fmt.Sprintf("b = %.0f mm", width)
	pad := (cols + 2 - utf8.RuneCountInString(label)) / 2
	if pad < 0 {
		pad = 0
	}

	sb.WriteString("\n")
	sb.WriteString("  " + strings.Repeat(" ", pad) + label + "\n")
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", cols)))
	for i := 0; i < rows; i++ {
		sb.WriteString(fmt.Sprintf("  │%s│", strings.Repeat("░", cols)))
		if i == rows/2 {
			sb.WriteString(fmt.Sprintf("  h = %.0f mm", height))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", cols)))

	return sb.String()
}

// DrawMomentCurve plots the bending moment along the span
func DrawMomentCurve(data BeamDiagramData) string {
	if len(data.Moment) == 0 {
		return ""
	}
	return asciigraph.Plot(data.Moment,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("Bending moment M(x), kgf·cm  (l = %.0f mm)", data.Span)),
	) + "\n"
}

// DrawDeflectionCurve plots the elastic line along the span, sagging downward
func DrawDeflectionCurve(data BeamDiagramData) string {
	if len(data.Deflection) == 0 {
		return ""
	}
	sag := make([]float64, len(data.Deflection))
	for i, y := range data.Deflection {
		sag[i] = -y
	}
	return asciigraph.Plot(sag,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(3),
		asciigraph.Caption("Deflection y(x), cm"),
	) + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// padRight pads s with spaces to n runes
func padRight(s string, n int) string {
	if d := n - utf8.RuneCountInString(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
