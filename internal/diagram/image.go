package diagram

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// MomentPlot builds the bending moment diagram of the beam
func MomentPlot(data BeamDiagramData) (*plot.Plot, error) {
	if len(data.X) == 0 || len(data.X) != len(data.Moment) {
		return nil, fmt.Errorf("moment diagram needs matching X and M samples, got %d and %d", len(data.X), len(data.Moment))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Bending Moment - %s, b×h = %.0f×%.0f mm", data.Material, data.Width, data.Height)
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "M (kgf·cm)"
	p.Add(plotter.NewGrid())

	// Moment is drawn on the tension side (downward)
	pts := make(plotter.XYs, len(data.X))
	var peak plotter.XY
	for i := range data.X {
		pts[i] = plotter.XY{X: data.X[i] / 100, Y: -data.Moment[i]}
		if data.Moment[i] > -peak.Y {
			peak = pts[i]
		}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	line.FillColor = color.RGBA{R: 100, G: 149, B: 237, A: 120}
	p.Add(line)

	if err := addBeamAxis(p, data.Span); err != nil {
		return nil, err
	}

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{peak},
		Labels: []string{fmt.Sprintf("Mmax = %.0f", -peak.Y)},
	})
	if err != nil {
		return nil, err
	}
	p.Add(lbl)

	return p, nil
}

// DeflectionPlot builds the elastic line diagram of the beam
func DeflectionPlot(data BeamDiagramData) (*plot.Plot, error) {
	if len(data.X) == 0 || len(data.X) != len(data.Deflection) {
		return nil, fmt.Errorf("deflection diagram needs matching X and y samples, got %d and %d", len(data.X), len(data.Deflection))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Deflection - %s, l = %.0f mm", data.Material, data.Span)
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (cm)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(data.X))
	var peak plotter.XY
	for i := range data.X {
		pts[i] = plotter.XY{X: data.X[i] / 100, Y: -data.Deflection[i]}
		if pts[i].Y < peak.Y {
			peak = pts[i]
		}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	p.Add(line)

	if err := addBeamAxis(p, data.Span); err != nil {
		return nil, err
	}

	mark, err := plotter.NewScatter(plotter.XYs{peak})
	if err != nil {
		return nil, err
	}
	mark.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	mark.GlyphStyle.Radius = vg.Points(4)
	mark.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(mark)

	return p, nil
}

// SectionPlot builds a drawing of the rectangular cross-section
func SectionPlot(width, height float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Beam Section"
	p.X.Label.Text = "Width (mm)"
	p.Y.Label.Text = "Height (mm)"

	outline := plotter.XYs{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	}
	poly, err := plotter.NewPolygon(outline)
	if err != nil {
		return nil, err
	}
	poly.Color = color.RGBA{R: 222, G: 184, B: 135, A: 255}
	poly.LineStyle.Width = vg.Points(2)
	poly.LineStyle.Color = color.Black
	p.Add(poly)

	// Neutral axis
	naLine, err := plotter.NewLine(plotter.XYs{
		{X: -0.2 * width, Y: height / 2},
		{X: 1.2 * width, Y: height / 2},
	})
	if err != nil {
		return nil, err
	}
	naLine.LineStyle.Width = vg.Points(1.5)
	naLine.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	naLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(naLine)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 1.05 * width, Y: height/2 + 0.02*height}},
		Labels: []string{"N.A."},
	})
	if err != nil {
		return nil, err
	}
	p.Add(lbl)

	// Keep the drawing undistorted
	side := width
	if height > side {
		side = height
	}
	p.X.Min, p.X.Max = -0.3*side, 1.3*side
	p.Y.Min, p.Y.Max = -0.1*side, 1.1*side

	return p, nil
}

// addBeamAxis draws the beam centerline and its two supports
func addBeamAxis(p *plot.Plot, span float64) error {
	l := span / 1000

	axis, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: l, Y: 0}})
	if err != nil {
		return err
	}
	axis.LineStyle.Width = vg.Points(3)
	axis.LineStyle.Color = color.Black
	p.Add(axis)

	supports, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}, {X: l, Y: 0}})
	if err != nil {
		return err
	}
	supports.GlyphStyle.Color = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	supports.GlyphStyle.Radius = vg.Points(6)
	supports.GlyphStyle.Shape = draw.TriangleGlyph{}
	p.Add(supports)

	return nil
}

// Save writes a plot to filename; the format follows the extension
// (png, svg, pdf) and defaults to png.
func Save(p *plot.Plot, filename string) error {
	width := 8 * vg.Inch
	height := 5 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// ExportBeamDiagrams writes the moment and deflection diagrams next to each
// other: base.png becomes base-moment.png and base-deflection.png.
func ExportBeamDiagrams(data BeamDiagramData, filename string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
	default:
		ext = ".png"
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	mp, err := MomentPlot(data)
	if err != nil {
		return nil, err
	}
	dp, err := DeflectionPlot(data)
	if err != nil {
		return nil, err
	}

	files := []string{base + "-moment" + ext, base + "-deflection" + ext}
	if err := Save(mp, files[0]); err != nil {
		return nil, err
	}
	if err := Save(dp, files[1]); err != nil {
		return nil, err
	}
	return files, nil
}

// RenderPNG renders a plot into PNG bytes
func RenderPNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
