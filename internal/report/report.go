package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/alexiusacademia/gotb/internal/calculator"
	"github.com/alexiusacademia/gotb/internal/diagram"
	"github.com/alexiusacademia/gotb/internal/timber"
	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/plot/vg"
)

// Meta holds the header fields of a calculation report
type Meta struct {
	Title   string `json:"title"`
	Project string `json:"project"`
	Author  string `json:"author"`
}

// Report is a printable calculation sheet of one session
type Report struct {
	Meta
	Date     time.Time
	Snapshot calculator.Snapshot
	Material timber.Material

	// MomentDiagram is an optional PNG image embedded below the results
	MomentDiagram []byte
}

// FromSession collects a report from the current state of s, including a
// rendered moment diagram when the beam results are available
func FromSession(s *calculator.Session, meta Meta) (Report, error) {
	if meta.Title == "" {
		meta.Title = "Timber Beam Calculation"
	}

	r := Report{
		Meta:     meta,
		Date:     time.Now(),
		Snapshot: s.Snapshot(),
		Material: s.Catalog().Current(),
	}

	if r.Snapshot.Error != "" {
		return r, nil
	}

	d, err := s.Diagram(41)
	if err != nil {
		return r, err
	}
	p, err := diagram.MomentPlot(diagram.BeamDiagramData{
		Width:      r.Snapshot.Inputs.Width,
		Height:     r.Snapshot.Inputs.Height,
		Span:       r.Snapshot.Inputs.Span,
		Material:   r.Material.Name,
		X:          d.X,
		Moment:     d.Moment,
		Deflection: d.Deflection,
	})
	if err != nil {
		return r, err
	}
	r.MomentDiagram, err = diagram.RenderPNG(p, 7*vg.Inch, 3.5*vg.Inch)
	return r, err
}

// Write renders r as an A4 PDF
func Write(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Title, true)
	pdf.SetAuthor(r.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(r.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if r.Project != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", r.Project)))
		pdf.Ln(6)
	}
	if r.Author != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", r.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", r.Date.Format("2006-01-02")))
	pdf.Ln(10)

	in := r.Snapshot.Inputs
	out := r.Snapshot.Outputs

	table := func(title string, rows [][2]string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range rows {
			pdf.CellFormat(110, 7, tr(row[0]), "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 7, tr(row[1]), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	table("Rectangular section", [][2]string{
		{"Width b, mm", fmt.Sprintf("%.1f", in.Width)},
		{"Height h, mm", fmt.Sprintf("%.1f", in.Height)},
		{"Section modulus W, cm³", fmt.Sprintf("%.3f", out.SectionModulus)},
		{"Moment of inertia J, cm^4", fmt.Sprintf("%.3f", out.MomentOfInertia)},
	})

	table("Material", [][2]string{
		{"Name", r.Material.Name},
		{"Bending resistance R", fmt.Sprintf("%.0f", r.Material.BendingResistance)},
		{"Elastic modulus E", fmt.Sprintf("%.0f", r.Material.ElasticModulus)},
	})

	beamRows := [][2]string{
		{"Service load q_n, kgf/cm", fmt.Sprintf("%.3f", in.NormalLoad)},
		{"Design load q_r, kgf/cm", fmt.Sprintf("%.3f", in.RatedLoad)},
		{"Span l, mm", fmt.Sprintf("%.0f", in.Span)},
	}
	if r.Snapshot.Error == "" {
		beamRows = append(beamRows,
			[2]string{"Max bending moment Mmax, kgf·cm", fmt.Sprintf("%.2f", out.MaxBendingMoment)},
			[2]string{"Required section modulus Wreq, cm³", fmt.Sprintf("%.3f", out.RequiredSectionModulus)},
			[2]string{"Deflection ratio f/l", RatioString(out.DeflectionRatio)},
		)
	}
	table("Single-span beam", beamRows)

	if r.Snapshot.Error != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 6, tr("Beam results unavailable: "+r.Snapshot.Error), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	if len(r.MomentDiagram) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("moment", opts, bytes.NewReader(r.MomentDiagram))
		pdf.ImageOptions("moment", pdf.GetX(), pdf.GetY(), 170, 0, true, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// RatioString formats a deflection ratio as "0.005000 (1/200)"
func RatioString(ratio float64) string {
	if ratio <= 0 {
		return fmt.Sprintf("%.6f", ratio)
	}
	return fmt.Sprintf("%.6f (1/%.0f)", ratio, 1/ratio)
}
