package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gotb/internal/calculator"
	"github.com/alexiusacademia/gotb/internal/diagram"
	"github.com/alexiusacademia/gotb/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Beam inputs
	beamWidth      float64
	beamHeight     float64
	beamMaterial   string
	beamNormalLoad float64
	beamRatedLoad  float64
	beamSpan       float64
	beamInputFile  string

	// Diagram options
	beamShowDiagram bool
	beamExportFile  string

	// Report options
	beamReportFile string
	beamProject    string
	beamAuthor     string
)

const beamDiagramPoints = 61

var beamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Size a simply supported timber beam",
	Long: `Calculate a simply supported timber beam of rectangular section
under a uniformly distributed load.

  Mmax = q_r·l²/8                [kgf·cm]
  Wreq = Mmax / R                [cm³]
  f/l  = 5·q_n·l³ / (384·E·J)

q_n is the normal (service) load used for deflection, q_r the rated
(design) load used for strength. R and E come from the selected material.

Inputs can be read from a JSON file; flags given on the command line
override the file:
{
  "name": "Floor joist",
  "width": 50, "height": 200, "material": "pine",
  "normal_load": 2.0, "rated_load": 2.2, "span": 4000
}

Examples:
  # Default 50x200 mm pine joist spanning 4 m
  gotb beam

  # LVL beam, 5.2 m span, with diagrams
  gotb beam -b 75 --height 300 -m ultralam_r -l 5200 --diagram

  # From a file, with a PDF report
  gotb beam -f joist.json --report joist.pdf --project "House A"`,
	RunE: runBeam,
}

func init() {
	rootCmd.AddCommand(beamCmd)

	// Geometry flags
	beamCmd.Flags().Float64VarP(&beamWidth, "width", "b", 50, "Section width b (mm)")
	beamCmd.Flags().Float64Var(&beamHeight, "height", 200, "Section height h (mm)")

	// Material flag
	beamCmd.Flags().StringVarP(&beamMaterial, "material", "m", "", "Material ID (see 'gotb material list'), default first in catalog")

	// Load and span flags
	beamCmd.Flags().Float64VarP(&beamNormalLoad, "normal", "n", 2.0, "Normal (service) load q_n (kgf/cm)")
	beamCmd.Flags().Float64VarP(&beamRatedLoad, "rated", "q", 2.2, "Rated (design) load q_r (kgf/cm)")
	beamCmd.Flags().Float64VarP(&beamSpan, "span", "l", 4000, "Span l (mm)")
	beamCmd.Flags().StringVarP(&beamInputFile, "file", "f", "", "JSON inputs file")

	// Diagram options
	beamCmd.Flags().BoolVar(&beamShowDiagram, "diagram", false, "Show ASCII section, moment and deflection diagrams")
	beamCmd.Flags().StringVarP(&beamExportFile, "output", "o", "", "Export moment and deflection diagrams (png, svg, pdf)")

	// Report options
	beamCmd.Flags().StringVar(&beamReportFile, "report", "", "Write a PDF calculation report")
	beamCmd.Flags().StringVar(&beamProject, "project", "", "Project name for the report")
	beamCmd.Flags().StringVar(&beamAuthor, "author", "", "Author for the report")
}

// beamInputs merges the inputs file with the flags set on the command line
func beamInputs(cmd *cobra.Command) (calculator.Inputs, error) {
	in := calculator.DefaultInputs()
	if beamInputFile != "" {
		var err error
		if in, err = calculator.LoadInputs(beamInputFile); err != nil {
			return in, err
		}
	}

	flags := cmd.Flags()
	if beamInputFile == "" || flags.Changed("width") {
		in.Width = beamWidth
	}
	if beamInputFile == "" || flags.Changed("height") {
		in.Height = beamHeight
	}
	if flags.Changed("material") {
		in.Material = beamMaterial
	}
	if beamInputFile == "" || flags.Changed("normal") {
		in.NormalLoad = beamNormalLoad
	}
	if beamInputFile == "" || flags.Changed("rated") {
		in.RatedLoad = beamRatedLoad
	}
	if beamInputFile == "" || flags.Changed("span") {
		in.Span = beamSpan
	}
	return in, nil
}

func runBeam(cmd *cobra.Command, args []string) error {
	list, err := materials()
	if err != nil {
		return err
	}

	in, err := beamInputs(cmd)
	if err != nil {
		return err
	}

	s, err := calculator.New(list, calculator.WithLogger(log.WithPrefix("beam")))
	if err != nil {
		return err
	}
	if err := s.Apply(in); err != nil {
		return err
	}

	snap := s.Snapshot()
	mat := s.Catalog().Current()
	out, calcErr := s.Outputs()

	// Print results
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          SIMPLY SUPPORTED TIMBER BEAM")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if in.Name != "" {
		fmt.Printf("  %s\n\n", in.Name)
	}

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Width (b):\t%.1f mm\n", snap.Inputs.Width)
	fmt.Fprintf(w, "  Height (h):\t%.1f mm\n", snap.Inputs.Height)
	fmt.Fprintf(w, "  Span (l):\t%.0f mm\n", snap.Inputs.Span)
	fmt.Fprintf(w, "  Normal load (q_n):\t%.3f kgf/cm\n", snap.Inputs.NormalLoad)
	fmt.Fprintf(w, "  Rated load (q_r):\t%.3f kgf/cm\n", snap.Inputs.RatedLoad)
	w.Flush()
	fmt.Println()

	fmt.Println("MATERIAL:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s\t(%s)\n", mat.Name, mat.ID)
	fmt.Fprintf(w, "  Bending resistance (R):\t%.0f kgf/cm²\n", mat.BendingResistance)
	fmt.Fprintf(w, "  Elastic modulus (E):\t%.0f kgf/cm²\n", mat.ElasticModulus)
	w.Flush()
	fmt.Println()

	fmt.Println("SECTION PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Section modulus (W):\t%.3f cm³\n", out.SectionModulus)
	fmt.Fprintf(w, "  Moment of inertia (J):\t%.3f cm⁴\n", out.MomentOfInertia)
	w.Flush()
	fmt.Println()

	if calcErr != nil {
		fmt.Println("STATUS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Printf("  ⚠ %v\n", calcErr)
		fmt.Println()
		if beamReportFile != "" {
			return writeReport(os.Stdout, s, beamReportFile)
		}
		return nil
	}

	fmt.Println("BENDING AND DEFLECTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Max bending moment (Mmax):\t%.2f kgf·cm\n", out.MaxBendingMoment)
	fmt.Fprintf(w, "  Required section modulus (Wreq):\t%.2f cm³\n", out.RequiredSectionModulus)
	fmt.Fprintf(w, "  Relative deflection (f/l):\t%s\n", report.RatioString(out.DeflectionRatio))
	w.Flush()
	fmt.Println()

	status := "W ≥ Wreq ✓"
	if out.SectionModulus < out.RequiredSectionModulus {
		status = "W < Wreq ⚠ section too small"
	}
	fmt.Print(diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("W    = %.2f cm³", out.SectionModulus),
		fmt.Sprintf("Wreq = %.2f cm³", out.RequiredSectionModulus),
		status,
	}))
	fmt.Println()

	if beamShowDiagram || beamExportFile != "" {
		d, err := s.Diagram(beamDiagramPoints)
		if err != nil {
			return err
		}
		data := diagram.BeamDiagramData{
			Width:      snap.Inputs.Width,
			Height:     snap.Inputs.Height,
			Span:       snap.Inputs.Span,
			Material:   mat.Name,
			X:          d.X,
			Moment:     d.Moment,
			Deflection: d.Deflection,
		}

		if beamShowDiagram {
			fmt.Println("DIAGRAMS:")
			fmt.Println("───────────────────────────────────────────────────────────────")
			fmt.Println(diagram.DrawSectionSketch(data.Width, data.Height))
			fmt.Println(diagram.DrawMomentCurve(data))
			fmt.Println(diagram.DrawDeflectionCurve(data))
		}

		if beamExportFile != "" {
			files, err := diagram.ExportBeamDiagrams(data, beamExportFile)
			if err != nil {
				return fmt.Errorf("export diagrams: %w", err)
			}
			for _, f := range files {
				fmt.Printf("Diagram exported to: %s\n", f)
			}
		}
	}

	if beamReportFile != "" {
		return writeReport(os.Stdout, s, beamReportFile)
	}

	return nil
}

// writeReport saves the PDF report of s to path and tells out where it went
func writeReport(out io.Writer, s *calculator.Session, path string) error {
	done := log.Step("report " + path)
	defer done()

	rep, err := report.FromSession(s, report.Meta{Project: beamProject, Author: beamAuthor})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, rep); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Report written to: %s\n", path)
	return nil
}
