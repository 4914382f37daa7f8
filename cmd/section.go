package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gotb/internal/diagram"
	"github.com/alexiusacademia/gotb/internal/section"
	"github.com/spf13/cobra"
)

var (
	sectionWidth  float64
	sectionHeight float64

	sectionShowDiagram bool
	sectionExportFile  string
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Geometric properties of a rectangular timber section",
	Long: `Calculate the section modulus (W) and moment of inertia (J)
of a rectangular timber section.

  W = b·h²/6   [cm³]
  J = b·h³/12  [cm⁴]

Dimensions are entered in millimetres and converted to centimetres.

Examples:
  # Default 50x200 mm joist
  gotb section

  # 75x250 mm section with a sketch
  gotb section -b 75 --height 250 --diagram

  # Export the section drawing
  gotb section -b 75 --height 250 -o section.svg`,
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().Float64VarP(&sectionWidth, "width", "b", section.DefaultWidth, "Section width b (mm)")
	sectionCmd.Flags().Float64Var(&sectionHeight, "height", section.DefaultHeight, "Section height h (mm)")

	sectionCmd.Flags().BoolVar(&sectionShowDiagram, "diagram", false, "Show ASCII section sketch")
	sectionCmd.Flags().StringVarP(&sectionExportFile, "output", "o", "", "Export section drawing to file (png, svg, pdf)")
}

func runSection(cmd *cobra.Command, args []string) error {
	s := section.NewRectangular()
	if err := s.SetDimensions(sectionWidth, sectionHeight); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          RECTANGULAR SECTION PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Width (b):\t%.1f mm\n", s.Width())
	fmt.Fprintf(w, "  Height (h):\t%.1f mm\n", s.Height())
	w.Flush()
	fmt.Println()

	fmt.Println("SECTION PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Area (A):\t%.3f cm²\n", s.Area())
	fmt.Fprintf(w, "  Section modulus (W):\t%.3f cm³\n", s.SectionModulus())
	fmt.Fprintf(w, "  Moment of inertia (J):\t%.3f cm⁴\n", s.MomentOfInertia())
	w.Flush()
	fmt.Println()

	if sectionShowDiagram {
		fmt.Println("SECTION:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawSectionSketch(s.Width(), s.Height()))
	}

	if sectionExportFile != "" {
		p, err := diagram.SectionPlot(s.Width(), s.Height())
		if err != nil {
			return err
		}
		if err := diagram.Save(p, sectionExportFile); err != nil {
			return fmt.Errorf("export section drawing: %w", err)
		}
		fmt.Printf("Section drawing exported to: %s\n", sectionExportFile)
	}

	return nil
}
