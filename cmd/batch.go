package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gotb/internal/batch"
	"github.com/spf13/cobra"
)

var batchOutputFile string

var batchCmd = &cobra.Command{
	Use:   "batch <input.xlsx>",
	Short: "Calculate many beams from a spreadsheet",
	Long: `Calculate every row of a spreadsheet as an independent beam.

The first sheet must start with a header row; the columns are read in order:
  name, width, height, material, normal_load, rated_load, span

Empty cells keep the defaults (50x200 mm, first material, 2.0/2.2 kgf/cm,
4000 mm). Numbers entered as text may use a comma as the decimal separator
("2,5" reads as 2.5); thousands separators are not accepted, so write
4000, not "4,000". The results workbook repeats the inputs and adds W, J, Mmax,
Wreq, f/l and an error column.

Examples:
  gotb batch joists.xlsx
  gotb batch joists.xlsx -o joists-results.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchOutputFile, "output", "o", "results.xlsx", "Results workbook")
}

func runBatch(cmd *cobra.Command, args []string) error {
	list, err := materials()
	if err != nil {
		return err
	}

	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	cases, err := batch.Read(in)
	in.Close()
	if err != nil {
		return err
	}

	results, err := batch.Run(cases, list, log.WithPrefix("batch"))
	if err != nil {
		return err
	}

	out, err := os.Create(batchOutputFile)
	if err != nil {
		return err
	}
	if err := batch.Write(out, results); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	failed := 0
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Row\tName\tW (cm³)\tWreq (cm³)\tf/l\n")
	fmt.Fprintf(w, "  ───\t────\t───────\t──────────\t───\n")
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "  %d\t%s\t-\t-\t⚠ %v\n", r.Row, r.Inputs.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "  %d\t%s\t%.2f\t%.2f\t%.6f\n", r.Row, r.Inputs.Name,
			r.Outputs.SectionModulus, r.Outputs.RequiredSectionModulus, r.Outputs.DeflectionRatio)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  %d rows calculated, %d with errors\n", len(results), failed)
	fmt.Printf("  Results written to: %s\n", batchOutputFile)
	fmt.Println()
	return nil
}
