package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var materialCmd = &cobra.Command{
	Use:   "material",
	Short: "Timber material catalog",
	Long: `Inspect the timber material catalog.

The built-in catalog holds:
  pine        Pine            R = 130 kgf/cm²   E = 100000 kgf/cm²
  ultralam_r  LVL Ultralam R  R = 260 kgf/cm²   E = 140000 kgf/cm²

A custom catalog can be supplied with --catalog or GOTB_CATALOG:
{
  "materials": [
    {"id": "oak", "name": "Oak", "bending_resistance": 150, "elastic_modulus": 110000}
  ]
}`,
}

var materialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available materials",
	RunE:  runMaterialList,
}

func init() {
	rootCmd.AddCommand(materialCmd)
	materialCmd.AddCommand(materialListCmd)
}

func runMaterialList(cmd *cobra.Command, args []string) error {
	list, err := materials()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("TIMBER MATERIALS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tName\tR (kgf/cm²)\tE (kgf/cm²)\n")
	fmt.Fprintf(w, "  ──\t────\t───────────\t───────────\n")
	for _, m := range list {
		fmt.Fprintf(w, "  %s\t%s\t%.0f\t%.0f\n", m.ID, m.Name, m.BendingResistance, m.ElasticModulus)
	}
	w.Flush()
	fmt.Println()
	return nil
}
