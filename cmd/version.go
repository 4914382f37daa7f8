package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gotb/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gotb v%s\n", version.Version)
		fmt.Println("Timber Beam Sizing Tool")
		fmt.Printf("Build: %s (commit %s)\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
