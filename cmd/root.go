package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gotb/internal/config"
	"github.com/alexiusacademia/gotb/internal/logger"
	"github.com/alexiusacademia/gotb/internal/timber"
	"github.com/alexiusacademia/gotb/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global options
	envFile     string
	catalogFile string
	logLevel    string

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gotb",
	Short: "Timber Beam Sizing Tool",
	Long: `gotb - Go Timber Beam Calculator

A CLI tool for sizing simply supported timber beams of rectangular
section under a uniformly distributed load.

This tool helps engineers compute:
  - Section modulus (W) and moment of inertia (J)
  - Maximum bending moment (Mmax) and required section modulus (Wreq)
  - Relative deflection (f/l)
  - Line loads from area loads and beam spacing

Materials come from a built-in catalog (pine, LVL Ultralam R) or a
JSON file given with --catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("catalog") {
			cfg.CatalogFile = catalogFile
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}

		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log = logger.New(os.Stderr, level, "gotb")
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gotb v%-50s║\n", version.Version)
		fmt.Println("  ║   Go Timber Beam Calculator                               ║")
		fmt.Printf("  ║   %-56s║\n", version.Author+" © "+version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for sizing simply supported timber beams.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Section modulus and moment of inertia of rectangular sections")
		fmt.Println("    • Bending moment, required section modulus and deflection check")
		fmt.Println("    • Design loads from dead, live, snow and wind area loads")
		fmt.Println("    • Spreadsheet batch runs, PDF reports and an HTTP API")
		fmt.Println()
		fmt.Println("  Use 'gotb --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file with GOTB_* settings")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "JSON material catalog replacing the built-in one")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// materials returns the configured catalog. An empty catalog is a fatal
// configuration error.
func materials() ([]timber.Material, error) {
	if cfg == nil || cfg.CatalogFile == "" {
		return timber.Defaults(), nil
	}

	list, err := timber.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", cfg.CatalogFile, err)
	}
	log.Debug("loaded %d materials from %s", len(list), cfg.CatalogFile)
	return list, nil
}
