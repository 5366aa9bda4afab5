package main

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/schc/pkg/interfaces/cli/commands"
)

var generateConfig commands.GenerateConfig

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic reference data directory",
	Example: `  # Small reproducible data set
  schc generate --output ./data --seed 12345

  # Larger set as a single workbook
  schc generate --shipments 20000 --hospitals 25 --medicines 8 --format xlsx --output ./data --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := generateConfig
		cfg.Out = cmd.OutOrStdout()
		return commands.NewGenerateCommand(cfg).Execute(cmd.Context())
	},
}

func init() {
	flags := generateCmd.Flags()
	flags.IntVar(&generateConfig.Shipments, "shipments", 2000, "Number of shipments to generate")
	flags.IntVar(&generateConfig.Hospitals, "hospitals", 8, "Number of hospitals")
	flags.IntVar(&generateConfig.Medicines, "medicines", 5, "Medicines per hospital (at most 10)")
	flags.IntVar(&generateConfig.Carriers, "carriers", 0, "Carriers to use, 0 uses all four")
	flags.StringVarP(&generateConfig.Format, "format", "f", "csv", "Output format: csv, xlsx")
	flags.StringVarP(&generateConfig.OutputDir, "output", "o", "", "Output directory (required)")
	flags.Int64Var(&generateConfig.Seed, "seed", 0, "Random seed for reproducible generation")
	flags.BoolVarP(&generateConfig.Verbose, "verbose", "v", false, "Enable verbose output")
	_ = generateCmd.MarkFlagRequired("output")
}
