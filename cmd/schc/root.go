package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/infrastructure/config"
	"github.com/vsinha/schc/pkg/infrastructure/log"
)

var (
	configFile string
	dataDir    string
	logLevel   string

	// settings is loaded before any subcommand runs.
	settings *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schc",
	Short: "Healthcare supply chain advisor",
	Long: `Combines hospital demand history with carrier lane performance to decide
whether a hospital should order a medicine now, and how risky the chosen
shipping lane is.

The data directory holds supply_chain_shipments.csv and healthcare_demand.csv
(or a single reference.xlsx), plus an optional carrier_lane_stats.csv.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(laneStatsCmd)
	rootCmd.AddCommand(generateCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Reference data directory (overrides configuration)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides configuration)")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(log.InitLog(cmd.ErrOrStderr(), lvl))

	settings = cfg
	return nil
}
