package main

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/schc/pkg/interfaces/cli/commands"
)

var (
	laneStatsOutput  string
	laneStatsVerbose bool
)

var laneStatsCmd = &cobra.Command{
	Use:   "lane-stats",
	Short: "Derive carrier_lane_stats.csv from the shipment history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.NewLaneStatsCommand(commands.LaneStatsConfig{
			Settings:   settings,
			OutputFile: laneStatsOutput,
			Verbose:    laneStatsVerbose,
			Out:        cmd.OutOrStdout(),
		}).Execute(cmd.Context())
	},
}

func init() {
	laneStatsCmd.Flags().StringVarP(&laneStatsOutput, "output", "o", "", "Output file (default: carrier_lane_stats.csv in the data directory)")
	laneStatsCmd.Flags().BoolVarP(&laneStatsVerbose, "verbose", "v", false, "Also print the table")
}
