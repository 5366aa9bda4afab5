package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/infrastructure/config"
	"github.com/vsinha/schc/pkg/infrastructure/reference"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/memory"
)

// LaneStatsConfig holds configuration for the lane-stats command
type LaneStatsConfig struct {
	Settings   *config.Config
	OutputFile string // defaults to carrier_lane_stats.csv in the data directory
	Verbose    bool
	Out        io.Writer
}

// LaneStatsCommand derives the per-lane table from shipment history and
// writes it where the loader picks it up as precomputed statistics
type LaneStatsCommand struct {
	config LaneStatsConfig
}

// NewLaneStatsCommand creates a new lane-stats command
func NewLaneStatsCommand(config LaneStatsConfig) *LaneStatsCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.OutputFile == "" {
		config.OutputFile = filepath.Join(config.Settings.DataDir, reference.LaneStatsFile)
	}
	return &LaneStatsCommand{config: config}
}

// Execute runs the lane-stats command
func (c *LaneStatsCommand) Execute(ctx context.Context) error {
	data, err := reference.Load(c.config.Settings.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	shipments := make([]entities.ShipmentRecord, len(data.Shipments))
	for i, s := range data.Shipments {
		shipments[i] = *s
	}
	stats := memory.ComputeLaneStatistics(shipments)

	if err := csv.WriteLaneStatistics(c.config.OutputFile, stats); err != nil {
		return err
	}

	fmt.Fprintf(c.config.Out, "Wrote %d lane statistics from %d shipments to %s\n",
		len(stats), len(shipments), c.config.OutputFile)
	if c.config.Verbose {
		return csv.EncodeLaneStatistics(c.config.Out, stats)
	}
	return nil
}
