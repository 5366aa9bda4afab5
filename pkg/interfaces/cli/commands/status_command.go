package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/infrastructure/config"
	"github.com/vsinha/schc/pkg/infrastructure/reference"
	"github.com/vsinha/schc/pkg/interfaces/cli/output"
)

// StatusConfig holds configuration for the status command
type StatusConfig struct {
	Settings *config.Config
	Format   string
	Out      io.Writer
}

// StatusCommand reports which reference files and predictors were found
type StatusCommand struct {
	config StatusConfig
}

// NewStatusCommand creates a new status command
func NewStatusCommand(config StatusConfig) *StatusCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return &StatusCommand{config: config}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) error {
	session, err := reference.Build(ctx, c.config.Settings, zap.S().Named("status"))
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	switch c.config.Format {
	case output.FormatJSON:
		encoder := json.NewEncoder(c.config.Out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(session.Readiness)
	case output.FormatText, "":
		return writeReadiness(c.config.Out, session.Readiness)
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
}

func writeReadiness(w io.Writer, r dto.Readiness) error {
	fmt.Fprintf(w, "Reference data: %s (%s), loaded %s\n", r.DataDir, r.Source, r.LoadedAt.Format(time.RFC3339))
	for _, f := range r.Files {
		mark := "✅"
		if !f.Present {
			mark = "❌"
		}
		optional := ""
		if !f.Required {
			optional = " (optional)"
		}
		fmt.Fprintf(w, "  %s %s%s\n", mark, f.Name, optional)
	}

	fmt.Fprintf(w, "Predictors:\n")
	for _, p := range r.Predictors {
		state := "statistics fallback"
		if p.Available {
			state = "ready"
		}
		fmt.Fprintf(w, "  %-9s %-27s %-10s %s\n", p.Slot, p.Artifact, p.Kind, state)
	}

	_, err := fmt.Fprintf(w, "Shipments: %d, demand records: %d, lanes: %d\n", r.Shipments, r.Demand, r.Lanes)
	return err
}
