package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/infrastructure/config"
	"github.com/vsinha/schc/pkg/infrastructure/reference"
	"github.com/vsinha/schc/pkg/interfaces/cli/output"
)

// Request flag names. A flag left unset keeps the advisor's default.
const (
	FlagHospital         = "hospital"
	FlagMedicine         = "medicine"
	FlagMonth            = "month"
	FlagCurrentInventory = "inventory"
	FlagLeadTimeDays     = "lead-time"
	FlagOrigin           = "origin"
	FlagDestination      = "destination"
	FlagCarrier          = "carrier"
	FlagServiceLevel     = "service-level"
	FlagDistanceOverride = "distance"
	FlagWeight           = "weight"
	FlagStops            = "stops"
)

// RecommendConfig holds configuration for the recommend command
type RecommendConfig struct {
	Settings  *config.Config
	Request   dto.RecommendationRequest
	Overrides []string // request flags set on the command line
	Format    string
	OutputDir string
	Verbose   bool
	Out       io.Writer
}

// RecommendCommand evaluates one request against the data directory
type RecommendCommand struct {
	config RecommendConfig
	logger *zap.SugaredLogger
}

// NewRecommendCommand creates a new recommend command with the given configuration
func NewRecommendCommand(config RecommendConfig) *RecommendCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return &RecommendCommand{
		config: config,
		logger: zap.S().Named("recommend"),
	}
}

// Execute runs the recommend command
func (c *RecommendCommand) Execute(ctx context.Context) error {
	session, err := reference.Build(ctx, c.config.Settings, c.logger)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	req := MergeRequest(session.Advisor.DefaultRequest(), c.config.Request, c.config.Overrides)

	if c.config.Verbose {
		c.printHeader(session.Readiness, req)
	}

	rec, err := session.Advisor.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	if rec.Demand.RegionDefaulted {
		c.logger.Warnw("hospital not found in demand history, region defaulted",
			"hospital", req.Hospital, "region", rec.Demand.Region)
	}

	err = output.Generate(rec, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Writer:    c.config.Out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// MergeRequest copies the fields named in overrides from flags onto defaults
func MergeRequest(defaults, flags dto.RecommendationRequest, overrides []string) dto.RecommendationRequest {
	req := defaults
	for _, name := range overrides {
		switch name {
		case FlagHospital:
			req.Hospital = flags.Hospital
		case FlagMedicine:
			req.Medicine = flags.Medicine
		case FlagMonth:
			req.Month = flags.Month
		case FlagCurrentInventory:
			req.CurrentInventory = flags.CurrentInventory
		case FlagLeadTimeDays:
			req.LeadTimeDays = flags.LeadTimeDays
		case FlagOrigin:
			req.Origin = flags.Origin
		case FlagDestination:
			req.Destination = flags.Destination
		case FlagCarrier:
			req.Carrier = flags.Carrier
		case FlagServiceLevel:
			req.ServiceLevel = flags.ServiceLevel
		case FlagDistanceOverride:
			req.DistanceOverride = flags.DistanceOverride
		case FlagWeight:
			req.Weight = flags.Weight
		case FlagStops:
			req.Stops = flags.Stops
		}
	}
	return req
}

func (c *RecommendCommand) printHeader(readiness dto.Readiness, req dto.RecommendationRequest) {
	out := c.config.Out
	fmt.Fprintf(out, "🚀 Healthcare Supply Chain Advisor\n")
	fmt.Fprintf(out, "Reference data: %s (%s)\n", readiness.DataDir, readiness.Source)
	fmt.Fprintf(out, "  Shipments: %d, demand records: %d, lanes: %d\n",
		readiness.Shipments, readiness.Demand, readiness.Lanes)
	fmt.Fprintf(out, "Request: %s / %s, month %d, inventory %d, lead time %d days\n",
		req.Hospital, req.Medicine, req.Month, req.CurrentInventory, req.LeadTimeDays)
	fmt.Fprintf(out, "Lane: %s -> %s via %s (%s), %d stop(s), weight %g\n",
		req.Origin, req.Destination, req.Carrier, req.ServiceLevel, req.Stops, req.Weight)
	fmt.Fprintf(out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(out)
}
