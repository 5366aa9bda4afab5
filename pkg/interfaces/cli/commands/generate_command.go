package commands

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/infrastructure/reference"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/xlsx"
)

// GenerateConfig holds configuration for reference data generation
type GenerateConfig struct {
	Shipments int    // Number of shipment records to generate
	Hospitals int    // Number of hospitals in the demand history
	Medicines int    // Number of medicines per hospital
	Carriers  int    // Number of carriers drawn from the built-in profiles, 0 uses all
	Format    string // "csv" writes the two CSV files, "xlsx" writes reference.xlsx
	OutputDir string // Output directory for generated files
	Seed      int64  // Random seed for reproducible generation
	Verbose   bool
	Out       io.Writer
}

// GenerateCommand writes a synthetic data directory the advisor can load
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Carriers == 0 {
		config.Carriers = len(carrierProfiles)
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

type city struct {
	code     string
	lat, lon float64
}

type carrierProfile struct {
	name        string
	reliability float64 // on-time probability on a short direct lane
	ratePerMile float64 // cost per mile for a 20,000 lb load
}

var (
	cities = []city{
		{"ATL", 33.75, -84.39},
		{"CHI", 41.88, -87.63},
		{"DAL", 32.78, -96.80},
		{"DEN", 39.74, -104.99},
		{"LAX", 34.05, -118.24},
		{"MIA", 25.76, -80.19},
		{"NYC", 40.71, -74.01},
		{"SEA", 47.61, -122.33},
	}

	carrierProfiles = []carrierProfile{
		{"FastFreight", 0.92, 0.48},
		{"PrimeLogix", 0.85, 0.40},
		{"Rail", 0.78, 0.27},
		{"SlowBoat", 0.58, 0.21},
	}

	serviceLevels = []string{"Standard", "Express"}

	regions = []string{"NE", "SE", "MW", "SW", "W"}

	medicineNames = []string{
		"Amoxicillin", "Insulin", "Heparin", "Albuterol", "Epinephrine",
		"Morphine", "Ceftriaxone", "Vancomycin", "Ondansetron", "Furosemide",
	}
)

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Out,
			"🔧 Generating %d shipments and demand for %d hospitals x %d medicines\n",
			cmd.config.Shipments, cmd.config.Hospitals, cmd.config.Medicines,
		)
		fmt.Fprintf(cmd.config.Out, "📁 Output directory: %s\n", cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	shipments, err := cmd.generateShipments(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate shipments: %w", err)
	}

	demand, err := cmd.generateDemand(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate demand: %w", err)
	}

	switch cmd.config.Format {
	case "xlsx":
		path := filepath.Join(cmd.config.OutputDir, reference.WorkbookFile)
		if err := xlsx.Save(path, &xlsx.Workbook{Shipments: shipments, Demand: demand}); err != nil {
			return err
		}
		cmd.report("📗 Wrote %s\n", path)
	default:
		shipmentsPath := filepath.Join(cmd.config.OutputDir, reference.ShipmentsFile)
		if err := csv.WriteShipments(shipmentsPath, shipments); err != nil {
			return err
		}
		cmd.report("🚚 Wrote %s\n", shipmentsPath)

		demandPath := filepath.Join(cmd.config.OutputDir, reference.DemandFile)
		if err := csv.WriteDemandRecords(demandPath, demand); err != nil {
			return err
		}
		cmd.report("🏥 Wrote %s\n", demandPath)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Out, "✅ Reference data generated successfully in %s\n", cmd.config.OutputDir)
	}
	return nil
}

func (cmd *GenerateCommand) validate() error {
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if cmd.config.Shipments < 1 {
		return fmt.Errorf("shipments must be at least 1, got %d", cmd.config.Shipments)
	}
	if cmd.config.Hospitals < 1 {
		return fmt.Errorf("hospitals must be at least 1, got %d", cmd.config.Hospitals)
	}
	if cmd.config.Medicines < 1 || cmd.config.Medicines > len(medicineNames) {
		return fmt.Errorf("medicines must be within 1-%d, got %d", len(medicineNames), cmd.config.Medicines)
	}
	if cmd.config.Carriers < 1 || cmd.config.Carriers > len(carrierProfiles) {
		return fmt.Errorf("carriers must be within 1-%d, got %d", len(carrierProfiles), cmd.config.Carriers)
	}
	switch cmd.config.Format {
	case "", "csv", "xlsx":
	default:
		return fmt.Errorf("unsupported format %q (expected csv or xlsx)", cmd.config.Format)
	}
	return nil
}

func (cmd *GenerateCommand) report(format string, args ...any) {
	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Out, format, args...)
	}
}

// generateShipments draws shipments over random city pairs. Cost grows with
// distance, weight, stops and express service; on-time probability falls
// with distance and stops.
func (cmd *GenerateCommand) generateShipments(ctx context.Context) ([]*entities.ShipmentRecord, error) {
	shipments := make([]*entities.ShipmentRecord, 0, cmd.config.Shipments)

	for i := 0; i < cmd.config.Shipments; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		origin := cities[cmd.rand.Intn(len(cities))]
		destination := cities[cmd.rand.Intn(len(cities))]
		for destination.code == origin.code {
			destination = cities[cmd.rand.Intn(len(cities))]
		}
		carrier := carrierProfiles[cmd.rand.Intn(cmd.config.Carriers)]
		service := serviceLevels[cmd.rand.Intn(len(serviceLevels))]

		distance := roadDistance(origin, destination) * (0.95 + 0.15*cmd.rand.Float64())
		weight := float64(5000 + cmd.rand.Intn(35001))
		stops := 1 + cmd.rand.Intn(3)

		cost := distance * carrier.ratePerMile * math.Sqrt(weight/20000)
		cost *= 1 + 0.08*float64(stops-1)
		onTimeProb := carrier.reliability - 0.04*float64(stops-1) - distance/25000
		if service == "Express" {
			cost *= 1.35
			onTimeProb += 0.05
		}
		cost *= 0.9 + 0.2*cmd.rand.Float64()

		shipment, err := entities.NewShipmentRecord(
			origin.code, destination.code, carrier.name, service,
			distance, weight, stops, cost, cmd.rand.Float64() < onTimeProb,
		)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}

	return shipments, nil
}

// generateDemand writes one record per hospital, medicine and month with a
// seasonal swing around each pair's base demand.
func (cmd *GenerateCommand) generateDemand(ctx context.Context) ([]*entities.DemandRecord, error) {
	records := make([]*entities.DemandRecord, 0, cmd.config.Hospitals*cmd.config.Medicines*12)

	for h := 0; h < cmd.config.Hospitals; h++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hospital := fmt.Sprintf("Hospital_%02d", h+1)
		region := regions[cmd.rand.Intn(len(regions))]
		size := 50 + 350*cmd.rand.Float64()

		for _, medicine := range medicineNames[:cmd.config.Medicines] {
			base := size * (0.3 + 1.4*cmd.rand.Float64())
			phase := 2 * math.Pi * cmd.rand.Float64()
			leadTime := 3 + cmd.rand.Intn(19)

			for month := 1; month <= 12; month++ {
				season := 1 + 0.25*math.Sin(2*math.Pi*float64(month-1)/12+phase)
				demand := math.Max(0, base*season*(0.9+0.2*cmd.rand.Float64()))
				inventory := demand * (0.5 + cmd.rand.Float64())

				record, err := entities.NewDemandRecord(
					hospital, region, medicine, month,
					math.Round(inventory), leadTime, math.Round(demand),
				)
				if err != nil {
					return nil, err
				}
				records = append(records, record)
			}
		}
	}

	return records, nil
}

// roadDistance approximates driving miles as great-circle miles plus 20%
func roadDistance(a, b city) float64 {
	const earthRadiusMiles = 3958.8
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.lat - a.lat)
	dLon := toRad(b.lon - a.lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.lat))*math.Cos(toRad(b.lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 1.2 * 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
