// Package reference loads the reference tables from the data directory and
// assembles them, with the predictor registry, into an evaluation session.
package reference

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/xlsx"
)

// File names looked up in the data directory
const (
	ShipmentsFile = "supply_chain_shipments.csv"
	DemandFile    = "healthcare_demand.csv"
	LaneStatsFile = "carrier_lane_stats.csv"
	WorkbookFile  = "reference.xlsx"
)

// Dataset sources
const (
	SourceCSV      = "csv"
	SourceWorkbook = "xlsx"
)

// ErrReferenceFileMissing is wrapped when a required reference file is absent
var ErrReferenceFileMissing = errors.New("required reference file missing")

// Dataset is the raw content of the data directory.
// LaneStatistics is nil when no precomputed table was found.
type Dataset struct {
	Dir            string
	Source         string
	Shipments      []*entities.ShipmentRecord
	Demand         []*entities.DemandRecord
	LaneStatistics []*entities.LaneStatistic
	Files          []dto.FileStatus
}

// IsReferenceFile reports whether name is one of the files Load reads
func IsReferenceFile(name string) bool {
	switch filepath.Base(name) {
	case ShipmentsFile, DemandFile, LaneStatsFile, WorkbookFile:
		return true
	}
	return false
}

// Load reads the data directory. A reference.xlsx workbook takes precedence
// over the CSV files; otherwise both required CSV files must exist.
func Load(dir string) (*Dataset, error) {
	workbookPath := filepath.Join(dir, WorkbookFile)
	if exists(workbookPath) {
		return loadWorkbook(dir, workbookPath)
	}
	return loadCSV(dir)
}

func loadWorkbook(dir, path string) (*Dataset, error) {
	workbook, err := xlsx.Load(path)
	if err != nil {
		if errors.Is(err, xlsx.ErrSheetMissing) {
			return nil, fmt.Errorf("%w: %v", ErrReferenceFileMissing, err)
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return &Dataset{
		Dir:            dir,
		Source:         SourceWorkbook,
		Shipments:      workbook.Shipments,
		Demand:         workbook.Demand,
		LaneStatistics: workbook.LaneStatistics,
		Files: []dto.FileStatus{
			{Name: WorkbookFile, Required: true, Present: true},
			{Name: WorkbookFile + "#" + xlsx.LaneStatisticsSheet, Required: false, Present: workbook.LaneStatistics != nil},
		},
	}, nil
}

func loadCSV(dir string) (*Dataset, error) {
	shipmentsPath := filepath.Join(dir, ShipmentsFile)
	demandPath := filepath.Join(dir, DemandFile)
	lanePath := filepath.Join(dir, LaneStatsFile)

	data := &Dataset{
		Dir:    dir,
		Source: SourceCSV,
		Files: []dto.FileStatus{
			{Name: ShipmentsFile, Required: true, Present: exists(shipmentsPath)},
			{Name: DemandFile, Required: true, Present: exists(demandPath)},
			{Name: LaneStatsFile, Required: false, Present: exists(lanePath)},
		},
	}

	for _, f := range data.Files {
		if f.Required && !f.Present {
			return nil, fmt.Errorf("%w: %s", ErrReferenceFileMissing, filepath.Join(dir, f.Name))
		}
	}

	loader := csv.NewLoader()

	shipments, err := loader.LoadShipments(shipmentsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipments: %w", err)
	}
	data.Shipments = shipments

	demand, err := loader.LoadDemandRecords(demandPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand history: %w", err)
	}
	data.Demand = demand

	if data.Files[2].Present {
		stats, err := loader.LoadLaneStatistics(lanePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load lane statistics: %w", err)
		}
		data.LaneStatistics = stats
	}

	return data, nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
