// Package xlsx loads reference tables from a single Excel workbook.
package xlsx

import (
	"errors"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/csv"
)

// Sheet names read from the workbook
const (
	ShipmentsSheet      = "shipments"
	DemandSheet         = "demand"
	LaneStatisticsSheet = "lane_stats"
)

// ErrSheetMissing is returned when a required sheet is not in the workbook
var ErrSheetMissing = errors.New("sheet missing")

// Workbook holds the tables read from a reference workbook.
// LaneStatistics is nil when the workbook has no lane_stats sheet.
type Workbook struct {
	Shipments      []*entities.ShipmentRecord
	Demand         []*entities.DemandRecord
	LaneStatistics []*entities.LaneStatistic
}

// Load reads the shipments, demand and optional lane_stats sheets of a workbook.
// Every sheet uses the same columns as its CSV counterpart.
func Load(filename string) (*Workbook, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()

	shipmentRows, err := readSheet(f, sheets, ShipmentsSheet)
	if err != nil {
		return nil, err
	}
	shipments, err := csv.ParseShipmentRows(shipmentRows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", ShipmentsSheet, err)
	}

	demandRows, err := readSheet(f, sheets, DemandSheet)
	if err != nil {
		return nil, err
	}
	demand, err := csv.ParseDemandRows(demandRows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", DemandSheet, err)
	}

	workbook := &Workbook{Shipments: shipments, Demand: demand}

	if slices.Contains(sheets, LaneStatisticsSheet) {
		laneRows, err := readSheet(f, sheets, LaneStatisticsSheet)
		if err != nil {
			return nil, err
		}
		stats, err := csv.ParseLaneStatisticRows(laneRows)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", LaneStatisticsSheet, err)
		}
		workbook.LaneStatistics = stats
	}

	return workbook, nil
}

func readSheet(f *excelize.File, sheets []string, sheet string) ([][]string, error) {
	if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %s", ErrSheetMissing, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	// Blank rows come back empty and carry no record.
	kept := rows[:0]
	for _, row := range rows {
		if len(row) > 0 {
			kept = append(kept, row)
		}
	}
	return kept, nil
}
