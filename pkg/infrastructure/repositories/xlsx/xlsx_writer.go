package xlsx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/schc/pkg/infrastructure/repositories/csv"
)

type sheetTable struct {
	sheet  string
	header []string
	rows   [][]string
}

// Save writes wb as a workbook Load can read back. The lane_stats sheet is
// only written when wb.LaneStatistics is non-nil.
func Save(filename string, wb *Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	tables := []sheetTable{
		{ShipmentsSheet, csv.ShipmentColumns, csv.ShipmentRows(wb.Shipments)},
		{DemandSheet, csv.DemandColumns, csv.DemandRows(wb.Demand)},
	}
	if wb.LaneStatistics != nil {
		tables = append(tables, sheetTable{LaneStatisticsSheet, csv.LaneStatisticColumns, csv.LaneStatisticRows(wb.LaneStatistics)})
	}

	for _, table := range tables {
		if _, err := f.NewSheet(table.sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", table.sheet, err)
		}
		if err := writeRow(f, table.sheet, 1, table.header); err != nil {
			return err
		}
		for i, row := range table.rows {
			if err := writeRow(f, table.sheet, i+2, row); err != nil {
				return err
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", filename, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write sheet %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
