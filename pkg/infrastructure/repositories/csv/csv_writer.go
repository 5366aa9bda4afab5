package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vsinha/schc/pkg/domain/entities"
)

// WriteLaneStatistics writes lane statistics in the layout LoadLaneStatistics reads
func WriteLaneStatistics(filename string, stats []*entities.LaneStatistic) error {
	return writeFile(filename, "lane statistics", func(w io.Writer) error {
		return EncodeLaneStatistics(w, stats)
	})
}

// EncodeLaneStatistics writes lane statistics as CSV to w
func EncodeLaneStatistics(w io.Writer, stats []*entities.LaneStatistic) error {
	return encodeTable(w, "lane statistics", LaneStatisticColumns, LaneStatisticRows(stats))
}

// WriteShipments writes shipment history in the layout LoadShipments reads
func WriteShipments(filename string, shipments []*entities.ShipmentRecord) error {
	return writeFile(filename, "shipments", func(w io.Writer) error {
		return encodeTable(w, "shipments", ShipmentColumns, ShipmentRows(shipments))
	})
}

// WriteDemandRecords writes demand history in the layout LoadDemandRecords reads
func WriteDemandRecords(filename string, records []*entities.DemandRecord) error {
	return writeFile(filename, "demand", func(w io.Writer) error {
		return encodeTable(w, "demand", DemandColumns, DemandRows(records))
	})
}

// LaneStatisticRows formats lane statistics in LaneStatisticColumns order.
// Probabilities keep four decimals, cost and distance two.
func LaneStatisticRows(stats []*entities.LaneStatistic) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, stat := range stats {
		rows = append(rows, []string{
			stat.Key.Origin,
			stat.Key.Destination,
			stat.Key.Carrier,
			stat.Key.ServiceLevel,
			decimal.NewFromFloat(stat.OnTimeProb).Round(4).String(),
			decimal.NewFromFloat(stat.EstCost).StringFixed(2),
			decimal.NewFromFloat(stat.AvgDistance).StringFixed(2),
			strconv.Itoa(stat.SampleCount),
		})
	}
	return rows
}

// ShipmentRows formats shipments in ShipmentColumns order
func ShipmentRows(shipments []*entities.ShipmentRecord) [][]string {
	rows := make([][]string, 0, len(shipments))
	for _, s := range shipments {
		onTime := "0"
		if s.OnTimeDelivery {
			onTime = "1"
		}
		rows = append(rows, []string{
			s.Origin,
			s.Destination,
			s.Carrier,
			s.ServiceLevel,
			decimal.NewFromFloat(s.Distance).StringFixed(1),
			decimal.NewFromFloat(s.Weight).StringFixed(0),
			strconv.Itoa(s.Stops),
			decimal.NewFromFloat(s.ShipmentCost).StringFixed(2),
			onTime,
		})
	}
	return rows
}

// DemandRows formats demand records in DemandColumns order
func DemandRows(records []*entities.DemandRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Hospital,
			r.Region,
			r.Medicine,
			strconv.Itoa(r.Month),
			decimal.NewFromFloat(r.Inventory).StringFixed(0),
			strconv.Itoa(r.LeadTimeDays),
			decimal.NewFromFloat(r.Demand).StringFixed(0),
		})
	}
	return rows
}

func writeFile(filename, table string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s file %s: %w", table, filename, err)
	}
	defer file.Close()

	if err := encode(file); err != nil {
		return err
	}
	return file.Close()
}

func encodeTable(w io.Writer, table string, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", table, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", table, err)
	}
	return nil
}
