package csv

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/schc/pkg/domain/entities"
)

// Column sets of the reference tables, in canonical order
var (
	ShipmentColumns = []string{
		"Origin", "Destination", "Carrier", "ServiceLevel",
		"Distance", "Weight", "Stops", "ShipmentCost", "OnTimeDelivery",
	}
	DemandColumns = []string{
		"Hospital", "Region", "Medicine", "Month", "Inventory", "LeadTimeDays", "Demand",
	}
	LaneStatisticColumns = []string{
		"Origin", "Destination", "Carrier", "ServiceLevel", "on_time_prob", "est_cost", "avg_dist", "n",
	}
)

// Loader handles loading reference data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadShipments loads shipment history from a CSV file
func (l *Loader) LoadShipments(filename string) ([]*entities.ShipmentRecord, error) {
	records, err := readAll(filename, "shipments")
	if err != nil {
		return nil, err
	}
	return ParseShipmentRows(records)
}

// LoadDemandRecords loads hospital demand history from a CSV file
func (l *Loader) LoadDemandRecords(filename string) ([]*entities.DemandRecord, error) {
	records, err := readAll(filename, "demand")
	if err != nil {
		return nil, err
	}
	return ParseDemandRows(records)
}

// LoadLaneStatistics loads a precomputed lane statistics table from a CSV file
func (l *Loader) LoadLaneStatistics(filename string) ([]*entities.LaneStatistic, error) {
	records, err := readAll(filename, "lane statistics")
	if err != nil {
		return nil, err
	}
	return ParseLaneStatisticRows(records)
}

// ParseShipmentRows parses a header row followed by shipment rows
func ParseShipmentRows(records [][]string) ([]*entities.ShipmentRecord, error) {
	columns, err := resolveHeader("shipments", records, ShipmentColumns)
	if err != nil {
		return nil, err
	}

	shipments := make([]*entities.ShipmentRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		row := columns.row(record)
		shipment, err := parseShipment(row)
		if err != nil {
			return nil, fmt.Errorf("shipments CSV row %d: %w", i+2, err)
		}
		shipments = append(shipments, shipment)
	}

	return shipments, nil
}

// ParseDemandRows parses a header row followed by demand rows
func ParseDemandRows(records [][]string) ([]*entities.DemandRecord, error) {
	columns, err := resolveHeader("demand", records, DemandColumns)
	if err != nil {
		return nil, err
	}

	demands := make([]*entities.DemandRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		row := columns.row(record)
		demand, err := parseDemand(row)
		if err != nil {
			return nil, fmt.Errorf("demand CSV row %d: %w", i+2, err)
		}
		demands = append(demands, demand)
	}

	return demands, nil
}

// ParseLaneStatisticRows parses a header row followed by lane statistic rows
func ParseLaneStatisticRows(records [][]string) ([]*entities.LaneStatistic, error) {
	columns, err := resolveHeader("lane statistics", records, LaneStatisticColumns)
	if err != nil {
		return nil, err
	}

	stats := make([]*entities.LaneStatistic, 0, len(records)-1)
	for i, record := range records[1:] {
		row := columns.row(record)
		stat, err := parseLaneStatistic(row)
		if err != nil {
			return nil, fmt.Errorf("lane statistics CSV row %d: %w", i+2, err)
		}
		stats = append(stats, stat)
	}

	return stats, nil
}

// Helper functions for parsing CSV records

func readAll(filename, table string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", table, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", table, err)
	}
	return records, nil
}

// columnIndex maps canonical column names to their position in the file
type columnIndex map[string]int

func (c columnIndex) row(record []string) map[string]string {
	row := make(map[string]string, len(c))
	for name, i := range c {
		if i < len(record) {
			row[name] = strings.TrimSpace(record[i])
		}
	}
	return row
}

// resolveHeader locates every expected column by name, ignoring case, surrounding
// whitespace, extra columns and column order
func resolveHeader(table string, records [][]string, expected []string) (columnIndex, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", table)
	}

	positions := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		positions[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}

	columns := make(columnIndex, len(expected))
	var missing []string
	for _, col := range expected {
		i, exists := positions[strings.ToLower(col)]
		if !exists {
			missing = append(missing, col)
			continue
		}
		columns[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s CSV header missing columns %v. Expected: %v, Got: %v", table, missing, expected, records[0])
	}

	return columns, nil
}

func parseShipment(row map[string]string) (*entities.ShipmentRecord, error) {
	distance, err := parseFloat(row, "Distance")
	if err != nil {
		return nil, err
	}
	weight, err := parseFloat(row, "Weight")
	if err != nil {
		return nil, err
	}
	stops, err := parseInt(row, "Stops")
	if err != nil {
		return nil, err
	}
	cost, err := parseFloat(row, "ShipmentCost")
	if err != nil {
		return nil, err
	}
	onTime, err := ParseBool(row["OnTimeDelivery"])
	if err != nil {
		return nil, fmt.Errorf("invalid OnTimeDelivery: %w", err)
	}

	return entities.NewShipmentRecord(
		row["Origin"], row["Destination"], row["Carrier"], row["ServiceLevel"],
		distance, weight, stops, cost, onTime,
	)
}

func parseDemand(row map[string]string) (*entities.DemandRecord, error) {
	month, err := parseInt(row, "Month")
	if err != nil {
		return nil, err
	}
	inventory, err := parseFloat(row, "Inventory")
	if err != nil {
		return nil, err
	}
	leadTime, err := parseInt(row, "LeadTimeDays")
	if err != nil {
		return nil, err
	}
	demand, err := parseFloat(row, "Demand")
	if err != nil {
		return nil, err
	}

	return entities.NewDemandRecord(
		row["Hospital"], row["Region"], row["Medicine"],
		month, inventory, leadTime, demand,
	)
}

func parseLaneStatistic(row map[string]string) (*entities.LaneStatistic, error) {
	onTime, err := parseFloat(row, "on_time_prob")
	if err != nil {
		return nil, err
	}
	cost, err := parseFloat(row, "est_cost")
	if err != nil {
		return nil, err
	}
	distance, err := parseFloat(row, "avg_dist")
	if err != nil {
		return nil, err
	}
	n, err := parseInt(row, "n")
	if err != nil {
		return nil, err
	}

	key := entities.LaneKey{
		Origin:       row["Origin"],
		Destination:  row["Destination"],
		Carrier:      row["Carrier"],
		ServiceLevel: row["ServiceLevel"],
	}
	return entities.NewLaneStatistic(key, onTime, cost, distance, n)
}

func parseFloat(row map[string]string, column string) (float64, error) {
	value, err := strconv.ParseFloat(row[column], 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid %s: %q", column, row[column])
	}
	return value, nil
}

// parseInt accepts plain integers and integral floats such as "6.0"
func parseInt(row map[string]string, column string) (int, error) {
	raw := row[column]
	if value, err := strconv.Atoi(raw); err == nil {
		return value, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value != math.Trunc(value) {
		return 0, fmt.Errorf("invalid %s: %q", column, raw)
	}
	return int(value), nil
}

// ParseBool parses the boolean spellings found in exported tables
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "t", "yes", "y":
		return true, nil
	case "0", "0.0", "false", "f", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean (expected 1/0, true/false or yes/no)", s)
	}
}
