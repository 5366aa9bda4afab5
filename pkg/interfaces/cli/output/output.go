package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/schc/pkg/application/dto"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatHTML = "html"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives console output; nil means os.Stdout.
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate creates output in the specified format
func Generate(rec *dto.Recommendation, config Config) error {
	switch config.Format {
	case FormatText:
		return generateTextOutput(rec, config)
	case FormatJSON:
		return generateJSONOutput(rec, config)
	case FormatCSV:
		return generateCSVOutput(rec, config)
	case FormatHTML:
		return generateHTMLOutput(rec, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// WriteText renders the human-readable summary
func WriteText(w io.Writer, rec *dto.Recommendation) error {
	view := NewView(rec)
	var b strings.Builder

	fmt.Fprintf(&b, "Recommendation\n")
	fmt.Fprintf(&b, "==============\n\n")

	for _, m := range view.Metrics {
		fmt.Fprintf(&b, "%-26s %s\n", m.Label+":", m.Value)
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Decision:      %s\n", view.Decision)
	fmt.Fprintf(&b, "Logistics:     %s\n", view.LogisticsNote)
	fmt.Fprintf(&b, "Distance Used: %s mi\n", view.Distance)
	if view.RegionDefaulted {
		fmt.Fprintf(&b, "Region:        %s (hospital not in history, default assumed)\n", view.Region)
	}
	fmt.Fprintln(&b)

	if len(view.Comparison) > 0 {
		fmt.Fprintf(&b, "Compare Carriers (Same Lane/Inputs)\n")
		fmt.Fprintf(&b, "%-20s %-12s %-14s %s\n", "Carrier", "On-Time", "Est. Cost", "Recommendation")
		fmt.Fprintf(&b, "%-20s %-12s %-14s %s\n",
			"--------------------", "------------", "--------------", "--------------")
		for _, row := range view.Comparison {
			fmt.Fprintf(&b, "%-20s %-12s %-14s %s\n",
				row.Carrier, row.OnTimeProbability, row.EstimatedCost, row.Recommendation)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// generateTextOutput prints the summary and saves a copy when an output directory is set
func generateTextOutput(rec *dto.Recommendation, config Config) error {
	if err := WriteText(config.writer(), rec); err != nil {
		return fmt.Errorf("failed to write text output: %w", err)
	}

	if config.OutputDir == "" {
		return nil
	}

	filename, err := createOutputFile(config.OutputDir, "recommendation.txt", func(w io.Writer) error {
		return WriteText(w, rec)
	})
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "Results saved to: %s\n", filename)
	}
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(rec *dto.Recommendation, config Config) error {
	jsonData, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		_, err := fmt.Fprintln(config.writer(), string(jsonData))
		return err
	}

	filename, err := createOutputFile(config.OutputDir, "recommendation.json", func(w io.Writer) error {
		_, err := w.Write(jsonData)
		return err
	})
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes the metrics and the carrier comparison. Without an
// output directory only the comparison table is printed.
func generateCSVOutput(rec *dto.Recommendation, config Config) error {
	if config.OutputDir == "" {
		return WriteComparisonCSV(config.writer(), rec)
	}

	metricsFile, err := createOutputFile(config.OutputDir, "recommendation.csv", func(w io.Writer) error {
		return WriteMetricsCSV(w, rec)
	})
	if err != nil {
		return fmt.Errorf("failed to write recommendation CSV: %w", err)
	}

	comparisonFile, err := createOutputFile(config.OutputDir, "carrier_comparison.csv", func(w io.Writer) error {
		return WriteComparisonCSV(w, rec)
	})
	if err != nil {
		return fmt.Errorf("failed to write carrier comparison CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "CSV results saved to:\n")
		fmt.Fprintf(config.writer(), "  Recommendation: %s\n", metricsFile)
		fmt.Fprintf(config.writer(), "  Carrier Comparison: %s\n", comparisonFile)
	}
	return nil
}

// WriteMetricsCSV writes the decision and metrics as metric,value rows
func WriteMetricsCSV(w io.Writer, rec *dto.Recommendation) error {
	view := NewView(rec)
	writer := csv.NewWriter(w)

	rows := [][]string{
		{"metric", "value"},
		{"id", view.ID},
		{"decision", view.Decision},
		{"logistics_note", view.LogisticsNote},
		{"distance_used", view.Distance},
	}
	for _, m := range view.Metrics {
		rows = append(rows, []string{m.Label, m.Value})
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// WriteComparisonCSV writes the carrier comparison with display formatting
func WriteComparisonCSV(w io.Writer, rec *dto.Recommendation) error {
	view := NewView(rec)
	writer := csv.NewWriter(w)

	rows := [][]string{{"Carrier", "on_time_probability", "estimated_cost", "recommendation"}}
	for _, row := range view.Comparison {
		rows = append(rows, []string{row.Carrier, row.OnTimeProbability, row.EstimatedCost, row.Recommendation})
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write carrier comparison: %w", err)
	}
	return nil
}

func createOutputFile(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return "", err
	}
	return filename, file.Close()
}
