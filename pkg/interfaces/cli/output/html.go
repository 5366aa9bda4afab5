package output

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/vsinha/schc/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"selected": func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) },
}).ParseFS(templateFS, "templates/*.html"))

// DashboardData is everything the dashboard page renders
type DashboardData struct {
	Options   dto.Options
	Request   dto.RecommendationRequest
	Months    []int
	View      *View
	Readiness dto.Readiness
	Error     string
}

// ReportData is everything the standalone HTML report renders
type ReportData struct {
	View        View
	Request     dto.RecommendationRequest
	GeneratedAt string
}

// RenderDashboard writes the form, the latest results and the readiness panel
func RenderDashboard(w io.Writer, data DashboardData) error {
	if data.Months == nil {
		data.Months = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	}
	if err := templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

// RenderReport writes a self-contained HTML page for one recommendation
func RenderReport(w io.Writer, rec *dto.Recommendation) error {
	data := ReportData{
		View:        NewView(rec),
		Request:     rec.Request,
		GeneratedAt: rec.EvaluatedAt.Format(time.RFC3339),
	}
	if err := templates.ExecuteTemplate(w, "report.html", data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// generateHTMLOutput saves the HTML report to the output directory
func generateHTMLOutput(rec *dto.Recommendation, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}

	filename, err := createOutputFile(config.OutputDir, "recommendation.html", func(w io.Writer) error {
		return RenderReport(w, rec)
	})
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "HTML report saved to: %s\n", filename)
	}
	return nil
}
