package service

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/version"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct {
	title string
	color bool
	now   func() time.Time
}

// NewOutputFormatter creates a new output formatter with the default title
func NewOutputFormatter() *OutputFormatterImpl {
	return NewOutputFormatterWithOptions("", false)
}

// NewOutputFormatterWithOptions creates an output formatter with a report
// title and ANSI colors for text output
func NewOutputFormatterWithOptions(title string, color bool) *OutputFormatterImpl {
	if title == "" {
		title = "Pylint report"
	}
	return &OutputFormatterImpl{title: title, color: color, now: time.Now}
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// ReportSummaryJSON holds the headline counts of a report
type ReportSummaryJSON struct {
	TotalMessages int `json:"total_messages" yaml:"total_messages"`
	Modules       int `json:"modules" yaml:"modules"`
	Errors        int `json:"errors" yaml:"errors"`
	Fatal         int `json:"fatal" yaml:"fatal"`
}

// ReportJSON is the serialized view of a report
type ReportJSON struct {
	Version       string               `json:"version" yaml:"version"`
	GeneratedAt   string               `json:"generated_at" yaml:"generated_at"`
	Title         string               `json:"title" yaml:"title"`
	Score         domain.Score         `json:"score" yaml:"score"`
	PreviousScore domain.Score         `json:"previous_score" yaml:"previous_score"`
	Delta         domain.Score         `json:"delta" yaml:"delta"`
	Summary       ReportSummaryJSON    `json:"summary" yaml:"summary"`
	Metrics       domain.Metrics       `json:"metrics" yaml:"metrics"`
	Modules       []domain.ModuleGroup `json:"modules" yaml:"modules"`
}

// Write renders the report in the given format
func (f *OutputFormatterImpl) Write(report domain.ReportView, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatHTML:
		return f.WriteHTML(report, writer)
	case domain.OutputFormatText:
		return f.WriteText(report, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, f.buildReportJSON(report))
	case domain.OutputFormatYAML:
		return WriteYAML(writer, f.buildReportJSON(report))
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// buildReportJSON converts a report into its serialized view
func (f *OutputFormatterImpl) buildReportJSON(report domain.ReportView) ReportJSON {
	modules := report.Modules()
	if modules == nil {
		modules = []domain.ModuleGroup{}
	}
	metrics := report.Metrics()

	return ReportJSON{
		Version:       version.GetVersion(),
		GeneratedAt:   f.now().Format(time.RFC3339),
		Title:         f.title,
		Score:         report.Score(),
		PreviousScore: report.PreviousScore(),
		Delta:         report.Score().Delta(report.PreviousScore()),
		Summary: ReportSummaryJSON{
			TotalMessages: len(report.Messages()),
			Modules:       len(modules),
			Errors:        metrics.TypeCount(domain.MessageTypeError),
			Fatal:         metrics.TypeCount(domain.MessageTypeFatal),
		},
		Metrics: metrics,
		Modules: modules,
	}
}
