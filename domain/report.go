package domain

import (
	"context"
	"io"
	"time"
)

// InputFormat is the shape of the linter output being read
type InputFormat string

const (
	// InputFormatSimple is a bare array of messages (pylint "json")
	InputFormatSimple InputFormat = "json"
	// InputFormatExtended is {messages, stats, previous} (pylint "jsonextended")
	InputFormatExtended InputFormat = "jsonextended"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatHTML OutputFormat = "html"
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// MissingLinePlacement decides where messages without a line sort
// within their module
type MissingLinePlacement string

const (
	// MissingLineFirst treats a missing line as lower than any line
	MissingLineFirst MissingLinePlacement = "first"
	// MissingLineLast treats a missing line as higher than any line
	MissingLineLast MissingLinePlacement = "last"
)

// ReportView is the read-only view renderers consume
type ReportView interface {
	// Messages returns the messages the report was built from
	Messages() []Message
	// Metrics returns the four frequency tables
	Metrics() Metrics
	// Modules returns the module groups sorted by path
	Modules() []ModuleGroup
	// Score returns the current run's score
	Score() Score
	// PreviousScore returns the previous run's score
	PreviousScore() Score
}

// ReportRequest describes one render run
type ReportRequest struct {
	// InputPath is the linter output file; empty or "-" reads stdin
	InputPath   string
	InputFormat InputFormat

	// Output configuration
	OutputFormats []OutputFormat
	OutputPath    string
	OutputWriter  io.Writer
	// HTMLToWriter sends a lone HTML output without a path to OutputWriter
	// instead of the default HTML file
	HTMLToWriter bool
	Title        string
	Color         bool

	// Report options
	MissingLine  MissingLinePlacement
	ExcludePaths []string

	// Check thresholds
	Thresholds CheckThresholds

	// Output concurrency; zero values use the executor defaults
	MaxConcurrency int
	Timeout        time.Duration

	ConfigPath string
}

// InputReader decodes linter output into an extended record
type InputReader interface {
	// Read decodes the input in the given shape. Simple input yields a
	// record without stats.
	Read(r io.Reader, source string, format InputFormat) (*ExtendedReport, error)

	// ReadFile opens and decodes path; "-" or "" reads stdin
	ReadFile(path string, format InputFormat) (*ExtendedReport, error)
}

// OutputFormatter renders a report
type OutputFormatter interface {
	// Write renders the report in the given format
	Write(report ReportView, format OutputFormat, writer io.Writer) error
}

// RecordWriter encodes an extended record
type RecordWriter interface {
	WriteRecord(record *ExtendedReport, path string, writer io.Writer) error
}

// ConfigurationLoader loads report settings
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*ReportRequest, error)

	// LoadDefaultConfig discovers and loads configuration near target
	LoadDefaultConfig(target string) *ReportRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *ReportRequest, override *ReportRequest) *ReportRequest
}

// ProgressManager creates progress tasks for long operations
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks one task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work for the parallel executor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// ParallelExecutor runs tasks concurrently
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}
