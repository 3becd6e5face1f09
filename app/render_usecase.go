package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/analyzer"
	"github.com/ludo-technologies/lintreport/service"
)

// RenderResult holds the outcome of one render run
type RenderResult struct {
	Report *analyzer.Report
	// Written lists the files created, in format order
	Written []string
	// Excluded is the number of messages dropped by exclude patterns
	Excluded int
	Duration time.Duration
}

// RenderUseCase reads linter output, builds the report and writes every
// requested format
type RenderUseCase struct {
	reader     domain.InputReader
	formatter  domain.OutputFormatter
	progress   domain.ProgressManager
	fileHelper *FileHelper
	logger     *slog.Logger
}

// RenderOption configures a RenderUseCase
type RenderOption func(*RenderUseCase)

// WithProgress attaches a progress manager to output writing
func WithProgress(pm domain.ProgressManager) RenderOption {
	return func(uc *RenderUseCase) {
		if pm != nil {
			uc.progress = pm
		}
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) RenderOption {
	return func(uc *RenderUseCase) {
		if logger != nil {
			uc.logger = logger
		}
	}
}

// NewRenderUseCase creates a new render use case
func NewRenderUseCase(reader domain.InputReader, formatter domain.OutputFormatter, opts ...RenderOption) *RenderUseCase {
	uc := &RenderUseCase{
		reader:     reader,
		formatter:  formatter,
		progress:   &service.NoOpProgressManager{},
		fileHelper: NewFileHelper(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// BuildReport reads the request's input and builds the report from it
func (uc *RenderUseCase) BuildReport(req domain.ReportRequest) (*analyzer.Report, int, error) {
	record, err := uc.reader.ReadFile(req.InputPath, req.InputFormat)
	if err != nil {
		return nil, 0, err
	}

	messages, excluded := uc.fileHelper.FilterMessages(record.Messages, req.ExcludePaths)
	if excluded > 0 {
		uc.logger.Debug("excluded messages", "count", excluded, "patterns", req.ExcludePaths)
	}

	placement := req.MissingLine
	if placement == "" {
		placement = domain.MissingLineFirst
	}
	report := analyzer.NewReport(messages, record.Stats, record.Previous, analyzer.WithMissingLine(placement))
	uc.logger.Debug("built report",
		"input", req.InputPath,
		"messages", len(messages),
		"modules", len(report.Modules()),
		"score", report.Score().String())

	return report, excluded, nil
}

// Execute performs the complete render workflow
func (uc *RenderUseCase) Execute(ctx context.Context, req domain.ReportRequest) (*RenderResult, error) {
	start := time.Now()

	if len(req.OutputFormats) == 0 {
		return nil, domain.NewInvalidInputError("no output format requested", nil)
	}

	report, excluded, err := uc.BuildReport(req)
	if err != nil {
		return nil, err
	}

	written, err := uc.WriteOutputs(ctx, report, req)
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		Report:   report,
		Written:  written,
		Excluded: excluded,
		Duration: time.Since(start),
	}, nil
}

// WriteOutputs renders report in every requested format. File outputs are
// written concurrently; outputs bound for the writer are written in
// format order once all renders succeeded.
func (uc *RenderUseCase) WriteOutputs(ctx context.Context, report domain.ReportView, req domain.ReportRequest) ([]string, error) {
	targets := ResolveOutputTargets(req.OutputFormats, req.OutputPath, req.HTMLToWriter)
	buffers := make([]*bytes.Buffer, len(targets))

	tasks := make([]domain.ExecutableTask, 0, len(targets))
	for i, target := range targets {
		tasks = append(tasks, service.NewFuncTask(string(target.Format), func(ctx context.Context) (interface{}, error) {
			var buf bytes.Buffer
			if err := uc.formatter.Write(report, target.Format, &buf); err != nil {
				return nil, err
			}
			if target.Path == "" {
				buffers[i] = &buf
				return nil, nil
			}
			return target.Path, uc.writeFile(target.Path, buf.Bytes())
		}))
	}

	executor := service.NewParallelExecutorWithLimits(req.MaxConcurrency, req.Timeout)
	executor.SetProgress(uc.progress)
	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, domain.NewOutputError("failed to write report", err)
	}

	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}
	for _, buf := range buffers {
		if buf == nil {
			continue
		}
		if _, err := io.Copy(writer, buf); err != nil {
			return nil, domain.NewOutputError("failed to write report", err)
		}
	}

	var written []string
	for _, target := range targets {
		if target.Path != "" {
			written = append(written, target.Path)
			uc.logger.Debug("wrote report", "format", target.Format, "path", target.Path)
		}
	}
	return written, nil
}

func (uc *RenderUseCase) writeFile(path string, data []byte) error {
	if err := uc.fileHelper.EnsureParentDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
