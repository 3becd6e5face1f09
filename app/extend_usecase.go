package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/service"
)

// StatsReader decodes a standalone statistics file
type StatsReader interface {
	ReadStats(path string) (domain.RunStats, error)
}

// ExtendRequest describes one extend run
type ExtendRequest struct {
	// InputPath is a simple message file; "-" reads stdin
	InputPath    string
	StatsPath    string
	PreviousPath string
	// OutputPath picks the codec by extension; empty writes JSON to OutputWriter
	OutputPath   string
	OutputWriter io.Writer
}

// ExtendUseCase turns a simple message file plus statistics into an
// extended record
type ExtendUseCase struct {
	reader      domain.InputReader
	statsReader StatsReader
	writer      domain.RecordWriter
	fileHelper  *FileHelper
}

// NewExtendUseCase creates a new extend use case
func NewExtendUseCase(reader domain.InputReader, statsReader StatsReader, writer domain.RecordWriter) *ExtendUseCase {
	return &ExtendUseCase{
		reader:      reader,
		statsReader: statsReader,
		writer:      writer,
		fileHelper:  NewFileHelper(),
	}
}

// Execute builds the record through the host collector and writes it
func (uc *ExtendUseCase) Execute(ctx context.Context, req ExtendRequest) (*domain.ExtendedReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkStdinSources(req); err != nil {
		return nil, err
	}

	input, err := uc.reader.ReadFile(req.InputPath, domain.InputFormatSimple)
	if err != nil {
		return nil, err
	}

	stats, err := uc.readOptionalStats(req.StatsPath)
	if err != nil {
		return nil, err
	}
	previous, err := uc.readOptionalStats(req.PreviousPath)
	if err != nil {
		return nil, err
	}

	collector := service.NewExtendedCollector()
	for _, msg := range input.Messages {
		collector.HandleMessage(service.HostMessage{
			Category: msg.Type,
			Module:   msg.Module,
			Obj:      msg.Obj,
			Line:     msg.Line,
			Column:   msg.Column,
			Path:     msg.Path,
			Symbol:   msg.Symbol,
			Msg:      msg.Message,
			MsgID:    msg.MessageID,
		})
	}

	if req.OutputPath == "" {
		writer := req.OutputWriter
		if writer == nil {
			writer = os.Stdout
		}
		if err := collector.Close(writer, stats, previous); err != nil {
			return nil, err
		}
		return collector.Record(stats, previous), nil
	}

	record := collector.Record(stats, previous)
	var buf bytes.Buffer
	if err := uc.writer.WriteRecord(record, req.OutputPath, &buf); err != nil {
		return nil, err
	}
	if err := uc.fileHelper.EnsureParentDir(req.OutputPath); err != nil {
		return nil, domain.NewOutputError("failed to write record", err)
	}
	if err := os.WriteFile(req.OutputPath, buf.Bytes(), 0o644); err != nil {
		return nil, domain.NewOutputError("failed to write record", err)
	}
	return record, nil
}

func (uc *ExtendUseCase) readOptionalStats(path string) (domain.RunStats, error) {
	if path == "" {
		return nil, nil
	}
	return uc.statsReader.ReadStats(path)
}

// checkStdinSources rejects requests that read standard input more than once
func checkStdinSources(req ExtendRequest) error {
	var sources []string
	if req.InputPath == "" || req.InputPath == service.StdinPath {
		sources = append(sources, "input")
	}
	if req.StatsPath == service.StdinPath {
		sources = append(sources, "stats")
	}
	if req.PreviousPath == service.StdinPath {
		sources = append(sources, "previous")
	}
	if len(sources) > 1 {
		return domain.NewInvalidInputError(
			fmt.Sprintf("standard input can only be read once, got %s", strings.Join(sources, ", ")), nil)
	}
	return nil
}
