package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ludo-technologies/lintreport/domain"
)

// renderTasks builds one task per format writing the sample report into
// its own buffer, the way report outputs are produced
func renderTasks(formats ...domain.OutputFormat) ([]domain.ExecutableTask, []*bytes.Buffer) {
	report := sampleReport()
	formatter := NewOutputFormatter()

	tasks := make([]domain.ExecutableTask, len(formats))
	buffers := make([]*bytes.Buffer, len(formats))
	for i, format := range formats {
		buf := &bytes.Buffer{}
		buffers[i] = buf
		tasks[i] = NewFuncTask(string(format), func(ctx context.Context) (interface{}, error) {
			return nil, formatter.Write(report, format, buf)
		})
	}
	return tasks, buffers
}

func TestParallelExecutor_WritesEveryFormat(t *testing.T) {
	formats := []domain.OutputFormat{domain.OutputFormatHTML, domain.OutputFormatJSON, domain.OutputFormatText}
	tasks, buffers := renderTasks(formats...)

	executor := NewParallelExecutorWithLimits(2, time.Second)
	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	markers := map[domain.OutputFormat]string{
		domain.OutputFormatHTML: "<!DOCTYPE html>",
		domain.OutputFormatJSON: `"modules"`,
		domain.OutputFormatText: "pkg/a.py",
	}
	for i, format := range formats {
		if !strings.Contains(buffers[i].String(), markers[format]) {
			t.Errorf("%s output missing %q", format, markers[format])
		}
	}
}

func TestParallelExecutor_FailingFormat(t *testing.T) {
	tasks, buffers := renderTasks(domain.OutputFormatJSON, domain.OutputFormat("pdf"), domain.OutputFormatText)

	executor := NewParallelExecutorWithLimits(0, 0)
	err := executor.Execute(context.Background(), tasks)

	var aggErr *AggregatedError
	if !errors.As(err, &aggErr) {
		t.Fatalf("expected AggregatedError, got %T: %v", err, err)
	}
	if len(aggErr.Errors) != 1 || aggErr.Errors[0].TaskName != "pdf" {
		t.Fatalf("expected a single pdf failure, got %v", aggErr.Errors)
	}

	var domainErr domain.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domain.ErrCodeUnsupportedFormat {
		t.Errorf("expected unsupported format error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "[pdf] ") {
		t.Errorf("expected error prefixed with the format, got %q", err.Error())
	}

	// The other formats still render
	if buffers[0].Len() == 0 || buffers[2].Len() == 0 {
		t.Error("successful formats should be written despite the failure")
	}
}

func TestParallelExecutor_Limits(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		timeout     time.Duration
		wantConc    int
		wantTimeout time.Duration
	}{
		{"explicit", 2, time.Minute, 2, time.Minute},
		{"zero values", 0, 0, DefaultMaxConcurrency, DefaultTimeout},
		{"negative values", -1, -time.Second, DefaultMaxConcurrency, DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := NewParallelExecutorWithLimits(tt.concurrency, tt.timeout)
			if executor.maxConcurrency != tt.wantConc {
				t.Errorf("expected concurrency %d, got %d", tt.wantConc, executor.maxConcurrency)
			}
			if executor.timeout != tt.wantTimeout {
				t.Errorf("expected timeout %v, got %v", tt.wantTimeout, executor.timeout)
			}
		})
	}
}

func TestParallelExecutor_SkipsDisabledTasks(t *testing.T) {
	var ran atomic.Int32
	count := func(ctx context.Context) (interface{}, error) {
		ran.Add(1)
		return nil, nil
	}

	tasks := []domain.ExecutableTask{
		NewFuncTask("json", count),
		&FuncTask{TaskName: "html", Enabled: false, Run: count},
		&FuncTask{TaskName: "text", Enabled: true},
	}

	executor := NewParallelExecutorWithLimits(0, 0)
	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran.Load() != 1 {
		t.Errorf("expected 1 task to run, got %d", ran.Load())
	}

	if err := executor.Execute(context.Background(), nil); err != nil {
		t.Errorf("expected nil error for no tasks, got %v", err)
	}
}

func TestParallelExecutor_Timeout(t *testing.T) {
	slow := NewFuncTask("html", func(ctx context.Context) (interface{}, error) {
		select {
		case <-time.After(time.Second):
			return nil, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	executor := NewParallelExecutorWithLimits(1, 20*time.Millisecond)
	err := executor.Execute(context.Background(), []domain.ExecutableTask{slow})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestParallelExecutor_CancelledContext(t *testing.T) {
	tasks, buffers := renderTasks(domain.OutputFormatJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := NewParallelExecutorWithLimits(0, 0)
	if err := executor.Execute(ctx, tasks); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context canceled, got %v", err)
	}
	if buffers[0].Len() != 0 {
		t.Error("no output should be written after cancellation")
	}
}

func TestParallelExecutor_ConcurrencyLimit(t *testing.T) {
	const limit = 2
	var running, peak atomic.Int32

	tasks := make([]domain.ExecutableTask, 6)
	for i := range tasks {
		tasks[i] = NewFuncTask("json", func(ctx context.Context) (interface{}, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return nil, nil
		})
	}

	executor := NewParallelExecutorWithLimits(limit, time.Second)
	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak.Load() > limit {
		t.Errorf("expected at most %d concurrent writes, got %d", limit, peak.Load())
	}
}

func TestParallelExecutor_Progress(t *testing.T) {
	pm := &recordingProgress{}
	tasks, _ := renderTasks(domain.OutputFormatHTML, domain.OutputFormatJSON)

	executor := NewParallelExecutorWithLimits(1, time.Second)
	executor.SetProgress(pm)
	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pm.description != "Writing outputs" || pm.total != 2 {
		t.Errorf("expected task %q with total 2, got %q with %d", "Writing outputs", pm.description, pm.total)
	}
	if pm.increments != 2 || !pm.completed {
		t.Errorf("expected 2 increments and completion, got %d, %v", pm.increments, pm.completed)
	}
	if strings.Join(pm.described, ",") != "html,json" {
		t.Errorf("expected formats described in order, got %v", pm.described)
	}
}

func TestAggregatedError_Error(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		name   string
		errs   []TaskError
		want   []string
		unwrap error
	}{
		{"empty", nil, []string{"no errors"}, nil},
		{"single", []TaskError{{TaskName: "html", Err: cause}}, []string{"[html] disk full"}, cause},
		{"several", []TaskError{{TaskName: "html", Err: cause}, {TaskName: "json", Err: errors.New("closed")}},
			[]string{"2 tasks failed", "1. [html] disk full", "2. [json] closed"}, cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &AggregatedError{Errors: tt.errs}
			for _, want := range tt.want {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected %q in %q", want, err.Error())
				}
			}
			if err.Unwrap() != tt.unwrap {
				t.Errorf("expected unwrap %v, got %v", tt.unwrap, err.Unwrap())
			}
		})
	}
}

type recordingProgress struct {
	mu          sync.Mutex
	description string
	total       int
	described   []string
	increments  int
	completed   bool
}

func (p *recordingProgress) StartTask(description string, total int) domain.TaskProgress {
	p.description = description
	p.total = total
	return p
}

func (p *recordingProgress) IsInteractive() bool { return false }

func (p *recordingProgress) Close() {}

func (p *recordingProgress) Increment(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.increments += n
}

func (p *recordingProgress) Describe(description string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.described = append(p.described, description)
}

func (p *recordingProgress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = true
}
