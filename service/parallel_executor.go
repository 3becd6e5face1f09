package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ludo-technologies/lintreport/domain"
	"golang.org/x/sync/errgroup"
)

// Default values for parallel executor
const (
	// DefaultMaxConcurrency is used when the configured value is not positive
	DefaultMaxConcurrency = 4
	DefaultTimeout        = 5 * time.Minute

	defaultDescription = "Writing outputs"
)

// FuncTask adapts a function to domain.ExecutableTask
type FuncTask struct {
	TaskName string
	Enabled  bool
	Run      func(ctx context.Context) (interface{}, error)
}

// NewFuncTask returns an enabled task running fn
func NewFuncTask(name string, fn func(ctx context.Context) (interface{}, error)) *FuncTask {
	return &FuncTask{TaskName: name, Enabled: true, Run: fn}
}

// Name returns the task name
func (t *FuncTask) Name() string { return t.TaskName }

// IsEnabled reports whether the task should run
func (t *FuncTask) IsEnabled() bool { return t.Enabled && t.Run != nil }

// Execute runs the wrapped function
func (t *FuncTask) Execute(ctx context.Context) (interface{}, error) {
	return t.Run(ctx)
}

// TaskError represents a single task failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all task failures
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tasks failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelExecutorImpl implements domain.ParallelExecutor
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
	mu             sync.RWMutex
}

// NewParallelExecutorWithLimits creates a parallel executor; non-positive
// values fall back to the defaults
func NewParallelExecutorWithLimits(maxConcurrency int, timeout time.Duration) *ParallelExecutorImpl {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ParallelExecutorImpl{
		maxConcurrency: maxConcurrency,
		timeout:        timeout,
	}
}

// SetProgress attaches a progress manager
func (e *ParallelExecutorImpl) SetProgress(pm domain.ProgressManager) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progress = pm
}

// Execute runs tasks in parallel with the configured concurrency and timeout.
// Every enabled task runs; failures are collected into an AggregatedError.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	// Filter enabled tasks
	enabledTasks := e.filterEnabledTasks(tasks)
	if len(enabledTasks) == 0 {
		return nil
	}

	// Get current config values (thread-safe)
	e.mu.RLock()
	maxConcurrency := e.maxConcurrency
	timeout := e.timeout
	progress := e.progress
	e.mu.RUnlock()

	// Create timeout context
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Set up progress tracking
	var task domain.TaskProgress = &NoOpTaskProgress{}
	if progress != nil {
		task = progress.StartTask(defaultDescription, len(enabledTasks))
	}
	defer task.Complete()

	// Create errgroup with context for cancellation propagation
	g, gCtx := errgroup.WithContext(timeoutCtx)
	g.SetLimit(maxConcurrency)

	// Collect errors from all tasks
	var errMu sync.Mutex
	var taskErrors []TaskError

	for _, t := range enabledTasks {
		g.Go(func() error {
			// Check if context is already cancelled
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			task.Describe(t.Name())
			_, err := t.Execute(gCtx)

			// Update progress
			task.Increment(1)

			// Collect error if any
			if err != nil {
				errMu.Lock()
				taskErrors = append(taskErrors, TaskError{
					TaskName: t.Name(),
					Err:      err,
				})
				errMu.Unlock()
			}

			return nil
		})
	}

	// Goroutines only return the context error of tasks that never ran
	waitErr := g.Wait()

	// Return aggregated error if any tasks failed
	if len(taskErrors) > 0 {
		return &AggregatedError{Errors: taskErrors}
	}

	return waitErr
}

// filterEnabledTasks returns only tasks where IsEnabled() returns true
func (e *ParallelExecutorImpl) filterEnabledTasks(tasks []domain.ExecutableTask) []domain.ExecutableTask {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
