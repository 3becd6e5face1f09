package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/constants"
	"github.com/ludo-technologies/lintreport/internal/version"
)

// Check rule names
const (
	RuleMinScore     = "min-score"
	RuleNoRegression = "no-regression"
	RuleMaxErrors    = "max-errors"
	RuleMaxFatal     = "max-fatal"
)

// CheckUseCase evaluates a report against quality thresholds
type CheckUseCase struct {
	builder *RenderUseCase
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(reader domain.InputReader, opts ...RenderOption) *CheckUseCase {
	return &CheckUseCase{builder: NewRenderUseCase(reader, nil, opts...)}
}

// Execute reads the input, builds the report and checks it
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.ReportRequest) (*domain.CheckResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, _, err := uc.builder.BuildReport(req)
	if err != nil {
		return nil, err
	}

	result := EvaluateThresholds(report, req.Thresholds)
	result.Duration = time.Since(start).Milliseconds()
	return result, nil
}

// EvaluateThresholds checks report against th. An undefined score cannot
// be compared, so the score rules report a warning instead of failing.
func EvaluateThresholds(report domain.ReportView, th domain.CheckThresholds) *domain.CheckResult {
	metrics := report.Metrics()
	score := report.Score()
	previous := report.PreviousScore()

	result := &domain.CheckResult{
		Passed:     true,
		Violations: []domain.CheckViolation{},
		Summary: domain.CheckSummary{
			TotalMessages:  len(report.Messages()),
			ModulesChecked: len(report.Modules()),
			Errors:         metrics.TypeCount(domain.MessageTypeError),
			Fatal:          metrics.TypeCount(domain.MessageTypeFatal),
			Score:          score,
			PreviousScore:  previous,
		},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}

	fail := func(v domain.CheckViolation) {
		v.Severity = "error"
		result.Passed = false
		result.Violations = append(result.Violations, v)
	}
	warn := func(v domain.CheckViolation) {
		v.Severity = "warning"
		result.Violations = append(result.Violations, v)
	}

	if th.MinScore > 0 {
		v := domain.CheckViolation{
			Rule:      RuleMinScore,
			Actual:    score.String(),
			Threshold: formatScore(th.MinScore),
		}
		switch {
		case !score.IsDefined():
			v.Message = "score is undefined; the input carries no statement count"
			warn(v)
		case score.Float() < th.MinScore:
			v.Message = fmt.Sprintf("score %s is below the minimum %s", score, formatScore(th.MinScore))
			fail(v)
		}
	}

	if !th.AllowRegression {
		delta := score.Delta(previous)
		if delta.IsDefined() && delta.Float() < 0 {
			fail(domain.CheckViolation{
				Rule:      RuleNoRegression,
				Message:   fmt.Sprintf("score dropped from %s to %s", previous, score),
				Actual:    score.String(),
				Threshold: previous.String(),
			})
		}
	}

	if th.MaxErrors >= 0 && result.Summary.Errors > th.MaxErrors {
		fail(domain.CheckViolation{
			Rule:      RuleMaxErrors,
			Message:   fmt.Sprintf("%d error messages, at most %d allowed", result.Summary.Errors, th.MaxErrors),
			Actual:    strconv.Itoa(result.Summary.Errors),
			Threshold: strconv.Itoa(th.MaxErrors),
		})
	}

	if th.MaxFatal >= 0 && result.Summary.Fatal > th.MaxFatal {
		fail(domain.CheckViolation{
			Rule:      RuleMaxFatal,
			Message:   fmt.Sprintf("%d fatal messages, at most %d allowed", result.Summary.Fatal, th.MaxFatal),
			Actual:    strconv.Itoa(result.Summary.Fatal),
			Threshold: strconv.Itoa(th.MaxFatal),
		})
	}

	result.ExitCode = constants.ExitCodeSuccess
	if !result.Passed {
		result.ExitCode = constants.ExitCodeViolation
	}
	return result
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
