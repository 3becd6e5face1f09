package analyzer

import "github.com/ludo-technologies/lintreport/domain"

// Report is the aggregated view of one linter run. It is built once from
// the complete message set and never changes afterwards.
type Report struct {
	messages      []domain.Message
	modules       []domain.ModuleGroup
	metrics       domain.Metrics
	score         domain.Score
	previousScore domain.Score
}

// ReportOption customizes report construction
type ReportOption func(*reportOptions)

type reportOptions struct {
	missingLine domain.MissingLinePlacement
}

// WithMissingLine sets where messages without a line sort in their module
func WithMissingLine(placement domain.MissingLinePlacement) ReportOption {
	return func(o *reportOptions) {
		if placement != "" {
			o.missingLine = placement
		}
	}
}

// NewReport groups and counts messages and evaluates the scores of the
// current and previous runs. Nil stats leave the matching score undefined.
func NewReport(messages []domain.Message, stats, previous domain.RunStats, opts ...ReportOption) *Report {
	options := reportOptions{missingLine: domain.MissingLineFirst}
	for _, opt := range opts {
		opt(&options)
	}

	owned := cloneMessages(messages)

	modules := GroupMessages(owned, options.missingLine)
	sortModules(modules)

	r := &Report{
		messages:      owned,
		modules:       modules,
		metrics:       CountMetrics(owned),
		score:         domain.UndefinedScore(),
		previousScore: domain.UndefinedScore(),
	}

	if stats != nil {
		r.score = EvaluateScore(stats)
	}
	if previous != nil {
		r.previousScore = EvaluateScore(previous)
	}

	return r
}

// NewReportFromRecord builds a report from an extended record
func NewReportFromRecord(record *domain.ExtendedReport, opts ...ReportOption) *Report {
	if record == nil {
		return NewReport(nil, nil, nil, opts...)
	}
	return NewReport(record.Messages, record.Stats, record.Previous, opts...)
}

// Messages returns a copy of the messages in input order
func (r *Report) Messages() []domain.Message {
	return cloneMessages(r.messages)
}

// Metrics returns a copy of the frequency tables
func (r *Report) Metrics() domain.Metrics {
	return r.metrics.Clone()
}

// Modules returns a copy of the module groups sorted by path, then module name
func (r *Report) Modules() []domain.ModuleGroup {
	modules := make([]domain.ModuleGroup, len(r.modules))
	for i, g := range r.modules {
		modules[i] = domain.ModuleGroup{Key: g.Key, Messages: cloneMessages(g.Messages)}
	}
	return modules
}

// Score returns the current run's score
func (r *Report) Score() domain.Score {
	return r.score
}

// PreviousScore returns the previous run's score
func (r *Report) PreviousScore() domain.Score {
	return r.previousScore
}

func cloneMessages(messages []domain.Message) []domain.Message {
	cloned := make([]domain.Message, len(messages))
	for i, m := range messages {
		cloned[i] = m.Clone()
	}
	return cloned
}

var _ domain.ReportView = (*Report)(nil)
