package domain

// CheckResult represents the result of a quality check
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single threshold violation
type CheckViolation struct {
	Rule      string `json:"rule"`                // min-score, no-regression, max-errors, max-fatal
	Severity  string `json:"severity"`            // error, warning
	Message   string `json:"message"`             // Human-readable description
	Actual    string `json:"actual"`              // Actual value
	Threshold string `json:"threshold,omitempty"` // Configured threshold
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	TotalMessages  int   `json:"total_messages"`
	ModulesChecked int   `json:"modules_checked"`
	Errors         int   `json:"errors"`
	Fatal          int   `json:"fatal"`
	Score          Score `json:"score"`
	PreviousScore  Score `json:"previous_score"`
}

// CheckThresholds are the limits a report is checked against
type CheckThresholds struct {
	// MinScore fails the check when the score is lower; 0 disables
	MinScore float64
	// AllowRegression disables the previous-score comparison
	AllowRegression bool
	// MaxErrors is the highest tolerated error count; negative disables
	MaxErrors int
	// MaxFatal is the highest tolerated fatal count; negative disables
	MaxFatal int
}
