package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/ludo-technologies/lintreport/app"
	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/constants"
	"github.com/ludo-technologies/lintreport/service"
	"github.com/spf13/cobra"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

type checkOptions struct {
	inputFormat     string
	configPath      string
	minScore        float64
	allowRegression bool
	maxErrors       int
	maxFatal        int
	exclude         []string
	json            bool
}

func checkCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Quality gate for CI/CD pipelines",
		Long: `Check pylint output against configurable thresholds for CI/CD integration.

Exit codes:
  0 - All checks pass
  1 - Quality threshold(s) violated
  2 - Input error (file not found, parse error, etc.)

Examples:
  # Basic check with configured thresholds
  lintreport check pylint.json

  # Require a score of at least 8 and no new errors
  lintreport check --min-score 8 --max-errors 0 -f jsonextended run.json

  # Fail when the score dropped since the previous run
  lintreport check -f jsonextended run.json

  # JSON output for machine parsing
  lintreport check --json run.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringVarP(&opts.inputFormat, "input-format", "f", "",
		"Input shape: json or jsonextended (default from config)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().Float64Var(&opts.minScore, "min-score", 0,
		"Minimum accepted score (0 = no minimum)")
	cmd.Flags().BoolVar(&opts.allowRegression, "allow-regression", false,
		"Accept a score lower than the previous run's")
	cmd.Flags().IntVar(&opts.maxErrors, "max-errors", -1,
		"Maximum error messages (-1 = no limit)")
	cmd.Flags().IntVar(&opts.maxFatal, "max-fatal", 0,
		"Maximum fatal messages (-1 = no limit)")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil,
		"Gitignore-style patterns of paths whose messages are dropped")
	cmd.Flags().BoolVar(&opts.json, "json", false,
		"Output results as JSON")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, args []string) error {
	input := inputArg(args)
	loader := service.NewConfigurationLoader()

	req, err := loadBaseRequest(loader, opts.configPath, input)
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}
	req = loader.MergeConfig(req, &domain.ReportRequest{
		InputPath:    input,
		InputFormat:  domain.InputFormat(opts.inputFormat),
		ExcludePaths: opts.exclude,
	})

	// Apply flags explicitly set on CLI over config values
	flags := cmd.Flags()
	if flags.Changed("min-score") {
		req.Thresholds.MinScore = opts.minScore
	}
	if flags.Changed("allow-regression") {
		req.Thresholds.AllowRegression = opts.allowRegression
	}
	if flags.Changed("max-errors") {
		req.Thresholds.MaxErrors = opts.maxErrors
	}
	if flags.Changed("max-fatal") {
		req.Thresholds.MaxFatal = opts.maxFatal
	}

	if err := loader.ValidateConfig(req); err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: err.Error()}
	}

	uc := app.NewCheckUseCase(service.NewInputReaderWithStdin(cmd.InOrStdin()), app.WithLogger(slog.Default()))
	result, err := uc.Execute(cmd.Context(), *req)
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: err.Error()}
	}

	out := cmd.OutOrStdout()
	if opts.json {
		if err := outputCheckJSON(out, result); err != nil {
			return err
		}
	} else {
		outputCheckText(out, result)
	}

	if !result.Passed {
		return &CheckExitError{Code: result.ExitCode}
	}
	return nil
}

func outputCheckText(w io.Writer, result *domain.CheckResult) {
	if result.Passed {
		fmt.Fprintf(w, "PASS: All quality checks passed (score: %s)\n", result.Summary.Score)
	} else {
		fmt.Fprintln(w, "FAIL: Quality check failed")
		fmt.Fprintf(w, "  Score: %s\n", result.Summary.Score)
	}

	for _, v := range result.Violations {
		severity := "ERROR"
		if v.Severity == "warning" {
			severity = "WARN"
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", severity, v.Rule, v.Message)
	}

	if verbose {
		fmt.Fprintf(w, "\nSummary:\n")
		fmt.Fprintf(w, "  Messages: %d\n", result.Summary.TotalMessages)
		fmt.Fprintf(w, "  Modules: %d\n", result.Summary.ModulesChecked)
		fmt.Fprintf(w, "  Errors: %d\n", result.Summary.Errors)
		fmt.Fprintf(w, "  Fatal: %d\n", result.Summary.Fatal)
		fmt.Fprintf(w, "  Previous score: %s\n", result.Summary.PreviousScore)
		fmt.Fprintf(w, "  Duration: %dms\n", result.Duration)
	}
}

func outputCheckJSON(w io.Writer, result *domain.CheckResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}
	return nil
}
