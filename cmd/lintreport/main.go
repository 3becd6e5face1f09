package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ludo-technologies/lintreport/internal/constants"
	"github.com/ludo-technologies/lintreport/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version

	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Handle custom exit codes from check command
		var exitErr *CheckExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			// Silently exit with the specified code (output already printed)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(constants.ExitCodeViolation)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.ToolName,
		Short: "lintreport - pylint message aggregator and report renderer",
		Long: `lintreport reads pylint JSON output, groups the messages per module,
counts them by type, module, symbol and path, and scores the run.

The report is rendered as HTML, text, JSON or YAML, and can gate CI
pipelines on the score and message counts.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable diagnostic logging")

	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(extendCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// newLogger creates the diagnostic logger; debug records only with verbose
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if verbose {
				fmt.Fprintln(out, version.GetFullVersion())
			} else {
				fmt.Fprintln(out, version.Banner(constants.ToolName))
			}
		},
	}
}
