package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ludo-technologies/lintreport/app"
	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/config"
	"github.com/ludo-technologies/lintreport/service"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	inputFormat string
	formats     string
	outputPath  string
	configPath  string
	title       string
	missingLine string
	exclude     []string
	noColor     bool
	open        bool
}

func renderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a report from pylint output",
		Long: `Render a report from pylint JSON output.

The input is the output of "pylint -f json" or an extended record
({messages, stats, previous}) when --input-format jsonextended is set.
Without a file, or with "-", the input is read from stdin.

Examples:
  pylint -f json mypkg | lintreport render
  lintreport render -f jsonextended run.json
  lintreport render --format text,json -o reports/lint.txt run.json
  lintreport render --exclude 'tests/' --open pylint.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.inputFormat, "input-format", "f", config.DefaultInputFormat,
		"Input shape: json or jsonextended")
	cmd.Flags().StringVar(&opts.formats, "format", config.DefaultOutputFormat,
		"Output formats (comma-separated): html, text, json, yaml")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "",
		"Output file path (default: "+config.DefaultOutputPath+" for HTML, stdout otherwise)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&opts.title, "title", "",
		"Report title")
	cmd.Flags().StringVar(&opts.missingLine, "missing-line", config.DefaultMissingLine,
		"Placement of messages without a line: first or last")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil,
		"Gitignore-style patterns of paths whose messages are dropped")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false,
		"Disable colors in text output")
	cmd.Flags().BoolVar(&opts.open, "open", false,
		"Open the HTML report in the browser")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, args []string) error {
	input := inputArg(args)
	loader := service.NewConfigurationLoader()

	base, err := loadBaseRequest(loader, opts.configPath, input)
	if err != nil {
		return err
	}

	override := &domain.ReportRequest{
		InputPath:    input,
		OutputPath:   opts.outputPath,
		Title:        opts.title,
		ExcludePaths: opts.exclude,
		ConfigPath:   opts.configPath,
	}
	if cmd.Flags().Changed("input-format") {
		override.InputFormat = domain.InputFormat(opts.inputFormat)
	}
	if cmd.Flags().Changed("format") {
		for _, f := range config.SplitFormats(opts.formats) {
			override.OutputFormats = append(override.OutputFormats, domain.OutputFormat(f))
		}
	}
	if cmd.Flags().Changed("missing-line") {
		override.MissingLine = domain.MissingLinePlacement(opts.missingLine)
	}

	req := loader.MergeConfig(base, override)
	req.Color = req.Color && !opts.noColor && service.IsInteractiveEnvironment()
	req.OutputWriter = cmd.OutOrStdout()
	req.HTMLToWriter = !opts.open && !service.IsTerminalWriter(req.OutputWriter)

	if err := loader.ValidateConfig(req); err != nil {
		return err
	}

	pm := service.NewProgressManager(len(req.OutputFormats) > 1)
	defer pm.Close()

	uc := app.NewRenderUseCase(
		service.NewInputReaderWithStdin(cmd.InOrStdin()),
		service.NewOutputFormatterWithOptions(req.Title, req.Color),
		app.WithProgress(pm),
		app.WithLogger(slog.Default()),
	)

	result, err := uc.Execute(cmd.Context(), *req)
	if err != nil {
		return err
	}

	if result.Excluded > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Excluded %d messages\n", result.Excluded)
	}

	for _, path := range result.Written {
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to: %s\n", absPath)

		if opts.open && filepath.Ext(path) == ".html" {
			if service.IsSSH() {
				continue
			}
			if err := service.OpenBrowser("file://" + absPath); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not open browser: %v\n", err)
			}
		}
	}

	return nil
}

// inputArg returns the input path argument or stdin
func inputArg(args []string) string {
	if len(args) == 0 {
		return service.StdinPath
	}
	return args[0]
}

// loadBaseRequest loads the explicit config file or discovers one near input
func loadBaseRequest(loader *service.ConfigurationLoaderImpl, configPath, input string) (*domain.ReportRequest, error) {
	if configPath != "" {
		return loader.LoadConfig(configPath)
	}
	return loader.LoadDefaultConfig(input), nil
}
