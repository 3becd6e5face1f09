package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/lintreport/internal/config"
	"github.com/ludo-technologies/lintreport/internal/constants"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a lintreport configuration file",
		Long: `Generate a documented lintreport configuration file with sensible defaults.

By default, creates lintreport.yaml in the current directory. A path ending
in .toml produces a TOML file. Use --interactive for a guided setup wizard.

Examples:
  # Create lintreport.yaml in current directory
  lintreport init

  # TOML configuration
  lintreport init --config .lintreport.toml

  # Overwrite existing file
  lintreport init --force

  # Strict CI thresholds
  lintreport init --strictness strict

  # Generate smaller config with essential options only
  lintreport init --minimal

  # Interactive setup wizard
  lintreport init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().String("format", "",
		"Config file format: yaml or toml (default from the file extension)")
	cmd.Flags().String("strictness", string(config.StrictnessStandard),
		"Check thresholds preset: relaxed, standard or strict")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	// Get flag values from command
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	formatFlag, _ := cmd.Flags().GetString("format")
	strictnessFlag, _ := cmd.Flags().GetString("strictness")
	interactive, _ := cmd.Flags().GetBool("interactive")

	strictness := config.Strictness(strictnessFlag)
	if _, ok := config.GetStrictnessPresets()[strictness]; !ok {
		return fmt.Errorf("invalid strictness %q (must be one of: relaxed, standard, strict)", strictnessFlag)
	}

	// Run interactive setup if requested
	if interactive {
		var err error
		strictness, configPath, err = runInteractiveSetup(cmd.OutOrStdout(), configPath)
		if err != nil {
			return err
		}
	}

	format, err := templateFormat(formatFlag, configPath)
	if err != nil {
		return err
	}

	// Check if file exists
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	// Check if parent directory exists
	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	// Generate config content
	var content string
	if minimal {
		content, err = config.GetMinimalConfigTemplate(format)
	} else {
		content, err = config.GetFullConfigTemplate(strictness, format)
	}
	if err != nil {
		return err
	}

	// Write to file
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Print success message with absolute path if possible, otherwise use relative path
	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", displayPath)
	fmt.Fprintln(out, "\nRun 'pylint -f json <package> | lintreport render' to build a report.")

	return nil
}

// templateFormat resolves the config format from the flag or the extension
func templateFormat(flag, path string) (config.TemplateFormat, error) {
	switch strings.ToLower(flag) {
	case "yaml", "yml":
		return config.TemplateFormatYAML, nil
	case "toml":
		return config.TemplateFormatTOML, nil
	case "":
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			return config.TemplateFormatTOML, nil
		}
		return config.TemplateFormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q (must be one of: yaml, toml)", flag)
	}
}

func runInteractiveSetup(out io.Writer, defaultConfigPath string) (config.Strictness, string, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "lintreport Configuration Setup")
	fmt.Fprintln(out, "==============================")
	fmt.Fprintln(out)

	// Strictness selection
	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Score of at least 7, no fatal messages", config.StrictnessStandard},
		{"Relaxed", "Report only, no failing thresholds", config.StrictnessRelaxed},
		{"Strict", "Score of at least 9, no errors, no regression", config.StrictnessStrict},
	}

	strictnessTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should the check be?",
		Items:     strictnessLevels,
		Templates: strictnessTemplates,
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}
	selectedStrictness := strictnessLevels[strictnessIdx].Value

	fmt.Fprintln(out)

	// Output path prompt
	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("output path input cancelled: %w", err)
	}

	// Use default if empty
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Creating %s... ", outputPath)

	return selectedStrictness, outputPath, nil
}
