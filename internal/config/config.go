package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/lintreport/internal/constants"
	"github.com/spf13/viper"
)

// Default report settings
const (
	// DefaultInputFormat is pylint's plain "json" reporter output
	DefaultInputFormat = "json"

	// DefaultOutputFormat renders a standalone HTML page
	DefaultOutputFormat = "html"

	// DefaultOutputPath is used for HTML output when no path is given
	DefaultOutputPath = "lintreport.html"

	// DefaultTitle is the heading of rendered reports
	DefaultTitle = "Pylint report"

	// DefaultMissingLine places messages without a line first in their module
	DefaultMissingLine = "first"
)

// Default check thresholds
const (
	// DefaultMinScore disables the minimum score check
	DefaultMinScore = 0.0

	// DefaultMaxErrors disables the error count check
	DefaultMaxErrors = -1

	// DefaultMaxFatal fails on any fatal message
	DefaultMaxFatal = 0
)

// Default performance settings
const (
	// DefaultMaxGoroutines bounds concurrent output writers
	DefaultMaxGoroutines = 4

	// DefaultTimeoutSeconds bounds writing all outputs
	DefaultTimeoutSeconds = 300
)

// Config represents the main configuration structure
type Config struct {
	// Input holds input decoding configuration
	Input InputConfig `json:"input" mapstructure:"input" yaml:"input" toml:"input"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output" toml:"output"`

	// Report holds report model configuration
	Report ReportConfig `json:"report" mapstructure:"report" yaml:"report" toml:"report"`

	// Check holds quality gate thresholds
	Check CheckConfig `json:"check" mapstructure:"check" yaml:"check" toml:"check"`

	// Performance holds output concurrency settings
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance" toml:"performance"`
}

// InputConfig holds configuration for reading linter output
type InputConfig struct {
	// Format is the input shape: json (messages only) or jsonextended
	Format string `json:"format" mapstructure:"format" yaml:"format" toml:"format"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: html, text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format" toml:"format"`

	// Path is the output file; empty writes to stdout except for HTML
	Path string `json:"path" mapstructure:"path" yaml:"path" toml:"path"`

	// Title is the heading of HTML and text reports
	Title string `json:"title" mapstructure:"title" yaml:"title" toml:"title"`

	// Color enables ANSI colors in text output
	Color bool `json:"color" mapstructure:"color" yaml:"color" toml:"color"`
}

// ReportConfig holds configuration for building the report
type ReportConfig struct {
	// MissingLine places messages without a line "first" or "last"
	MissingLine string `json:"missing_line" mapstructure:"missing_line" yaml:"missing_line" toml:"missing_line"`

	// ExcludePaths are gitignore-style patterns; matching messages are dropped
	ExcludePaths []string `json:"exclude_paths" mapstructure:"exclude_paths" yaml:"exclude_paths" toml:"exclude_paths"`
}

// CheckConfig holds the thresholds of the check command
type CheckConfig struct {
	// MinScore is the lowest accepted score (0 = no minimum)
	MinScore float64 `json:"min_score" mapstructure:"min_score" yaml:"min_score" toml:"min_score"`

	// AllowRegression accepts a score lower than the previous run's
	AllowRegression bool `json:"allow_regression" mapstructure:"allow_regression" yaml:"allow_regression" toml:"allow_regression"`

	// MaxErrors is the highest accepted error message count (-1 = no limit)
	MaxErrors int `json:"max_errors" mapstructure:"max_errors" yaml:"max_errors" toml:"max_errors"`

	// MaxFatal is the highest accepted fatal message count (-1 = no limit)
	MaxFatal int `json:"max_fatal" mapstructure:"max_fatal" yaml:"max_fatal" toml:"max_fatal"`
}

// PerformanceConfig holds concurrency limits for writing outputs
type PerformanceConfig struct {
	// MaxGoroutines is the number of outputs written at once
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines" toml:"max_goroutines"`

	// TimeoutSeconds bounds the whole write phase
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format: DefaultInputFormat,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Path:   "",
			Title:  DefaultTitle,
			Color:  true,
		},
		Report: ReportConfig{
			MissingLine:  DefaultMissingLine,
			ExcludePaths: []string{},
		},
		Check: CheckConfig{
			MinScore:        DefaultMinScore,
			AllowRegression: false,
			MaxErrors:       DefaultMaxErrors,
			MaxFatal:        DefaultMaxFatal,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// ConfigFileCandidates lists the discovered config file names in order
func ConfigFileCandidates() []string {
	return []string{
		"lintreport.yaml",
		"lintreport.yml",
		".lintreport.toml",
		".lintreport.yml",
		"lintreport.json",
		".lintreport.json",
	}
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for configuration files from targetPath upward,
// then in the current directory, the XDG config directory and home
func findDefaultConfig(targetPath string) string {
	candidates := ConfigFileCandidates()

	if targetPath != "" && targetPath != "-" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validInputFormats := map[string]bool{
		"json":         true,
		"jsonextended": true,
	}
	if !validInputFormats[c.Input.Format] {
		return fmt.Errorf("invalid input.format '%s', must be one of: json, jsonextended", c.Input.Format)
	}

	validFormats := map[string]bool{
		"html": true,
		"text": true,
		"json": true,
		"yaml": true,
	}
	formats := SplitFormats(c.Output.Format)
	if len(formats) == 0 {
		return fmt.Errorf("output.format cannot be empty")
	}
	for _, format := range formats {
		if !validFormats[format] {
			return fmt.Errorf("invalid output.format '%s', must be one of: html, text, json, yaml", format)
		}
	}

	validPlacements := map[string]bool{
		"first": true,
		"last":  true,
	}
	if !validPlacements[c.Report.MissingLine] {
		return fmt.Errorf("invalid report.missing_line '%s', must be one of: first, last", c.Report.MissingLine)
	}

	if c.Check.MinScore > 10 {
		return fmt.Errorf("check.min_score must be <= 10, got %g", c.Check.MinScore)
	}

	if c.Check.MaxErrors < -1 {
		return fmt.Errorf("check.max_errors must be >= -1, got %d", c.Check.MaxErrors)
	}

	if c.Check.MaxFatal < -1 {
		return fmt.Errorf("check.max_fatal must be >= -1, got %d", c.Check.MaxFatal)
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

// SplitFormats splits a comma-separated format list, dropping blanks
func SplitFormats(value string) []string {
	var formats []string
	for _, f := range strings.Split(value, ",") {
		f = strings.TrimSpace(strings.ToLower(f))
		if f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// SaveConfig saves configuration to a file; the type follows the extension
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	v.Set("input", config.Input)
	v.Set("output", config.Output)
	v.Set("report", config.Report)
	v.Set("check", config.Check)
	v.Set("performance", config.Performance)

	return v.WriteConfig()
}
