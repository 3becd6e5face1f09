package service

import (
	"time"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.ReportRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	req := c.convertToReportRequest(cfg)
	req.ConfigPath = path
	return req, nil
}

// LoadDefaultConfig discovers a configuration file from target upward and
// falls back to the built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig(target string) *domain.ReportRequest {
	cfg, err := config.LoadConfigWithTarget("", target)
	if err == nil {
		return c.convertToReportRequest(cfg)
	}

	// Fall back to hardcoded default configuration
	return c.convertToReportRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.ReportRequest, override *domain.ReportRequest) *domain.ReportRequest {
	// Start with base configuration
	merged := *base

	// Input always comes from the command arguments when given
	if override.InputPath != "" {
		merged.InputPath = override.InputPath
	}

	if override.InputFormat != "" {
		merged.InputFormat = override.InputFormat
	}

	// Output configuration
	if len(override.OutputFormats) > 0 {
		merged.OutputFormats = override.OutputFormats
	}

	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	if override.Title != "" {
		merged.Title = override.Title
	}

	// Report options
	if override.MissingLine != "" {
		merged.MissingLine = override.MissingLine
	}

	if len(override.ExcludePaths) > 0 {
		merged.ExcludePaths = append(append([]string{}, base.ExcludePaths...), override.ExcludePaths...)
	}

	if override.MaxConcurrency > 0 {
		merged.MaxConcurrency = override.MaxConcurrency
	}

	if override.Timeout > 0 {
		merged.Timeout = override.Timeout
	}

	// Config path is always from override if provided
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// convertToReportRequest converts a Config to ReportRequest
func (c *ConfigurationLoaderImpl) convertToReportRequest(cfg *config.Config) *domain.ReportRequest {
	formats := make([]domain.OutputFormat, 0, 1)
	for _, f := range config.SplitFormats(cfg.Output.Format) {
		formats = append(formats, domain.OutputFormat(f))
	}

	return &domain.ReportRequest{
		// The input path is set by the caller, not from config
		InputFormat: domain.InputFormat(cfg.Input.Format),

		// Output settings
		OutputFormats: formats,
		OutputPath:    cfg.Output.Path,
		Title:         cfg.Output.Title,
		Color:         cfg.Output.Color,

		// Report settings
		MissingLine:  domain.MissingLinePlacement(cfg.Report.MissingLine),
		ExcludePaths: append([]string{}, cfg.Report.ExcludePaths...),

		Thresholds: domain.CheckThresholds{
			MinScore:        cfg.Check.MinScore,
			AllowRegression: cfg.Check.AllowRegression,
			MaxErrors:       cfg.Check.MaxErrors,
			MaxFatal:        cfg.Check.MaxFatal,
		},

		MaxConcurrency: cfg.Performance.MaxGoroutines,
		Timeout:        time.Duration(cfg.Performance.TimeoutSeconds) * time.Second,
	}
}

// ValidateConfig validates a merged request
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.ReportRequest) error {
	switch req.InputFormat {
	case domain.InputFormatSimple, domain.InputFormatExtended:
	default:
		return domain.NewValidationError("invalid input format: " + string(req.InputFormat) + " (must be one of: json, jsonextended)")
	}

	if len(req.OutputFormats) == 0 {
		return domain.NewValidationError("at least one output format is required")
	}
	for _, f := range req.OutputFormats {
		switch f {
		case domain.OutputFormatHTML, domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
		default:
			return domain.NewValidationError("invalid output format: " + string(f) + " (must be one of: html, text, json, yaml)")
		}
	}

	switch req.MissingLine {
	case domain.MissingLineFirst, domain.MissingLineLast:
	default:
		return domain.NewValidationError("invalid missing line placement: " + string(req.MissingLine) + " (must be one of: first, last)")
	}

	return nil
}
