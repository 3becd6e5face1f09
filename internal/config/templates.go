package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Strictness represents how strict the check command is by default
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// TemplateFormat is the file format of a generated configuration
type TemplateFormat string

const (
	TemplateFormatYAML TemplateFormat = "yaml"
	TemplateFormatTOML TemplateFormat = "toml"
)

// StrictnessPreset holds check thresholds for a strictness level
type StrictnessPreset struct {
	MinScore        float64
	AllowRegression bool
	MaxErrors       int
	MaxFatal        int
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			MinScore:        0,
			AllowRegression: true,
			MaxErrors:       -1, // No limit
			MaxFatal:        -1,
		},
		StrictnessStandard: {
			MinScore:        7,
			AllowRegression: true,
			MaxErrors:       -1,
			MaxFatal:        0,
		},
		StrictnessStrict: {
			MinScore:        9,
			AllowRegression: false,
			MaxErrors:       0,
			MaxFatal:        0,
		},
	}
}

// ConfigForStrictness returns the default config with the preset's thresholds
func ConfigForStrictness(strictness Strictness) *Config {
	cfg := DefaultConfig()
	preset, ok := GetStrictnessPresets()[strictness]
	if !ok {
		preset = GetStrictnessPresets()[StrictnessStandard]
	}
	cfg.Check = CheckConfig{
		MinScore:        preset.MinScore,
		AllowRegression: preset.AllowRegression,
		MaxErrors:       preset.MaxErrors,
		MaxFatal:        preset.MaxFatal,
	}
	return cfg
}

var sectionComments = map[string]string{
	"input":       "# Input shape: \"json\" (pylint -f json) or \"jsonextended\" (messages + stats + previous)",
	"output":      "# Output: format is html, text, json or yaml (comma-separated for several)\n# path is the output file, title the report heading, color enables ANSI colors",
	"report":      "# Report: missing_line places unlocated messages \"first\" or \"last\" in their module\n# exclude_paths drops messages whose path matches a gitignore-style pattern",
	"check":       "# Check: min_score (0 = off), allow_regression, max_errors and max_fatal (-1 = no limit)",
	"performance": "# Performance: outputs written concurrently and the timeout in seconds",
}

const templateHeader = "# lintreport configuration\n# Documentation: https://github.com/ludo-technologies/lintreport\n\n"

// GetFullConfigTemplate returns a documented configuration for strictness
func GetFullConfigTemplate(strictness Strictness, format TemplateFormat) (string, error) {
	return renderTemplate(ConfigForStrictness(strictness), format)
}

// GetMinimalConfigTemplate returns a config holding only output and check settings
func GetMinimalConfigTemplate(format TemplateFormat) (string, error) {
	cfg := DefaultConfig()
	minimal := struct {
		Output OutputConfig `yaml:"output" toml:"output"`
		Check  CheckConfig  `yaml:"check" toml:"check"`
	}{cfg.Output, cfg.Check}

	switch format {
	case TemplateFormatTOML:
		return encodeTOML(minimal)
	case TemplateFormatYAML, "":
		return encodeYAML(minimal)
	default:
		return "", fmt.Errorf("unsupported template format: %s", format)
	}
}

func renderTemplate(cfg *Config, format TemplateFormat) (string, error) {
	switch format {
	case TemplateFormatTOML:
		return encodeTOML(cfg)
	case TemplateFormatYAML, "":
		return encodeYAML(cfg)
	default:
		return "", fmt.Errorf("unsupported template format: %s", format)
	}
}

// encodeYAML encodes v with a comment above each known section
func encodeYAML(v any) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if comment, ok := sectionComments[key.Value]; ok {
				key.HeadComment = comment
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeTOML(v any) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}
