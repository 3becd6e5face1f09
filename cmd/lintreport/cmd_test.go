package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/service"
)

const simpleInput = `[{"type": "error", "module": "pkg.a", "obj": "run", "line": 2, "column": 4,
	"path": "pkg/a.py", "symbol": "undefined-variable", "message": "Undefined variable 'x'", "message-id": "E0602"}]`

const extendedInput = `{
	"messages": [
		{"type": "error", "module": "pkg.a", "obj": "run", "line": 2, "column": 4, "path": "pkg/a.py",
		 "symbol": "undefined-variable", "message": "Undefined variable 'x'", "message-id": "E0602"},
		{"type": "convention", "module": "pkg.b", "obj": "", "line": 1, "column": 0, "path": "pkg/b.py",
		 "symbol": "missing-docstring", "message": "Missing module docstring", "message-id": "C0111"}
	],
	"stats": {"statement": 50, "error": 1, "warning": 0, "refactor": 0, "convention": 1},
	"previous": {"statement": 50, "error": 0, "warning": 0, "refactor": 0, "convention": 1}
}`

// isolateConfig keeps config discovery away from the user's files
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("LINTREPORT_CONFIG", "")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"render", "check", "extend", "init", "version"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("Missing subcommand %s", name)
		}
	}
	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("Missing persistent --verbose flag")
	}
}

func TestRenderCmd_FlagsExist(t *testing.T) {
	cmd := renderCmd()

	expectedFlags := []string{"input-format", "format", "output", "config", "title", "missing-line", "exclude", "no-color", "open"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}

	shortFlags := map[string]string{"f": "input-format", "o": "output", "c": "config"}
	for short, long := range shortFlags {
		if flag := cmd.Flags().ShorthandLookup(short); flag == nil || flag.Name != long {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}

	if def := cmd.Flags().Lookup("format").DefValue; def != "html" {
		t.Errorf("Expected default format to be 'html', got '%s'", def)
	}
}

func TestRenderCmd_JSONToStdout(t *testing.T) {
	isolateConfig(t)
	input := writeFile(t, t.TempDir(), "run.json", extendedInput)

	stdout, _, err := runCLI(t, "", "render", "-f", "jsonextended", "--format", "json", input)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var report service.ReportJSON
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, stdout)
	}
	// 10 - 10*(5+1)/50 and 10 - 10*1/50
	if got, ok := report.Score.Value(); !ok || math.Abs(got-8.8) > 1e-9 {
		t.Errorf("Expected score 8.8, got %s", report.Score)
	}
	if got, ok := report.PreviousScore.Value(); !ok || math.Abs(got-9.8) > 1e-9 {
		t.Errorf("Expected previous score 9.8, got %s", report.PreviousScore)
	}
	if len(report.Modules) != 2 || report.Modules[0].Key.Path != "pkg/a.py" {
		t.Errorf("Unexpected modules: %+v", report.Modules)
	}
}

func TestRenderCmd_Stdin(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := runCLI(t, simpleInput, "render", "--format", "text", "--no-color", "--title", "CI run")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{"CI run", "pkg/a.py", "undefined-variable", "n/a"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected text output to contain %q\n%s", want, stdout)
		}
	}
}

func TestRenderCmd_HTMLFile(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "pylint.json", simpleInput)
	outPath := filepath.Join(dir, "out", "report.html")

	stdout, stderr, err := runCLI(t, "", "render", "-o", outPath, input)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("Expected nothing on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "Report saved to:") {
		t.Errorf("Expected save notice, got %q", stderr)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("HTML report not written: %v", err)
	}
	if !strings.Contains(string(content), "undefined-variable") {
		t.Error("HTML report is missing the message")
	}
}

func TestRenderCmd_HTMLToPipe(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, stderr, err := runCLI(t, simpleInput, "render")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "<!DOCTYPE html>") || !strings.Contains(stdout, "undefined-variable") {
		t.Errorf("Expected the HTML report on stdout, got %q", stdout)
	}
	if strings.Contains(stderr, "Report saved to:") {
		t.Errorf("Expected no save notice, got %q", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "lintreport.html")); err == nil {
		t.Error("Default HTML file should not be written when stdout is not a terminal")
	}
}

func TestRenderCmd_ConfigFile(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "pylint.json", simpleInput)
	configPath := writeFile(t, dir, "lintreport.yaml", `
output:
  format: yaml
report:
  exclude_paths:
    - pkg/
`)

	stdout, stderr, err := runCLI(t, "", "render", "--config", configPath, input)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(stdout, "total_messages: 0") {
		t.Errorf("Expected YAML report without messages, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "Excluded 1 messages") {
		t.Errorf("Expected exclusion notice, got %q", stderr)
	}
}

func TestRenderCmd_Errors(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "pylint.json", simpleInput)

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"invalid output format", []string{"render", "--format", "pdf", input}, domain.ErrCodeInvalidInput},
		{"invalid input format", []string{"render", "-f", "xml", input}, domain.ErrCodeInvalidInput},
		{"missing file", []string{"render", "--format", "json", filepath.Join(dir, "missing.json")}, domain.ErrCodeFileNotFound},
		{"missing config", []string{"render", "--config", filepath.Join(dir, "none.yaml"), input}, domain.ErrCodeConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			var domainErr domain.DomainError
			if !errors.As(err, &domainErr) {
				t.Fatalf("Expected DomainError, got %v", err)
			}
			if domainErr.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, domainErr.Code)
			}
		})
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"input-format", "config", "min-score", "allow-regression", "max-errors", "max-fatal", "exclude", "json"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_ExitCodes(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "run.json", extendedInput)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"passes", []string{"check", "-f", "jsonextended", "--allow-regression", "--min-score", "8", input}, 0},
		{"below min score", []string{"check", "-f", "jsonextended", "--allow-regression", "--min-score", "9", input}, 1},
		{"regression", []string{"check", "-f", "jsonextended", input}, 1},
		{"too many errors", []string{"check", "-f", "jsonextended", "--allow-regression", "--max-errors", "0", input}, 1},
		{"missing input", []string{"check", filepath.Join(dir, "missing.json")}, 2},
		{"bad input format", []string{"check", "-f", "xml", input}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("Expected check to pass, got %v", err)
				}
				return
			}

			var exitErr *CheckExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("Expected CheckExitError, got %v", err)
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("Expected exit code %d, got %d (%s)", tt.wantCode, exitErr.Code, exitErr.Message)
			}
		})
	}
}

func TestCheckCmd_JSON(t *testing.T) {
	isolateConfig(t)
	input := writeFile(t, t.TempDir(), "run.json", extendedInput)

	stdout, _, err := runCLI(t, "", "check", "--json", "-f", "jsonextended", input)

	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("Expected exit code 1, got %v", err)
	}

	var result domain.CheckResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, stdout)
	}
	if result.Passed || result.ExitCode != 1 {
		t.Errorf("Expected failed result, got %+v", result)
	}
	if result.Summary.Errors != 1 || result.Summary.TotalMessages != 2 {
		t.Errorf("Unexpected summary: %+v", result.Summary)
	}
}

func TestCheckCmd_TextOutput(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := runCLI(t, simpleInput, "check", "--min-score", "5")
	if err != nil {
		t.Fatalf("Undefined score should not fail the check: %v", err)
	}
	if !strings.Contains(stdout, "PASS") || !strings.Contains(stdout, "[WARN] min-score") {
		t.Errorf("Unexpected output:\n%s", stdout)
	}
}

func TestExtendCmd(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "pylint.json", simpleInput)
	stats := writeFile(t, dir, "stats.json", `{"statement": 10, "error": 1}`)

	stdout, _, err := runCLI(t, "", "extend", "--stats", stats, input)
	if err != nil {
		t.Fatalf("extend failed: %v", err)
	}

	var record domain.ExtendedReport
	if err := json.Unmarshal([]byte(stdout), &record); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, stdout)
	}
	if len(record.Messages) != 1 || record.Messages[0].Symbol != "undefined-variable" {
		t.Errorf("Unexpected messages: %+v", record.Messages)
	}
	if v, ok := record.Stats.Number(domain.StatStatement); !ok || v != 10 {
		t.Errorf("Expected statement 10, got %v", record.Stats)
	}
	if record.Previous != nil {
		t.Errorf("Expected null previous, got %v", record.Previous)
	}
}

func TestExtendCmd_ThenRender(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "pylint.json", simpleInput)
	stats := writeFile(t, dir, "stats.yaml", "statement: 10\nerror: 1\n")
	record := filepath.Join(dir, "run.msgpack")

	if _, _, err := runCLI(t, "", "extend", "--stats", stats, "-o", record, input); err != nil {
		t.Fatalf("extend failed: %v", err)
	}

	stdout, _, err := runCLI(t, "", "render", "-f", "jsonextended", "--format", "json", record)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	var report service.ReportJSON
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	if got, ok := report.Score.Value(); !ok || math.Abs(got-5.0) > 1e-9 {
		t.Errorf("Expected score 5.0, got %s", report.Score)
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, "lintreport") || !strings.Contains(stdout, Version) {
		t.Errorf("Unexpected version output: %q", stdout)
	}

	stdout, _, err = runCLI(t, "", "version", "--verbose")
	if err != nil {
		t.Fatalf("version --verbose failed: %v", err)
	}
	if !strings.Contains(stdout, "commit:") {
		t.Errorf("Expected full version, got %q", stdout)
	}
}
