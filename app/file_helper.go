package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/config"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides file and path utilities for the use cases
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// FileExists checks if a regular file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// EnsureParentDir creates the directory that will hold path
func (h *FileHelper) EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// FilterMessages drops messages whose path matches one of the
// gitignore-style patterns. It returns the kept messages and the number
// dropped. Messages without a path are always kept.
func (h *FileHelper) FilterMessages(messages []domain.Message, patterns []string) ([]domain.Message, int) {
	if len(patterns) == 0 {
		return messages, 0
	}

	matcher := ignore.CompileIgnoreLines(patterns...)
	kept := make([]domain.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Path != "" && matcher.MatchesPath(filepath.ToSlash(msg.Path)) {
			continue
		}
		kept = append(kept, msg)
	}
	return kept, len(messages) - len(kept)
}

// OutputTarget is where one rendered format goes
type OutputTarget struct {
	Format domain.OutputFormat
	// Path is the output file; empty means the request's writer
	Path string
}

// ResolveOutputTargets decides the destination of every requested format.
//
// A single format goes to outputPath when set. Without a path HTML goes to
// the default HTML file and the other formats go to the writer; a lone
// HTML format goes to the writer too when htmlToWriter is set. With
// several formats and a path, each format gets the path with its own
// extension, e.g. report.html and report.json.
func ResolveOutputTargets(formats []domain.OutputFormat, outputPath string, htmlToWriter bool) []OutputTarget {
	targets := make([]OutputTarget, 0, len(formats))
	for _, format := range formats {
		target := OutputTarget{Format: format}
		switch {
		case outputPath != "" && len(formats) == 1:
			target.Path = outputPath
		case outputPath != "":
			target.Path = withExtension(outputPath, format)
		case format == domain.OutputFormatHTML && !(htmlToWriter && len(formats) == 1):
			target.Path = config.DefaultOutputPath
		}
		targets = append(targets, target)
	}
	return targets
}

// withExtension swaps the extension of path for the format's extension
func withExtension(path string, format domain.OutputFormat) string {
	ext := "." + string(format)
	if format == domain.OutputFormatText {
		ext = ".txt"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
