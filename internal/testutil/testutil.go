// Package testutil provides helper functions for testing lintreport components
package testutil

import (
	"math"
	"testing"

	"github.com/ludo-technologies/lintreport/domain"
)

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// NewMessage creates a message located at line in the given module
func NewMessage(module, path string, line int) domain.Message {
	return domain.Message{
		Type:      domain.MessageTypeConvention,
		Module:    module,
		Path:      path,
		Line:      IntPtr(line),
		Column:    IntPtr(0),
		Symbol:    "missing-docstring",
		Message:   "Missing docstring",
		MessageID: "C0111",
	}
}

// NewUnlocatedMessage creates a message without line and column
func NewUnlocatedMessage(module, path string) domain.Message {
	msg := NewMessage(module, path, 0)
	msg.Line = nil
	msg.Column = nil
	return msg
}

// WithType returns msg with its severity type replaced
func WithType(msg domain.Message, messageType string) domain.Message {
	msg.Type = messageType
	return msg
}

// WithSymbol returns msg with its symbol replaced
func WithSymbol(msg domain.Message, symbol string) domain.Message {
	msg.Symbol = symbol
	return msg
}

// SampleMessages returns a small mixed message set over two modules
func SampleMessages() []domain.Message {
	return []domain.Message{
		WithType(NewMessage("pkg.b", "pkg/b.py", 12), domain.MessageTypeWarning),
		NewMessage("pkg.a", "pkg/a.py", 5),
		WithSymbol(WithType(NewMessage("pkg.a", "pkg/a.py", 2), domain.MessageTypeError), "undefined-variable"),
		NewUnlocatedMessage("pkg.a", "pkg/a.py"),
		WithType(NewMessage("pkg.b", "pkg/b.py", 3), domain.MessageTypeRefactor),
	}
}

// SampleStats returns run statistics with a defined score of 9.4
func SampleStats() domain.RunStats {
	return domain.RunStats{
		domain.StatStatement:  100,
		domain.StatError:      1,
		domain.StatWarning:    1,
		domain.StatRefactor:   0,
		domain.StatConvention: 0,
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}

// AssertScore fails the test unless score is defined and close to want
func AssertScore(t *testing.T, want float64, score domain.Score) {
	t.Helper()
	got, ok := score.Value()
	if !ok {
		t.Errorf("Expected score %.4f, got undefined", want)
		return
	}
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected score %.4f, got %.4f", want, got)
	}
}

// AssertUndefinedScore fails the test if score is defined
func AssertUndefinedScore(t *testing.T, score domain.Score) {
	t.Helper()
	if score.IsDefined() {
		t.Errorf("Expected undefined score, got %s", score)
	}
}
