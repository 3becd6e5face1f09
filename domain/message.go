package domain

import (
	"encoding/json"
	"math"
)

// Severity categories emitted by pylint-compatible tools
const (
	MessageTypeConvention = "convention"
	MessageTypeRefactor   = "refactor"
	MessageTypeWarning    = "warning"
	MessageTypeError      = "error"
	MessageTypeFatal      = "fatal"
	MessageTypeInfo       = "info"
)

// Message is one diagnostic finding as emitted by the linter.
//
// Only Type, Module, Path, Symbol and Line are interpreted; the remaining
// fields are carried through to renderers untouched.
type Message struct {
	Type      string `json:"type" yaml:"type" msgpack:"type"`
	Module    string `json:"module" yaml:"module" msgpack:"module"`
	Obj       string `json:"obj" yaml:"obj" msgpack:"obj"`
	Line      *int   `json:"line" yaml:"line" msgpack:"line"`
	Column    *int   `json:"column" yaml:"column" msgpack:"column"`
	EndLine   *int   `json:"endLine,omitempty" yaml:"endLine,omitempty" msgpack:"endLine,omitempty"`
	EndColumn *int   `json:"endColumn,omitempty" yaml:"endColumn,omitempty" msgpack:"endColumn,omitempty"`
	Path      string `json:"path" yaml:"path" msgpack:"path"`
	Symbol    string `json:"symbol" yaml:"symbol" msgpack:"symbol"`
	Message   string `json:"message" yaml:"message" msgpack:"message"`
	MessageID string `json:"message-id" yaml:"message-id" msgpack:"message-id"`
}

// HasLine reports whether the message is attached to a source line
func (m Message) HasLine() bool {
	return m.Line != nil
}

// Clone returns a copy that shares no position pointers with m
func (m Message) Clone() Message {
	m.Line = cloneInt(m.Line)
	m.Column = cloneInt(m.Column)
	m.EndLine = cloneInt(m.EndLine)
	m.EndColumn = cloneInt(m.EndColumn)
	return m
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// LineNumber returns the line or 0 when the message has none
func (m Message) LineNumber() int {
	if m.Line == nil {
		return 0
	}
	return *m.Line
}

// ModuleKey identifies the module a message belongs to
type ModuleKey struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// KeyOf returns the grouping key of a message
func KeyOf(m Message) ModuleKey {
	return ModuleKey{Name: m.Module, Path: m.Path}
}

// ModuleGroup holds the messages of one module ordered by line
type ModuleGroup struct {
	Key      ModuleKey `json:"module" yaml:"module"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// Stat keys read by the score evaluator
const (
	StatStatement  = "statement"
	StatError      = "error"
	StatWarning    = "warning"
	StatRefactor   = "refactor"
	StatConvention = "convention"
)

// RunStats is the statistics mapping of one linter run. Keys other than
// the counters used for scoring are opaque and preserved as decoded.
type RunStats map[string]any

// Number returns the numeric value stored under key. Non-numeric and
// missing values report false.
func (s RunStats) Number(key string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// NumberOr returns the numeric value stored under key or def
func (s RunStats) NumberOr(key string, def float64) float64 {
	if v, ok := s.Number(key); ok {
		return v
	}
	return def
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ExtendedReport is the "jsonextended" input shape: messages plus the
// statistics of the current and previous runs.
type ExtendedReport struct {
	Messages []Message `json:"messages" yaml:"messages" msgpack:"messages"`
	Stats    RunStats  `json:"stats" yaml:"stats" msgpack:"stats"`
	Previous RunStats  `json:"previous" yaml:"previous" msgpack:"previous"`
}
