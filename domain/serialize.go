package domain

import (
	"encoding/json"
	"sort"
)

// StringSet is a set of strings. Stats produced by a linter host may carry
// sets (e.g. module dependencies); every encoder writes them as a sorted
// sequence since only membership is meaningful.
type StringSet map[string]struct{}

// NewStringSet creates a set holding values
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Contains reports whether v is in the set
func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// MarshalYAML encodes the set as a sorted sequence
func (s StringSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

// NormalizeSets returns v with every StringSet replaced by its sorted
// member list, recursing through maps and slices. Codecs without
// marshaler hooks (msgpack) encode the normalized value.
func NormalizeSets(v any) any {
	switch x := v.(type) {
	case StringSet:
		return x.Sorted()
	case map[string]struct{}:
		return StringSet(x).Sorted()
	case RunStats:
		if x == nil {
			return nil
		}
		return RunStats(normalizeMap(x))
	case map[string]any:
		if x == nil {
			return nil
		}
		return normalizeMap(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = NormalizeSets(item)
		}
		return out
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = NormalizeSets(item)
	}
	return out
}

// Normalized returns a copy of the record safe for any encoder
func (r ExtendedReport) Normalized() ExtendedReport {
	out := ExtendedReport{Messages: r.Messages}
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	if r.Stats != nil {
		out.Stats = NormalizeSets(r.Stats).(RunStats)
	}
	if r.Previous != nil {
		out.Previous = NormalizeSets(r.Previous).(RunStats)
	}
	return out
}
