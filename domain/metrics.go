package domain

import (
	"encoding/json"
	"sort"
)

// UnknownLabel is how renderers display the Unknown bucket
const UnknownLabel = "none"

// BucketKey is a frequency table key: either a known field value or the
// Unknown bucket for missing or empty values. A message whose field holds
// the literal text "none" lands in Known("none"), never in Unknown.
type BucketKey struct {
	value string
	known bool
}

// Known returns the bucket for a present value
func Known(value string) BucketKey {
	return BucketKey{value: value, known: true}
}

// Unknown returns the bucket for missing values
func Unknown() BucketKey {
	return BucketKey{}
}

// BucketOf maps a raw field value to its bucket; "" is Unknown
func BucketOf(value string) BucketKey {
	if value == "" {
		return Unknown()
	}
	return Known(value)
}

// IsKnown reports whether the key holds a real value
func (k BucketKey) IsKnown() bool {
	return k.known
}

// Value returns the stored value and whether it is known
func (k BucketKey) Value() (string, bool) {
	return k.value, k.known
}

// Label returns the display form of the key
func (k BucketKey) Label() string {
	if !k.known {
		return UnknownLabel
	}
	return k.value
}

// String implements fmt.Stringer
func (k BucketKey) String() string {
	return k.Label()
}

// MarshalJSON encodes Unknown as null
func (k BucketKey) MarshalJSON() ([]byte, error) {
	if !k.known {
		return []byte("null"), nil
	}
	return json.Marshal(k.value)
}

// UnmarshalJSON decodes null as Unknown
func (k *BucketKey) UnmarshalJSON(data []byte) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*k = Unknown()
		return nil
	}
	*k = Known(*v)
	return nil
}

// MarshalYAML encodes Unknown as null
func (k BucketKey) MarshalYAML() (interface{}, error) {
	if !k.known {
		return nil, nil
	}
	return k.value, nil
}

// FrequencyEntry is one row of a frequency table
type FrequencyEntry struct {
	Key   BucketKey `json:"key" yaml:"key"`
	Count int       `json:"count" yaml:"count"`
}

// FrequencyTable counts occurrences per bucket
type FrequencyTable struct {
	counts map[BucketKey]int
	total  int
}

// NewFrequencyTable creates an empty table
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[BucketKey]int)}
}

// Add counts one occurrence of key
func (t *FrequencyTable) Add(key BucketKey) {
	t.counts[key]++
	t.total++
}

// Clone returns an independent copy of the table
func (t *FrequencyTable) Clone() *FrequencyTable {
	if t == nil {
		return nil
	}
	c := &FrequencyTable{counts: make(map[BucketKey]int, len(t.counts)), total: t.total}
	for k, n := range t.counts {
		c.counts[k] = n
	}
	return c
}

// Count returns the number of occurrences of key
func (t *FrequencyTable) Count(key BucketKey) int {
	if t == nil {
		return 0
	}
	return t.counts[key]
}

// Len returns the number of distinct keys
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.counts)
}

// Total returns the sum of all counts
func (t *FrequencyTable) Total() int {
	if t == nil {
		return 0
	}
	return t.total
}

// Entries returns the rows ordered by count descending, then known
// values ascending, with the Unknown bucket last among equal counts.
func (t *FrequencyTable) Entries() []FrequencyEntry {
	if t == nil {
		return nil
	}
	entries := make([]FrequencyEntry, 0, len(t.counts))
	for k, c := range t.counts {
		entries = append(entries, FrequencyEntry{Key: k, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Key.known != b.Key.known {
			return a.Key.known
		}
		return a.Key.value < b.Key.value
	})
	return entries
}

// MarshalJSON encodes the table as its ordered entries
func (t *FrequencyTable) MarshalJSON() ([]byte, error) {
	entries := t.Entries()
	if entries == nil {
		entries = []FrequencyEntry{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON rebuilds a table from its ordered entries
func (t *FrequencyTable) UnmarshalJSON(data []byte) error {
	var entries []FrequencyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	t.counts = make(map[BucketKey]int, len(entries))
	t.total = 0
	for _, e := range entries {
		t.counts[e.Key] += e.Count
		t.total += e.Count
	}
	return nil
}

// MarshalYAML encodes the table as its ordered entries
func (t *FrequencyTable) MarshalYAML() (interface{}, error) {
	entries := t.Entries()
	if entries == nil {
		entries = []FrequencyEntry{}
	}
	return entries, nil
}

// Metrics holds the four frequency tables of a message set
type Metrics struct {
	Types   *FrequencyTable `json:"types" yaml:"types"`
	Modules *FrequencyTable `json:"modules" yaml:"modules"`
	Symbols *FrequencyTable `json:"symbols" yaml:"symbols"`
	Paths   *FrequencyTable `json:"paths" yaml:"paths"`
}

// NewMetrics creates metrics with four empty tables
func NewMetrics() Metrics {
	return Metrics{
		Types:   NewFrequencyTable(),
		Modules: NewFrequencyTable(),
		Symbols: NewFrequencyTable(),
		Paths:   NewFrequencyTable(),
	}
}

// Clone returns metrics whose tables are independent copies
func (m Metrics) Clone() Metrics {
	return Metrics{
		Types:   m.Types.Clone(),
		Modules: m.Modules.Clone(),
		Symbols: m.Symbols.Clone(),
		Paths:   m.Paths.Clone(),
	}
}

// TypeCount returns the number of messages of the given severity type
func (m Metrics) TypeCount(messageType string) int {
	return m.Types.Count(BucketOf(messageType))
}
