package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MaxScore is the score of a run without any malus
const MaxScore = 10.0

// Score is a quality grade that may be undefined. An undefined score is
// distinct from 0 and is encoded as null.
type Score struct {
	value   float64
	defined bool
}

// NewScore returns a defined score
func NewScore(value float64) Score {
	return Score{value: value, defined: true}
}

// UndefinedScore returns a score that could not be computed
func UndefinedScore() Score {
	return Score{}
}

// IsDefined reports whether the score holds a value
func (s Score) IsDefined() bool {
	return s.defined
}

// Value returns the score and whether it is defined
func (s Score) Value() (float64, bool) {
	return s.value, s.defined
}

// Float returns the value, 0 when undefined. Check IsDefined first.
func (s Score) Float() float64 {
	return s.value
}

// Delta returns s minus previous, undefined unless both are defined
func (s Score) Delta(previous Score) Score {
	if !s.defined || !previous.defined {
		return UndefinedScore()
	}
	return NewScore(s.value - previous.value)
}

// String formats the score with two decimals or "n/a"
func (s Score) String() string {
	if !s.defined {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", s.value)
}

// MarshalJSON encodes an undefined score as null. Infinite and NaN
// scores, which JSON numbers cannot hold, are encoded as the strings
// "+Inf", "-Inf" and "NaN".
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.defined {
		return []byte("null"), nil
	}
	if math.IsInf(s.value, 0) || math.IsNaN(s.value) {
		return json.Marshal(strconv.FormatFloat(s.value, 'g', -1, 64))
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON decodes null as an undefined score
func (s *Score) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		var text string
		if json.Unmarshal(data, &text) != nil {
			return err
		}
		f, perr := strconv.ParseFloat(text, 64)
		if perr != nil || !(math.IsInf(f, 0) || math.IsNaN(f)) {
			return err
		}
		*s = NewScore(f)
		return nil
	}
	if v == nil {
		*s = UndefinedScore()
		return nil
	}
	*s = NewScore(*v)
	return nil
}

// MarshalYAML encodes an undefined score as null
func (s Score) MarshalYAML() (interface{}, error) {
	if !s.defined {
		return nil, nil
	}
	return s.value, nil
}
