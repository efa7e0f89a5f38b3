package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The upstream registry is loosely typed: identifiers show up as numbers or
// strings, quantities as numbers, numeric strings or garbage, and nested
// objects are sometimes null or missing. The types below never fail to
// decode; anything unusable collapses to its zero value.

// ID is an upstream identifier. It is kept in its textual form so records
// from both collections join on the same key regardless of JSON type.
type ID string

// UnmarshalJSON accepts numbers and strings; any other shape yields "".
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*id = ""
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*id = ID(strings.TrimSpace(s))
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err == nil {
			*id = ID(canonicalNumber(n))
		}
	}
	return nil
}

// MarshalJSON writes integral identifiers as JSON numbers, anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Valid reports whether the identifier can be used as a join key.
// Empty and zero identifiers are treated as absent.
func (id ID) Valid() bool {
	return id != "" && id != "0"
}

func (id ID) String() string {
	return string(id)
}

func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return n.String()
}

// OptString is an optional free-text field.
type OptString struct {
	Value string
	Set   bool
}

// UnmarshalJSON keeps strings verbatim and numbers in their textual form.
func (s *OptString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*s = OptString{}
	if len(b) == 0 {
		return nil
	}
	switch {
	case b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			*s = OptString{Value: v, Set: true}
		}
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		*s = OptString{Value: string(b), Set: true}
	}
	return nil
}

// MarshalJSON writes the value or null.
func (s OptString) MarshalJSON() ([]byte, error) {
	if !s.Set {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Str builds a set OptString; handy for fixtures.
func Str(v string) OptString {
	return OptString{Value: v, Set: true}
}

// OrDefault returns the value when it is set and not blank, otherwise def.
func (s OptString) OrDefault(def string) string {
	if !s.Set || strings.TrimSpace(s.Value) == "" {
		return def
	}
	return s.Value
}

// Quantity is a non-negative upstream amount.
type Quantity float64

// UnmarshalJSON accepts numbers and numeric strings. Anything else,
// including negative or non-finite values, becomes 0.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*q = 0
	if len(b) == 0 {
		return nil
	}
	var f float64
	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		if err := json.Unmarshal(b, &f); err != nil {
			return nil
		}
	default:
		return nil
	}
	*q = Quantity(clampNonNegative(f))
	return nil
}

// LooseInt is an integer field parsed the way a leading-integer parse
// would: "12abc" is 12, 12.7 is 12, anything unparsable is 0.
type LooseInt int64

// UnmarshalJSON implements the leading-integer parse.
func (n *LooseInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = 0
	if len(b) == 0 {
		return nil
	}
	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		*n = LooseInt(ParseLeadingInt(s))
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return nil
		}
		f = clampNonNegative(math.Trunc(f))
		if f > math.MaxInt64 {
			return nil
		}
		*n = LooseInt(f)
	}
	return nil
}

// ParseLeadingInt parses the longest leading run of digits (after optional
// whitespace and sign). Negative and unparsable inputs give 0.
func ParseLeadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func clampNonNegative(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// IsObject reports whether b holds a JSON object.
func IsObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}
