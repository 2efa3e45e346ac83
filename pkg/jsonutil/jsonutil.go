// Package jsonutil implements the lenient JSON-text-column codec used by the
// repositories. List-valued fields are stored as serialized text; malformed or
// absent content never raises, it yields the caller's fallback.
package jsonutil

import (
	"encoding/json"
)

// ParseStringList decodes a JSON-encoded string list from a text column.
// Empty or malformed input yields the fallback unchanged.
func ParseStringList(raw string, fallback []string) []string {
	if raw == "" {
		return fallback
	}

	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return fallback
	}
	if out == nil {
		return fallback
	}
	return out
}

// ParseObject decodes an arbitrary JSON value from a text column into dst.
// Returns false (leaving dst untouched) for empty or malformed input.
func ParseObject(raw string, dst any) bool {
	if raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

// StringifyStringList serializes a string list in compact form for storage.
// A nil list serializes as the empty list.
func StringifyStringList(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Stringify serializes any value in compact form for storage.
func Stringify(value any) string {
	b, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(b)
}
