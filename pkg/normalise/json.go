package normalise

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const missingIdentifier = "N/A"

// Record is one upstream object with loosely typed fields.
type Record map[string]any

// Records turns a decoded JSON value into a list of objects. A single object becomes a
// one-element list and null or scalar values become an empty list.
func Records(raw any) []Record {
	switch value := raw.(type) {
	case []any:
		records := make([]Record, 0, len(value))
		for _, item := range value {
			if object, ok := item.(map[string]any); ok {
				records = append(records, Record(object))
			}
		}
		return records
	case []map[string]any:
		records := make([]Record, 0, len(value))
		for _, object := range value {
			records = append(records, Record(object))
		}
		return records
	case map[string]any:
		return []Record{Record(value)}
	case Record:
		return []Record{value}
	default:
		return []Record{}
	}
}

// Unwrap returns the value under the first present key when raw is an object, otherwise raw
// itself. Used for payloads nesting their rows under "data" or "records".
func Unwrap(raw any, keys ...string) any {
	object, ok := raw.(map[string]any)
	if !ok {
		return raw
	}

	for _, key := range keys {
		if value, exists := object[key]; exists && value != nil {
			return value
		}
	}

	return raw
}

func (r Record) lookup(keys []string) (any, bool) {
	for _, key := range keys {
		if value, exists := r[key]; exists && value != nil {
			return value, true
		}
	}

	return nil, false
}

// String reads the first present key as text. Numbers are formatted without trailing zeros.
func (r Record) String(keys ...string) string {
	value, ok := r.lookup(keys)
	if !ok {
		return ""
	}

	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

// Identifier is String with "N/A" substituted for a missing or empty value.
func (r Record) Identifier(keys ...string) string {
	value := r.String(keys...)
	if value == "" {
		return missingIdentifier
	}

	return value
}

// Float reads the first present key as a number, accepting numeric strings. Anything
// unparsable is 0.
func (r Record) Float(keys ...string) float64 {
	value, ok := r.lookup(keys)
	if !ok {
		return 0
	}

	switch typed := value.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case json.Number:
		parsed, _ := typed.Float64()
		return parsed
	case string:
		return ParseFloat(typed)
	default:
		return 0
	}
}

func (r Record) Int(keys ...string) int {
	return int(r.Float(keys...))
}

// ParseFloat never fails: absent or malformed values are 0.
func ParseFloat(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}

	return parsed
}
