package dataset

import (
	"encoding/json"
	"strings"
)

// Sanitize returns a copy of a decoded JSON value with every underscore
// removed from, and surrounding whitespace trimmed off, every string value.
// Object keys are left alone.
func Sanitize(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			out[k] = Sanitize(item)
		}
		return out

	case []interface{}:
		out := make([]interface{}, len(value))
		for i, item := range value {
			out[i] = Sanitize(item)
		}
		return out

	case string:
		return strings.TrimSpace(strings.ReplaceAll(value, "_", ""))

	default:
		return v
	}
}

// Sanitized encodes v to JSON, decodes it again and sanitizes the result.
func Sanitized(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var decoded interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil, err
	}

	return Sanitize(decoded), nil
}
