package spreadsheet

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/swapnilcelonis/ddgautomation/internal/ident"
)

// Cells come out of the Workbook typed: nil for an empty cell, bool, float64
// for numbers and string for text. The parsers below also accept any other
// numeric Go type so they can be used on decoded JSON values.

// ParseIdentifier returns the cleaned identifier form of a cell.
func ParseIdentifier(raw interface{}) string {
	return ident.Clean(raw)
}

// ParseNumber converts a cell into a weight. Empty, blank and boolean cells
// have no weight and return nil, as does anything that isn't a finite number.
// A number less than or equal to zero is treated as the default unit weight
// of 1.
func ParseNumber(raw interface{}) *float64 {
	v, ok := ToNumber(raw)
	if !ok {
		return nil
	}

	v = floorAtOne(v)
	return &v
}

// ParseMetadata converts a cell into a metadata value. Numbers follow the same
// floor as ParseNumber before being turned into a string. Everything else is
// trimmed and kept as is, an empty result returns nil.
func ParseMetadata(raw interface{}) *string {
	var s string

	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		s = strings.TrimSpace(v)
	case bool:
		s = strconv.FormatBool(v)
	default:
		if f, ok := ToNumber(v); ok {
			s = strconv.FormatFloat(floorAtOne(f), 'f', -1, 64)
		} else {
			s = strings.TrimSpace(cast.ToString(v))
		}
	}

	if s == "" {
		return nil
	}

	return &s
}

// floorAtOne is the shared policy of ParseNumber and ParseMetadata. Zero and
// negative magnitudes become 1.
func floorAtOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// ToNumber converts finite numbers and numeric strings. Booleans are never
// numbers even though cast would happily turn them into 0 or 1.
func ToNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case nil, bool:
		return 0, false
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		raw = v
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
