// Package ident normalizes free-text labels into comparison keys and decides
// whether a string already is a catalog-issued identifier.
package ident

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// identifierPattern is the canonical random (version 4) identifier shape.
var identifierPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// Clean converts raw to its string form, drops all whitespace and every
// character outside [A-Za-z0-9_]. It never fails; nil yields "".
func Clean(raw interface{}) string {
	if raw == nil {
		return ""
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		s = fmt.Sprint(raw)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
		case r == '_', r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Key is the comparison key for raw: its cleaned form, upper cased. Two labels
// name the same identifier iff their keys are equal.
func Key(raw interface{}) string {
	return strings.ToUpper(Clean(raw))
}

// IsIdentifier reports whether s has the shape of an identifier the catalog
// issued. Values of this shape are already resolved.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(strings.TrimSpace(s))
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}
