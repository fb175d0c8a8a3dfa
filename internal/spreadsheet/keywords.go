package spreadsheet

/*
 * keywords contains the prefixes that identify what a worksheet or a header
 * cell describes. A worksheet name carries a sheet prefix, for example:
 *    CaseTable_Region
 * In the above example CaseTable_ is the keyword and Region is the dimension.
 * Header cells of a case table worksheet carry a column keyword, for example:
 *    ATTRIBUTE_ChannelWHEREISonline
 */

import (
	"fmt"
	"strings"
)

// Column keywords. These are compared against the cleaned, upper cased header.
const (
	VariantKeyword   = "VARIANT_"
	AttributeKeyword = "ATTRIBUTE_"

	// WhereIsMarker splits an ATTRIBUTE alias into <dimension>WHEREIS<item>.
	WhereIsMarker = "WHEREIS"
)

type SheetKind int

const (
	UnknownSheet SheetKind = iota
	CaseTableSheet
	MetadataSheet
)

func (k SheetKind) String() string {
	switch k {
	case CaseTableSheet:
		return "CaseTableSheet"
	case MetadataSheet:
		return "MetadataSheet"
	default:
		return "UnknownSheet"
	}
}

// Keywords holds the worksheet name prefixes that drive the case table build.
type Keywords struct {
	CaseTablePrefix string
	MetadataPrefix  string
}

// DefaultKeywords are used when no prefixes are configured.
var DefaultKeywords = Keywords{
	CaseTablePrefix: "CaseTable_",
	MetadataPrefix:  "Metadata_",
}

// Validate makes sure both prefixes are set and that they can't be confused
// with each other. Otherwise the same worksheet could be read as both kinds.
func (k Keywords) Validate() error {
	switch {
	case strings.TrimSpace(k.CaseTablePrefix) == "":
		return fmt.Errorf("the case table sheet prefix must not be empty")
	case strings.TrimSpace(k.MetadataPrefix) == "":
		return fmt.Errorf("the metadata sheet prefix must not be empty")
	case strings.EqualFold(k.CaseTablePrefix, k.MetadataPrefix):
		return fmt.Errorf("case table and metadata sheets use the same prefix '%s'", k.CaseTablePrefix)
	}
	return nil
}

// ClassifySheet returns the kind of the worksheet with the given name and the
// rest of the name after its prefix. The prefix test ignores case. When one
// prefix is a prefix of the other the longer one wins.
func (k Keywords) ClassifySheet(name string) (SheetKind, string) {
	name = strings.TrimSpace(name)

	candidates := []struct {
		kind   SheetKind
		prefix string
	}{
		{CaseTableSheet, k.CaseTablePrefix},
		{MetadataSheet, k.MetadataPrefix},
	}

	if len(k.MetadataPrefix) > len(k.CaseTablePrefix) {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	for _, c := range candidates {
		if c.prefix != "" && hasPrefixFold(name, c.prefix) {
			return c.kind, name[len(c.prefix):]
		}
	}

	return UnknownSheet, ""
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
