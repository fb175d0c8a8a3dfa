package spreadsheet

import (
	"strings"

	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// ColumnDescriptor is the parsed form of a case table distribution header.
type ColumnDescriptor struct {
	Type model.DistributionType

	// Alias is the cleaned header with its keyword removed.
	Alias string

	// Target is the pending reference of a VARIANT column. ATTRIBUTE columns
	// leave it nil, the reference resolver fills them in later.
	Target *string
}

// ParseColumnHeader turns a header cell into a ColumnDescriptor. The second
// return is false when the header cleans to an empty string and the column
// should be ignored. Keywords are matched ignoring case:
//   VARIANT_Peak      => VARIANT, alias Peak, target Peak
//   attribute_Channel => ATTRIBUTE, alias Channel, no target
//   Peak              => VARIANT, alias Peak, target Peak
func ParseColumnHeader(cell interface{}) (ColumnDescriptor, bool) {
	cleaned := ident.Clean(cell)
	if cleaned == "" {
		return ColumnDescriptor{}, false
	}

	// cleaned only holds ASCII so upper casing keeps the byte offsets intact.
	upper := strings.ToUpper(cleaned)

	switch {
	case strings.HasPrefix(upper, AttributeKeyword):
		return ColumnDescriptor{
			Type:  model.DistributionAttribute,
			Alias: cleaned[len(AttributeKeyword):],
		}, true

	case strings.HasPrefix(upper, VariantKeyword):
		alias := cleaned[len(VariantKeyword):]
		return ColumnDescriptor{
			Type:   model.DistributionVariant,
			Alias:  alias,
			Target: model.StringPtr(alias),
		}, true

	default:
		// No keyword means the column distributes over a variant group.
		return ColumnDescriptor{
			Type:   model.DistributionVariant,
			Alias:  cleaned,
			Target: model.StringPtr(cleaned),
		}, true
	}
}

// SplitWhereIs splits an ATTRIBUTE alias of the form <dimension>WHEREIS<item>.
// The marker is found ignoring case. found is false when there is no marker,
// in which case dimension is the whole alias.
func SplitWhereIs(alias string) (dimension, item string, found bool) {
	i := strings.Index(strings.ToUpper(alias), WhereIsMarker)
	if i == -1 {
		return alias, "", false
	}

	return alias[:i], alias[i+len(WhereIsMarker):], true
}
