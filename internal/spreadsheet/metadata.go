package spreadsheet

import (
	"strings"

	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// First metadata column of a metadata worksheet, column 1 names the item.
const firstMetadataColumn = 2

// MetadataHeader is the parsed header row of a metadata worksheet.
type MetadataHeader struct {
	// Columns are the declared metadata columns in worksheet order.
	Columns []*model.MetadataColumn

	// SourceColumns[i] is the 1 based worksheet column of Columns[i].
	SourceColumns []int
}

// ParseMetadataHeader reads the header row of a metadata worksheet. Every cell
// from the second column on that doesn't clean to an empty string declares a
// metadata column. When two or more cells clean to the same name, ignoring
// case and underscores, a *DuplicateColumnsError naming all of them is
// returned.
func ParseMetadataHeader(sheet string, header []interface{}) (*MetadataHeader, error) {
	h := &MetadataHeader{}

	type seenColumn struct {
		column int
		header string
	}
	seen := make(map[string][]seenColumn)
	var order []string

	for column := firstMetadataColumn; column <= len(header); column++ {
		name := ParseIdentifier(header[column-1])
		if name == "" {
			continue
		}

		key := columnKey(name)
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], seenColumn{column: column, header: headerText(header[column-1])})

		h.Columns = append(h.Columns, &model.MetadataColumn{ID: ident.NewID(), Name: name})
		h.SourceColumns = append(h.SourceColumns, column)
	}

	var duplicates []DuplicateColumn
	for _, key := range order {
		if len(seen[key]) < 2 {
			continue
		}
		for _, s := range seen[key] {
			duplicates = append(duplicates, DuplicateColumn{Sheet: sheet, Column: ColumnName(s.column), Header: s.header})
		}
	}

	if len(duplicates) != 0 {
		return nil, &DuplicateColumnsError{Duplicates: duplicates}
	}

	return h, nil
}

// columnKey compares column names the way they are written out, underscores
// are stripped from every output value.
func columnKey(name string) string {
	return strings.ReplaceAll(ident.Key(name), "_", "")
}

func headerText(c interface{}) string {
	if s, ok := c.(string); ok {
		return s
	}
	return ParseIdentifier(c)
}
