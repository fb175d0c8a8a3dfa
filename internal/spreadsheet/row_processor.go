package spreadsheet

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// First distribution column of a case table worksheet. Column 1 is the item
// value and column 2 the standard distribution.
const firstDistributionColumn = 3

// rowProcessor handles processing of each row of a case table worksheet
type rowProcessor struct {
	// sheet is the worksheet name, used for logging
	sheet string

	// dimension is the dimension the worksheet is loaded into
	dimension *model.Dimension

	// columns is built while processing the header row. columns[i] is the
	// 1 based worksheet column that dimension.DistributionItems[i] was read
	// from. Empty header cells don't get a distribution item so the two can
	// differ.
	columns []int
}

func newRowProcessor(sheet, name string) *rowProcessor {
	return &rowProcessor{
		sheet:     sheet,
		dimension: model.NewDimension(ident.NewID(), name),
	}
}

// processHeaderRow processes the first row of the worksheet. Every cell from
// the third column on describes a distribution column, its type is determined
// by looking at its keyword prefix.
func (r *rowProcessor) processHeaderRow(row []interface{}) {
	for column := firstDistributionColumn; column <= len(row); column++ {
		desc, ok := ParseColumnHeader(row[column-1])
		if !ok {
			// blank header so nothing to process
			continue
		}

		r.dimension.AddDistributionItem(&model.DistributionItem{
			ID:           ident.NewID(),
			Type:         desc.Type,
			ReferencedID: desc.Target,
			Alias:        desc.Alias,
		})
		r.columns = append(r.columns, column)
	}
}

// processItemRow processes a row that has an item on it. A row without any
// value, or without a value in column 1, is skipped. Every item gets exactly
// one distribution per distribution item, cells missing from a short row are
// nil.
func (r *rowProcessor) processItemRow(row []interface{}, rowIndex int) {
	if IsEmptyRow(row) {
		return
	}

	value := ParseIdentifier(Cell(row, 1))
	if value == "" {
		logrus.WithFields(logrus.Fields{"sheet": r.sheet, "row": rowIndex}).Debug("Skipping row without an item value")
		return
	}

	item := model.NewItem(ident.NewID(), value, ParseNumber(Cell(row, 2)))
	for i, di := range r.dimension.DistributionItems {
		item.AddDistribution(&model.Distribution{
			DistributionItemID: di.ID,
			Value:              ParseNumber(Cell(row, r.columns[i])),
		})
	}

	r.dimension.AddItem(item)
}

// Cell returns the cell in the 1 based column, or nil when the row is too short.
func Cell(row []interface{}, column int) interface{} {
	if column < 1 || column > len(row) {
		return nil
	}
	return row[column-1]
}

// isEmptyCell returns true for nil cells and for text cells that are blank.
func isEmptyCell(c interface{}) bool {
	switch v := c.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// IsEmptyRow reports whether every cell of the row is empty.
func IsEmptyRow(row []interface{}) bool {
	for _, c := range row {
		if !isEmptyCell(c) {
			return false
		}
	}
	return true
}
