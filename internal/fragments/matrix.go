// Package fragments builds the JSON fragments that describe how the entities
// of the catalog relate to each other. Each fragment is read from one
// worksheet (or a family of worksheets for variants) and names entities the
// way the workbook author wrote them, those names are looked up in the
// catalog to get their ids.
package fragments

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
)

// Report collects the names a builder couldn't find in the catalog.
type Report struct {
	Attributes *catalog.Unresolved
	Events     *catalog.Unresolved
	Objects    *catalog.Unresolved
	Variants   *catalog.Unresolved
}

func NewReport() *Report {
	return &Report{
		Attributes: catalog.NewUnresolved("attribute"),
		Events:     catalog.NewUnresolved("event"),
		Objects:    catalog.NewUnresolved("object"),
		Variants:   catalog.NewUnresolved("variant"),
	}
}

// Log reports every unresolved name, suggesting the closest catalog name.
func (r *Report) Log(sample int, tables *catalog.Tables, variants *catalog.Table) {
	r.Attributes.Report(sample, tables.Attributes)
	r.Events.Report(sample, tables.Events)
	r.Objects.Report(sample, tables.Objects)
	r.Variants.Report(sample, variants)
}

// lookup finds name in table, recording it in unresolved when it isn't there.
// Names that clean to nothing are ignored.
func lookup(table *catalog.Table, unresolved *catalog.Unresolved, name interface{}) (catalog.Entity, bool) {
	cleaned := ident.Clean(name)
	if cleaned == "" {
		return catalog.Entity{}, false
	}

	e, ok := table.Lookup(cleaned)
	if !ok {
		unresolved.Add(strings.TrimSpace(cast.ToString(name)))
	}

	return e, ok
}

// readSheet returns the rows of a worksheet that must exist.
func readSheet(source spreadsheet.SheetSource, sheet string) ([][]interface{}, error) {
	if err := spreadsheet.RequireSheet(source, sheet); err != nil {
		return nil, err
	}

	return source.Rows(sheet)
}

// matrix is a worksheet whose first row names the column entities and whose
// first column names the row entities:
//     |label  |Order|Item|
//     |Create |x    |    |
//     |Ship   |     |1   |
type matrix struct {
	// columns[i] is the entity of worksheet column i+2, ok is false for
	// columns that couldn't be resolved.
	columns []matrixColumn
	rows    [][]interface{}
}

type matrixColumn struct {
	entity catalog.Entity
	ok     bool
}

func newMatrix(rows [][]interface{}, table *catalog.Table, unresolved *catalog.Unresolved) *matrix {
	m := &matrix{}
	if len(rows) == 0 {
		return m
	}

	header := rows[0]
	for column := 2; column <= len(header); column++ {
		e, ok := lookup(table, unresolved, header[column-1])
		m.columns = append(m.columns, matrixColumn{entity: e, ok: ok})
	}
	m.rows = rows[1:]

	return m
}

// cells calls fn for every marked cell of row whose column resolved.
func (m *matrix) cells(row []interface{}, fn func(column catalog.Entity, cell interface{})) {
	for i, column := range m.columns {
		if !column.ok {
			continue
		}

		cell := spreadsheet.Cell(row, i+2)
		if !isMark(cell) {
			continue
		}
		fn(column.entity, cell)
	}
}

var noMarks = map[string]bool{"0": true, "FALSE": true, "NO": true, "N": true, "-": true}

// isMark reports whether a matrix cell links its row and column. Any non
// empty cell does, except the explicit negatives 0, false, no, n and -.
func isMark(cell interface{}) bool {
	switch v := cell.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	}

	s := strings.ToUpper(strings.TrimSpace(cast.ToString(cell)))
	return s != "" && !noMarks[s]
}

var bareMarks = map[string]bool{"X": true, "1": true, "TRUE": true}

// qualifier returns the text of a marked cell. Bare marks (x, 1 and true)
// only link and carry no qualifier.
func qualifier(cell interface{}) string {
	switch v := cell.(type) {
	case bool:
		return ""
	case float64:
		if v == 1 {
			return ""
		}
	}

	s := strings.TrimSpace(cast.ToString(cell))
	if bareMarks[strings.ToUpper(s)] {
		return ""
	}

	return s
}
