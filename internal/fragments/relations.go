package fragments

import (
	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// BuildObjectRelations reads the object to object worksheet. Rows are the
// source objects, columns the target objects.
func BuildObjectRelations(source spreadsheet.SheetSource, sheet string, tables *catalog.Tables, report *Report) (*model.RelationsFragment, error) {
	rows, err := readSheet(source, sheet)
	if err != nil {
		return nil, err
	}

	fragment := &model.RelationsFragment{Relations: []*model.ObjectRelation{}}
	m := newMatrix(rows, tables.Objects, report.Objects)

	for _, row := range m.rows {
		src, ok := lookup(tables.Objects, report.Objects, spreadsheet.Cell(row, 1))
		if !ok {
			continue
		}

		m.cells(row, func(target catalog.Entity, cell interface{}) {
			fragment.Relations = append(fragment.Relations, &model.ObjectRelation{
				SourceObjectID: src.ID,
				TargetObjectID: target.ID,
				Qualifier:      qualifier(cell),
			})
		})
	}

	return fragment, nil
}
