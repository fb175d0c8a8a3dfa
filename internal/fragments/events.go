package fragments

import (
	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// BuildEventObjects reads the event to object worksheet. Each row names an
// event, a marked cell links it to the object of that column and its text
// is the qualifier of the link.
func BuildEventObjects(source spreadsheet.SheetSource, sheet string, tables *catalog.Tables, report *Report) (*model.EventsFragment, error) {
	rows, err := readSheet(source, sheet)
	if err != nil {
		return nil, err
	}

	fragment := &model.EventsFragment{Events: []*model.EventObjects{}}
	m := newMatrix(rows, tables.Objects, report.Objects)

	for _, row := range m.rows {
		event, ok := lookup(tables.Events, report.Events, spreadsheet.Cell(row, 1))
		if !ok {
			continue
		}

		entry := &model.EventObjects{ID: event.ID, Name: event.Name, Objects: []*model.EventObject{}}
		m.cells(row, func(object catalog.Entity, cell interface{}) {
			entry.Objects = append(entry.Objects, &model.EventObject{ObjectID: object.ID, Qualifier: qualifier(cell)})
		})

		fragment.Events = append(fragment.Events, entry)
	}

	return fragment, nil
}
