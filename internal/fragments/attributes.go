package fragments

import (
	"github.com/sirupsen/logrus"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// BuildAttributeObjects reads the attribute to object worksheet. Each row
// names an attribute and marks the objects that carry it. Rows whose
// attribute isn't in the catalog are skipped.
func BuildAttributeObjects(source spreadsheet.SheetSource, sheet string, tables *catalog.Tables, report *Report) (*model.AttributesFragment, error) {
	rows, err := readSheet(source, sheet)
	if err != nil {
		return nil, err
	}

	fragment := &model.AttributesFragment{Attributes: []*model.AttributeObjects{}}
	m := newMatrix(rows, tables.Objects, report.Objects)

	for i, row := range m.rows {
		attr, ok := lookup(tables.Attributes, report.Attributes, spreadsheet.Cell(row, 1))
		if !ok {
			continue
		}

		entry := &model.AttributeObjects{ID: attr.ID, Name: attr.Name, ObjectIDs: []string{}}
		m.cells(row, func(object catalog.Entity, _ interface{}) {
			entry.ObjectIDs = append(entry.ObjectIDs, object.ID)
		})

		logrus.WithFields(logrus.Fields{
			"sheet":     sheet,
			"row":       i + 2,
			"attribute": attr.Name,
			"objects":   len(entry.ObjectIDs),
		}).Debug("Attribute linked")

		fragment.Attributes = append(fragment.Attributes, entry)
	}

	return fragment, nil
}
