package processor

import (
	"github.com/sirupsen/logrus"

	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// MetadataMerger reads the metadata worksheets and attaches their values to
// the items of the dimension each worksheet names.
//
// A metadata worksheet has the item value in column 1 and one metadata
// column per header cell after that:
//     |item |Cost |Owner|
//     |north|12   |Ann  |
// Values are matched to columns by position, so after the merge every item
// of the dimension has exactly one value per metadata column, nil when the
// worksheet has no value for it.
type MetadataMerger struct {
	source   spreadsheet.SheetSource
	keywords spreadsheet.Keywords
}

func NewMetadataMerger(source spreadsheet.SheetSource, keywords spreadsheet.Keywords) *MetadataMerger {
	return &MetadataMerger{source: source, keywords: keywords}
}

type metadataSheet struct {
	name      string
	dimension *model.Dimension
	header    *spreadsheet.MetadataHeader
	rows      [][]interface{}
}

// Apply validates the headers of every metadata worksheet before merging any
// of them. Duplicate column names on any worksheet fail the whole merge with
// a *spreadsheet.DuplicateColumnsError that lists all of them.
func (m *MetadataMerger) Apply(in *model.CaseTable) (*model.CaseTable, error) {
	ct := in.Clone()

	var (
		sheets     []metadataSheet
		duplicates []spreadsheet.DuplicateColumn
	)

	for _, name := range m.source.Sheets() {
		kind, rest := m.keywords.ClassifySheet(name)
		if kind != spreadsheet.MetadataSheet {
			continue
		}

		d := ct.FindDimension(spreadsheet.ParseIdentifier(rest), ident.Key)
		if d == nil {
			logrus.WithField("sheet", name).Debug("Metadata sheet has no matching dimension, skipping")
			continue
		}

		rows, err := m.source.Rows(name)
		if err != nil {
			return nil, err
		}

		if len(rows) == 0 {
			continue
		}

		header, err := spreadsheet.ParseMetadataHeader(name, rows[0])
		if dupErr, ok := err.(*spreadsheet.DuplicateColumnsError); ok {
			duplicates = append(duplicates, dupErr.Duplicates...)
			continue
		} else if err != nil {
			return nil, err
		}

		sheets = append(sheets, metadataSheet{name: name, dimension: d, header: header, rows: rows[1:]})
	}

	if len(duplicates) != 0 {
		return nil, &spreadsheet.DuplicateColumnsError{Duplicates: duplicates}
	}

	for _, sheet := range sheets {
		mergeMetadataSheet(sheet)
	}

	return ct, nil
}

func mergeMetadataSheet(sheet metadataSheet) {
	d := sheet.dimension
	for _, column := range sheet.header.Columns {
		d.AddMetadataColumn(column)
	}

	filled := make(map[*model.Item]bool)

	for i, row := range sheet.rows {
		if spreadsheet.IsEmptyRow(row) {
			continue
		}

		value := spreadsheet.ParseIdentifier(spreadsheet.Cell(row, 1))
		if value == "" {
			continue
		}

		fields := logrus.Fields{"sheet": sheet.name, "row": i + 2, "item": value}

		item := d.FindItem(value, ident.Key)
		switch {
		case item == nil:
			logrus.WithFields(fields).Debug("Metadata row names an unknown item, skipping")
			continue
		case filled[item]:
			logrus.WithFields(fields).Warn("Item already has metadata from an earlier row, skipping")
			continue
		}

		for c, column := range sheet.header.Columns {
			item.AddMetadataValue(&model.MetadataValue{
				AttributeMetadataItemID: column.ID,
				Value:                   spreadsheet.ParseMetadata(spreadsheet.Cell(row, sheet.header.SourceColumns[c])),
			})
		}
		filled[item] = true
	}

	// Items the worksheet didn't mention still need a value per column.
	for _, item := range d.Items {
		if filled[item] {
			continue
		}
		for _, column := range sheet.header.Columns {
			item.AddMetadataValue(&model.MetadataValue{AttributeMetadataItemID: column.ID})
		}
	}
}
