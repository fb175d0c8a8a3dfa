package spreadsheet

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// SheetSource is the read side of a workbook that the processing stages need.
type SheetSource interface {
	Sheets() []string
	Rows(sheet string) ([][]interface{}, error)
}

// Workbook wraps an excel file and hands out its rows as typed cells.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook opens the excel file at path.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open workbook %s", path)
	}

	return &Workbook{file: f}, nil
}

// NewWorkbook wraps an already open excel file.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{file: f}
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sheets returns the worksheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// RequireSheet returns an error wrapping ErrSheetNotFound if the workbook has
// no worksheet with the given name.
func RequireSheet(source SheetSource, name string) error {
	for _, sheet := range source.Sheets() {
		if sheet == name {
			return nil
		}
	}

	return errors.Wrapf(ErrSheetNotFound, "workbook has no sheet '%s'", name)
}

// Rows returns every row of the worksheet. Each cell is nil when empty, a bool
// for boolean cells, a float64 for numeric cells and a string otherwise. Rows
// are not padded, a short row simply has fewer cells.
func (w *Workbook) Rows(sheet string) ([][]interface{}, error) {
	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read sheet '%s'", sheet)
	}

	typed := make([][]interface{}, len(rows))
	for r, row := range rows {
		cells := make([]interface{}, len(row))
		for c, value := range row {
			cells[c] = w.typedCell(sheet, c+1, r+1, value)
		}
		typed[r] = cells
	}

	return typed, nil
}

func (w *Workbook) typedCell(sheet string, col, row int, value string) interface{} {
	if value == "" {
		return nil
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return value
	}

	cellType, err := w.file.GetCellType(sheet, name)
	if err != nil {
		return value
	}

	switch cellType {
	case excelize.CellTypeBool:
		return value == "1" || strings.EqualFold(value, "true")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return value
	default:
		// Numbers are stored without a type or with the "n" type. Anything
		// else that happens to parse (a cached formula result) is a number too.
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		return value
	}
}

// ColumnName returns the excel column letter of a 1 based column number.
func ColumnName(column int) string {
	name, err := excelize.ColumnNumberToName(column)
	if err != nil {
		return strconv.Itoa(column)
	}
	return name
}

// Load opens the workbook at path and builds a dimension for each case table
// worksheet. The returned workbook stays open so later stages can read the
// metadata worksheets, the caller must Close it.
func Load(path string, keywords Keywords) (*model.CaseTable, *Workbook, error) {
	// Make sure the keywords are valid before we start processing the workbook,
	// otherwise a worksheet could be read as both a case table and a metadata sheet.
	if err := keywords.Validate(); err != nil {
		return nil, nil, err
	}

	wb, err := OpenWorkbook(path)
	if err != nil {
		return nil, nil, err
	}

	dimensions, err := BuildDimensions(wb, keywords)
	if err != nil {
		_ = wb.Close()
		return nil, nil, err
	}

	return model.NewCaseTable(dimensions), wb, nil
}

// BuildDimensions creates one dimension per case table worksheet, in workbook
// order. Worksheets that are not case table worksheets are skipped. All load
// errors are collected so they can be reported together.
func BuildDimensions(source SheetSource, keywords Keywords) ([]*model.Dimension, error) {
	var (
		dimensions []*model.Dimension
		savedErrs  *multierror.Error
	)

	for _, sheet := range source.Sheets() {
		kind, rest := keywords.ClassifySheet(sheet)
		if kind != CaseTableSheet {
			continue
		}

		dimension, err := loadCaseTableSheet(source, sheet, ParseIdentifier(rest))
		if err != nil {
			savedErrs = multierror.Append(savedErrs, err)
			continue
		}

		logrus.WithFields(logrus.Fields{
			"sheet":   sheet,
			"items":   len(dimension.Items),
			"columns": len(dimension.DistributionItems),
		}).Debug("Loaded case table sheet")

		dimensions = append(dimensions, dimension)
	}

	return dimensions, savedErrs.ErrorOrNil()
}

// loadCaseTableSheet loads one case table worksheet. The worksheet must have
// the following format:
//   1st row is the header:
//     |item value|standard distribution|distribution columns...|
//   The remaining rows hold one item each.
// A worksheet without any rows still results in an (empty) dimension.
func loadCaseTableSheet(source SheetSource, sheet, name string) (*model.Dimension, error) {
	rows, err := source.Rows(sheet)
	if err != nil {
		return nil, err
	}

	rowProcessor := newRowProcessor(sheet, name)
	if len(rows) == 0 {
		return rowProcessor.dimension, nil
	}

	// First row is the header row that contains the distribution columns. We
	// process this first outside of the loop that processes each of the items.
	rowProcessor.processHeaderRow(rows[0])

	for i, row := range rows[1:] {
		rowProcessor.processItemRow(row, i+2)
	}

	return rowProcessor.dimension, nil
}
