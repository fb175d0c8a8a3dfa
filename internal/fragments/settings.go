package fragments

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

const dateLayout = "2006-01-02"

// ReadSettings reads the general settings worksheet. Column 1 holds the key
// and column 2 its value:
//     |DatasetName   |Order to cash|
//     |StartDate     |2024-01-01   |
//     |EndDate       |2024-12-31   |
//     |NumberOfCases |1000         |
// Keys are matched ignoring case and punctuation, unknown keys are ignored.
// Dates entered as excel dates are written as yyyy-mm-dd.
func ReadSettings(source spreadsheet.SheetSource, sheet string) (*model.Settings, error) {
	rows, err := readSheet(source, sheet)
	if err != nil {
		return nil, err
	}

	settings := &model.Settings{}
	for i, row := range rows {
		value := spreadsheet.Cell(row, 2)

		switch ident.Key(spreadsheet.Cell(row, 1)) {
		case "DATASETNAME":
			settings.Name = strings.TrimSpace(cast.ToString(value))
		case "STARTDATE":
			settings.StartDate = dateValue(value)
		case "ENDDATE":
			settings.EndDate = dateValue(value)
		case "NUMBEROFCASES":
			n, ok := spreadsheet.ToNumber(value)
			if !ok || n < 0 || n != math.Trunc(n) {
				return nil, errors.Errorf("sheet '%s' row %d: NumberOfCases must be a whole number, got '%v'", sheet, i+1, value)
			}
			settings.NumberOfCases = int(n)
		}
	}

	return settings, nil
}

func dateValue(raw interface{}) string {
	if serial, ok := raw.(float64); ok {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(dateLayout)
		}
	}

	return strings.TrimSpace(cast.ToString(raw))
}
