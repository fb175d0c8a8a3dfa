package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testSheet struct {
	name string
	rows [][]interface{}
}

// newTestFile builds an in memory excel file with the given worksheets, in
// order, after the default Sheet1.
func newTestFile(t *testing.T, sheets ...testSheet) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for _, sheet := range sheets {
		_, err := f.NewSheet(sheet.name)
		require.NoError(t, err)

		for i, row := range sheet.rows {
			row := row
			cellName, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet.name, cellName, &row))
		}
	}

	return f
}

func newTestWorkbook(t *testing.T, sheets ...testSheet) *Workbook {
	t.Helper()
	return NewWorkbook(newTestFile(t, sheets...))
}
