package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ErrSheetNotFound is returned when a worksheet a command requires is missing
// from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// DuplicateColumn identifies one header cell that collides with another one
// on the same worksheet.
type DuplicateColumn struct {
	Sheet  string
	Column string
	Header string
}

func (d DuplicateColumn) String() string {
	return fmt.Sprintf("sheet '%s' column %s header '%s'", d.Sheet, d.Column, d.Header)
}

// DuplicateColumnsError lists every header cell on a metadata worksheet that
// cleans to the same name as another header cell. Metadata values are matched
// to their columns by position so this can't be recovered from.
type DuplicateColumnsError struct {
	Duplicates []DuplicateColumn
}

func (e *DuplicateColumnsError) Error() string {
	lines := make([]string, 0, len(e.Duplicates))
	for _, d := range e.Duplicates {
		lines = append(lines, "  "+d.String())
	}
	return fmt.Sprintf("duplicate metadata column names (%d columns):\n%s", len(e.Duplicates), strings.Join(lines, "\n"))
}

// Errors returns one error per duplicate column, so callers can report them
// the same way as any other multierror.
func (e *DuplicateColumnsError) Errors() *multierror.Error {
	var merr *multierror.Error
	for _, d := range e.Duplicates {
		merr = multierror.Append(merr, errors.New(d.String()))
	}
	return merr
}
