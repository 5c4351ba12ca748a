package sheets

import (
	"fmt"
	"regexp"
)

// Row-number extraction from a written-range acknowledgement such as
// "Fila1!A5:H5" or "Fila1!A7". The row of the first cell is the insertion row.
var (
	rangeRowSpan = regexp.MustCompile(`!.*?(\d+):`)
	rangeRowOnly = regexp.MustCompile(`!.*?(\d+)$`)
)

// RowFromRange parses the 1-based row index out of an A1 written-range
// acknowledgement. Fails when no row number is present rather than guessing.
func RowFromRange(a1 string) (int, error) {
	m := rangeRowSpan.FindStringSubmatch(a1)
	if m == nil {
		m = rangeRowOnly.FindStringSubmatch(a1)
	}
	if m == nil {
		return 0, fmt.Errorf("no row index in range %q", a1)
	}
	var row int
	if _, err := fmt.Sscanf(m[1], "%d", &row); err != nil || row < 1 {
		return 0, fmt.Errorf("no row index in range %q", a1)
	}
	return row, nil
}

// ColumnLetter converts a zero-based column index to its A1 letter ("A",
// "B", ..., "AA").
func ColumnLetter(idx int) string {
	idx++
	letters := []byte{}
	for idx > 0 {
		idx--
		letters = append([]byte{byte('A' + idx%26)}, letters...)
		idx /= 26
	}
	return string(letters)
}

// HeaderRange returns the A1 range covering the first n columns of row 1.
func HeaderRange(sheet string, n int) string {
	return fmt.Sprintf("%s!A1:%s1", sheet, ColumnLetter(n-1))
}

// RowRange returns the A1 range for the full sheet contents (columns A to Z).
func RowRange(sheet string) string {
	return sheet + "!A:Z"
}

// FirstColumnRange returns the A1 range for a sheet's first column.
func FirstColumnRange(sheet string) string {
	return sheet + "!A:A"
}

// CellRange returns the A1 reference for one cell, with a zero-based column
// and a 1-based row.
func CellRange(sheet string, col, row int) string {
	return fmt.Sprintf("%s!%s%d", sheet, ColumnLetter(col), row)
}
