package domain

// Table is an in-memory tabular spreadsheet: one header row plus raw string
// cells. Cell values are kept as strings exactly as they were read; numeric
// interpretation is deferred to the point of use (see Numeric).
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1 when the
// table has no such header.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// RowCount returns the number of data rows (the header row excluded).
func (t Table) RowCount() int {
	return len(t.Rows)
}

// CloneRow returns an independent copy of the row at index i so that a
// derived row can be modified without touching the original.
func (t Table) CloneRow(i int) []string {
	row := make([]string, len(t.Rows[i]))
	copy(row, t.Rows[i])
	return row
}
