// Package core, in-memory CSV table.
package core

// Table is the in-memory form of one CSV file: a header row and data rows.
// Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// RequireColumn is ColumnIndex that fails with a MissingFieldError.
func (t *Table) RequireColumn(name string) (int, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return -1, &Error{Kind: KindMissingField, Column: name, Err: ErrColumnNotFound}
	}
	return idx, nil
}

// Filter returns a new Table holding only the rows keep accepts.
// Row slices are shared with the receiver.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	out := &Table{Header: t.Header, Rows: make([][]string, 0, len(t.Rows))}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Clone deep-copies the table so transforms never touch the caller's rows.
func (t *Table) Clone() *Table {
	out := &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
