// Package tables models the structured table payload returned by the
// extraction model and reconciles it into rectangular tables.
package tables

// Set is the top-level structured response: an ordered list of extracted
// tables. An empty list is a valid "no tables found" result.
type Set struct {
	Tables []Table `json:"tables"`
}

// Table is one extracted table: a free-text name plus ordered columns.
// The name doubles as display heading and sheet identifier downstream.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column is one column of cell values, top to bottom.
type Column struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// ReconciledTable is a rectangular, row-indexed view of a Table that passed
// the row-alignment check. Rows[i][j] is column j's value at index i.
type ReconciledTable struct {
	Name    string
	Columns []string
	Rows    [][]Value
}

// RowCount returns the number of data rows.
func (t ReconciledTable) RowCount() int {
	return len(t.Rows)
}
