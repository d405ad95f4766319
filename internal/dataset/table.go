package dataset

import (
	"strconv"
	"strings"
)

// Cell is one scalar value in the table. A cell is either missing,
// numeric, or plain text.
type Cell struct {
	Raw     string
	Num     float64
	IsNum   bool
	Missing bool
}

// missingMarkers are raw strings treated as absent values on read.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// NewCell parses a raw string into a cell, detecting missing values and
// numeric form.
func NewCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if missingMarkers[strings.ToLower(trimmed)] {
		return Cell{Missing: true}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Cell{Raw: trimmed, Num: n, IsNum: true}
	}
	return Cell{Raw: trimmed}
}

// NumCell builds a present numeric cell.
func NumCell(n float64) Cell {
	return Cell{Raw: formatNum(n), Num: n, IsNum: true}
}

// TextCell builds a present text cell.
func TextCell(s string) Cell {
	return Cell{Raw: s}
}

// MissingCell is the absent value.
func MissingCell() Cell {
	return Cell{Missing: true}
}

// String renders the cell the way it should appear in display strings:
// integral numbers without a decimal point, missing as empty.
func (c Cell) String() string {
	if c.Missing {
		return ""
	}
	if c.IsNum {
		return formatNum(c.Num)
	}
	return c.Raw
}

// Value returns the cell as a JSON-friendly scalar: nil, float64 or string.
func (c Cell) Value() interface{} {
	if c.Missing {
		return nil
	}
	if c.IsNum {
		return c.Num
	}
	return c.Raw
}

func formatNum(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Column is a named, ordered sequence of cells. Numeric marks columns
// that went through numeric coercion during load.
type Column struct {
	Name    string
	Cells   []Cell
	Numeric bool
}

// Table is the canonical, immutable student table. Columns keep their
// original relative order; index maps name to position.
type Table struct {
	Columns []Column
	index   map[string]int
}

// NewTable builds a table from ordered columns.
func NewTable(cols []Column) *Table {
	t := &Table{Columns: cols, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		t.index[c.Name] = i
	}
	return t
}

// NumRows returns the row count (all columns share one row index).
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Column looks up a column by canonical name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.Columns[i], true
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnNames returns the names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns a transient record view over row i.
func (t *Table) Row(i int) Record {
	return Record{table: t, row: i}
}

// Record is a read-only view of a single table row. It has no identity
// of its own; it only borrows the table it came from.
type Record struct {
	table *Table
	row   int
}

// Get returns the named cell, reporting whether the column exists.
func (r Record) Get(name string) (Cell, bool) {
	col, ok := r.table.Column(name)
	if !ok {
		return Cell{Missing: true}, false
	}
	if r.row >= len(col.Cells) {
		return Cell{Missing: true}, true
	}
	return col.Cells[r.row], true
}

// Table returns the table the record belongs to.
func (r Record) Table() *Table {
	return r.table
}

// RowIndex returns the record's position in the table.
func (r Record) RowIndex() int {
	return r.row
}

// Roll returns the roll-number cell.
func (r Record) Roll() Cell {
	c, _ := r.Get(ColRollNo)
	return c
}

// Name returns the student name as a string.
func (r Record) Name() string {
	c, _ := r.Get(ColName)
	return c.String()
}

// Fields returns the row as a name -> scalar map in no particular order,
// for JSON responses.
func (r Record) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(r.table.Columns))
	for _, col := range r.table.Columns {
		if r.row < len(col.Cells) {
			out[col.Name] = col.Cells[r.row].Value()
		}
	}
	return out
}
