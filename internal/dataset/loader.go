package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrDataSourceNotFound is returned when the input location does not
// exist. It is the only expected fatal error during loading.
var ErrDataSourceNotFound = errors.New("data source not found")

// RawTable is a tabular dataset exactly as read from the source:
// arbitrary header spellings, all cells as text.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// NumRows returns the raw row count.
func (rt *RawTable) NumRows() int {
	return len(rt.Rows)
}

// LoadCSV reads a CSV file and canonicalizes it into a Table.
func LoadCSV(path string) (*Table, error) {
	raw, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return Canonicalize(raw), nil
}

// ReadCSV reads a CSV file into a RawTable. Short rows are padded so
// every row spans the full header width.
func ReadCSV(path string) (*RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDataSourceNotFound, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(record) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, record)
			record = padded
		}
		rows = append(rows, record)
	}

	return &RawTable{Headers: headers, Rows: rows}, nil
}

// Canonicalize turns a raw table into the canonical student table:
// headers are mapped onto the canonical schema, duplicate-mapped columns
// are coalesced, required fields are synthesized and numeric columns are
// coerced and zero-filled.
func Canonicalize(raw *RawTable) *Table {
	canon := NewCanonicalizer()
	numRows := raw.NumRows()

	// Canonical name -> contributing raw column indices, keeping the
	// first-seen order of canonical names.
	var order []string
	contributors := make(map[string][]int)
	for i, h := range raw.Headers {
		name := canon.Canonical(h)
		if _, seen := contributors[name]; !seen {
			order = append(order, name)
		}
		contributors[name] = append(contributors[name], i)
	}

	cols := make([]Column, 0, len(order))
	for _, name := range order {
		cols = append(cols, Column{
			Name:  name,
			Cells: coalesce(raw, contributors[name], numRows),
		})
	}
	table := NewTable(cols)

	table = ensureRollNo(table, numRows)
	table = ensureName(table)
	coerceNumeric(table)
	fillNumericMissing(table)

	return table
}

// coalesce merges the contributing raw columns row-wise: the value is
// the first non-missing cell scanning contributors in original order.
func coalesce(raw *RawTable, colIdxs []int, numRows int) []Cell {
	cells := make([]Cell, numRows)
	for row := 0; row < numRows; row++ {
		cell := MissingCell()
		for _, ci := range colIdxs {
			if ci >= len(raw.Rows[row]) {
				continue
			}
			c := NewCell(raw.Rows[row][ci])
			if !c.Missing {
				cell = c
				break
			}
		}
		cells[row] = cell
	}
	return cells
}

// ensureRollNo synthesizes sequential roll numbers 1..N when the source
// has none. The synthesized column goes first, as an identifier should.
func ensureRollNo(t *Table, numRows int) *Table {
	if t.HasColumn(ColRollNo) {
		return t
	}
	cells := make([]Cell, numRows)
	for i := range cells {
		cells[i] = NumCell(float64(i + 1))
	}
	cols := append([]Column{{Name: ColRollNo, Cells: cells, Numeric: true}}, t.Columns...)
	return NewTable(cols)
}

// ensureName guarantees a Name column: literal "Student Name"/"Student"
// columns are tried first, then the string form of the roll number.
func ensureName(t *Table) *Table {
	if t.HasColumn(ColName) {
		return t
	}
	var cells []Cell
	for _, alt := range []string{"Student Name", "Student"} {
		if col, ok := t.Column(alt); ok {
			cells = append([]Cell(nil), col.Cells...)
			break
		}
	}
	if cells == nil {
		roll, _ := t.Column(ColRollNo)
		cells = make([]Cell, len(roll.Cells))
		for i, c := range roll.Cells {
			cells[i] = TextCell(c.String())
		}
	}
	cols := append(append([]Column(nil), t.Columns...), Column{Name: ColName, Cells: cells})
	return NewTable(cols)
}

// coerceNumeric applies the canonical typing rules: attendance becomes
// numeric with missing as 0, minutes are derived from hours when absent,
// and every non-meta column is coerced to numeric (non-coercible cells
// become missing, never an error).
func coerceNumeric(t *Table) {
	if col, ok := t.Column(ColAttendance); ok {
		coerceColumn(col)
		for i, c := range col.Cells {
			if c.Missing {
				col.Cells[i] = NumCell(0)
			}
		}
	}

	if hours, ok := t.Column(ColStudyHours); ok && !t.HasColumn(ColStudyMinutes) {
		coerceColumn(hours)
		cells := make([]Cell, len(hours.Cells))
		for i, c := range hours.Cells {
			if c.Missing {
				cells[i] = NumCell(0)
			} else {
				cells[i] = NumCell(c.Num * 60)
			}
		}
		t.Columns = append(t.Columns, Column{Name: ColStudyMinutes, Cells: cells, Numeric: true})
		t.index[ColStudyMinutes] = len(t.Columns) - 1
	}

	for i := range t.Columns {
		col := &t.Columns[i]
		if MetaColumns[col.Name] {
			continue
		}
		coerceColumn(col)
	}
}

// coerceColumn marks a column numeric and drops non-numeric cells to
// missing.
func coerceColumn(col *Column) {
	for i, c := range col.Cells {
		if !c.Missing && !c.IsNum {
			col.Cells[i] = MissingCell()
		}
	}
	col.Numeric = true
}

// fillNumericMissing zero-fills missing cells in numeric columns.
// Text/meta columns keep their gaps.
func fillNumericMissing(t *Table) {
	for i := range t.Columns {
		col := &t.Columns[i]
		if !col.Numeric && !isUniformlyNumeric(col) {
			continue
		}
		col.Numeric = true
		for j, c := range col.Cells {
			if c.Missing {
				col.Cells[j] = NumCell(0)
			}
		}
	}
}

// isUniformlyNumeric reports whether every present cell parses as a
// number, with at least one present cell.
func isUniformlyNumeric(col *Column) bool {
	seen := false
	for _, c := range col.Cells {
		if c.Missing {
			continue
		}
		if !c.IsNum {
			return false
		}
		seen = true
	}
	return seen
}
