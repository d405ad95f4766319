package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// StudentByRoll returns the first row whose roll number equals the
// query. Non-integer queries are silently not found.
func StudentByRoll(t *Table, roll string) (Record, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(roll))
	if err != nil {
		return Record{}, false
	}
	col, ok := t.Column(ColRollNo)
	if !ok {
		return Record{}, false
	}
	for i, c := range col.Cells {
		if c.IsNum && c.Num == float64(n) {
			return t.Row(i), true
		}
	}
	return Record{}, false
}

// StudentByName returns the first row whose name matches exactly
// (case-sensitive, no trimming).
func StudentByName(t *Table, name string) (Record, bool) {
	col, ok := t.Column(ColName)
	if !ok {
		return Record{}, false
	}
	for i, c := range col.Cells {
		if c.String() == name {
			return t.Row(i), true
		}
	}
	return Record{}, false
}

// SubjectColumns returns the names of the numeric non-meta columns in
// table order. These are the academic score columns.
func SubjectColumns(t *Table) []string {
	var names []string
	for _, col := range t.Columns {
		if MetaColumns[col.Name] {
			continue
		}
		if col.Numeric {
			names = append(names, col.Name)
		}
	}
	return names
}

// ClassAverage computes the mean of each subject column over its
// non-missing values.
func ClassAverage(t *Table) map[string]float64 {
	out := make(map[string]float64)
	for _, name := range SubjectColumns(t) {
		col, _ := t.Column(name)
		sum, n := 0.0, 0
		for _, c := range col.Cells {
			if c.Missing || !c.IsNum {
				continue
			}
			sum += c.Num
			n++
		}
		if n > 0 {
			out[name] = sum / float64(n)
		}
	}
	return out
}

// StudentList returns display strings "Name (Roll: X)" in table order.
func StudentList(t *Table) []string {
	out := make([]string, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		rec := t.Row(i)
		out = append(out, fmt.Sprintf("%s (Roll: %s)", rec.Name(), rec.Roll().String()))
	}
	return out
}
