package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	path := writeCSV(t,
		"Roll No,Name,Class,Maths,science,History,Attendance\n"+
			"1,Alice,10A,78,85,62,92\n"+
			"2,Bob,10A,55,60,70,68\n"+
			"3,alice,10B,90,40,80,75\n")
	table, err := LoadCSV(path)
	require.NoError(t, err)
	return table
}

func TestStudentByRoll(t *testing.T) {
	table := sampleTable(t)

	rec, found := StudentByRoll(table, "2")
	require.True(t, found)
	assert.Equal(t, "Bob", rec.Name())

	_, found = StudentByRoll(table, "99")
	assert.False(t, found)

	// non-integer queries are silently not found
	_, found = StudentByRoll(table, "two")
	assert.False(t, found)
	_, found = StudentByRoll(table, "1.5")
	assert.False(t, found)
}

func TestStudentByName(t *testing.T) {
	table := sampleTable(t)

	rec, found := StudentByName(table, "Alice")
	require.True(t, found)
	assert.Equal(t, 1.0, rec.Roll().Num)

	// exact, case-sensitive match; "alice" is a different student
	rec, found = StudentByName(table, "alice")
	require.True(t, found)
	assert.Equal(t, 3.0, rec.Roll().Num)

	_, found = StudentByName(table, "ALICE")
	assert.False(t, found)
	_, found = StudentByName(table, " Alice")
	assert.False(t, found)
}

func TestSubjectColumns(t *testing.T) {
	table := sampleTable(t)

	// table order, meta columns excluded
	assert.Equal(t, []string{"Math", "Science", "History"}, SubjectColumns(table))
}

func TestClassAverage(t *testing.T) {
	table := sampleTable(t)

	avg := ClassAverage(table)
	require.Contains(t, avg, "Math")
	assert.InDelta(t, (78.0+55+90)/3, avg["Math"], 1e-9)
	assert.InDelta(t, (85.0+60+40)/3, avg["Science"], 1e-9)
	assert.InDelta(t, (62.0+70+80)/3, avg["History"], 1e-9)
}

func TestStudentList(t *testing.T) {
	table := sampleTable(t)

	assert.Equal(t, []string{
		"Alice (Roll: 1)",
		"Bob (Roll: 2)",
		"alice (Roll: 3)",
	}, StudentList(table))
}
