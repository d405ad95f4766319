package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileAllColumns(t *testing.T) {
	path := writeCSV(t, "Roll No,Name,Preferred Study Time,Maths\n1,Alice,Night,70\n2,Bob,,90\n")
	table, err := LoadCSV(path)
	require.NoError(t, err)

	qp := NewQualityProfiler()
	profiles := qp.ProfileAllColumns(table)
	require.Len(t, profiles, len(table.Columns))

	byName := map[string]ColumnProfile{}
	for _, p := range profiles {
		byName[p.ColumnName] = p
	}

	pref := byName[ColPreferredTme]
	assert.Equal(t, 2, pref.TotalRows)
	assert.Equal(t, 1, pref.NonNullRows)
	assert.InDelta(t, 0.5, pref.NullRate, 1e-9)
	assert.Equal(t, 1, pref.DistinctCnt)
	assert.False(t, pref.SubjectScore)

	math := byName["Math"]
	assert.Equal(t, 2, math.NonNullRows)
	assert.True(t, math.Numeric)
	assert.True(t, math.SubjectScore)
	assert.Equal(t, 2, math.DistinctCnt)

	roll := byName[ColRollNo]
	assert.False(t, roll.SubjectScore, "meta columns are never subjects")
}
