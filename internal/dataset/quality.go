package dataset

// ColumnProfile holds completeness metrics for one canonical column.
type ColumnProfile struct {
	ColumnName   string  `json:"column_name"`
	TotalRows    int     `json:"total_rows"`
	NonNullRows  int     `json:"non_null_rows"`
	NullRate     float64 `json:"null_rate"`
	DistinctCnt  int     `json:"distinct_count"`
	Numeric      bool    `json:"numeric"`
	SubjectScore bool    `json:"subject_score"`
}

// QualityProfiler computes per-column completeness over the canonical
// table, for the dataset summary endpoint.
type QualityProfiler struct{}

// NewQualityProfiler creates a new profiler.
func NewQualityProfiler() *QualityProfiler {
	return &QualityProfiler{}
}

// ProfileColumn computes metrics for a single column.
func (qp *QualityProfiler) ProfileColumn(t *Table, idx int) ColumnProfile {
	col := t.Columns[idx]
	profile := ColumnProfile{
		ColumnName:   col.Name,
		TotalRows:    len(col.Cells),
		Numeric:      col.Numeric,
		SubjectScore: !MetaColumns[col.Name] && col.Numeric,
	}

	distinct := make(map[string]bool)
	for _, c := range col.Cells {
		if c.Missing {
			continue
		}
		profile.NonNullRows++
		distinct[c.String()] = true
	}
	profile.DistinctCnt = len(distinct)

	if profile.TotalRows > 0 {
		profile.NullRate = float64(profile.TotalRows-profile.NonNullRows) / float64(profile.TotalRows)
	}
	return profile
}

// ProfileAllColumns profiles every column in table order.
func (qp *QualityProfiler) ProfileAllColumns(t *Table) []ColumnProfile {
	profiles := make([]ColumnProfile, len(t.Columns))
	for i := range t.Columns {
		profiles[i] = qp.ProfileColumn(t, i)
	}
	return profiles
}
