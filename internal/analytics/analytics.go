// Package analytics derives per-student views from the canonical table:
// averages, trend lines, study-time comparisons and advice. Everything
// here is a pure computation; the table is never mutated.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"studentboard/internal/dataset"
)

const DefaultTerms = 4

// StudentAverage is the mean of the student's non-missing subject
// scores, 0.0 when none are present.
func StudentAverage(rec dataset.Record) float64 {
	sum, n := 0.0, 0
	for _, name := range dataset.SubjectColumns(rec.Table()) {
		c, _ := rec.Get(name)
		if c.Missing || !c.IsNum {
			continue
		}
		sum += c.Num
		n++
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}

// ImprovementTrend returns a sequence of `terms` scores for the student.
// When the roll number appears in multiple rows (one per exam), the real
// per-exam averages are used, sorted by the exam label's leading number.
// Otherwise a deterministic synthetic walk stands in; it is a
// reproducible placeholder, not a measurement.
func ImprovementTrend(t *dataset.Table, rec dataset.Record, terms int) []float64 {
	if terms <= 0 {
		terms = DefaultTerms
	}

	if rows := rowsForRoll(t, rec.Roll()); len(rows) > 1 {
		sortByExam(t, rows)
		scores := make([]float64, 0, len(rows))
		for _, i := range rows {
			scores = append(scores, StudentAverage(t.Row(i)))
		}
		return tailOrPad(scores, terms)
	}

	return syntheticTrend(rec, terms)
}

// HasExamHistory reports whether the student has real multi-exam rows,
// so callers can tell a measured trend from a synthetic one.
func HasExamHistory(t *dataset.Table, rec dataset.Record) bool {
	return len(rowsForRoll(t, rec.Roll())) > 1
}

// rowsForRoll collects the indices of every row sharing the roll number.
func rowsForRoll(t *dataset.Table, roll dataset.Cell) []int {
	if roll.Missing || !roll.IsNum {
		return nil
	}
	col, ok := t.Column(dataset.ColRollNo)
	if !ok {
		return nil
	}
	var rows []int
	for i, c := range col.Cells {
		if c.IsNum && c.Num == roll.Num {
			rows = append(rows, i)
		}
	}
	return rows
}

// sortByExam orders row indices by their Exam label: embedded leading
// integers compare numerically, anything else falls back to a lexical
// comparison.
func sortByExam(t *dataset.Table, rows []int) {
	col, ok := t.Column(dataset.ColExam)
	if !ok {
		return
	}
	label := func(i int) string {
		if i < len(col.Cells) {
			return col.Cells[i].String()
		}
		return ""
	}
	sort.SliceStable(rows, func(a, b int) bool {
		la, lb := label(rows[a]), label(rows[b])
		na, okA := examNumber(la)
		nb, okB := examNumber(lb)
		if okA && okB {
			return na < nb
		}
		return strings.ToLower(la) < strings.ToLower(lb)
	})
}

// examNumber extracts the first run of digits from an exam label.
func examNumber(label string) (int, bool) {
	start := -1
	for i, r := range label {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(label[start:i])
			return n, true
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(label[start:])
		return n, true
	}
	return 0, false
}

// tailOrPad keeps the last `terms` scores, repeating the final known
// value (or 0.0) when there are fewer.
func tailOrPad(scores []float64, terms int) []float64 {
	if len(scores) >= terms {
		return scores[len(scores)-terms:]
	}
	out := append([]float64(nil), scores...)
	for len(out) < terms {
		if len(out) == 0 {
			out = append(out, 0.0)
		} else {
			out = append(out, out[len(out)-1])
		}
	}
	return out
}

// syntheticTrend fabricates a reproducible walk from the student's
// average: per step a uniform delta in [-6, 6], clamped to [0, 100],
// rounded to one decimal.
func syntheticTrend(rec dataset.Record, terms int) []float64 {
	rng := rand.New(rand.NewSource(seedFromStudent(rec)))
	cur := StudentAverage(rec)
	trend := make([]float64, 0, terms)
	for i := 0; i < terms; i++ {
		delta := -6 + 12*rng.Float64()
		cur = math.Max(0, math.Min(100, cur+delta))
		cur = math.Round(cur*10) / 10
		trend = append(trend, cur)
	}
	return trend
}

// seedFromStudent hashes "Roll|Name" and takes the first 8 hex digits
// of the SHA-256 digest as the seed, so the same student always gets
// the same synthetic sequence.
func seedFromStudent(rec dataset.Record) int64 {
	base := rec.Roll().String() + "|" + rec.Name()
	sum := sha256.Sum256([]byte(base))
	digest := hex.EncodeToString(sum[:])
	seed, _ := strconv.ParseInt(digest[:8], 16, 64)
	return seed
}

// StudyPoint pairs one student's study minutes with their average score.
type StudyPoint struct {
	Roll         string  `json:"roll"`
	Name         string  `json:"name"`
	StudyMinutes float64 `json:"study_minutes"`
	AvgScore     float64 `json:"avg_score"`
}

// StudyTimeVsPerformance builds the class-level comparison table: study
// minutes (from the minutes column, or hours x 60, else 0) against each
// student's subject average.
func StudyTimeVsPerformance(t *dataset.Table) []StudyPoint {
	points := make([]StudyPoint, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		rec := t.Row(i)
		minutes, _ := StudyMinutes(rec)
		points = append(points, StudyPoint{
			Roll:         rec.Roll().String(),
			Name:         rec.Name(),
			StudyMinutes: minutes,
			AvgScore:     StudentAverage(rec),
		})
	}
	return points
}

// StudyMinutes resolves a student's study time in minutes: the minutes
// column when present, hours x 60 otherwise. The bool reports whether
// either column held a numeric value.
func StudyMinutes(rec dataset.Record) (float64, bool) {
	if c, ok := rec.Get(dataset.ColStudyMinutes); ok && !c.Missing && c.IsNum {
		return c.Num, true
	}
	if c, ok := rec.Get(dataset.ColStudyHours); ok && !c.Missing && c.IsNum {
		return c.Num * 60, true
	}
	return 0, false
}

// SubjectScore is one named score for a student.
type SubjectScore struct {
	Subject string  `json:"subject"`
	Score   float64 `json:"score"`
}

// StrengthsWeaknesses splits the student's subjects into the topN
// highest scores and the topN lowest (worst first).
func StrengthsWeaknesses(rec dataset.Record, topN int) (strengths, weaknesses []SubjectScore) {
	if topN <= 0 {
		topN = 3
	}
	var items []SubjectScore
	for _, name := range dataset.SubjectColumns(rec.Table()) {
		c, _ := rec.Get(name)
		if c.Missing || !c.IsNum {
			continue
		}
		items = append(items, SubjectScore{Subject: name, Score: c.Num})
	}
	if len(items) == 0 {
		return nil, nil
	}

	sort.SliceStable(items, func(a, b int) bool { return items[a].Score > items[b].Score })

	n := topN
	if n > len(items) {
		n = len(items)
	}
	strengths = append([]SubjectScore(nil), items[:n]...)

	tail := append([]SubjectScore(nil), items[len(items)-n:]...)
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
	weaknesses = tail
	return strengths, weaknesses
}
