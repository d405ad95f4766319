package dataset

import (
	"strings"
)

// Canonical column names used across the app. Subject columns keep their
// own names (Math, Science, ...) and anything unrecognized passes through.
const (
	ColRollNo       = "Roll No"
	ColName         = "Name"
	ColClass        = "Class"
	ColExam         = "Exam"
	ColAttendance   = "Attendance (%)"
	ColMemoryScore  = "Memory Score"
	ColStressLevel  = "Stress Level"
	ColStudyMinutes = "Study Duration (minutes)"
	ColStudyHours   = "Study Duration (hours)"
	ColPreferredTme = "Preferred Study Time"
	ColExamFear     = "Exam Fear"
)

// MetaColumns are the identifying/contextual columns. Every canonical
// column outside this set is treated as a numeric subject score.
var MetaColumns = map[string]bool{
	ColRollNo:       true,
	ColName:         true,
	ColClass:        true,
	ColExam:         true,
	ColAttendance:   true,
	ColMemoryScore:  true,
	ColStressLevel:  true,
	ColStudyMinutes: true,
	ColStudyHours:   true,
	ColPreferredTme: true,
	ColExamFear:     true,
}

// Canonicalizer maps raw header spellings onto the canonical schema.
type Canonicalizer struct {
	rules []canonRule
}

// canonRule pairs a predicate with the canonical name it produces.
// Rules are evaluated in order and the first match wins; several
// predicates are substring-based and overlap, so order is load-bearing.
type canonRule struct {
	matches func(norm, raw string) bool
	name    string
}

// NewCanonicalizer builds the ordered rule list.
func NewCanonicalizer() *Canonicalizer {
	inSet := func(values ...string) func(norm, raw string) bool {
		set := make(map[string]bool, len(values))
		for _, v := range values {
			set[v] = true
		}
		return func(norm, _ string) bool { return set[norm] }
	}
	contains := func(subs ...string) func(norm, raw string) bool {
		return func(norm, _ string) bool {
			for _, s := range subs {
				if strings.Contains(norm, s) {
					return true
				}
			}
			return false
		}
	}
	containsAll := func(subs ...string) func(norm, raw string) bool {
		return func(norm, _ string) bool {
			for _, s := range subs {
				if !strings.Contains(norm, s) {
					return false
				}
			}
			return true
		}
	}

	return &Canonicalizer{rules: []canonRule{
		{inSet("roll", "roll no", "rollno", "roll number", "roll_number"), ColRollNo},
		{inSet("name", "student name", "student"), ColName},
		{func(norm, _ string) bool {
			return norm == "class" || strings.HasPrefix(norm, "class ")
		}, ColClass},
		{contains("term", "exam"), ColExam},
		{contains("attendance"), ColAttendance},
		{contains("math", "mathematics"), "Math"},
		{contains("science"), "Science"},
		{contains("english"), "English"},
		{contains("history"), "History"},
		{containsAll("memory", "score"), ColMemoryScore},
		{containsAll("stress", "level"), ColStressLevel},
		{func(norm, _ string) bool {
			return strings.Contains(norm, "study") &&
				(strings.Contains(norm, "min") || strings.Contains(norm, "minute"))
		}, ColStudyMinutes},
		{func(norm, _ string) bool {
			return strings.Contains(norm, "study") &&
				(strings.Contains(norm, "hr") || strings.Contains(norm, "hour"))
		}, ColStudyHours},
		{containsAll("preferred", "time"), ColPreferredTme},
		// The raw-header fallback here looks redundant but matches quirks
		// in existing source files; keep both checks.
		{func(norm, raw string) bool {
			if strings.Contains(norm, "exam fear") {
				return true
			}
			lower := strings.ToLower(raw)
			return strings.Contains(lower, "fear") && strings.Contains(lower, "exam")
		}, ColExamFear},
	}}
}

// Canonical returns the canonical name for a raw header, or the raw
// header unchanged when no rule matches.
func (c *Canonicalizer) Canonical(raw string) string {
	norm := normalizeHeader(raw)
	for _, rule := range c.rules {
		if rule.matches(norm, raw) {
			return rule.name
		}
	}
	return raw
}

// normalizeHeader lowers the header and strips punctuation so the rule
// predicates only ever see space-separated lowercase words.
func normalizeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	replacer := strings.NewReplacer(
		"%", " ",
		"/", " ",
		"-", " ",
		"(", " ",
		")", " ",
		".", " ",
		"_", " ",
	)
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
