package models

import (
	"studentboard/internal/analytics"
	"studentboard/internal/dataset"
)

// LoadRequest asks the server to load a CSV file.
type LoadRequest struct {
	Path string `json:"path"`
}

// LoadResponse is returned after a successful load.
type LoadResponse struct {
	Message     string   `json:"message"`
	Source      string   `json:"source"`
	Rows        int      `json:"rows"`
	Columns     int      `json:"columns"`
	ColumnNames []string `json:"column_names"`
}

// StatusResponse is returned by /api/status.
type StatusResponse struct {
	Loaded  bool   `json:"loaded"`
	Source  string `json:"source,omitempty"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// SummaryResponse is returned by /api/summary.
type SummaryResponse struct {
	Rows     int                     `json:"rows"`
	Columns  int                     `json:"columns"`
	Profiles []dataset.ColumnProfile `json:"profiles"`
}

// StudentResponse is one student record plus its display label.
type StudentResponse struct {
	Roll    string                 `json:"roll"`
	Name    string                 `json:"name"`
	Display string                 `json:"display"`
	Fields  map[string]interface{} `json:"fields"`
}

// AverageResponse is returned by the per-student average endpoint.
type AverageResponse struct {
	Roll     string  `json:"roll"`
	AvgScore float64 `json:"avg_score"`
}

// TrendResponse is the per-term score sequence for a student.
type TrendResponse struct {
	Roll      string    `json:"roll"`
	Terms     int       `json:"terms"`
	Scores    []float64 `json:"scores"`
	Synthetic bool      `json:"synthetic"`
}

// StrengthsResponse holds the top and bottom subject scores.
type StrengthsResponse struct {
	Roll       string                   `json:"roll"`
	Strengths  []analytics.SubjectScore `json:"strengths"`
	Weaknesses []analytics.SubjectScore `json:"weaknesses"`
}

// ActivitiesResponse is the rotated activity list for a student.
type ActivitiesResponse struct {
	Roll       string   `json:"roll"`
	Rotation   int      `json:"rotation"`
	Activities []string `json:"activities"`
}

// ClassAverageResponse maps subject names to class means.
type ClassAverageResponse struct {
	Averages map[string]float64 `json:"averages"`
}

// TipsResponse is a static tip list.
type TipsResponse struct {
	Category string   `json:"category"`
	Tips     []string `json:"tips"`
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DBLoadRequest asks the server to load a database table.
type DBLoadRequest struct {
	Table string `json:"table"`
	Limit int    `json:"limit"`
}
