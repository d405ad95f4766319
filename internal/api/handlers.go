package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"studentboard/internal/analytics"
	"studentboard/internal/dataset"
	"studentboard/internal/models"
	"studentboard/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const DefaultDBLimit = 10000

// Handler serves the student analytics API over the loaded table.
type Handler struct {
	Quality   *dataset.QualityProfiler
	CurrentDB dataset.DataSource // Active DB connection
}

func NewHandler() *Handler {
	return &Handler{
		Quality: dataset.NewQualityProfiler(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Post("/api/load", h.LoadCSV)
	r.Get("/api/status", h.GetStatus)
	r.Get("/api/summary", h.GetSummary)

	// DB Routes
	r.Post("/api/db/connect", h.ConnectDB)
	r.Get("/api/db/tables", h.ListTables)
	r.Post("/api/db/load", h.LoadDBTable)

	r.Get("/api/students", h.ListStudents)
	r.Get("/api/students/search", h.GetStudentByName)
	r.Get("/api/students/{roll}", h.GetStudent)
	r.Get("/api/students/{roll}/average", h.GetAverage)
	r.Get("/api/students/{roll}/trend", h.GetTrend)
	r.Get("/api/students/{roll}/strengths", h.GetStrengths)
	r.Get("/api/students/{roll}/advice", h.GetAdvice)
	r.Get("/api/students/{roll}/activities", h.GetActivities)
	r.Get("/api/students/{roll}/brainfood", h.GetBrainFood)

	r.Get("/api/subjects", h.GetSubjects)
	r.Get("/api/class-average", h.GetClassAverage)
	r.Get("/api/study-vs-performance", h.GetStudyVsPerformance)

	r.Get("/api/tips/memory", h.GetMemoryTips)
	r.Get("/api/tips/exam-fear", h.GetExamFearTips)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// LoadCSV loads and canonicalizes a CSV file, replacing the current table.
func (h *Handler) LoadCSV(w http.ResponseWriter, r *http.Request) {
	var req models.LoadRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Path == "" {
		renderError(w, r, http.StatusBadRequest, "path is required")
		return
	}

	table, err := dataset.LoadCSV(req.Path)
	if err != nil {
		if errors.Is(err, dataset.ErrDataSourceNotFound) {
			renderError(w, r, http.StatusNotFound, err.Error())
			return
		}
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	state.State.SetTable(table, req.Path)
	render.JSON(w, r, models.LoadResponse{
		Message:     "loaded",
		Source:      req.Path,
		Rows:        table.NumRows(),
		Columns:     len(table.Columns),
		ColumnNames: table.ColumnNames(),
	})
}

// ConnectDB establishes a database connection.
func (h *Handler) ConnectDB(w http.ResponseWriter, r *http.Request) {
	var config dataset.DataSourceConfig
	if err := render.DecodeJSON(r.Body, &config); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Currently only Postgres supported
	if config.Type != "postgres" {
		renderError(w, r, http.StatusBadRequest, "Only postgres is supported currently")
		return
	}

	ds := &dataset.PostgresDataSource{}
	if err := ds.Connect(config); err != nil {
		renderError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to connect: %v", err))
		return
	}

	// Close previous if exists
	if h.CurrentDB != nil {
		h.CurrentDB.Close()
	}
	h.CurrentDB = ds

	render.JSON(w, r, map[string]string{"status": "connected"})
}

// ListTables returns tables from the connected DB.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	if h.CurrentDB == nil {
		renderError(w, r, http.StatusBadRequest, "No database connection")
		return
	}
	tables, err := h.CurrentDB.ListTables()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	render.JSON(w, r, map[string][]string{"tables": tables})
}

// LoadDBTable fetches a DB table and runs it through the same
// canonicalizing loader as a CSV file.
func (h *Handler) LoadDBTable(w http.ResponseWriter, r *http.Request) {
	if h.CurrentDB == nil {
		renderError(w, r, http.StatusBadRequest, "No database connection")
		return
	}
	var req models.DBLoadRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Limit <= 0 {
		req.Limit = DefaultDBLimit
	}

	// Whitelist the table name against the catalog before querying.
	tables, err := h.CurrentDB.ListTables()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	known := false
	for _, t := range tables {
		if t == req.Table {
			known = true
			break
		}
	}
	if !known {
		renderError(w, r, http.StatusNotFound, fmt.Sprintf("unknown table %q", req.Table))
		return
	}

	raw, err := h.CurrentDB.FetchTable(req.Table, req.Limit)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	table := dataset.Canonicalize(raw)
	state.State.SetTable(table, "db:"+req.Table)
	render.JSON(w, r, models.LoadResponse{
		Message:     "loaded",
		Source:      "db:" + req.Table,
		Rows:        table.NumRows(),
		Columns:     len(table.Columns),
		ColumnNames: table.ColumnNames(),
	})
}

// GetStatus reports whether a table is loaded.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	table := state.State.Table()
	resp := models.StatusResponse{}
	if table != nil {
		resp.Loaded = true
		resp.Source = state.State.Source()
		resp.Rows = table.NumRows()
		resp.Columns = len(table.Columns)
	}
	render.JSON(w, r, resp)
}

// GetSummary returns per-column quality profiles of the loaded table.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	table, ok := h.requireTable(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, models.SummaryResponse{
		Rows:     table.NumRows(),
		Columns:  len(table.Columns),
		Profiles: h.Quality.ProfileAllColumns(table),
	})
}

// ListStudents returns the display list "Name (Roll: X)" in table order.
func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	table, ok := h.requireTable(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, map[string][]string{"students": dataset.StudentList(table)})
}

// GetStudent returns one record by roll number.
func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, studentResponse(rec))
}

// GetStudentByName returns one record by exact name match.
func (h *Handler) GetStudentByName(w http.ResponseWriter, r *http.Request) {
	table, ok := h.requireTable(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("name")
	rec, found := dataset.StudentByName(table, name)
	if !found {
		renderError(w, r, http.StatusNotFound, fmt.Sprintf("student %q not found", name))
		return
	}
	render.JSON(w, r, studentResponse(rec))
}

// GetAverage returns the student's subject average.
func (h *Handler) GetAverage(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, models.AverageResponse{
		Roll:     rec.Roll().String(),
		AvgScore: analytics.StudentAverage(rec),
	})
}

// GetTrend returns the per-term score sequence, real or synthetic.
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	table, rec, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	terms := queryInt(r, "terms", analytics.DefaultTerms)
	render.JSON(w, r, models.TrendResponse{
		Roll:      rec.Roll().String(),
		Terms:     terms,
		Scores:    analytics.ImprovementTrend(table, rec, terms),
		Synthetic: !analytics.HasExamHistory(table, rec),
	})
}

// GetStrengths returns top and bottom subject scores.
func (h *Handler) GetStrengths(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	top := queryInt(r, "top", 3)
	strengths, weaknesses := analytics.StrengthsWeaknesses(rec, top)
	render.JSON(w, r, models.StrengthsResponse{
		Roll:       rec.Roll().String(),
		Strengths:  strengths,
		Weaknesses: weaknesses,
	})
}

// GetAdvice returns the per-category threshold advice.
func (h *Handler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, analytics.PersonalizedAdvice(rec))
}

// GetActivities returns the student's seeded activity picks, optionally
// rotated by the caller's session counter.
func (h *Handler) GetActivities(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	n := queryInt(r, "n", analytics.DefaultActivities)
	rotate := queryInt(r, "rotate", 0)
	activities := analytics.Rotate(analytics.MindActivities(rec, n), rotate)
	render.JSON(w, r, models.ActivitiesResponse{
		Roll:       rec.Roll().String(),
		Rotation:   rotate,
		Activities: activities,
	})
}

// GetBrainFood returns the static food recommendations.
func (h *Handler) GetBrainFood(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, analytics.BrainFoodRecommendations(rec))
}

// GetSubjects lists the subject columns in table order.
func (h *Handler) GetSubjects(w http.ResponseWriter, r *http.Request) {
	table, ok := h.requireTable(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, map[string][]string{"subjects": dataset.SubjectColumns(table)})
}

// GetClassAverage returns subject means across the class.
func (h *Handler) GetClassAverage(w http.ResponseWriter, r *http.Request) {
	table, ok := h.requireTable(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, models.ClassAverageResponse{Averages: dataset.ClassAverage(table)})
}

// GetStudyVsPerformance returns the class-level scatter data.
func (h *Handler) GetStudyVsPerformance(w http.ResponseWriter, r *http.Request) {
	table, ok := h.requireTable(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, map[string][]analytics.StudyPoint{
		"points": analytics.StudyTimeVsPerformance(table),
	})
}

func (h *Handler) GetMemoryTips(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, models.TipsResponse{Category: "memory", Tips: analytics.MemoryTips()})
}

func (h *Handler) GetExamFearTips(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, models.TipsResponse{Category: "exam-fear", Tips: analytics.ExamFearTips()})
}

// requireTable answers 409 until a table has been loaded.
func (h *Handler) requireTable(w http.ResponseWriter, r *http.Request) (*dataset.Table, bool) {
	table := state.State.Table()
	if table == nil {
		renderError(w, r, http.StatusConflict, "No dataset loaded")
		return nil, false
	}
	return table, true
}

// requireStudent resolves the {roll} URL parameter to a record.
func (h *Handler) requireStudent(w http.ResponseWriter, r *http.Request) (*dataset.Table, dataset.Record, bool) {
	table, ok := h.requireTable(w, r)
	if !ok {
		return nil, dataset.Record{}, false
	}
	roll := chi.URLParam(r, "roll")
	rec, found := dataset.StudentByRoll(table, roll)
	if !found {
		renderError(w, r, http.StatusNotFound, fmt.Sprintf("student with roll %q not found", roll))
		return nil, dataset.Record{}, false
	}
	return table, rec, true
}

func studentResponse(rec dataset.Record) models.StudentResponse {
	return models.StudentResponse{
		Roll:    rec.Roll().String(),
		Name:    rec.Name(),
		Display: fmt.Sprintf("%s (Roll: %s)", rec.Name(), rec.Roll().String()),
		Fields:  rec.Fields(),
	}
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, models.ErrorResponse{Error: msg})
}
