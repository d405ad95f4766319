package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studentboard/internal/models"
	"studentboard/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Roll No,Student Name,Maths %,science,Attendance,Study (hrs),Stress Level\n" +
	"1,Alice,78,85,92,2,9\n" +
	"2,Bob,55,60,68,1,4\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	state.State.SetTable(nil, "")
	r := chi.NewRouter()
	NewHandler().RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func loadSample(t *testing.T, srv *httptest.Server) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	resp, err := http.Post(srv.URL+"/api/load", "application/json",
		strings.NewReader(`{"path":"`+path+`"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestLoadMissingFile(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/load", "application/json",
		strings.NewReader(`{"path":"/definitely/not/here.csv"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEndpointsRequireLoadedTable(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/summary",
		"/api/students",
		"/api/students/1",
		"/api/students/1/advice",
		"/api/class-average",
		"/api/study-vs-performance",
	} {
		assert.Equal(t, http.StatusConflict, getJSON(t, srv, path, nil), path)
	}
}

func TestStatusAndLoad(t *testing.T) {
	srv := newTestServer(t)

	var status models.StatusResponse
	getJSON(t, srv, "/api/status", &status)
	assert.False(t, status.Loaded)

	loadSample(t, srv)

	getJSON(t, srv, "/api/status", &status)
	assert.True(t, status.Loaded)
	assert.Equal(t, 2, status.Rows)
}

func TestGetStudent(t *testing.T) {
	srv := newTestServer(t)
	loadSample(t, srv)

	var student models.StudentResponse
	code := getJSON(t, srv, "/api/students/1", &student)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Alice", student.Name)
	assert.Equal(t, "Alice (Roll: 1)", student.Display)
	assert.Equal(t, 78.0, student.Fields["Math"])
	assert.Equal(t, 120.0, student.Fields["Study Duration (minutes)"])

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv, "/api/students/99", nil))
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv, "/api/students/abc", nil))
}

func TestGetStudentByName(t *testing.T) {
	srv := newTestServer(t)
	loadSample(t, srv)

	var student models.StudentResponse
	code := getJSON(t, srv, "/api/students/search?name=Bob", &student)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2", student.Roll)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv, "/api/students/search?name=bob", nil))
}

func TestStudentAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	loadSample(t, srv)

	var avg models.AverageResponse
	getJSON(t, srv, "/api/students/1/average", &avg)
	assert.InDelta(t, (78.0+85)/2, avg.AvgScore, 1e-9)

	var trend models.TrendResponse
	getJSON(t, srv, "/api/students/1/trend?terms=4", &trend)
	assert.Len(t, trend.Scores, 4)
	assert.True(t, trend.Synthetic)

	var again models.TrendResponse
	getJSON(t, srv, "/api/students/1/trend?terms=4", &again)
	assert.Equal(t, trend.Scores, again.Scores, "trend must be reproducible")

	var strengths models.StrengthsResponse
	getJSON(t, srv, "/api/students/1/strengths?top=1", &strengths)
	require.Len(t, strengths.Strengths, 1)
	assert.Equal(t, "Science", strengths.Strengths[0].Subject)
}

func TestAdviceEndpoint(t *testing.T) {
	srv := newTestServer(t)
	loadSample(t, srv)

	var adv struct {
		Stress    string `json:"stress"`
		StudyTime string `json:"study_time"`
	}
	getJSON(t, srv, "/api/students/1/advice", &adv)
	assert.Contains(t, adv.Stress, "High stress")
	// 2 hours -> 120 minutes, balanced
	assert.Contains(t, adv.StudyTime, "Study time looks reasonable")

	getJSON(t, srv, "/api/students/2/advice", &adv)
	assert.Contains(t, adv.Stress, "Stress level OK")
}

func TestActivitiesRotation(t *testing.T) {
	srv := newTestServer(t)
	loadSample(t, srv)

	var base models.ActivitiesResponse
	getJSON(t, srv, "/api/students/1/activities?n=4", &base)
	require.Len(t, base.Activities, 4)

	var rotated models.ActivitiesResponse
	getJSON(t, srv, "/api/students/1/activities?n=4&rotate=1", &rotated)
	require.Len(t, rotated.Activities, 4)
	assert.Equal(t, base.Activities[1], rotated.Activities[0])
	assert.Equal(t, base.Activities[0], rotated.Activities[3])
}

func TestClassEndpoints(t *testing.T) {
	srv := newTestServer(t)
	loadSample(t, srv)

	var subjects map[string][]string
	getJSON(t, srv, "/api/subjects", &subjects)
	assert.Equal(t, []string{"Math", "Science"}, subjects["subjects"])

	var classAvg models.ClassAverageResponse
	getJSON(t, srv, "/api/class-average", &classAvg)
	assert.InDelta(t, (78.0+55)/2, classAvg.Averages["Math"], 1e-9)

	var points map[string][]struct {
		Name         string  `json:"name"`
		StudyMinutes float64 `json:"study_minutes"`
	}
	getJSON(t, srv, "/api/study-vs-performance", &points)
	require.Len(t, points["points"], 2)
	assert.Equal(t, 120.0, points["points"][0].StudyMinutes)
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	loadSample(t, srv)

	var summary models.SummaryResponse
	getJSON(t, srv, "/api/summary", &summary)
	assert.Equal(t, 2, summary.Rows)
	assert.NotEmpty(t, summary.Profiles)
}

func TestStaticTipEndpoints(t *testing.T) {
	srv := newTestServer(t)

	var tips models.TipsResponse
	code := getJSON(t, srv, "/api/tips/memory", &tips)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "memory", tips.Category)
	assert.Len(t, tips.Tips, 3)

	getJSON(t, srv, "/api/tips/exam-fear", &tips)
	assert.Len(t, tips.Tips, 3)
}
