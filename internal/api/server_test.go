package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfield/symmetry.report/internal/pointdb"
)

const migrationsDir = "../../migrations"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := pointdb.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp(migrationsDir))
	return NewServer(db)
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeSquare(t *testing.T) {
	mux := NewServer(nil).ServeMux()
	rec := doJSON(t, mux, http.MethodPost, "/api/analyze",
		`{"points": [[1,1],[-1,1],[-1,-1],[1,-1]], "point_epsilon": 1e-6, "angle_epsilon": 1e-6}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Infinite)
	require.Len(t, resp.Lines, 4)
	assert.InDelta(t, 0, resp.Lines[0].AngleDegrees, 1e-6)
	assert.InDelta(t, 45, resp.Lines[1].AngleDegrees, 1e-6)
}

func TestAnalyzeDegenerate(t *testing.T) {
	mux := NewServer(nil).ServeMux()
	rec := doJSON(t, mux, http.MethodPost, "/api/analyze",
		`{"points": [[5,5],[5,5]], "point_epsilon": 1e-6, "angle_epsilon": 1e-6}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Infinite)
	assert.Empty(t, resp.Lines)
}

func TestAnalyzeBadRequests(t *testing.T) {
	mux := NewServer(nil).ServeMux()

	testCases := []struct {
		name string
		body string
	}{
		{"invalid_json", `{`},
		{"empty_points", `{"points": [], "point_epsilon": 1e-6, "angle_epsilon": 1e-6}`},
		{"missing_epsilons", `{"points": [[1,1],[2,2]]}`},
		{"negative_epsilon", `{"points": [[1,1],[2,2]], "point_epsilon": -1, "angle_epsilon": 1e-6}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, mux, http.MethodPost, "/api/analyze", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestAnalyzeMethodNotAllowed(t *testing.T) {
	mux := NewServer(nil).ServeMux()
	rec := doJSON(t, mux, http.MethodGet, "/api/analyze", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDatasetsWithoutStorage(t *testing.T) {
	mux := NewServer(nil).ServeMux()
	rec := doJSON(t, mux, http.MethodGet, "/api/datasets", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDatasetRoundTrip(t *testing.T) {
	s := newTestServer(t)
	mux := s.ServeMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/datasets",
		`{"name": "square", "points": [[1,1],[-1,1],[-1,-1],[1,-1]]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, mux, http.MethodGet, "/api/datasets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var infos []pointdb.DatasetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "square", infos[0].Name)
	assert.Equal(t, 4, infos[0].PointCount)
}

func TestDatasetValidation(t *testing.T) {
	s := newTestServer(t)
	mux := s.ServeMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/datasets", `{"name": "", "points": [[1,1]]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/datasets", `{"name": "empty", "points": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVizHandler(t *testing.T) {
	s := newTestServer(t)
	mux := s.ServeMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/datasets",
		`{"name": "square", "points": [[1,1],[-1,1],[-1,-1],[1,-1]]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/viz?dataset=square&point_epsilon=1e-6&angle_epsilon=1e-6", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "echarts")
}

func TestVizMissingParams(t *testing.T) {
	s := newTestServer(t)
	mux := s.ServeMux()

	rec := doJSON(t, mux, http.MethodGet, "/viz", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/viz?dataset=square", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVizMissingDataset(t *testing.T) {
	s := newTestServer(t)
	mux := s.ServeMux()

	rec := doJSON(t, mux, http.MethodGet, "/viz?dataset=absent&point_epsilon=1e-6&angle_epsilon=1e-6", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
