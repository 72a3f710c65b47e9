// Package api exposes the analyzer over HTTP: ad-hoc analysis of
// posted coordinates, dataset storage backed by pointdb, and an
// echarts visualization page per dataset.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/mirrorfield/symmetry.report/internal/geom"
	"github.com/mirrorfield/symmetry.report/internal/pointdb"
	"github.com/mirrorfield/symmetry.report/internal/symmetry"
	"github.com/mirrorfield/symmetry.report/internal/viz"
)

// maxAnalyzePoints caps the size of a posted point set. The analyzer
// is cubic in the worst case; anything beyond a few thousand points
// belongs in a batch run, not a request handler.
const maxAnalyzePoints = 5000

type Server struct {
	db *pointdb.DB
}

func NewServer(db *pointdb.DB) *Server {
	return &Server{db: db}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/datasets", s.handleDatasets)
	mux.HandleFunc("/viz", s.handleViz)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to the Symmetry Server!"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// analyzeRequest is the POST /api/analyze body. Tolerances are
// mandatory; the analyzer rejects absent values rather than assuming
// defaults.
type analyzeRequest struct {
	Points       [][2]float64 `json:"points"`
	PointEpsilon float64      `json:"point_epsilon"`
	AngleEpsilon float64      `json:"angle_epsilon"`
	Workers      int          `json:"workers,omitempty"`
	Dataset      string       `json:"dataset,omitempty"` // record the run against this dataset ID
}

type analyzeResponse struct {
	Infinite bool        `json:"infinite"`
	Lines    []axisJSON  `json:"lines"`
	Centroid *geom.Point `json:"centroid,omitempty"`
	RunID    string      `json:"run_id,omitempty"`
}

type axisJSON struct {
	AngleRadians float64    `json:"angle_radians"`
	AngleDegrees float64    `json:"angle_degrees"`
	Anchor       geom.Point `json:"anchor"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Points) > maxAnalyzePoints {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("too many points: %d (max %d)", len(req.Points), maxAnalyzePoints))
		return
	}

	ps, err := geom.NewPointSetFromCoords(req.Points)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := symmetry.Config{
		PointEpsilon: req.PointEpsilon,
		AngleEpsilon: req.AngleEpsilon,
		Workers:      req.Workers,
	}
	res, err := symmetry.FindSymmetryLines(ps, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		var cfgErr *symmetry.ConfigError
		if errors.As(err, &cfgErr) || errors.Is(err, geom.ErrEmptyPointSet) {
			status = http.StatusBadRequest
		}
		s.writeJSONError(w, status, err.Error())
		return
	}

	resp := analyzeResponse{Infinite: res.Infinite}
	c := ps.Centroid()
	resp.Centroid = &c
	resp.Lines = make([]axisJSON, len(res.Lines))
	for i, l := range res.Lines {
		resp.Lines[i] = axisJSON{
			AngleRadians: l.Angle,
			AngleDegrees: l.Angle * 180 / math.Pi,
			Anchor:       l.Anchor,
		}
	}

	if req.Dataset != "" && s.db != nil {
		runID, err := s.db.RecordAnalysis(req.Dataset, cfg, res)
		if err != nil {
			log.Printf("failed to record analysis for dataset %s: %v", req.Dataset, err)
		} else {
			resp.RunID = runID
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// saveDatasetRequest is the POST /api/datasets body.
type saveDatasetRequest struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "dataset storage not configured")
		return
	}
	switch r.Method {
	case http.MethodGet:
		infos, err := s.db.ListDatasets()
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list datasets: %v", err))
			return
		}
		s.writeJSON(w, http.StatusOK, infos)
	case http.MethodPost:
		var req saveDatasetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if req.Name == "" {
			s.writeJSONError(w, http.StatusBadRequest, "dataset name is required")
			return
		}
		pts := make([]geom.Point, 0, len(req.Points))
		for _, c := range req.Points {
			p, err := geom.NewPoint(c[0], c[1])
			if err != nil {
				s.writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			pts = append(pts, p)
		}
		id, err := s.db.SaveDataset(req.Name, pts)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, geom.ErrEmptyPointSet) {
				status = http.StatusBadRequest
			}
			s.writeJSONError(w, status, fmt.Sprintf("failed to save dataset: %v", err))
			return
		}
		s.writeJSON(w, http.StatusCreated, map[string]string{"dataset_id": id})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleViz renders an echarts page for a stored dataset.
// Query params: dataset (required), point_epsilon and angle_epsilon
// (required, same semantics as the analyzer config).
func (s *Server) handleViz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.db == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "dataset storage not configured")
		return
	}

	name := r.URL.Query().Get("dataset")
	if name == "" {
		s.writeJSONError(w, http.StatusBadRequest, "dataset query parameter is required")
		return
	}

	cfg := symmetry.Config{}
	var err error
	if cfg.PointEpsilon, err = queryFloat(r, "point_epsilon"); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if cfg.AngleEpsilon, err = queryFloat(r, "angle_epsilon"); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ps, err := s.db.LoadDataset(name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, geom.ErrEmptyPointSet) {
			status = http.StatusNotFound
		}
		s.writeJSONError(w, status, fmt.Sprintf("failed to load dataset %q: %v", name, err))
		return
	}

	res, err := symmetry.FindSymmetryLines(ps, cfg)
	if err != nil {
		var cfgErr *symmetry.ConfigError
		status := http.StatusInternalServerError
		if errors.As(err, &cfgErr) {
			status = http.StatusBadRequest
		}
		s.writeJSONError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viz.RenderHTML(w, fmt.Sprintf("Symmetry: %s", name), ps, res, cfg.PointEpsilon); err != nil {
		log.Printf("failed to render viz for dataset %s: %v", name, err)
	}
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
