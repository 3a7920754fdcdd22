// Package api exposes the comparison engine as a JSON API.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"driftlens/adapters/stats/strategies"
	"driftlens/domain/core"
	"driftlens/domain/dataset"
	"driftlens/internal/analysis"
	"driftlens/internal/errors"
)

// Server is the JSON API application
type Server struct {
	router *chi.Mux
	alpha  float64
}

// NewServer creates the API server with routes registered
func NewServer(alpha float64) *Server {
	s := &Server{
		router: chi.NewRouter(),
		alpha:  alpha,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Post("/v1/analyze", s.handleAnalyze)
	s.router.Post("/v1/adjust", s.handleAdjust)
	s.router.Get("/v1/strategies", s.handleStrategies)

	return s
}

// Router exposes the http handler for serving and tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server
func (s *Server) Start(addr string) error {
	log.Printf("[API] listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// analyzeRequest is the wire format of an analysis request. Cell values may
// be JSON numbers or strings; anything else is rejected.
type analyzeRequest struct {
	Reference map[string][]json.RawMessage `json:"reference"`
	Candidate map[string][]json.RawMessage `json:"candidate"`
	Ignore    []string                     `json:"ignore,omitempty"`
	Strategy  string                       `json:"strategy,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("request body is not valid JSON"))
		return
	}
	if len(req.Reference) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("reference dataset is required"))
		return
	}

	reference, err := decodeDataset(req.Reference)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid reference dataset"))
		return
	}
	candidate, err := decodeDataset(req.Candidate)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid candidate dataset"))
		return
	}

	cfg := analysis.Config{Alpha: s.alpha, IgnoreFields: req.Ignore}
	if req.Strategy != "" {
		numeric, err := strategies.NumericByName(req.Strategy)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New(errors.CodeUnsupportedMethod, err.Error()))
			return
		}
		cfg.Numeric = numeric
	}

	engine := analysis.NewEngine(reference, candidate, cfg)
	table, err := engine.Analyze(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsDegenerateInput(err) {
			status = http.StatusUnprocessableEntity
		}
		s.writeError(w, status, errors.Wrap(err, "analysis failed"))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":        table.Rows,
		"fingerprint": table.Fingerprint().String(),
	})
}

// adjustRequest is the wire format of a p-value adjustment request
type adjustRequest struct {
	PValues []float64 `json:"p_values"`
	Method  string    `json:"method"`
}

func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("request body is not valid JSON"))
		return
	}

	adjusted, err := analysis.AdjustPValues(req.PValues, req.Method)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.CodeUnsupportedMethod, err.Error()))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"adjusted": adjusted})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"numeric":     strategies.NumericNames(),
		"categorical": []string{strategies.ChiSquaredName},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

// decodeDataset converts the wire columns into a typed dataset, sorted by
// field name so request map ordering cannot change analysis order.
func decodeDataset(cols map[string][]json.RawMessage) (*dataset.Dataset, error) {
	fields := make([]string, 0, len(cols))
	for f := range cols {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := dataset.New()
	for _, f := range fields {
		col := make(dataset.Column, 0, len(cols[f]))
		for i, raw := range cols[f] {
			v, err := decodeValue(raw)
			if err != nil {
				return nil, errors.InvalidInput(
					fmt.Sprintf("column %s: cell %d must be a number or string", f, i))
			}
			col = append(col, v)
		}
		out.SetColumn(f, col)
	}
	return out, nil
}

func decodeValue(raw json.RawMessage) (dataset.Value, error) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return dataset.Num(num), nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return dataset.Str(str), nil
	}
	return dataset.Value{}, errors.InvalidInput("unsupported cell type")
}
