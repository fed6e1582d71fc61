package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"horobot/pkg/notify"
	"horobot/pkg/zodiac"
)

// Server exposes the most recent digest over a small JSON API.
type Server struct {
	registry zodiac.Registry
	port     int

	mu     sync.RWMutex
	digest *notify.Digest
	matrix *zodiac.Matrix
}

// New creates a new HTTP server.
func New(registry zodiac.Registry, port int) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{
		registry: registry,
		port:     port,
	}
}

// SetLatest publishes a freshly built digest and matrix.
func (s *Server) SetLatest(d *notify.Digest, m *zodiac.Matrix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digest = d
	s.matrix = m
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/matrix", s.handleMatrix)
	mux.HandleFunc("/api/v1/summary", s.handleSummary)

	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("horobot server listening on %s\n", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type matrixRow struct {
	Band  string            `json:"band"`
	Cells map[string]string `json:"cells"`
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	s.mu.RLock()
	digest, matrix := s.digest, s.matrix
	s.mu.RUnlock()

	if matrix == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no digest built yet"})
		return
	}

	rows := make([]matrixRow, 0, len(zodiac.AllBands()))
	for _, band := range zodiac.AllBands() {
		cells := make(map[string]string, len(matrix.Columns()))
		for _, column := range matrix.Columns() {
			cells[column] = matrix.Cell(band, column)
		}
		rows = append(rows, matrixRow{Band: band.Label(), Cells: cells})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":    digest.Date.Format(time.DateOnly),
		"columns": matrix.Columns(),
		"rows":    rows,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	label := r.URL.Query().Get("band")
	if label == "" {
		label = "100%"
	}
	band, err := zodiac.ParseBand(label)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.RLock()
	matrix := s.matrix
	s.mu.RUnlock()

	if matrix == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no digest built yet"})
		return
	}

	kind := zodiac.KindForBand(band)
	lines := zodiac.RenderSummary(zodiac.ExtractPairs(matrix, s.registry, band), kind)

	writeJSON(w, http.StatusOK, map[string]any{
		"band":  band.Label(),
		"kind":  kind.Label,
		"lines": lines,
		"count": len(lines),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
