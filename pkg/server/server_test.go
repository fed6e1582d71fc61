package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horobot/pkg/notify"
	"horobot/pkg/zodiac"
)

func rawCells(overrides map[zodiac.Band]string) []string {
	values := make([]string, len(zodiac.AllBands()))
	for i, band := range zodiac.AllBands() {
		if v, ok := overrides[band]; ok {
			values[i] = v
		} else {
			values[i] = " "
		}
	}
	return values
}

func testServer(t *testing.T) *Server {
	t.Helper()
	reg := zodiac.Registry{"beran": {"Alice"}, "lev": {"Bob"}}
	raw := map[zodiac.Sign][]string{
		zodiac.SignBeran: rawCells(map[zodiac.Band]string{100: "lev"}),
		zodiac.SignLev:   rawCells(nil),
	}
	m, err := zodiac.BuildMatrix(raw, reg)
	require.NoError(t, err)

	s := New(reg, 0)
	s.SetLatest(&notify.Digest{
		Date:    time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		Summary: "Kamarádi:\n+ Alice je s Bob dnes kamarád!\n\nNepřátelé:\n",
	}, m)
	return s
}

func TestHandleHealth(t *testing.T) {
	s := New(zodiac.Registry{}, 0)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleMatrix(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.handleMatrix(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matrix", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Date    string   `json:"date"`
		Columns []string `json:"columns"`
		Rows    []struct {
			Band  string            `json:"band"`
			Cells map[string]string `json:"cells"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-08-29", resp.Date)
	assert.Equal(t, []string{"Beran", "Lev"}, resp.Columns)
	require.Len(t, resp.Rows, 11)
	assert.Equal(t, "100%", resp.Rows[0].Band)
	assert.Equal(t, "Bob", resp.Rows[0].Cells["Beran"])
	assert.Equal(t, "-100%", resp.Rows[10].Band)
}

func TestHandleMatrixNoDigest(t *testing.T) {
	s := New(zodiac.Registry{}, 0)

	rec := httptest.NewRecorder()
	s.handleMatrix(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matrix", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSummary(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.handleSummary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summary?band=100%25", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Band  string   `json:"band"`
		Kind  string   `json:"kind"`
		Lines []string `json:"lines"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "100%", resp.Band)
	assert.Equal(t, "kamarád", resp.Kind)
	assert.Equal(t, []string{"+ Alice je s Bob dnes kamarád!"}, resp.Lines)
	assert.Equal(t, 1, resp.Count)
}

func TestHandleSummaryDefaultsToTopBand(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.handleSummary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"100%"`)
}

func TestHandleSummaryBadBand(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.handleSummary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summary?band=lots", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSummaryMethodNotAllowed(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.handleSummary(rec, httptest.NewRequest(http.MethodPost, "/api/v1/summary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
