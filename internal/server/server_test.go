package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/channelstat/internal/source"
	"github.com/KaramelBytes/channelstat/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenSource struct{}

func (brokenSource) Load(context.Context) (*survey.Table, error) {
	return nil, os.ErrPermission
}

func csvFile(t *testing.T, body string) source.Source {
	t.Helper()
	p := filepath.Join(t.TempDir(), "responses.csv")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return &source.CSVSource{Path: p}
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestIndex(t *testing.T) {
	rec := do(t, New(Options{Version: "1.2.3"}), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "online", out["status"])
	assert.Equal(t, "1.2.3", out["version"])
}

func TestResearchSummary(t *testing.T) {
	s := New(Options{Summary: csvFile(t, survey.TemplateCSV)})
	rec := do(t, s, http.MethodGet, "/api/research-summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, true, out["success"])
	data := out["data"].(map[string]any)
	assert.Equal(t, float64(6), data["total_sample"])
	avg := data["averages"].(map[string]any)
	assert.InDelta(t, 19.0/6, avg["digital_intent"], 1e-9)
	assert.InDelta(t, 22.0/6, avg["offline_intent"], 1e-9)
}

func TestResearchSummaryEmptyAndErrors(t *testing.T) {
	rec := do(t, New(Options{Summary: csvFile(t, "d_intent,o_intent,d_trust,o_trust\n")}), http.MethodGet, "/api/research-summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No research data found", decode(t, rec)["message"])

	rec = do(t, New(Options{Summary: brokenSource{}}), http.MethodGet, "/api/research-summary", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["error"])

	rec = do(t, New(Options{}), http.MethodGet, "/api/research-summary", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnalyzeJSON(t *testing.T) {
	rec := do(t, New(Options{}), http.MethodPost, "/api/analyze", survey.TemplateCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Run-Id"))
	out := decode(t, rec)
	assert.Equal(t, float64(6), out["sample_size"])
	assert.Len(t, out["tests"], 4)
	assert.Equal(t, "fallback", out["interpretation"].(map[string]any)["provenance"])
}

func TestAnalyzeFormatsAndFailures(t *testing.T) {
	s := New(Options{})
	rec := do(t, s, http.MethodPost, "/api/analyze?format=markdown", survey.TemplateCSV)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "[HYPOTHESIS TESTS]")

	rec = do(t, s, http.MethodPost, "/api/analyze?format=pdf", survey.TemplateCSV)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/analyze", "age,d_intent\n18-30,5\n")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "o_intent")

	small := New(Options{MaxUpload: 16})
	rec = do(t, small, http.MethodPost, "/api/analyze", survey.TemplateCSV)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/analyze?delimiter=;", strings.ReplaceAll(survey.TemplateCSV, ",", ";"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
