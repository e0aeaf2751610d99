package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propel/config"
	"github.com/katalvlaran/propel/httpapi"
	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/polar/polartest"
	"github.com/katalvlaran/propel/propeller"
	"github.com/katalvlaran/propel/results"
)

const runFile = `
name: bench
source: {driver: memory}
propellers:
  - name: left
    radius: 1
    radial: 30
    rpm: 50
    pitch: 5
    sections:
      - {location: 0.1, airfoil: thin, chord: 0.1, twist: 20}
      - {location: 1.0, airfoil: thin, chord: 0.1, twist: -4}
sweep:
  - {conditions: {velocity: 0}, thrust_x: 0}
`

type fixture struct {
	srv     *httptest.Server
	archive *results.Store
}

func newFixture(t *testing.T, opts ...httpapi.Option) fixture {
	t.Helper()
	cfg, err := config.Decode(strings.NewReader(runFile))
	require.NoError(t, err)
	store, err := polartest.Store("thin", polartest.Default())
	require.NoError(t, err)
	archive, err := results.Open(results.DriverSQLite, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	opts = append([]httpapi.Option{httpapi.WithGatherer(reg), httpapi.WithMetrics(m), httpapi.WithRateLimit(1000, 1000)}, opts...)
	srv := httptest.NewServer(httpapi.New(cfg, store, archive, opts...).Handler())
	t.Cleanup(srv.Close)

	return fixture{srv: srv, archive: archive}
}

func (f fixture) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(f.srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func (f fixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// TestSolve_ArchivesRun verifies that a sweep is solved, stored and
// listed, and that its report routes answer.
func TestSolve_ArchivesRun(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/solve", `{"name": "hover"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var solved httpapi.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&solved))
	require.NotNil(t, solved.Run)
	assert.Equal(t, "hover", solved.Run.Name)
	require.Len(t, solved.Points, 1)
	assert.Empty(t, solved.Points[0].Error)
	require.Len(t, solved.Points[0].Solution.Propellers, 1)
	assert.Equal(t, propeller.StateTrimmed, solved.Points[0].Solution.Propellers[0].Result.State)

	resp = f.get(t, "/api/runs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var runs []results.Run
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, solved.Run.ID, runs[0].ID)

	resp = f.get(t, "/api/runs/"+solved.Run.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var one httpapi.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&one))
	assert.Len(t, one.Points, 1)

	resp = f.get(t, "/api/runs/"+solved.Run.ID+"/report.pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	var pdf bytes.Buffer
	_, err := pdf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))

	resp = f.get(t, "/api/runs/"+solved.Run.ID+"/sweep.xlsx")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.get(t, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `propel_solves_total{outcome="trimmed"} 1`)
}

// TestSolve_BadRequests verifies the 4xx answers.
func TestSolve_BadRequests(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.post(t, "/api/solve", `{"points": 3}`).StatusCode)
	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/runs/missing").StatusCode)
	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/runs/missing/report.pdf").StatusCode)
	assert.Equal(t, http.StatusMethodNotAllowed, f.get(t, "/api/solve").StatusCode)
	assert.Equal(t, http.StatusMethodNotAllowed, f.post(t, "/api/runs", `{}`).StatusCode)
	assert.Equal(t, http.StatusMethodNotAllowed, f.post(t, "/api/runs/missing", `{}`).StatusCode)
	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/unknown").StatusCode)
}

// TestSolve_UnsolvedPoint verifies that a bad point is reported, not fatal.
func TestSolve_UnsolvedPoint(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/solve", `{"points": [{"conditions": {"altitude": 1000000}}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var solved httpapi.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&solved))
	require.Len(t, solved.Points, 1)
	assert.Contains(t, solved.Points[0].Error, "not solved")
	assert.Equal(t, 1, solved.Run.Failed)
}

// TestRateLimit_PerClient verifies that the bucket rejects once drained.
func TestRateLimit_PerClient(t *testing.T) {
	f := newFixture(t, httpapi.WithRateLimit(0.001, 2))

	assert.Equal(t, http.StatusOK, f.get(t, "/api/runs").StatusCode)
	assert.Equal(t, http.StatusOK, f.get(t, "/api/runs").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, f.get(t, "/api/runs").StatusCode)
	assert.Equal(t, http.StatusOK, f.get(t, "/healthz").StatusCode)
}

// TestRuns_NoArchive verifies the 503 answer without a results store.
func TestRuns_NoArchive(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(runFile))
	require.NoError(t, err)
	srv := httptest.NewServer(httpapi.New(cfg, nil, nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/runs")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
