package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoMatch/internal/config"
	"GoMatch/internal/server"
	"GoMatch/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.DefaultConfig()
	reg := prometheus.NewRegistry()
	metrics := server.NewMetrics(reg)
	cache := server.NewPatternCache(cfg.CacheSize, cfg.CompileOptions(nil), metrics, nil)

	mux := http.NewServeMux()
	server.NewHandler(cache, metrics, cfg.MaxInputs, nil).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	ts := httptest.NewServer(server.WithRequestLogging(mux, nil))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestE2E_MatchScenarios(t *testing.T) {
	ts := newTestServer(t)

	for _, s := range testutil.Scenarios() {
		resp := post(t, ts, "/match", map[string]interface{}{
			"pattern": s.Pattern,
			"inputs":  []string{s.Input},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(server.RequestIDHeader))

		var out struct {
			Results []struct {
				Input   string `json:"input"`
				Matched bool   `json:"matched"`
			} `json:"results"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out.Results, 1)
		assert.Equal(t, s.Match, out.Results[0].Matched, "pattern=%q input=%q", s.Pattern, s.Input)
	}
}

func TestE2E_CompileDumpAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/compile", map[string]string{"pattern": "a**"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts, "/dump", map[string]interface{}{"pattern": "a*b", "omit_empty": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "(1,1)", "self-loop on 'a'")
	assert.Contains(t, string(body), "(2,0)", "fall-through on miss")

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `gomatch_compiles_total{result="error"} 1`), text)
	assert.True(t, strings.Contains(text, `gomatch_compiles_total{result="ok"} 1`), text)
}
