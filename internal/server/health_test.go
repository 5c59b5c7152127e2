package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecks(t *testing.T) {
	ts := newTestServer(t, false)

	status, _ := ts.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw := ts.do(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	body := decode[map[string]any](t, raw)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "disabled", checks["redis"])
}

func TestHealthChecks_WithRedis(t *testing.T) {
	ts := newTestServer(t, true)

	status, raw := ts.do(t, http.MethodGet, "/api", "", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	checks := decode[map[string]any](t, raw)["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["redis"])
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/properties", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteUsesJSONError(t *testing.T) {
	ts := newTestServer(t, false)

	status, raw := ts.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, errorMessage(t, raw))
}
