// cmd/api/healthcheck_test.go
package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	app := newTestApplication(t, &fakeBookStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)

	// Health always answers 200; the database verdict rides in the body.
	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	assert.Equal(t, "ok", body["status"])
	// The test pool points at an unreachable address, so the probe fails.
	assert.Equal(t, "down", body["database"])

	uptime, ok := body["uptime_seconds"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, uptime, float64(0))
}
