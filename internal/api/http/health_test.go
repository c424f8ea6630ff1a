package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performHealthCheck(t *testing.T, cache *redis.Client) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewHealthHandler("eventconnect-api", "1.0.0", cache).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheckWithoutCache(t *testing.T) {
	resp := performHealthCheck(t, nil)

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "eventconnect-api", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "disabled", resp.Cache)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHealthCheckReportsCacheState(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	resp := performHealthCheck(t, client)
	assert.Equal(t, "up", resp.Cache)

	mr.Close()
	resp = performHealthCheck(t, client)
	assert.Equal(t, "down", resp.Cache)
	// The service itself still answers.
	assert.Equal(t, "healthy", resp.Status)
}
