package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todonotes/internal/config"

	_ "todonotes/docs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newSystemRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := config.Config{App: config.AppConfig{Env: "test", Version: "1.2.3"}}
	// nil pool and nil redis: system endpoints touch neither.
	Setup(r, cfg, nil, nil)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := newSystemRouter()
	before := time.Now().UTC()

	w := get(t, r, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
	require.False(t, body.Timestamp.Before(before))
	require.False(t, body.Timestamp.After(time.Now().UTC()))
}

func TestRootAndVersionEndpoints(t *testing.T) {
	r := newSystemRouter()

	w := get(t, r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	var root map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	require.Equal(t, "Todo Notes API", root["service"])
	require.Equal(t, "1.2.3", root["version"])
	require.Equal(t, "test", root["env"])

	w = get(t, r, "/version")
	require.Equal(t, http.StatusOK, w.Code)
	var version map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &version))
	require.Equal(t, "1.2.3", version["version"])
}

func TestSwaggerDoc(t *testing.T) {
	r := newSystemRouter()

	w := get(t, r, "/swagger-doc.json")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Equal(t, "2.0", doc["swagger"])
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, paths, "/todos")
	require.Contains(t, paths, "/todos/{id}/notes/{note_id}")
	require.Contains(t, paths, "/stats")
}
