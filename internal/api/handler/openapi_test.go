package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	specpkg "github.com/teamboard/teamboard/api"
	"github.com/teamboard/teamboard/internal/api/handler"
)

const testOpenAPIYAML = `openapi: "3.1.0"
info:
  title: Test API
  version: "1.0.0"
paths:
  /health:
    get:
      summary: Health check
`

func serveOpenAPI(t *testing.T, h *handler.OpenAPIHandler) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "response should be valid JSON")
	return result
}

func TestOpenAPIHandler_ReturnsJSON(t *testing.T) {
	t.Parallel()

	h, err := handler.NewOpenAPIHandler([]byte(testOpenAPIYAML), "")
	require.NoError(t, err)

	result := serveOpenAPI(t, h)

	assert.Equal(t, "3.1.0", result["openapi"])
	info := result["info"].(map[string]interface{})
	assert.Equal(t, "Test API", info["title"])
	assert.Equal(t, "1.0.0", info["version"])
	assert.Contains(t, result["paths"], "/health")
}

func TestOpenAPIHandler_StampsVersion(t *testing.T) {
	t.Parallel()

	h, err := handler.NewOpenAPIHandler([]byte(testOpenAPIYAML), "2.4.0")
	require.NoError(t, err)

	result := serveOpenAPI(t, h)

	info := result["info"].(map[string]interface{})
	assert.Equal(t, "2.4.0", info["version"])
	assert.Equal(t, "Test API", info["title"])
}

func TestOpenAPIHandler_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := handler.NewOpenAPIHandler([]byte("openapi: [unclosed"), "")

	assert.Error(t, err)
}

func TestOpenAPIHandler_EmbeddedSpec(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, specpkg.OpenAPISpec, "embedded OpenAPI spec should not be empty")

	h, err := handler.NewOpenAPIHandler(specpkg.OpenAPISpec, "dev")
	require.NoError(t, err)

	result := serveOpenAPI(t, h)

	assert.Equal(t, "3.1.0", result["openapi"])
	paths := result["paths"].(map[string]interface{})
	assert.Contains(t, paths, "/teams/register")
	assert.Contains(t, paths, "/posts/{id}")
}
