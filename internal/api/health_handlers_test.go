package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t, &stubSource{paths: apiTestPaths}, &stubConverter{})

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[HealthResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Equal(t, "healthy", env.Data.Components["database"].Status)
	assert.Equal(t, "listing not cached", env.Data.Components["catalog"].Message)
	assert.Equal(t, "0 documents", env.Data.Components["search"].Message)
}

func TestHealthCheck_AfterCatalogLoad(t *testing.T) {
	ts := setupTestServer(t, &stubSource{paths: apiTestPaths}, &stubConverter{})

	require.Equal(t, http.StatusOK, ts.api.Get("/api/v1/catalog").Code)

	env := decode[HealthResponse](t, ts.api.Get("/health").Body.Bytes())
	assert.Equal(t, "listing cached", env.Data.Components["catalog"].Message)
	assert.Equal(t, "4 documents", env.Data.Components["search"].Message)
}
