package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/i18n"
	"github.com/accsetupsviewer/server/internal/search"
	"github.com/accsetupsviewer/server/internal/service"
)

func TestGetCatalog(t *testing.T) {
	ts := setupTestServer(t, &stubSource{paths: append([]string{"README.md"}, apiTestPaths...)}, &stubConverter{})

	resp := ts.api.Get("/api/v1/catalog")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[service.CatalogResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, 4, env.Data.Total)
	assert.Len(t, env.Data.Cars, 3)
	assert.Len(t, env.Data.Tracks, 2)
	assert.Equal(t, domain.CategoryGT4, env.Data.ClassByCar["porsche 718 cayman gt4"])
	assert.Equal(t, []domain.CarCategory{domain.CategoryGT3, domain.CategoryGT4}, env.Data.Tabs)
}

func TestGetCatalog_FilterPanel(t *testing.T) {
	ts := setupTestServer(t, &stubSource{paths: apiTestPaths}, &stubConverter{})

	resp := ts.api.Get("/api/v1/catalog?carClass=gt3&q=ferrari")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[service.CatalogResponse](t, resp.Body.Bytes())
	assert.Equal(t, domain.CategoryGT3, env.Data.CarClass)
	require.Len(t, env.Data.VisibleCars, 1)
	assert.Equal(t, "ferrari 296 gt3", env.Data.VisibleCars[0].Key)
	assert.Empty(t, env.Data.VisibleTracks)
	assert.Len(t, env.Data.Cars, 3)

	resp = ts.api.Get("/api/v1/catalog?carClass=gt4")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env = decode[service.CatalogResponse](t, resp.Body.Bytes())
	require.Len(t, env.Data.VisibleCars, 1)
	assert.Equal(t, "porsche 718 cayman gt4", env.Data.VisibleCars[0].Key)
	assert.Len(t, env.Data.VisibleTracks, 2)
	assert.Contains(t, env.Data.Languages, i18n.Italian)
}

func TestRefreshCatalog(t *testing.T) {
	source := &stubSource{paths: apiTestPaths}
	ts := setupTestServer(t, source, &stubConverter{})

	resp := ts.api.Get("/api/v1/catalog")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 4, decode[service.CatalogResponse](t, resp.Body.Bytes()).Data.Total)

	source.paths = append(source.paths, "bmw_m4_gt4/zolder/race.json")

	resp = ts.api.Post("/api/v1/catalog/refresh")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	bearer := ts.register(t, "refresh@example.com")
	resp = ts.api.Post("/api/v1/catalog/refresh", bearer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[service.CatalogResponse](t, resp.Body.Bytes())
	assert.Equal(t, 5, env.Data.Total)
	assert.Len(t, env.Data.Tracks, 3)
}

func TestSearchCatalog(t *testing.T) {
	ts := setupTestServer(t, &stubSource{paths: apiTestPaths}, &stubConverter{})

	resp := ts.api.Get("/api/v1/catalog/search?q=monza&category=gt3")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[search.Result](t, resp.Body.Bytes())
	require.Len(t, env.Data.Hits, 1)
	assert.Equal(t, "audi_r8_lms_gt3_evo_ii/monza/Monza_Q.json", env.Data.Hits[0].Path)
}

func TestSearchCatalog_LimitOutOfRange(t *testing.T) {
	ts := setupTestServer(t, &stubSource{paths: apiTestPaths}, &stubConverter{})

	resp := ts.api.Get("/api/v1/catalog/search?limit=1000")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	env := decode[any](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestClassifyCar(t *testing.T) {
	ts := setupTestServer(t, &stubSource{}, &stubConverter{})

	resp := ts.api.Get("/api/v1/catalog/classify/McLaren_720S_GT3_Evo")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[ClassifyCarResponse](t, resp.Body.Bytes())
	assert.Equal(t, "mclaren 720s gt3 evo", env.Data.Car)
	assert.Equal(t, domain.CategoryGT3, env.Data.Category)
}
