package api

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/accsetupsviewer/server/internal/auth"
	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/search"
	"github.com/accsetupsviewer/server/internal/service"
	"github.com/accsetupsviewer/server/internal/store/sqlite"
	"github.com/accsetupsviewer/server/internal/validation"
)

// testEnvelope mirrors response.Envelope with typed data.
type testEnvelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

type stubSource struct {
	paths   []string
	raw     map[string]string
	listErr error
}

func (s *stubSource) ListSetupPaths(context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]string(nil), s.paths...), nil
}

func (s *stubSource) FetchRaw(_ context.Context, path string) (string, error) {
	return s.raw[path], nil
}

type stubConverter struct {
	values domain.FinalValues
	err    error
}

func (c *stubConverter) Convert(context.Context, string, []byte) (domain.FinalValues, error) {
	return c.values, c.err
}

var apiTestPaths = []string{
	"ferrari_296_gt3/spa/race.json",
	"audi_r8_lms_gt3_evo_ii/monza/Monza_Q.json",
	"audi_r8_lms_gt3_evo_ii/spa/race.json",
	"porsche_718_cayman_gt4/monza/safe.json",
}

type testServer struct {
	*Server
	api    humatest.TestAPI
	tokens *auth.TokenService
}

func setupTestServer(t *testing.T, source *stubSource, converter *stubConverter) *testServer {
	t.Helper()

	opts := DefaultOptions()
	opts.AuthRate, opts.AuthBurst = 1000, 100
	return newTestServer(t, source, converter, opts)
}

func newTestServer(t *testing.T, source *stubSource, converter *stubConverter, opts Options) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	idx, err := search.NewSetupIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	v := validation.New()
	sessions := service.NewSessionService(st, tokens, logger)
	profiles := service.NewProfileService(st, v, logger)
	catalog := service.NewCatalogService(source, idx, time.Minute, logger)

	services := &Services{
		Auth:      service.NewAuthService(st, tokens, sessions, v, logger),
		Profile:   profiles,
		Dashboard: service.NewDashboardService(st, profiles, logger),
		Catalog:   catalog,
		Setups:    service.NewSetupService(catalog, source, converter, logger),
		Search:    idx,
	}

	s := NewServer(st, services, opts, logger)
	t.Cleanup(s.Close)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		tokens: tokens,
	}
}

func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

// register creates an account and returns its bearer header.
func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[AuthResponse](t, resp.Body.Bytes())
	return "Authorization: Bearer " + env.Data.AccessToken
}

// registerWithNickname creates an account allowed to write to the dashboard.
func (ts *testServer) registerWithNickname(t *testing.T, email, nickname string) string {
	t.Helper()

	bearer := ts.register(t, email)
	resp := ts.api.Put("/api/v1/profile/nickname", bearer, map[string]any{"nickname": nickname})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	return bearer
}
