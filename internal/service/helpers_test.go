package service

import (
	"context"
	"crypto/rand"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/accsetupsviewer/server/internal/auth"
	"github.com/accsetupsviewer/server/internal/store/sqlite"
	"github.com/accsetupsviewer/server/internal/validation"
)

type testServices struct {
	store     *sqlite.Store
	tokens    *auth.TokenService
	sessions  *SessionService
	auth      *AuthService
	profiles  *ProfileService
	dashboard *DashboardService
}

func newTestServices(t *testing.T) *testServices {
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

	v := validation.New()
	sessions := NewSessionService(st, tokens, logger)
	profiles := NewProfileService(st, v, logger)

	return &testServices{
		store:     st,
		tokens:    tokens,
		sessions:  sessions,
		auth:      NewAuthService(st, tokens, sessions, v, logger),
		profiles:  profiles,
		dashboard: NewDashboardService(st, profiles, logger),
	}
}

var testClient = auth.ClientInfo{IPAddress: "127.0.0.1", UserAgent: "go-test"}

func (s *testServices) register(t *testing.T, email string) *AuthResponse {
	t.Helper()
	resp, err := s.auth.Register(context.Background(), RegisterRequest{Email: email, Password: "password123"}, testClient)
	require.NoError(t, err)
	return resp
}

// registerWithNickname creates a user who may write to the dashboard.
func (s *testServices) registerWithNickname(t *testing.T, email, nickname string) string {
	t.Helper()
	resp := s.register(t, email)
	_, err := s.profiles.SetNickname(context.Background(), resp.User.ID, SetNicknameRequest{Nickname: nickname})
	require.NoError(t, err)
	return resp.User.ID
}
