package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accsetupsviewer/server/internal/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$"))

	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "wrong horse"))
}

func TestHashPassword_Limits(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	_, err = HashPassword(strings.Repeat("a", maxPasswordLength+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA"} {
		assert.False(t, VerifyPassword(hash, "anything"), hash)
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "nested", "auth.key")

	key, err := LoadOrGenerateKey(keyPath)
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := LoadOrGenerateKey(keyPath)
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestLoadOrGenerateKey_Invalid(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "auth.key")
	require.NoError(t, os.WriteFile(keyPath, []byte("short"), 0o600))

	_, err := LoadOrGenerateKey(keyPath)
	assert.ErrorContains(t, err, "invalid auth key length")
}

func newTestTokenService(t *testing.T, access time.Duration) *TokenService {
	t.Helper()
	key := make([]byte, keyLength)
	for i := range key {
		key[i] = byte(i)
	}
	svc, err := NewTokenService(key, access, time.Hour)
	require.NoError(t, err)
	return svc
}

func TestTokenService_AccessToken(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute)
	user := &domain.User{ID: "usr-1", Email: "driver@example.com"}

	token, err := svc.GenerateAccessToken(user, "sess-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "usr-1", claims.Subject)
	assert.Equal(t, "driver@example.com", claims.Email)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestTokenService_RejectsExpiredAndForeignTokens(t *testing.T) {
	expired := newTestTokenService(t, -time.Minute)
	token, err := expired.GenerateAccessToken(&domain.User{ID: "usr-1"}, "sess-1")
	require.NoError(t, err)
	_, err = expired.VerifyAccessToken(token)
	assert.Error(t, err)

	other, err := NewTokenService(make([]byte, keyLength), time.Minute, time.Hour)
	require.NoError(t, err)
	valid, err := newTestTokenService(t, time.Minute).GenerateAccessToken(&domain.User{ID: "usr-1"}, "s")
	require.NoError(t, err)
	_, err = other.VerifyAccessToken(valid)
	assert.Error(t, err)
}

func TestNewTokenService_KeyLength(t *testing.T) {
	_, err := NewTokenService([]byte("short"), time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)

	a, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	b, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	assert.Len(t, HashRefreshToken(a), 64)
	assert.Equal(t, HashRefreshToken(a), HashRefreshToken(a))
	assert.NotEqual(t, HashRefreshToken(a), HashRefreshToken(b))
}
