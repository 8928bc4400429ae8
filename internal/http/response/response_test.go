package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/accsetupsviewer/server/internal/errors"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"car": "audi"}, discard)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	out := decode(t, w)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, map[string]any{"car": "audi"}, out["data"])
	assert.NotContains(t, out, "error")
	assert.NotContains(t, out, "code")
}

func TestJSON_ErrorStatus(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusNotFound, map[string]string{"path": "x.json"}, discard)

	out := decode(t, w)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Not Found", out["error"])
	assert.Equal(t, "NOT_FOUND", out["code"])
	assert.Equal(t, map[string]any{"path": "x.json"}, out["details"])
}

func TestError_Codes(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		code   string
	}{
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no route", discard) }, http.StatusNotFound, "NOT_FOUND"},
		{"method", func(w http.ResponseWriter) { MethodNotAllowed(w, "nope", discard) }, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"rate limited", func(w http.ResponseWriter) { TooManyRequests(w, "slow down", discard) }, http.StatusTooManyRequests, "RATE_LIMITED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["code"])
		})
	}
}

func TestHandleError(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, domainerrors.Conflict("Nickname can be set only once."), discard)

	assert.Equal(t, http.StatusConflict, w.Code)
	out := decode(t, w)
	assert.Equal(t, "CONFLICT", out["code"])
	assert.Equal(t, "Nickname can be set only once.", out["error"])

	w = httptest.NewRecorder()
	HandleError(w, errors.New("disk on fire"), discard)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	out = decode(t, w)
	assert.Equal(t, "internal server error", out["error"])
	assert.Equal(t, "INTERNAL", out["code"])
}
