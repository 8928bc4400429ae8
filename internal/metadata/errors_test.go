package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestError_KindMatching(t *testing.T) {
	raw := StatusError(KindRawFetch, "fetchRaw", "a/b/c.json", 8*time.Second, http.StatusNotFound)
	conv := Wrap(KindConversion, "upload", "c.json", 16*time.Second, context.DeadlineExceeded)

	assert.True(t, errors.Is(raw, ErrRawFetch))
	assert.False(t, errors.Is(raw, ErrConversion))
	assert.False(t, errors.Is(raw, ErrDiscovery))
	assert.True(t, errors.Is(conv, ErrConversion))
	assert.False(t, errors.Is(conv, ErrRawFetch))

	wrapped := fmt.Errorf("pipeline: %w", raw)
	var metaErr *Error
	assert.True(t, errors.As(wrapped, &metaErr))
	assert.Equal(t, http.StatusNotFound, metaErr.StatusCode)
	assert.True(t, errors.Is(wrapped, ErrStatus))
}

func TestError_Timeout(t *testing.T) {
	timeout := Wrap(KindRawFetch, "fetchRaw", "x.json", 8*time.Second, fmt.Errorf("do: %w", context.DeadlineExceeded))
	assert.True(t, timeout.Timeout())
	assert.True(t, errors.Is(timeout, ErrTimeout))
	assert.True(t, errors.Is(timeout, context.DeadlineExceeded))

	refused := Wrap(KindRawFetch, "fetchRaw", "x.json", 8*time.Second, errors.New("connection refused"))
	assert.False(t, refused.Timeout())

	canceled := Wrap(KindConversion, "upload", "x.json", 16*time.Second, context.Canceled)
	assert.False(t, canceled.Timeout())
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "discovery timeout",
			err:  Wrap(KindDiscovery, "listTree", "", 8*time.Second, context.DeadlineExceeded),
			want: "GitHub request timeout (8s)",
		},
		{
			name: "discovery status",
			err:  StatusError(KindDiscovery, "listTree", "", 8*time.Second, http.StatusForbidden),
			want: "GitHub API error: 403",
		},
		{
			name: "raw fetch timeout",
			err:  Wrap(KindRawFetch, "fetchRaw", "a.json", 8*time.Second, context.DeadlineExceeded),
			want: "Raw setup fetch timeout (8s)",
		},
		{
			name: "raw fetch status",
			err:  StatusError(KindRawFetch, "fetchRaw", "a.json", 8*time.Second, http.StatusNotFound),
			want: "Raw setup fetch failed: 404",
		},
		{
			name: "conversion timeout",
			err:  Wrap(KindConversion, "upload", "a.json", 16*time.Second, context.DeadlineExceeded),
			want: "GoSetups request timeout (16s)",
		},
		{
			name: "conversion status",
			err:  StatusError(KindConversion, "upload", "a.json", 16*time.Second, http.StatusBadGateway),
			want: "GoSetups upload failed: 502",
		},
		{
			name: "conversion network error",
			err:  Wrap(KindConversion, "upload", "a.json", 16*time.Second, errors.New("connection reset")),
			want: "GoSetups upload failed: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Message())
		})
	}
}

func TestError_Error(t *testing.T) {
	err := StatusError(KindRawFetch, "fetchRaw", "audi/monza/q.json", time.Second, 500)
	assert.Equal(t, "raw_fetch fetchRaw [audi/monza/q.json]: unexpected status 500", err.Error())

	err = StatusError(KindDiscovery, "listTree", "", time.Second, 500)
	assert.Equal(t, "discovery listTree: unexpected status 500", err.Error())
}
