package gosetups

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accsetupsviewer/server/internal/metadata"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return data
}

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{Endpoint: server.URL + "/acc-setup-viewer-comparator/", UserAgent: "accsetupsviewer", Timeout: timeout},
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	client.http = server.Client()
	return client
}

func TestClient_Convert(t *testing.T) {
	page := loadFixture(t, "viewer_page.html")
	content := []byte(`{"carName":"audi_r8_lms_evo_ii","basicSetup":{}}`)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/acc-setup-viewer-comparator/", r.URL.Path)
		assert.Equal(t, "accsetupsviewer", r.Header.Get("User-Agent"))
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("fileToUpload")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "monza_q.json", header.Filename)
		assert.Equal(t, "application/json", header.Header.Get("Content-Type"))
		got, _ := io.ReadAll(file)
		assert.Equal(t, content, got)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}, time.Second)

	values, err := client.Convert(context.Background(), "monza_q.json", content)
	require.NoError(t, err)
	require.NotNil(t, values)

	electronics, ok := values["ELECTRONICS"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), electronics["TC"])
	assert.Contains(t, values, "TYRES")
	assert.Contains(t, values, "BREAKS")
}

func TestClient_Convert_NoMarkerIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body><p>Upload failed, unsupported file.</p></body></html>"))
	}, time.Second)

	values, err := client.Convert(context.Background(), "setup.json", []byte("{}"))
	assert.NoError(t, err)
	assert.Nil(t, values)
}

func TestClient_Convert_Errors(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantStatus  int
		wantTimeout bool
		wantMessage string
	}{
		{
			name:        "server error",
			handler:     func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "GoSetups upload failed: 500",
		},
		{
			name:        "payload rejected",
			handler:     func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusRequestEntityTooLarge) },
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantMessage: "GoSetups upload failed: 413",
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				<-r.Context().Done()
			},
			wantTimeout: true,
			wantMessage: "GoSetups request timeout (40ms)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler, 40*time.Millisecond)

			_, err := client.Convert(context.Background(), "setup.json", []byte("{}"))
			require.Error(t, err)

			var metaErr *metadata.Error
			require.True(t, errors.As(err, &metaErr))
			assert.Equal(t, metadata.KindConversion, metaErr.Kind)
			assert.True(t, errors.Is(err, metadata.ErrConversion))
			assert.False(t, errors.Is(err, metadata.ErrRawFetch))
			assert.Equal(t, tt.wantStatus, metaErr.StatusCode)
			assert.Equal(t, tt.wantTimeout, metaErr.Timeout())
			assert.Equal(t, tt.wantMessage, metaErr.Message())
		})
	}
}

func TestClient_Convert_OversizedPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("0123456789"))
	}, time.Second)
	client.maxPage = 9

	values, err := client.Convert(context.Background(), "setup.json", []byte("{}"))
	require.Error(t, err)
	assert.Nil(t, values)
	assert.True(t, errors.Is(err, metadata.ErrConversion))
	assert.True(t, errors.Is(err, metadata.ErrTooLarge))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "q.json", Filename("Audi_R8/Monza/q.json"))
	assert.Equal(t, "race.json", Filename("Audi_R8/Monza/wet/race.json"))
	assert.Equal(t, "solo.json", Filename("solo.json"))
	assert.Equal(t, "setup.json", Filename(""))
}

func TestMultipartBody_EscapesFilename(t *testing.T) {
	body, contentType, err := multipartBody(`we"ird.json`, []byte("{}"))
	require.NoError(t, err)
	assert.Contains(t, contentType, "multipart/form-data; boundary=")

	raw, _ := io.ReadAll(body)
	assert.Contains(t, string(raw), `filename="we\"ird.json"`)
	assert.Contains(t, string(raw), `name="fileToUpload"`)
}
