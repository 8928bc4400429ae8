// Package gosetups uploads ACC setup files to the GoSetups viewer and reads back the
// converted "final values".
package gosetups

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"
	"time"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/metadata"
)

const (
	// DefaultEndpoint is the public comparator page that accepts uploads.
	DefaultEndpoint = "https://gosetups.gg/acc-setup-viewer-comparator/"

	// Twice the raw fetch budget.
	defaultTimeout = 16 * time.Second

	uploadField  = "fileToUpload"
	maxPageBytes = 16 << 20
)

// Config describes the converter endpoint.
type Config struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
}

// Client uploads setups to the converter. Results are never cached.
type Client struct {
	http    *http.Client
	logger  *slog.Logger
	cfg     Config
	maxPage int64
}

// New creates a converter client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{},
		logger:  logger,
		cfg:     cfg,
		maxPage: maxPageBytes,
	}
}

// Timeout returns the per-upload timeout.
func (c *Client) Timeout() time.Duration {
	return c.cfg.Timeout
}

// Convert uploads content under filename and extracts the final values for it.
// A nil map with a nil error means the converter had nothing for this file.
func (c *Client) Convert(ctx context.Context, filename string, content []byte) (domain.FinalValues, error) {
	page, err := c.Upload(ctx, filename, content)
	if err != nil {
		return nil, err
	}

	values, ok := ExtractFinalValues(page, filename)
	if !ok {
		c.logger.Info("converter returned no final values", "file", filename, "bytes", len(page))
		return nil, nil
	}
	return values, nil
}

// Upload posts content as a multipart file and returns the response page.
func (c *Client) Upload(ctx context.Context, filename string, content []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, contentType, err := multipartBody(filename, content)
	if err != nil {
		return nil, c.wrap(filename, fmt.Errorf("build form: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, body)
	if err != nil {
		return nil, c.wrap(filename, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "no-store")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.wrap(filename, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, metadata.StatusError(metadata.KindConversion, "upload", filename, c.cfg.Timeout, resp.StatusCode)
	}

	page, err := metadata.ReadBody(resp.Body, c.maxPage)
	if err != nil {
		return nil, c.wrap(filename, fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("converter upload done", "file", filename, "elapsed", time.Since(start), "bytes", len(page))
	return page, nil
}

func (c *Client) wrap(filename string, err error) error {
	return metadata.Wrap(metadata.KindConversion, "upload", filename, c.cfg.Timeout, err)
}

// Filename returns the last segment of a repository path, the name the converter keys
// its results by.
func Filename(repoPath string) string {
	name := path.Base(repoPath)
	if name == "." || name == "/" || name == "" {
		return "setup.json"
	}
	return name
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func multipartBody(filename string, content []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, uploadField, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", "application/json")

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
