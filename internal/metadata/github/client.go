// Package github reads setup files from a public GitHub repository.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/accsetupsviewer/server/internal/metadata"
	"github.com/accsetupsviewer/server/internal/ratelimit"
)

const (
	// Pacing per host: 5 requests per second with a burst of 10.
	defaultRPS   = 5.0
	defaultBurst = 10

	defaultTimeout = 8 * time.Second

	maxTreeBytes = 32 << 20
	maxRawBytes  = 4 << 20
)

// Config locates the repository.
type Config struct {
	Owner     string
	Repo      string
	Branch    string
	APIURL    string // https://api.github.com
	RawURL    string // https://raw.githubusercontent.com
	UserAgent string
	Timeout   time.Duration
}

// Client is a rate-limited client for the tree listing and raw file endpoints.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	cfg     Config
}

// New creates a GitHub client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.github.com"
	}
	if cfg.RawURL == "" {
		cfg.RawURL = "https://raw.githubusercontent.com"
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.RawURL = strings.TrimRight(cfg.RawURL, "/")

	return &Client{
		http:    &http.Client{},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
		cfg:     cfg,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.cfg.Timeout
}

type treeResponse struct {
	Tree      []treeItem `json:"tree"`
	Truncated bool       `json:"truncated"`
}

type treeItem struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// ListSetupPaths lists every .json blob in the branch, in the order GitHub returns them.
func (c *Client) ListSetupPaths(ctx context.Context) ([]string, error) {
	treeURL := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
		c.cfg.APIURL,
		url.PathEscape(c.cfg.Owner),
		url.PathEscape(c.cfg.Repo),
		url.PathEscape(c.cfg.Branch),
	)

	body, err := c.get(ctx, metadata.KindDiscovery, "listTree", "", treeURL, "application/vnd.github+json", maxTreeBytes)
	if err != nil {
		return nil, err
	}

	var resp treeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.Wrap(metadata.KindDiscovery, "listTree", "", c.cfg.Timeout, fmt.Errorf("decode tree: %w", err))
	}
	if resp.Truncated {
		c.logger.Warn("github tree listing truncated", "repo", c.cfg.Owner+"/"+c.cfg.Repo)
	}

	paths := make([]string, 0, len(resp.Tree))
	for _, item := range resp.Tree {
		if item.Type == "blob" && strings.HasSuffix(item.Path, ".json") {
			paths = append(paths, item.Path)
		}
	}

	c.logger.Debug("github tree listed", "items", len(resp.Tree), "setups", len(paths))
	return paths, nil
}

// FetchRaw downloads one file as text.
func (c *Client) FetchRaw(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", metadata.Wrap(metadata.KindRawFetch, "fetchRaw", path, c.cfg.Timeout, fmt.Errorf("empty path"))
	}

	rawURL := fmt.Sprintf("%s/%s/%s/%s/%s",
		c.cfg.RawURL,
		url.PathEscape(c.cfg.Owner),
		url.PathEscape(c.cfg.Repo),
		url.PathEscape(c.cfg.Branch),
		EscapePath(path),
	)

	body, err := c.get(ctx, metadata.KindRawFetch, "fetchRaw", path, rawURL, "", maxRawBytes)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// EscapePath escapes every segment of a repository path and keeps the separators.
func EscapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// get performs one bounded GET and classifies failures under kind.
func (c *Client) get(ctx context.Context, kind metadata.Kind, op, target, rawURL, accept string, limit int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, metadata.Wrap(kind, op, target, c.cfg.Timeout, fmt.Errorf("parse url: %w", err))
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return nil, metadata.Wrap(kind, op, target, c.cfg.Timeout, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, metadata.Wrap(kind, op, target, c.cfg.Timeout, fmt.Errorf("create request: %w", err))
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	c.logger.Debug("github request", "op", op, "url", u.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, metadata.Wrap(kind, op, target, c.cfg.Timeout, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, metadata.StatusError(kind, op, target, c.cfg.Timeout, resp.StatusCode)
	}

	body, err := metadata.ReadBody(resp.Body, limit)
	if err != nil {
		return nil, metadata.Wrap(kind, op, target, c.cfg.Timeout, fmt.Errorf("read response: %w", err))
	}
	return body, nil
}
