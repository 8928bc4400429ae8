// Package config loads server configuration from command-line flags, environment variables,
// and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Storage   StorageConfig
	Server    ServerConfig
	Auth      AuthConfig
	Source    SourceConfig
	Converter ConverterConfig
	Catalog   CatalogConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig holds local persistence paths.
type StorageConfig struct {
	DataDir string // default: ~/.accsetupsviewer
	DBPath  string // default: {DataDir}/viewer.db
	KeyPath string // default: {DataDir}/auth.key
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key, set by auth.LoadOrGenerateKey at startup.
	AccessTokenKey       []byte
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
}

// SourceConfig describes the GitHub repository the setup files are read from.
type SourceConfig struct {
	Owner     string
	Repo      string
	Branch    string
	APIURL    string
	RawURL    string
	UserAgent string
	Timeout   time.Duration
}

// ConverterConfig describes the GoSetups conversion endpoint.
type ConverterConfig struct {
	URL     string
	Timeout time.Duration
}

// CatalogConfig controls reuse of the discovery listing.
type CatalogConfig struct {
	TTL time.Duration
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("accsetupsviewer", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataDir := fs.String("data-dir", "", "Directory for the database and auth key")
	dbPath := fs.String("db-path", "", "SQLite database path")
	host := fs.String("host", "", "Server bind host")
	port := fs.String("port", "", "Server port (default: 8080)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated list of allowed CORS origins")

	accessTokenDuration := fs.String("access-token-duration", "", "Access token lifetime (e.g., 15m)")
	refreshTokenDuration := fs.String("refresh-token-duration", "", "Refresh token lifetime (e.g., 720h)")

	owner := fs.String("github-owner", "", "GitHub owner of the setups repository")
	repo := fs.String("github-repo", "", "GitHub setups repository")
	branch := fs.String("github-branch", "", "Branch to read setups from")
	fetchTimeout := fs.String("fetch-timeout", "", "Timeout for GitHub requests (default: 8s)")
	converterURL := fs.String("converter-url", "", "GoSetups converter endpoint")
	converterTimeout := fs.String("converter-timeout", "", "Timeout for converter uploads (default: 16s)")
	catalogTTL := fs.String("catalog-ttl", "", "How long a discovery listing is reused (default: 30m)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// A missing .env file is not an error. godotenv never overrides variables
	// already present in the environment.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataDir: getConfigValue(*dataDir, "DATA_DIR", ""),
			DBPath:  getConfigValue(*dbPath, "DB_PATH", ""),
			KeyPath: getConfigValue("", "AUTH_KEY_PATH", ""),
		},
		Server: ServerConfig{
			Host:        getConfigValue(*host, "SERVER_HOST", ""),
			Port:        getConfigValue(*port, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Source: SourceConfig{
			Owner:     getConfigValue(*owner, "GITHUB_OWNER", "Lon3035"),
			Repo:      getConfigValue(*repo, "GITHUB_REPO", "ACC_Setups"),
			Branch:    getConfigValue(*branch, "GITHUB_BRANCH", "master"),
			APIURL:    getConfigValue("", "GITHUB_API_URL", "https://api.github.com"),
			RawURL:    getConfigValue("", "GITHUB_RAW_URL", "https://raw.githubusercontent.com"),
			UserAgent: getConfigValue("", "USER_AGENT", "accsetupsviewer"),
		},
		Converter: ConverterConfig{
			URL: getConfigValue(*converterURL, "CONVERTER_URL", "https://gosetups.gg/acc-setup-viewer-comparator/"),
		},
	}

	durations := []struct {
		name   string
		flag   string
		envKey string
		def    string
		target *time.Duration
	}{
		{"access token duration", *accessTokenDuration, "ACCESS_TOKEN_DURATION", "15m", &cfg.Auth.AccessTokenDuration},
		{"refresh token duration", *refreshTokenDuration, "REFRESH_TOKEN_DURATION", "720h", &cfg.Auth.RefreshTokenDuration},
		{"read timeout", "", "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{"write timeout", "", "SERVER_WRITE_TIMEOUT", "30s", &cfg.Server.WriteTimeout},
		{"idle timeout", "", "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{"fetch timeout", *fetchTimeout, "FETCH_TIMEOUT", "8s", &cfg.Source.Timeout},
		{"converter timeout", *converterTimeout, "CONVERTER_TIMEOUT", "16s", &cfg.Converter.Timeout},
		{"catalog ttl", *catalogTTL, "CATALOG_TTL", "30m", &cfg.Catalog.TTL},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.name, raw, err)
		}
		*d.target = parsed
	}

	if err := cfg.expandStoragePaths(); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Source.Owner == "" || c.Source.Repo == "" || c.Source.Branch == "" {
		return errors.New("github owner, repo and branch are required")
	}
	if c.Converter.URL == "" {
		return errors.New("converter url is required")
	}
	if c.Source.Timeout <= 0 || c.Converter.Timeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.Storage.DBPath == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func (c *Config) expandStoragePaths() error {
	defaultDir := ""
	if c.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		defaultDir = filepath.Join(homeDir, ".accsetupsviewer")
	}

	dir, err := expandPath(c.Storage.DataDir, defaultDir)
	if err != nil {
		return err
	}
	c.Storage.DataDir = dir

	if c.Storage.DBPath, err = expandPath(c.Storage.DBPath, filepath.Join(dir, "viewer.db")); err != nil {
		return err
	}
	if c.Storage.KeyPath, err = expandPath(c.Storage.KeyPath, filepath.Join(dir, "auth.key")); err != nil {
		return err
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
