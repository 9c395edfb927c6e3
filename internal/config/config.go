// Package config provides client configuration from command-line flags,
// environment variables, and .env files.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers for the auth token.
const (
	StorageBadger = "badger"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds the client configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	API     APIConfig
	Client  ClientConfig
	Storage StorageConfig
	Server  ServerConfig
	Auth    AuthConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// APIConfig points at the second brain REST API.
type APIConfig struct {
	BaseURL string // e.g. http://localhost:3001/api/v1
}

// ClientConfig describes the public face of the client.
type ClientConfig struct {
	Origin    string // prefix for share links
	LoginPath string // where the route guard sends anonymous visitors
}

// StorageConfig selects where the session token lives.
type StorageConfig struct {
	Driver string
	Path   string
}

// ServerConfig holds the local UI server configuration.
type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// DefaultHost keeps the UI on the loopback interface. The server acts with
// the stored token for anyone who can reach it.
const DefaultHost = "127.0.0.1"

// Addr is the host:port the UI listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// AuthConfig throttles login and signup attempts on the local UI.
type AuthConfig struct {
	RatePerMinute int
	Burst         int
}

// Flags carries raw command-line values. Empty strings mean "not set".
type Flags struct {
	Env            string
	EnvFile        string
	LogLevel       string
	APIBaseURL     string
	ClientOrigin   string
	LoginPath      string
	StorageDriver  string
	StoragePath    string
	Host           string
	Port           string
	ReadTimeout    string
	WriteTimeout   string
	IdleTimeout    string
	AllowedOrigins string
}

// LoadConfig loads configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env file is fine.
	_ = godotenv.Load(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(flags.Env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(flags.LogLevel, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getConfigValue(flags.APIBaseURL, "API_BASE_URL", "http://localhost:3001/api/v1"), "/"),
		},
		Client: ClientConfig{
			Origin:    strings.TrimRight(getConfigValue(flags.ClientOrigin, "CLIENT_ORIGIN", "http://localhost:5173"), "/"),
			LoginPath: getConfigValue(flags.LoginPath, "LOGIN_PATH", "/login"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getConfigValue(flags.StorageDriver, "STORAGE_DRIVER", StorageBadger)),
			Path:   getConfigValue(flags.StoragePath, "STORAGE_PATH", ""),
		},
		Server: ServerConfig{
			Host:           getConfigValue(flags.Host, "SERVER_HOST", DefaultHost),
			Port:           getConfigValue(flags.Port, "SERVER_PORT", "5173"),
			AllowedOrigins: splitList(getConfigValue(flags.AllowedOrigins, "CORS_ALLOWED_ORIGINS", "")),
		},
		Auth: AuthConfig{
			RatePerMinute: getIntConfigValue("", "AUTH_RATE_LIMIT", 10),
			Burst:         getIntConfigValue("", "AUTH_RATE_BURST", 5),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = getDurationConfigValue(flags.ReadTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getDurationConfigValue(flags.WriteTimeout, "SERVER_WRITE_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDurationConfigValue(flags.IdleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.expandStoragePath(); err != nil {
		return nil, fmt.Errorf("invalid storage path: %w", err)
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
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if err := validateHTTPURL("API base URL", c.API.BaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("client origin", c.Client.Origin); err != nil {
		return err
	}

	if !strings.HasPrefix(c.Client.LoginPath, "/") {
		return fmt.Errorf("login path must start with /: %q", c.Client.LoginPath)
	}

	switch c.Storage.Driver {
	case StorageBadger, StorageSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage path cannot be empty for a persistent driver")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid storage driver: %q (must be badger, sqlite, or memory)", c.Storage.Driver)
	}

	if c.Server.Host == "" {
		return errors.New("server host cannot be empty")
	}

	if c.Auth.RatePerMinute <= 0 || c.Auth.Burst <= 0 {
		return errors.New("auth rate limit and burst must be positive")
	}

	return nil
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an absolute http(s) URL", name, raw)
	}
	return nil
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

// expandStoragePath defaults to ~/.brain/<driver>.
func (c *Config) expandStoragePath() error {
	if c.Storage.Driver == StorageMemory {
		return nil
	}

	defaultPath := ""
	if homeDir, err := os.UserHomeDir(); err == nil {
		name := "token"
		if c.Storage.Driver == StorageSQLite {
			name = "token.db"
		}
		defaultPath = filepath.Join(homeDir, ".brain", name)
	}

	expanded, err := expandPath(c.Storage.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.Path = expanded
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

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), raw, err)
	}
	return d, nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
