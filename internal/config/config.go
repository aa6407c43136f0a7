package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds the document store connection settings.
// ConnectionString has the form ws://user:pass@host:port/namespace/database.
type DatabaseConfig struct {
	ConnectionString string
	ConnectTimeout   time.Duration
}

// UploadConfig holds photo upload relay settings
type UploadConfig struct {
	CloudinaryURL string
	Folder        string
	TmpDir        string
	MaxBytes      int64
	SweepInterval time.Duration // 0 disables the stale photo sweeper
	SweepMaxAge   time.Duration
}

// RateLimitConfig holds per-client rate limit settings
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "3000"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			ConnectionString: getEnv("CONNECTION_STRING", "ws://root:root@localhost:8000/festival/main"),
			ConnectTimeout:   getDurationEnv("DB_CONNECT_TIMEOUT", 2000*time.Millisecond),
		},
		Upload: UploadConfig{
			CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
			Folder:        getEnv("CLOUDINARY_FOLDER", ""),
			TmpDir:        getEnv("UPLOAD_TMP_DIR", os.TempDir()),
			MaxBytes:      int64(getIntEnv("UPLOAD_MAX_BYTES", 10<<20)),
			SweepInterval: getDurationEnv("UPLOAD_SWEEP_INTERVAL", 15*time.Minute),
			SweepMaxAge:   getDurationEnv("UPLOAD_SWEEP_MAX_AGE", time.Hour),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloatEnv("RATE_LIMIT_RPS", 10),
			Burst: getIntEnv("RATE_LIMIT_BURST", 30),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.ConnectionString == "" {
		errs = append(errs, errors.New("CONNECTION_STRING is required"))
	} else if _, err := ParseConnectionString(c.Database.ConnectionString); err != nil {
		errs = append(errs, fmt.Errorf("CONNECTION_STRING: %w", err))
	}
	if c.Database.ConnectTimeout <= 0 {
		errs = append(errs, errors.New("DB_CONNECT_TIMEOUT must be positive"))
	}

	// Upload validation - the image host is only mandatory in production
	if c.IsProduction() && c.Upload.CloudinaryURL == "" {
		errs = append(errs, errors.New("CLOUDINARY_URL is required in production"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	if c.Upload.SweepInterval > 0 && c.Upload.SweepMaxAge <= 0 {
		errs = append(errs, errors.New("UPLOAD_SWEEP_MAX_AGE must be positive when the sweeper is enabled"))
	}

	if c.RateLimit.RPS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must be positive"))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Endpoint is a parsed CONNECTION_STRING
type Endpoint struct {
	URL       string // scheme://host:port
	User      string
	Password  string
	Namespace string
	Database  string
}

// ParseConnectionString splits ws://user:pass@host:port/namespace/database
// into its parts.
func ParseConnectionString(raw string) (*Endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "ws", "wss", "http", "https":
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errors.New("path must be /namespace/database")
	}

	ep := &Endpoint{
		URL:       u.Scheme + "://" + u.Host,
		Namespace: parts[0],
		Database:  parts[1],
	}
	if u.User != nil {
		ep.User = u.User.Username()
		ep.Password, _ = u.User.Password()
	}
	return ep, nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
