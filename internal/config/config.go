package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration. It is built once at start-up and
// passed to constructors; nothing below the CLI reads the environment.
type Config struct {
	Port               int
	DatabaseDriver     string
	DatabaseURL        string
	QueryTimeout       time.Duration
	RedisURL           string
	FacetCacheTTL      time.Duration
	JWTSecret          string
	GeminiAPIKey       string
	GeminiModel        string
	CORSAllowedOrigins []string
	LogLevel           string
}

// Defaults applied when a variable is unset
const (
	DefaultPort           = 8080
	DefaultDatabaseDriver = "sqlite3"
	DefaultQueryTimeout   = 5 * time.Second
	DefaultFacetCacheTTL  = 5 * time.Minute
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultLogLevel       = "info"
)

// Load reads an optional env file and then the environment. An explicit
// envFile must exist; the implicit ".env" may be absent.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseDriver:     getEnv("DATABASE_DRIVER", DefaultDatabaseDriver),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:        getEnv("GEMINI_MODEL", DefaultGeminiModel),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
	}

	var err error
	if cfg.Port, err = getInt("PORT", DefaultPort); err != nil {
		return Config{}, err
	}
	if cfg.QueryTimeout, err = getDuration("QUERY_TIMEOUT", DefaultQueryTimeout); err != nil {
		return Config{}, err
	}
	if cfg.FacetCacheTTL, err = getDuration("FACET_CACHE_TTL", DefaultFacetCacheTTL); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("PORT %d out of range", cfg.Port)
	}
	if cfg.QueryTimeout <= 0 {
		return Config{}, fmt.Errorf("QUERY_TIMEOUT must be positive, got %s", cfg.QueryTimeout)
	}

	return cfg, nil
}

// DatabaseConfigured reports whether a live catalog database was configured
func (c Config) DatabaseConfigured() bool {
	return c.DatabaseURL != ""
}

// Addr is the HTTP listen address
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
