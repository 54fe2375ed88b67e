package config

import (
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/delta-iot/pingwatch/internal/model"
)

const (
	defaultServerHost   = "0.0.0.0"
	defaultServerPort   = "5000"
	defaultDBPath       = "/data/pingwatch.db"
	defaultQueryTimeout = 5 * time.Second
	defaultFeedInterval = 15 * time.Second
)

// Config stores runtime settings loaded from environment variables.
type Config struct {
	ServerHost   string
	ServerPort   string
	DBPath       string
	QueryTimeout time.Duration
	FeedInterval time.Duration
	LogLevel     slog.Level
	Debug        bool
	Thresholds   model.StatusThresholds
}

// Load builds Config from environment variables using stable defaults.
func Load() Config {
	cfg := Config{
		ServerHost:   getenv("SERVER_HOST", defaultServerHost),
		ServerPort:   getenv("SERVER_PORT", defaultServerPort),
		DBPath:       getenv("DB_PATH", defaultDBPath),
		QueryTimeout: parseDuration("DB_QUERY_TIMEOUT", defaultQueryTimeout),
		FeedInterval: parseDuration("FEED_INTERVAL", defaultFeedInterval),
		LogLevel:     parseLogLevel(getenv("LOG_LEVEL", "info")),
		Debug:        parseBool("DEBUG", false),
		Thresholds: model.StatusThresholds{
			OnlineWindow:  parseDuration("ONLINE_THRESHOLD", 30*time.Minute),
			OfflineWindow: parseDuration("OFFLINE_THRESHOLD", 2*time.Hour),
		}.Normalize(),
	}
	if cfg.Debug {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg
}

// Addr returns the HTTP bind address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// DBDir returns the target directory for DBPath.
func (c Config) DBDir() string {
	return filepath.Dir(c.DBPath)
}

func getenv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
