package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is assembled from environment variables; every field has a
// default except DB_URL, which is only required for the postgres store.
type Config struct {
	AppEnv          string
	ServiceName     string
	ServiceVersion  string
	LogLevel        string
	DataDir         string
	GraphStore      string
	DBURL           string
	PlayerBatchSize int
	CacheEnabled    bool
	CacheTTL        time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		ServiceName:    getEnv("SERVICE_NAME", "soccergraph"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		LogLevel:       getEnv("APP_LOG_LEVEL", "info"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		GraphStore:     strings.ToLower(getEnv("GRAPH_STORE", StoreMemory)),
		DBURL:          getEnv("DB_URL", ""),
		CacheEnabled:   getEnvBool("CACHE_ENABLED", true),
	}

	batchSize, err := getEnvInt("PLAYER_BATCH_SIZE", 500)
	if err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("PLAYER_BATCH_SIZE must be > 0")
	}
	cfg.PlayerBatchSize = batchSize

	ttlSeconds, err := getEnvInt("CACHE_TTL_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	if ttlSeconds < 0 {
		return nil, fmt.Errorf("CACHE_TTL_SECONDS must be >= 0")
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	switch cfg.GraphStore {
	case StoreMemory:
	case StorePostgres:
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when GRAPH_STORE=postgres")
		}
	default:
		return nil, fmt.Errorf("GRAPH_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, cfg.GraphStore)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return value, nil
}

func getEnvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
