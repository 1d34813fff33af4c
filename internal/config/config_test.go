package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}
	if cfg.GraphStore != StoreMemory {
		t.Fatalf("default store = %q, want memory", cfg.GraphStore)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("default data dir = %q", cfg.DataDir)
	}
	if cfg.PlayerBatchSize != 500 {
		t.Fatalf("default batch size = %d", cfg.PlayerBatchSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("default cache ttl = %v", cfg.CacheTTL)
	}
}

func TestLoadPostgresRequiresDBURL(t *testing.T) {
	t.Setenv("GRAPH_STORE", "postgres")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when GRAPH_STORE=postgres without DB_URL")
	}

	t.Setenv("DB_URL", "postgres://localhost:5432/soccer?sslmode=disable")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GraphStore != StorePostgres {
		t.Fatalf("store = %q", cfg.GraphStore)
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("GRAPH_STORE", "neo4j")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown store kind")
	}
}

func TestLoadRejectsBadBatchSize(t *testing.T) {
	t.Setenv("PLAYER_BATCH_SIZE", "zero")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer batch size")
	}

	t.Setenv("PLAYER_BATCH_SIZE", "-5")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative batch size")
	}
}
