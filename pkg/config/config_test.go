package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
environment: test
server:
  port: 9090
  read_timeout: 5s
  write_timeout: 5s
  shutdown_timeout: 5s
postgres:
  url: postgres://localhost:5432/worthwise
clickhouse:
  host: localhost
  port: 9000
  database: worthwise
cache:
  type: memory
  ttl:
    rent: 24h
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Cache.TTL.Rent != 24*time.Hour {
		t.Fatalf("rent ttl = %v", cfg.Cache.TTL.Rent)
	}
}

func TestLoadMissingPostgresURL(t *testing.T) {
	bad := `
environment: test
clickhouse:
  host: localhost
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://override:5432/other")
	t.Setenv("PORT", "3000")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadWithEnv(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Postgres.URL != "postgres://override:5432/other" {
		t.Fatalf("url = %q", cfg.Postgres.URL)
	}
	if cfg.Server.Port != 3000 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.Redis.Addr != "redis:6379" {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
}

func TestLoadWithEnvSuppliesMissingURL(t *testing.T) {
	noURL := `
environment: test
clickhouse:
  host: localhost
`
	t.Setenv("DATABASE_URL", "postgres://env-only:5432/worthwise")

	cfg, err := LoadWithEnv(writeConfig(t, noURL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Postgres.URL != "postgres://env-only:5432/worthwise" {
		t.Fatalf("url = %q", cfg.Postgres.URL)
	}
}
