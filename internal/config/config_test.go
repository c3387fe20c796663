package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

log:
  level: "debug"
  format: "text"

search:
  timeout: "2s"
  default_limit: 10
  max_limit: 50
  analyze_max_chars: 200

cache:
  size: 512
  search_ttl: "10m"
  phrases_ttl: "2m"

ratelimit:
  free_per_minute: 30
  premium_per_minute: 300

cors:
  allowed_origins: "https://a.example, https://b.example"

import:
  batch_size: 1000
  progress_every: 5000
  source: "bkrs-test"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Auth
	if !cfg.Auth.Enabled() {
		t.Error("auth should be enabled with a secret")
	}
	if cfg.Auth.JWTIssuer != "guide-for-china" {
		t.Errorf("auth.jwt_issuer = %q, want default", cfg.Auth.JWTIssuer)
	}

	// Search
	if cfg.Search.Timeout != 2*time.Second {
		t.Errorf("search.timeout = %v, want 2s", cfg.Search.Timeout)
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 50 {
		t.Errorf("search limits = %d/%d, want 10/50", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}
	if cfg.Search.AnalyzeMaxChars != 200 {
		t.Errorf("search.analyze_max_chars = %d, want 200", cfg.Search.AnalyzeMaxChars)
	}

	// Cache
	if cfg.Cache.Size != 512 {
		t.Errorf("cache.size = %d, want 512", cfg.Cache.Size)
	}
	if cfg.Cache.SearchTTL != 10*time.Minute {
		t.Errorf("cache.search_ttl = %v, want 10m", cfg.Cache.SearchTTL)
	}
	if cfg.Cache.PhrasesTTL != 2*time.Minute {
		t.Errorf("cache.phrases_ttl = %v, want 2m", cfg.Cache.PhrasesTTL)
	}
	if cfg.Cache.WordOfDayTTL != 24*time.Hour {
		t.Errorf("cache.word_of_day_ttl = %v, want 24h (default)", cfg.Cache.WordOfDayTTL)
	}

	if !cfg.Cache.Enabled() {
		t.Error("cache should be enabled by default")
	}

	// Rate limit
	if !cfg.RateLimit.Enabled() {
		t.Error("rate limit should be enabled by default")
	}
	if cfg.RateLimit.FreePerMinute != 30 || cfg.RateLimit.PremiumPerMinute != 300 {
		t.Errorf("ratelimit = %d/%d, want 30/300", cfg.RateLimit.FreePerMinute, cfg.RateLimit.PremiumPerMinute)
	}

	// CORS
	origins := cfg.CORS.Origins()
	if len(origins) != 2 || origins[1] != "https://b.example" {
		t.Errorf("cors origins = %v", origins)
	}

	// Import
	if cfg.Import.BatchSize != 1000 {
		t.Errorf("import.batch_size = %d, want 1000", cfg.Import.BatchSize)
	}
	if cfg.Import.MaxLineSize != 16<<20 {
		t.Errorf("import.max_line_size = %d, want 16MiB (default)", cfg.Import.MaxLineSize)
	}
	if cfg.Import.Source != "bkrs-test" {
		t.Errorf("import.source = %q", cfg.Import.Source)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("SEARCH_MAX_LIMIT", "80")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Search.MaxLimit != 80 {
		t.Errorf("search.max_limit = %d, want 80 (ENV override)", cfg.Search.MaxLimit)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Auth.Enabled() {
		t.Error("auth should be disabled without a secret")
	}
	if cfg.Search.Timeout != 3*time.Second {
		t.Errorf("search.timeout = %v, want 3s (default)", cfg.Search.Timeout)
	}
	if cfg.Import.BatchSize != 500 {
		t.Errorf("import.batch_size = %d, want 500 (default)", cfg.Import.BatchSize)
	}
}

func TestLoadPath_YAMLDisablesCacheAndRateLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `
database:
  dsn: "postgres://u:p@localhost:5432/testdb"
cache:
  disabled: true
ratelimit:
  disabled: true
  free_per_minute: 0
`)

	cfg, err := LoadPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Enabled() {
		t.Error("cache.disabled: true should disable the cache")
	}
	if cfg.RateLimit.Enabled() {
		t.Error("ratelimit.disabled: true should disable rate limiting")
	}
}

func TestLoad_ENVDisablesCache(t *testing.T) {
	validEnv(t)
	t.Setenv("CACHE_DISABLED", "true")
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Enabled() {
		t.Error("CACHE_DISABLED=true should disable the cache")
	}
	if cfg.Database.ApplicationName != "guide-for-china" {
		t.Errorf("database.application_name = %q, want default", cfg.Database.ApplicationName)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "auth disabled", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "short jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "zero search timeout", mutate: func(c *Config) { c.Search.Timeout = 0 }, wantErr: true},
		{name: "max below default limit", mutate: func(c *Config) { c.Search.MaxLimit = 5 }, wantErr: true},
		{name: "zero analyze cap", mutate: func(c *Config) { c.Search.AnalyzeMaxChars = 0 }, wantErr: true},
		{name: "zero free budget", mutate: func(c *Config) { c.RateLimit.FreePerMinute = 0 }, wantErr: true},
		{name: "premium below free", mutate: func(c *Config) { c.RateLimit.PremiumPerMinute = 10 }, wantErr: true},
		{name: "rate limit disabled", mutate: func(c *Config) {
			c.RateLimit.Disabled = true
			c.RateLimit.FreePerMinute = 0
		}},
		{name: "batch size zero", mutate: func(c *Config) { c.Import.BatchSize = 0 }, wantErr: true},
		{name: "batch size too large", mutate: func(c *Config) { c.Import.BatchSize = 10001 }, wantErr: true},
		{name: "batch size boundaries", mutate: func(c *Config) { c.Import.BatchSize = 10000 }},
		{name: "tiny line buffer", mutate: func(c *Config) { c.Import.MaxLineSize = 100 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCORSConfig_Origins(t *testing.T) {
	t.Parallel()

	got := CORSConfig{AllowedOrigins: " * , ,https://x.example"}.Origins()
	if len(got) != 2 || got[0] != "*" || got[1] != "https://x.example" {
		t.Errorf("Origins() = %v", got)
	}
}

func validConfig() Config {
	return Config{
		Auth: AuthConfig{JWTSecret: "this-is-a-very-long-jwt-secret-for-testing-32+"},
		Log:  LogConfig{Level: "info", Format: "json"},
		Search: SearchConfig{
			Timeout:         3 * time.Second,
			DefaultLimit:    20,
			MaxLimit:        100,
			AnalyzeMaxChars: 300,
		},
		RateLimit: RateLimitConfig{FreePerMinute: 60, PremiumPerMinute: 600},
		Import:    ImportConfig{BatchSize: 500, ProgressEvery: 10000, MaxLineSize: 16 << 20},
	}
}
