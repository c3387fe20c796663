package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Search    SearchConfig    `yaml:"search"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	CORS      CORSConfig      `yaml:"cors"`
	Import    ImportConfig    `yaml:"import"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"guide-for-china"`
}

// AuthConfig holds bearer token settings. Without a secret every caller is
// anonymous.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"guide-for-china"`
}

// Enabled reports whether bearer tokens are validated.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SearchConfig bounds search and analysis calls.
type SearchConfig struct {
	Timeout                 time.Duration `yaml:"timeout"                   env:"SEARCH_TIMEOUT"                   env-default:"3s"`
	DefaultLimit            int           `yaml:"default_limit"             env:"SEARCH_DEFAULT_LIMIT"             env-default:"20"`
	MaxLimit                int           `yaml:"max_limit"                 env:"SEARCH_MAX_LIMIT"                 env-default:"100"`
	AnalyzeMaxChars         int           `yaml:"analyze_max_chars"         env:"SEARCH_ANALYZE_MAX_CHARS"         env-default:"300"`
	DefinitionsPerCharacter int           `yaml:"definitions_per_character" env:"SEARCH_DEFINITIONS_PER_CHARACTER" env-default:"10"`
}

// CacheConfig holds read-through cache settings. A negative TTL disables
// caching of that operation.
type CacheConfig struct {
	Disabled     bool          `yaml:"disabled"        env:"CACHE_DISABLED"`
	Size         int           `yaml:"size"            env:"CACHE_SIZE"            env-default:"2048"`
	SearchTTL    time.Duration `yaml:"search_ttl"      env:"CACHE_SEARCH_TTL"      env-default:"30m"`
	CharacterTTL time.Duration `yaml:"character_ttl"   env:"CACHE_CHARACTER_TTL"   env-default:"1h"`
	WordOfDayTTL time.Duration `yaml:"word_of_day_ttl" env:"CACHE_WORD_OF_DAY_TTL" env-default:"24h"`
	AnalysisTTL  time.Duration `yaml:"analysis_ttl"    env:"CACHE_ANALYSIS_TTL"    env-default:"30m"`
	PhrasesTTL   time.Duration `yaml:"phrases_ttl"     env:"CACHE_PHRASES_TTL"     env-default:"5m"`
	SimilarTTL   time.Duration `yaml:"similar_ttl"     env:"CACHE_SIMILAR_TTL"     env-default:"1h"`
	ReverseTTL   time.Duration `yaml:"reverse_ttl"     env:"CACHE_REVERSE_TTL"     env-default:"1h"`
	ExamplesTTL  time.Duration `yaml:"examples_ttl"    env:"CACHE_EXAMPLES_TTL"    env-default:"1h"`
}

// RateLimitConfig holds per-caller request budgets.
type RateLimitConfig struct {
	Disabled         bool          `yaml:"disabled"           env:"RATELIMIT_DISABLED"`
	FreePerMinute    int           `yaml:"free_per_minute"    env:"RATELIMIT_FREE_PER_MINUTE"    env-default:"60"`
	PremiumPerMinute int           `yaml:"premium_per_minute" env:"RATELIMIT_PREMIUM_PER_MINUTE" env-default:"600"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATELIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}

// ImportConfig holds dictionary import settings.
type ImportConfig struct {
	BatchSize     int    `yaml:"batch_size"     env:"IMPORT_BATCH_SIZE"     env-default:"500"`
	ProgressEvery int    `yaml:"progress_every" env:"IMPORT_PROGRESS_EVERY" env-default:"10000"`
	MaxLineSize   int    `yaml:"max_line_size"  env:"IMPORT_MAX_LINE_SIZE"  env-default:"16777216"`
	Source        string `yaml:"source"         env:"IMPORT_SOURCE"         env-default:"bkrs"`
}

// Enabled reports whether results are cached.
func (c CacheConfig) Enabled() bool {
	return !c.Disabled
}

// Enabled reports whether request budgets are enforced.
func (c RateLimitConfig) Enabled() bool {
	return !c.Disabled
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	return splitList(c.AllowedOrigins)
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
