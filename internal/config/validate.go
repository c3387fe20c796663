package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("ratelimit: %w", err)
	}
	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	return nil
}

func (s *SearchConfig) validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", s.Timeout)
	}
	if s.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be > 0 (got %d)", s.DefaultLimit)
	}
	if s.MaxLimit < s.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit (got %d < %d)", s.MaxLimit, s.DefaultLimit)
	}
	if s.AnalyzeMaxChars <= 0 {
		return fmt.Errorf("analyze_max_chars must be > 0 (got %d)", s.AnalyzeMaxChars)
	}
	return nil
}

func (r *RateLimitConfig) validate() error {
	if r.Disabled {
		return nil
	}
	if r.FreePerMinute <= 0 {
		return fmt.Errorf("free_per_minute must be > 0 (got %d)", r.FreePerMinute)
	}
	if r.PremiumPerMinute < r.FreePerMinute {
		return fmt.Errorf("premium_per_minute must be >= free_per_minute (got %d < %d)", r.PremiumPerMinute, r.FreePerMinute)
	}
	return nil
}

func (i *ImportConfig) validate() error {
	if i.BatchSize < 1 || i.BatchSize > 10000 {
		return fmt.Errorf("batch_size must be between 1 and 10000 (got %d)", i.BatchSize)
	}
	if i.ProgressEvery <= 0 {
		return fmt.Errorf("progress_every must be > 0 (got %d)", i.ProgressEvery)
	}
	if i.MaxLineSize < 4096 {
		return fmt.Errorf("max_line_size must be >= 4096 (got %d)", i.MaxLineSize)
	}
	return nil
}
