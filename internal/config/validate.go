package config

import (
	"fmt"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.Configured() {
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
		}
	}

	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be in [4, 31] (got %d)", c.Auth.PasswordHashCost)
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("auth token TTLs must be positive")
	}
	if c.Auth.CookieName == "" {
		return fmt.Errorf("auth.cookie_name must not be empty")
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if err := c.Feed.validate(); err != nil {
		return fmt.Errorf("feed: %w", err)
	}

	if c.Dashboard.SessionIdleTTL <= 0 {
		return fmt.Errorf("dashboard.session_idle_ttl must be > 0 (got %v)", c.Dashboard.SessionIdleTTL)
	}
	if c.Dashboard.JanitorInterval <= 0 {
		return fmt.Errorf("dashboard.janitor_interval must be > 0 (got %v)", c.Dashboard.JanitorInterval)
	}

	return nil
}

func (f *FeedConfig) validate() error {
	if f.ReconnectMin <= 0 {
		return fmt.Errorf("reconnect_min must be > 0 (got %v)", f.ReconnectMin)
	}
	if f.ReconnectMax < f.ReconnectMin {
		return fmt.Errorf("reconnect_max (%v) must be >= reconnect_min (%v)", f.ReconnectMax, f.ReconnectMin)
	}
	if f.ReloadTimeout <= 0 {
		return fmt.Errorf("reload_timeout must be > 0 (got %v)", f.ReloadTimeout)
	}
	return nil
}
