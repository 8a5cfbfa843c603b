package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	if c.TMDB.RatePerSec < 0 {
		errs = append(errs, fmt.Sprintf("tmdb.rate_per_sec: must not be negative, got %g", c.TMDB.RatePerSec))
	}

	if c.OMDB != nil && c.OMDB.APIKey == "" {
		errs = append(errs, "omdb.api_key: required when omdb is configured")
	}

	if c.Auth.TokenSecret == "" {
		errs = append(errs, "auth.token_secret: required")
	} else if len(c.Auth.TokenSecret) < 32 {
		errs = append(errs, "auth.token_secret: must be at least 32 characters")
	}
	if c.Auth.TokenTTL.Duration < 0 {
		errs = append(errs, "auth.token_ttl: must not be negative")
	}

	if c.Cache.PruneInterval.Duration < 0 {
		errs = append(errs, "cache.prune_interval: must not be negative")
	}

	return errs
}
