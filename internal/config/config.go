// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	OMDB     *OMDBConfig    `toml:"omdb"`
	Auth     AuthConfig     `toml:"auth"`
	Cache    CacheConfig    `toml:"cache"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type TMDBConfig struct {
	APIKey   string `toml:"api_key"`
	Language string `toml:"language"`
	// RatePerSec caps request throughput; 0 disables the limiter.
	RatePerSec float64 `toml:"rate_per_sec"`
}

// OMDBConfig enables the secondary catalog used for legacy imdb ids.
type OMDBConfig struct {
	APIKey string `toml:"api_key"`
}

type AuthConfig struct {
	// TokenSecret signs session tokens. Minimum 32 characters.
	TokenSecret string `toml:"token_secret"`
	// TokenTTL is how long issued tokens stay valid. Default 24h.
	TokenTTL duration `toml:"token_ttl"`
}

type CacheConfig struct {
	// PruneInterval is how often expired persistent entries are swept.
	// Default 1h.
	PruneInterval duration `toml:"prune_interval"`
}

// duration lets TOML carry values like "24h" or "15m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads and parses the configuration file. Unresolved required
// environment variables and validation failures are reported together
// through ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/moviemuse.db"
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = "en-US"
	}
	if c.Auth.TokenTTL.Duration == 0 {
		c.Auth.TokenTTL.Duration = 24 * time.Hour
	}
	if c.Cache.PruneInterval.Duration == 0 {
		c.Cache.PruneInterval.Duration = time.Hour
	}
}

// substituteEnvVars replaces ${VAR}, ${VAR:-default}, and
// ${VAR:?message} forms. Unresolvable variables are returned in missing
// and the placeholder is left unchanged. Comment lines pass through
// untouched so commented-out settings never demand their variables.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = substituteLine(line, &missing)
	}

	return strings.Join(lines, "\n"), missing
}

func substituteLine(line string, missing *[]string) string {
	return envVarPattern.ReplaceAllStringFunc(line, func(match string) string {
		expr := match[2 : len(match)-1] // strip ${ and }

		name := expr
		defaultValue, message := "", ""
		hasDefault, required := false, false

		if i := strings.Index(expr, ":-"); i >= 0 {
			name, defaultValue = expr[:i], expr[i+2:]
			hasDefault = true
		} else if i := strings.Index(expr, ":?"); i >= 0 {
			name, message = expr[:i], expr[i+2:]
			required = true
		}

		if value := os.Getenv(name); value != "" {
			return value
		}
		if hasDefault {
			return defaultValue
		}
		if required {
			*missing = append(*missing, fmt.Sprintf("%s: %s", name, message))
			return match
		}
		if _, ok := os.LookupEnv(name); ok {
			return ""
		}
		*missing = append(*missing, name)
		return match
	})
}
