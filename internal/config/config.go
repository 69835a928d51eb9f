// Package config assembles runtime settings for the Mindvale CLI from three
// layers: defaults, an optional JSON file, and command-line flags, each
// overriding the previous one.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Mindvale CLI.
type Config struct {
	// APIBaseURL is the platform API root, including the /api base path.
	APIBaseURL string
	// TokenFile is where the bearer token is persisted between runs.
	TokenFile string
	// PageSize is the default article list page size.
	PageSize int
	// SearchDebounce is how long free-text search input settles before a
	// query is issued.
	SearchDebounce time.Duration
	// Verbose enables debug logging.
	Verbose bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.TokenFile = defaultTokenFile()
	c.PageSize = 10
	c.SearchDebounce = 500 * time.Millisecond
}

func defaultTokenFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mindvale", "token")
	}
	return filepath.Join(".mindvale", "token")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
