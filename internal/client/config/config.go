// Package config handles configuration for the client application,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the GeoSick client.
//
// Fields:
//   - DatabasePath: SQLite file backing the local store.
//   - DirectoryAddr: base URL of the directory service; empty disables
//     telemetry mirroring entirely.
//   - AuthMinDelay: minimum latency of auth submissions. Cosmetic only;
//     zero is valid and skips the pause.
type Config struct {
	DatabasePath  string
	DirectoryAddr string
	AuthMinDelay  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "geosick.db"
	c.DirectoryAddr = ""
	c.AuthMinDelay = 500 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
