// Package config loads runtime settings for the confsync CLI. Sources are
// layered: defaults, then JSON file (if given via -c/-config), then
// command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the confsync CLI.
//
// Fields:
//   - RemoteEndpointAddr: base URL of the conference row store.
//   - RemoteAccessToken: bearer token for the row store.
//   - CacheDSN: SQLite DSN of the local cache database.
//   - SyncInterval: period between background full refreshes.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - Assets*: optional S3 mirror for sponsor logos / venue maps; an empty
//     AssetsBucket disables the asset cache.
type Config struct {
	RemoteEndpointAddr  string
	RemoteAccessToken   string
	CacheDSN            string
	SyncInterval        time.Duration
	OnlineCheckInterval time.Duration

	AssetsRegion    string
	AssetsEndpoint  string
	AssetsBucket    string
	AssetsAccessKey string
	AssetsSecretKey string
	AssetsDir       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RemoteEndpointAddr = "http://127.0.0.1:8080"
	c.CacheDSN = "confsync.db"
	c.SyncInterval = 15 * time.Minute
	c.OnlineCheckInterval = 30 * time.Second
	c.AssetsRegion = "us-east-1"
	c.AssetsDir = "assets"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
