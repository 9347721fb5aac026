package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args []string) {
	t.Helper()
	saved := os.Args
	os.Args = append([]string{"confsync"}, args...)
	t.Cleanup(func() { os.Args = saved })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.RemoteEndpointAddr)
	assert.Equal(t, "confsync.db", cfg.CacheDSN)
	assert.Equal(t, 15*time.Minute, cfg.SyncInterval)
	assert.Equal(t, 30*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, "us-east-1", cfg.AssetsRegion)
	assert.Equal(t, "assets", cfg.AssetsDir)
	assert.Empty(t, cfg.AssetsBucket)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, []string{"-a", "https://rows.example.com", "-t", "tok", "-d", "cache.db", "-s", "60", "-i", "5"})

	cfg := LoadConfig()

	assert.Equal(t, "https://rows.example.com", cfg.RemoteEndpointAddr)
	assert.Equal(t, "tok", cfg.RemoteAccessToken)
	assert.Equal(t, "cache.db", cfg.CacheDSN)
	assert.Equal(t, 60*time.Second, cfg.SyncInterval)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"remote_endpoint_addr": "https://rows.example.com",
		"sync_interval": "2m",
		"assets_bucket": "conf-assets"
	}`
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	withArgs(t, []string{"-c", file})

	cfg := LoadConfig()

	assert.Equal(t, "https://rows.example.com", cfg.RemoteEndpointAddr)
	assert.Equal(t, 2*time.Minute, cfg.SyncInterval)
	assert.Equal(t, "conf-assets", cfg.AssetsBucket)
	// Fields the file does not name keep their defaults.
	assert.Equal(t, "confsync.db", cfg.CacheDSN)
	assert.Equal(t, 30*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"cache_dsn": "from-json.db"}`), 0o600))

	withArgs(t, []string{"-c", file, "-d", "from-flag.db"})

	cfg := LoadConfig()

	assert.Equal(t, "from-flag.db", cfg.CacheDSN)
}
