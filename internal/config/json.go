package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/confsync/internal/flagx"
	"github.com/dmitrijs2005/confsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	RemoteEndpointAddr  string         `json:"remote_endpoint_addr"`
	RemoteAccessToken   string         `json:"remote_access_token"`
	CacheDSN            string         `json:"cache_dsn"`
	SyncInterval        timex.Duration `json:"sync_interval"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`

	AssetsRegion    string `json:"assets_region"`
	AssetsEndpoint  string `json:"assets_endpoint"`
	AssetsBucket    string `json:"assets_bucket"`
	AssetsAccessKey string `json:"assets_access_key"`
	AssetsSecretKey string `json:"assets_secret_key"`
	AssetsDir       string `json:"assets_dir"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. Empty JSON fields keep the current value, so
// a partial config file only overrides what it names.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.RemoteEndpointAddr, jc.RemoteEndpointAddr)
	overlayString(&cfg.RemoteAccessToken, jc.RemoteAccessToken)
	overlayString(&cfg.CacheDSN, jc.CacheDSN)
	overlayDuration(&cfg.SyncInterval, jc.SyncInterval.Duration)
	overlayDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval.Duration)
	overlayString(&cfg.AssetsRegion, jc.AssetsRegion)
	overlayString(&cfg.AssetsEndpoint, jc.AssetsEndpoint)
	overlayString(&cfg.AssetsBucket, jc.AssetsBucket)
	overlayString(&cfg.AssetsAccessKey, jc.AssetsAccessKey)
	overlayString(&cfg.AssetsSecretKey, jc.AssetsSecretKey)
	overlayString(&cfg.AssetsDir, jc.AssetsDir)
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func overlayDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
