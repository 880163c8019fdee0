package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ClientConfig is the updater's file-backed configuration. The only
// required external setting is the data-server base URL; an empty value
// is valid and makes every update attempt fail fast with a
// configuration error before any network I/O.
type ClientConfig struct {
	BaseURL        string `toml:"base_url"`
	StoreDir       string `toml:"store_dir"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

func defaultClientConfig() ClientConfig {
	return ClientConfig{
		StoreDir:       "./local/readback_data",
		TimeoutSeconds: 30,
	}
}

// loadClientConfig overlays the TOML file at path onto the defaults. A
// missing file is fine; a malformed one is an error.
func loadClientConfig(path string) (ClientConfig, error) {
	cfg := defaultClientConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}
