// Package config loads infinite scroll settings from TOML files and watches
// them for changes.
//
// Example file:
//
//	[paging]
//	auto_load_first_page = true
//	scroll_percent = 70
//	scroll_area_height = 800
//	row_height = 100
//	override_page_size = 50
//	loader_style = "single"
//	enable_log = true
//
//	[log]
//	level = "debug"
//
//	[cache]
//	addr = "localhost:6379"
//	ttl = "1m"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nrfta/infinite-paging-go"
	"github.com/nrfta/infinite-paging-go/logging"
)

// FileName is the config file looked up in the working directory.
const FileName = "infinite-paging.toml"

// Config is the full settings file.
type Config struct {
	Paging paging.Options `toml:"paging"`
	Log    logging.Config `toml:"log"`
	Cache  CacheConfig    `toml:"cache"`
	Source SourceConfig   `toml:"source"`
}

// CacheConfig configures the optional Redis page cache.
type CacheConfig struct {
	// Addr is the Redis address. Empty disables the cache.
	Addr   string        `toml:"addr"`
	Prefix string        `toml:"prefix"`
	TTL    time.Duration `toml:"ttl"`
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool {
	return c.Addr != ""
}

// SourceConfig configures the demo page source.
type SourceConfig struct {
	// Delay is the simulated latency of every page.
	Delay time.Duration `toml:"delay"`

	// Total is the number of items before the source runs dry.
	Total int `toml:"total"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	opts := paging.DefaultOptions()
	opts.ScrollAreaHeight = 800
	opts.OverridePageSize = 50
	opts.EnableLog = true

	return Config{
		Paging: opts,
		Log:    logging.DefaultConfig(),
		Cache: CacheConfig{
			Prefix: "scrolldemo",
			TTL:    time.Minute,
		},
		Source: SourceConfig{
			Delay: 2 * time.Second,
			Total: 500,
		},
	}
}

// DefaultPath returns the default config file path.
// First tries the current directory, then ~/.config/infinite-paging/config.toml.
func DefaultPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}

	return filepath.Join(home, ".config", "infinite-paging", "config.toml")
}

// Load reads configuration from a TOML file. Keys missing from the file keep
// their default values. If the file doesn't exist, the defaults are returned.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Paging.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return f.Close()
}
