package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults applied when a key is missing or out of range.
const (
	DefaultStoreName   = "Storefront"
	DefaultCountryCode = "us"
	DefaultBackendURL  = "http://localhost:9000"
	DefaultTimeout     = 30 * time.Second
	DefaultCacheTTL    = 10 * time.Minute
	DefaultPageSize    = 12
	maxPageSize        = 100
)

type Config struct {
	StoreName     string `koanf:"store_name"`
	CountryCode   string `koanf:"country_code"`   // ISO-2, selects the pricing region
	ImageProtocol string `koanf:"image_protocol"` // "auto", "kitty", "sixel", "halfblock" or "none"
	DebugLog      string `koanf:"debug_log"`      // log file path, empty disables logging

	Backend BackendConfig `koanf:"backend"`
	Cache   CacheConfig   `koanf:"cache"`
	Cart    CartConfig    `koanf:"cart"`
	Listing ListingConfig `koanf:"listing"`
}

// BackendConfig holds the commerce backend connection settings.
type BackendConfig struct {
	URL            string `koanf:"url"`             // e.g., "http://localhost:9000"
	PublishableKey string `koanf:"publishable_key"` // sent as x-publishable-api-key
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// CacheConfig holds catalog and image cache settings.
type CacheConfig struct {
	TTLMinutes int    `koanf:"ttl_minutes"`
	ImageDir   string `koanf:"image_dir"`
}

// CartConfig identifies the cart shown in the navigation bar.
type CartConfig struct {
	ID string `koanf:"id"`
}

// ListingConfig holds store listing settings.
type ListingConfig struct {
	PageSize int `koanf:"page_size"`
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		StoreName:     DefaultStoreName,
		CountryCode:   DefaultCountryCode,
		ImageProtocol: "auto",
		Backend:       BackendConfig{URL: DefaultBackendURL},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Backend.URL = strings.TrimSuffix(cfg.Backend.URL, "/")
	cfg.CountryCode = strings.ToLower(strings.TrimSpace(cfg.CountryCode))
	cfg.ImageProtocol = strings.ToLower(strings.TrimSpace(cfg.ImageProtocol))

	if cfg.Cache.ImageDir != "" {
		cfg.Cache.ImageDir = expandPath(cfg.Cache.ImageDir)
	} else {
		cfg.Cache.ImageDir = filepath.Join(xdg.CacheHome, "storefront", "images")
	}
	if cfg.DebugLog != "" {
		cfg.DebugLog = expandPath(cfg.DebugLog)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/storefront/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "storefront", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasCart returns true if a cart id is configured.
func (c *Config) HasCart() bool {
	return strings.TrimSpace(c.Cart.ID) != ""
}

// Timeout returns the backend request timeout with defaults applied.
func (c *Config) Timeout() time.Duration {
	if c.Backend.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long catalog responses stay fresh.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLMinutes <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// PageSize returns the listing page size clamped to [1, 100].
func (c *Config) PageSize() int {
	switch {
	case c.Listing.PageSize <= 0:
		return DefaultPageSize
	case c.Listing.PageSize > maxPageSize:
		return maxPageSize
	}
	return c.Listing.PageSize
}
