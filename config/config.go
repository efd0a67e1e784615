package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sjsage522/slickdealer/pkg/errors"
)

// Modes
const (
	ModeInteractive = "interactive"
	ModeWatch       = "watch"
)

// Wishlist backends
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendMemcache = "memcache"
)

// Config represents the application configuration
type Config struct {
	Mode string

	// Deals page
	DealsURL       string
	DealsBaseURL   string
	FetchTimeout   time.Duration
	RateLimitBlock time.Duration

	// Rendered listing
	ListingFile string
	OpenBrowser bool

	// Wishlist persistence
	WishlistBackend string
	WishlistPath    string
	WishlistKey     string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache configuration, empty means an in-process cache
	MemcacheAddr string

	// Alerts
	AlertsEnabled bool
	WatchInterval time.Duration
	AlertDedupe   time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		Mode:                 strings.ToLower(getEnv("SLICKDEALER_MODE", ModeInteractive)),
		DealsURL:             getEnv("DEALS_URL", "http://slickdeals.net"),
		DealsBaseURL:         getEnv("DEALS_BASE_URL", "http://www.slickdeals.net"),
		FetchTimeout:         getSeconds("FETCH_TIMEOUT_SECONDS", 10),
		RateLimitBlock:       getSeconds("RATE_LIMIT_BLOCK_SECONDS", 300),
		ListingFile:          getEnv("LISTING_FILE", "slickdealer.html"),
		OpenBrowser:          getBool("OPEN_BROWSER", true),
		WishlistBackend:      strings.ToLower(getEnv("WISHLIST_BACKEND", BackendFile)),
		WishlistPath:         getEnv("WISHLIST_PATH", "wishlist.json"),
		WishlistKey:          getEnv("WISHLIST_KEY", "wishlist"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              getInt("REDIS_DB", 0),
		RedisStream:          getEnv("REDIS_STREAM", "slickdealer:alerts"),
		RedisStreamMaxLength: getInt("REDIS_STREAM_MAX_LENGTH", 1000),
		MemcacheAddr:         os.Getenv("MEMCACHE_ADDR"),
		AlertsEnabled:        getBool("ALERTS_ENABLED", false),
		WatchInterval:        getSeconds("WATCH_INTERVAL_SECONDS", 300),
		AlertDedupe:          getSeconds("ALERT_DEDUPE_SECONDS", 86400),
		Environment:          getEnv("SLICKDEALER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeInteractive, ModeWatch:
	default:
		return errors.NewConfiguration(fmt.Sprintf("unknown SLICKDEALER_MODE %q", c.Mode), nil)
	}

	switch c.WishlistBackend {
	case BackendFile:
		if c.WishlistPath == "" {
			return errors.NewConfiguration("WISHLIST_PATH must be set for the file backend", nil)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.NewConfiguration("REDIS_ADDR must be set for the redis backend", nil)
		}
	case BackendMemcache:
		if c.MemcacheAddr == "" {
			return errors.NewConfiguration("MEMCACHE_ADDR must be set for the memcache backend", nil)
		}
	default:
		return errors.NewConfiguration(fmt.Sprintf("unknown WISHLIST_BACKEND %q", c.WishlistBackend), nil)
	}

	if c.DealsURL == "" {
		return errors.NewConfiguration("DEALS_URL must be set", nil)
	}
	if c.WishlistKey == "" {
		return errors.NewConfiguration("WISHLIST_KEY must be set", nil)
	}
	if c.FetchTimeout <= 0 {
		return errors.NewConfiguration("FETCH_TIMEOUT_SECONDS must be positive", nil)
	}
	if c.Mode == ModeWatch {
		if c.WatchInterval <= 0 {
			return errors.NewConfiguration("WATCH_INTERVAL_SECONDS must be positive", nil)
		}
		if !c.AlertsEnabled {
			return errors.NewConfiguration("watch mode requires ALERTS_ENABLED=true", nil)
		}
	}
	if c.AlertsEnabled && c.RedisStream == "" {
		return errors.NewConfiguration("REDIS_STREAM must be set when alerts are enabled", nil)
	}

	return nil
}

// IsProduction reports whether the application runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

func getSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getInt(key, defaultSeconds)) * time.Second
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
