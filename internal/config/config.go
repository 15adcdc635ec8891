package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Bookmark file formats understood by the browser reader
const (
	FormatAuto     = "auto"
	FormatChromium = "chromium"
	FormatNetscape = "netscape"
)

// Config holds application configuration
type Config struct {
	DBPath          string        `yaml:"db_path"`
	BookmarksPath   string        `yaml:"bookmarks_path"`
	BookmarksFormat string        `yaml:"bookmarks_format"`
	BarID           string        `yaml:"bar_id"`
	ListenAddr      string        `yaml:"listen_addr"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	ImageTimeout    time.Duration `yaml:"image_timeout"`
	TagWorkers      int           `yaml:"tag_workers"`
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		DBPath:          getDefaultDBPath(),
		BookmarksPath:   getDefaultBookmarksPath(),
		BookmarksFormat: FormatAuto,
		BarID:           "1",
		ListenAddr:      "127.0.0.1:8087",
		LogLevel:        "info",
		LogFormat:       "text",
		FetchTimeout:    10 * time.Second,
		ImageTimeout:    5 * time.Second,
		TagWorkers:      4,
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// TABMARKS_* environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DBPath = envOr("TABMARKS_DB", c.DBPath)
	c.BookmarksPath = envOr("TABMARKS_BOOKMARKS", c.BookmarksPath)
	c.BookmarksFormat = envOr("TABMARKS_BOOKMARKS_FORMAT", c.BookmarksFormat)
	c.ListenAddr = envOr("TABMARKS_LISTEN_ADDR", c.ListenAddr)
	c.LogLevel = envOr("TABMARKS_LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOr("TABMARKS_LOG_FORMAT", c.LogFormat)
	c.FetchTimeout = parseDurationOr("TABMARKS_FETCH_TIMEOUT", c.FetchTimeout)
	c.ImageTimeout = parseDurationOr("TABMARKS_IMAGE_TIMEOUT", c.ImageTimeout)
	c.TagWorkers = parseIntOr("TABMARKS_TAG_WORKERS", c.TagWorkers)
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	switch c.BookmarksFormat {
	case FormatAuto, FormatChromium, FormatNetscape:
	default:
		return fmt.Errorf("unknown bookmarks format %q", c.BookmarksFormat)
	}
	if c.TagWorkers < 1 {
		c.TagWorkers = 1
	}
	return nil
}

// WithDBPath sets a custom database path
func (c *Config) WithDBPath(path string) *Config {
	c.DBPath = path
	return c
}

// WithBookmarksPath sets the browser bookmark file to read
func (c *Config) WithBookmarksPath(path string) *Config {
	c.BookmarksPath = path
	return c
}

// WithLogLevel sets the logging level
func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}

// WithListenAddr sets the HTTP listen address
func (c *Config) WithListenAddr(addr string) *Config {
	c.ListenAddr = addr
	return c
}

func getDefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "tabmarks.db"
	}
	return filepath.Join(homeDir, ".tabmarks", "tabmarks.db")
}

// getDefaultBookmarksPath points at the default Chromium profile
func getDefaultBookmarksPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "Bookmarks"
	}
	return filepath.Join(configDir, "google-chrome", "Default", "Bookmarks")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
