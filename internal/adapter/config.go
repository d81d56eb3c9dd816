package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the public Art Institute of Chicago API.
const DefaultBaseURL = "https://api.artic.edu/api/v1"

// DefaultPageSize is the number of artworks shown per page.
const DefaultPageSize = 12

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds catalog API configuration
type ServerConfig struct {
	URL       string        `mapstructure:"url"`        // API base URL
	Timeout   time.Duration `mapstructure:"timeout"`    // Per-request timeout
	UserAgent string        `mapstructure:"user_agent"` // Sent with every request
}

// BrowseConfig holds paging configuration
type BrowseConfig struct {
	PageSize int      `mapstructure:"page_size"` // Records per page
	Fields   []string `mapstructure:"fields"`    // API fields to request
}

// CacheConfig holds page cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"` // Persist pages to disk
	TTL     time.Duration `mapstructure:"ttl"`     // Max age of a cached page (0 = always refetch)
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string   `mapstructure:"theme"`
	ShowHelp    bool     `mapstructure:"show_help"`    // Show key help in the footer
	Browser     string   `mapstructure:"browser"`      // Command used to open artwork pages
	BrowserArgs []string `mapstructure:"browser_args"` // Extra arguments for Browser
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultFields are the artwork fields the browser displays.
var DefaultFields = []string{
	"id", "title", "artist_display", "place_of_origin", "date_start", "date_end", "inscriptions",
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:       DefaultBaseURL,
			Timeout:   30 * time.Second,
			UserAgent: "Gallery/1.0",
		},
		Browse: BrowseConfig{
			PageSize: DefaultPageSize,
			Fields:   append([]string(nil), DefaultFields...),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		UI: UIConfig{
			Theme:       "default",
			ShowHelp:    true,
			BrowserArgs: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gallery", "gallery.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gallery", "gallery.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gallery")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gallery")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "gallery", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gallery", "cache")
	}
}

// newViper creates a viper instance seeded with defaults so that every key
// can be overridden from the environment (GALLERY_BROWSE_PAGE_SIZE, ...).
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setValues(v.SetDefault, cfg)
	return v
}

// setValues writes every config field through set using snake_case keys.
func setValues(set func(key string, value any), cfg *Config) {
	set("server.url", cfg.Server.URL)
	set("server.timeout", cfg.Server.Timeout)
	set("server.user_agent", cfg.Server.UserAgent)

	set("browse.page_size", cfg.Browse.PageSize)
	set("browse.fields", cfg.Browse.Fields)

	set("cache.enabled", cfg.Cache.Enabled)
	set("cache.ttl", cfg.Cache.TTL)

	set("ui.theme", cfg.UI.Theme)
	set("ui.show_help", cfg.UI.ShowHelp)
	set("ui.browser", cfg.UI.Browser)
	set("ui.browser_args", cfg.UI.BrowserArgs)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath(), ".")
}

// LoadConfigFrom loads config.yaml from the first of dirs that has one,
// falling back to defaults when none does.
func LoadConfigFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default location
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, defaultConfigPath())
}

// SaveConfigTo writes cfg as config.yaml inside dir.
func SaveConfigTo(cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setValues(v.Set, cfg)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values the rest of the application relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return errors.New("server url is required")
	}
	if c.Browse.PageSize < 1 {
		return fmt.Errorf("browse.page_size must be >= 1, got %d", c.Browse.PageSize)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %s", c.Cache.TTL)
	}
	return nil
}

// CacheDir returns the page cache directory, or "" when caching to disk is off.
func (c *Config) CacheDir() string {
	if !c.Cache.Enabled {
		return ""
	}
	return defaultCachePath()
}

// ClearCache removes all cached data
func ClearCache() error {
	cachePath := defaultCachePath()
	if err := os.RemoveAll(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// GetCachePath returns the cache directory path
func GetCachePath() string {
	return defaultCachePath()
}
