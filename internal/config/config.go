// Package config handles the XDG configuration directory, settings and
// session file paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "taskmaster"

	// TokenFile stores the access/refresh token pair.
	TokenFile = "token.json"

	// UserFile stores the authenticated user's profile.
	UserFile = "user.json"

	// ConfigFile is the optional settings file inside the config directory.
	ConfigFile = "config.yaml"
)

// Defaults applied when config.yaml is absent or partial.
const (
	DefaultAPIURL   = "http://localhost:8000/api"
	DefaultPageSize = 20
	DefaultDebounce = 500 * time.Millisecond
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the TaskMaster API.
	APIURL string `mapstructure:"api_url"`

	// PageSize is the task page size for listings.
	PageSize int `mapstructure:"page_size"`

	// Debounce is the delay applied to search/filter refreshes.
	Debounce time.Duration `mapstructure:"debounce"`

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for the default or specified config directory and
// loads config.yaml from it when present. TASKMASTER_API_URL overrides the
// configured API URL.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("debounce", DefaultDebounce)
	v.SetConfigFile(filepath.Join(dir, ConfigFile))

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
			}
		}
	}

	cfg := &Config{Dir: dir}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if url := os.Getenv("TASKMASTER_API_URL"); url != "" {
		cfg.APIURL = url
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// UserPath returns the path to the stored user profile file.
func (c *Config) UserPath() string {
	return filepath.Join(c.Dir, UserFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
