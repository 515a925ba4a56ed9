package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables overriding values from the config file.
const (
	EnvBaseURL  = "LIFTLOG_BASE_URL"
	EnvLogLevel = "LIFTLOG_LOG_LEVEL"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API    APIConfig    `toml:"api"`
	Upload UploadConfig `toml:"upload"`
	Import ImportConfig `toml:"import"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// APIConfig describes the remote lift service.
type APIConfig struct {
	BaseURL        string        `toml:"base_url"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	UploadTimeout  time.Duration `toml:"upload_timeout"`
}

// UploadConfig contains defaults for the video upload flow.
type UploadConfig struct {
	EnableAI bool `toml:"enable_ai"`
}

// ImportConfig contains settings for bulk CSV imports.
type ImportConfig struct {
	RateLimit float64 `toml:"rate_limit"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// ServerConfig contains settings for the stub HTTP backend.
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MaxUploadMB int64  `toml:"max_upload_mb"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads variables from the given .env files into the process environment.
//
// Missing files are skipped. Variables already set in the environment win.
func LoadEnv(paths ...string) error {
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat env file %s: %w", p, err)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values with LIFTLOG_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	u, perr := url.Parse(c.API.BaseURL)
	switch {
	case c.API.BaseURL == "":
		err = multierr.Append(err, fmt.Errorf("%w: api.base_url is empty", ErrInvalidConfig))
	case perr != nil:
		err = multierr.Append(err, fmt.Errorf("%w: api.base_url: %v", ErrInvalidConfig, perr))
	case u.Scheme != "http" && u.Scheme != "https":
		err = multierr.Append(err, fmt.Errorf("%w: api.base_url must use http or https, got %q", ErrInvalidConfig, u.Scheme))
	case u.Host == "":
		err = multierr.Append(err, fmt.Errorf("%w: api.base_url has no host", ErrInvalidConfig))
	}

	if c.API.RequestTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: api.request_timeout must not be negative", ErrInvalidConfig))
	}
	if c.API.UploadTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: api.upload_timeout must not be negative", ErrInvalidConfig))
	}
	if c.Import.RateLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: import.rate_limit must not be negative", ErrInvalidConfig))
	}
	if _, lerr := ParseLogLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, lerr))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("%w: server.port out of range: %d", ErrInvalidConfig, c.Server.Port))
	}
	if c.Server.MaxUploadMB < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: server.max_upload_mb must not be negative", ErrInvalidConfig))
	}

	return err
}
