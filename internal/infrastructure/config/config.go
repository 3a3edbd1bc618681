package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all terminal configuration
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Session SessionConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
	Log     LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// BackendConfig holds the remote PDV backend connection settings
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds the durable client state settings
type SessionConfig struct {
	DBPath string // SQLite database path for persisted tenant/token state
}

// CatalogConfig holds the snapshot loader settings
type CatalogConfig struct {
	PollInterval time.Duration
	CacheTTL     time.Duration
}

// RedisConfig holds Redis connection settings for the snapshot cache.
// An empty Host disables the cache.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// HTTPConfig holds the local UI facade settings
type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Enabled reports whether the snapshot cache is configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr returns the host:port address for the Redis client
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with PDV_ prefix (e.g., PDV_BACKEND_BASE_URL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/pdv-terminal")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("PDV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Backend: BackendConfig{
			BaseURL: v.GetString("backend.base_url"),
			Timeout: v.GetDuration("backend.timeout"),
		},
		Session: SessionConfig{
			DBPath: v.GetString("session.db_path"),
		},
		Catalog: CatalogConfig{
			PollInterval: v.GetDuration("catalog.poll_interval"),
			CacheTTL:     v.GetDuration("catalog.cache_ttl"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		HTTP: HTTPConfig{
			Addr:         v.GetString("http.addr"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers built-in defaults
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pdv-terminal")
	v.SetDefault("app.env", "development")

	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", 15*time.Second)

	v.SetDefault("session.db_path", "pdv-session.db")

	v.SetDefault("catalog.poll_interval", 15*time.Second)
	v.SetDefault("catalog.cache_ttl", 5*time.Minute)

	v.SetDefault("redis.port", 6379)

	v.SetDefault("http.addr", "127.0.0.1:7070")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Backend.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend.base_url is not a valid URL: %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if c.Catalog.PollInterval <= 0 {
		return fmt.Errorf("catalog.poll_interval must be positive")
	}
	if c.Session.DBPath == "" {
		return fmt.Errorf("session.db_path cannot be empty")
	}
	return nil
}
