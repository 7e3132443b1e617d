// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CCSA_LOG_LEVEL.
const EnvPrefix = "CCSA"

// Config represents the complete application configuration.
type Config struct {
	Server struct {
		Port           int    `mapstructure:"port" yaml:"port"`
		StaticDir      string `mapstructure:"static_dir" yaml:"static_dir"`
		BodyLimitMB    int    `mapstructure:"body_limit_mb" yaml:"body_limit_mb"`
		RawSampleBytes int    `mapstructure:"raw_sample_bytes" yaml:"raw_sample_bytes"`
	} `mapstructure:"server" yaml:"server"`

	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Model            string `mapstructure:"model" yaml:"model"`
		APIKey           string `mapstructure:"api_key" yaml:"-"`
		TimeoutSeconds   int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MaxRetries       int    `mapstructure:"max_retries" yaml:"max_retries"`
		InitialBackoffMS int    `mapstructure:"initial_backoff_ms" yaml:"initial_backoff_ms"`
		MaxBackoffMS     int    `mapstructure:"max_backoff_ms" yaml:"max_backoff_ms"`
	} `mapstructure:"ai" yaml:"ai"`

	Store struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Path    string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`

	Debug struct {
		// DumpDir receives extracted text and line maps; empty disables dumps.
		DumpDir string `mapstructure:"dump_dir" yaml:"dump_dir"`
	} `mapstructure:"debug" yaml:"debug"`
}

// LoadEnv loads a .env file into the process environment. A missing file
// is not an error.
func LoadEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}
	return nil
}

// Load builds the configuration from defaults, an optional config file and
// the environment, in increasing priority. configFile overrides the search
// path when set.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ccsa")
		v.AddConfigPath(".ccsa")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// unprefixed names used by hosting platforms and the Gemini tooling
	if err := v.BindEnv("ai.api_key", EnvPrefix+"_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding GEMINI_API_KEY: %w", err)
	}
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding PORT: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.body_limit_mb", 32)
	v.SetDefault("server.raw_sample_bytes", 6000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.timeout_seconds", 15)
	v.SetDefault("ai.max_retries", 3)
	v.SetDefault("ai.initial_backoff_ms", 1000)
	v.SetDefault("ai.max_backoff_ms", 8000)

	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", "statements.db")

	v.SetDefault("debug.dump_dir", "")
}

func validateConfig(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}
	if cfg.Server.BodyLimitMB < 1 {
		return fmt.Errorf("server.body_limit_mb must be positive, got: %d", cfg.Server.BodyLimitMB)
	}
	if cfg.Server.RawSampleBytes < 0 {
		return fmt.Errorf("server.raw_sample_bytes must not be negative, got: %d", cfg.Server.RawSampleBytes)
	}

	if cfg.AI.TimeoutSeconds < 1 || cfg.AI.TimeoutSeconds > 300 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", cfg.AI.TimeoutSeconds)
	}
	if cfg.AI.MaxRetries < 1 || cfg.AI.MaxRetries > 10 {
		return fmt.Errorf("ai.max_retries must be between 1 and 10, got: %d", cfg.AI.MaxRetries)
	}
	if cfg.AI.InitialBackoffMS < 0 {
		return fmt.Errorf("ai.initial_backoff_ms must not be negative, got: %d", cfg.AI.InitialBackoffMS)
	}
	if cfg.AI.MaxBackoffMS < cfg.AI.InitialBackoffMS {
		return fmt.Errorf("ai.max_backoff_ms (%d) must not be below ai.initial_backoff_ms (%d)",
			cfg.AI.MaxBackoffMS, cfg.AI.InitialBackoffMS)
	}

	if cfg.Store.Enabled && cfg.Store.Path == "" {
		return errors.New("store.path required when store.enabled is true")
	}
	return nil
}

// AITimeout returns the per-attempt timeout for insight requests.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// InitialBackoff returns the first retry delay.
func (c *Config) InitialBackoff() time.Duration {
	return time.Duration(c.AI.InitialBackoffMS) * time.Millisecond
}

// MaxBackoff returns the retry delay cap.
func (c *Config) MaxBackoff() time.Duration {
	return time.Duration(c.AI.MaxBackoffMS) * time.Millisecond
}

// BodyLimit returns the request body limit in bytes.
func (c *Config) BodyLimit() int {
	return c.Server.BodyLimitMB * 1024 * 1024
}
