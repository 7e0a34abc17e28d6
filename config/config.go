// Package config loads gatewayctl configuration from defaults, an optional
// file, and the environment, in that order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable, e.g.
// GATEWAY_NATS_URL.
const EnvPrefix = "GATEWAY"

// Config holds runtime parameters for gatewayctl.
type Config struct {
	// Logging
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" envconfig:"LOG_FORMAT"`

	// NATS frame source
	ClientName  string `json:"client_name" yaml:"client_name" toml:"client_name" envconfig:"CLIENT_NAME"`
	NATSURL     string `json:"nats_url" yaml:"nats_url" toml:"nats_url" envconfig:"NATS_URL"`
	NATSSubject string `json:"nats_subject" yaml:"nats_subject" toml:"nats_subject" envconfig:"NATS_SUBJECT"`
	NATSQueue   string `json:"nats_queue" yaml:"nats_queue" toml:"nats_queue" envconfig:"NATS_QUEUE"`
	Buffer      int    `json:"buffer" yaml:"buffer" toml:"buffer" envconfig:"BUFFER"`

	// Dispatch
	Concurrency int `json:"concurrency" yaml:"concurrency" toml:"concurrency" envconfig:"CONCURRENCY"`

	// Prometheus endpoint; empty disables it.
	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr" toml:"metrics_addr" envconfig:"METRICS_ADDR"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		LogLevel:    "info",
		LogFormat:   "console",
		ClientName:  "gatewayctl",
		NATSURL:     "nats://127.0.0.1:4222",
		NATSSubject: "gateway.frames",
		Buffer:      256,
		Concurrency: 1,
	}
}

// Load builds the configuration: defaults, then the file at path if path is
// not empty, then GATEWAY_* environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	// No default tags: envconfig leaves fields alone when their variable is
	// unset, so file values survive.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFile decodes a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	case ".json":
		err = json.Unmarshal(b, cfg)
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q: want json or console", c.LogFormat)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Buffer < 0 {
		return fmt.Errorf("buffer must not be negative, got %d", c.Buffer)
	}
	return nil
}
