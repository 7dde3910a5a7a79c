package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Session SessionConfig `yaml:"session"`
	Creds   CredsConfig   `yaml:"creds"`
	Web     WebConfig     `yaml:"web"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects the ledger backend: "sqlite" (default) or "json" for
// the legacy state-directory layout.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type SessionConfig struct {
	Cooldown Duration `yaml:"cooldown"`
}

// Duration wraps time.Duration so YAML accepts "22h" style values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

type CredsConfig struct {
	Path string `yaml:"path"`
}

type WebConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Backend: "sqlite",
			Path:    "tally.db",
		},
		Session: SessionConfig{
			Cooldown: Duration(22 * time.Hour),
		},
		Creds: CredsConfig{
			Path: "admin_login.json",
		},
		Web: WebConfig{
			Dir: "web",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("TALLY_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TALLY_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TALLY_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TALLY_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("TALLY_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if path := os.Getenv("TALLY_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if cooldownStr := os.Getenv("TALLY_COOLDOWN"); cooldownStr != "" {
		cooldown, err := time.ParseDuration(cooldownStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TALLY_COOLDOWN: %w", err)
		}
		cfg.Session.Cooldown = Duration(cooldown)
	}
	if path := os.Getenv("TALLY_CREDS_PATH"); path != "" {
		cfg.Creds.Path = path
	}
	if dir := os.Getenv("TALLY_WEB_DIR"); dir != "" {
		cfg.Web.Dir = dir
	}
	if level := os.Getenv("TALLY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Store.Backend != "sqlite" && cfg.Store.Backend != "json" {
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
