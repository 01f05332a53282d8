package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the process configuration. Values come from an optional YAML file
// with environment variables layered on top; every field has a development
// default so the server starts with no configuration at all.
type Config struct {
	Host        string        `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
	Port        string        `yaml:"port" env:"PORT" env-default:"8080"`
	JWTSecret   string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"your_secret_key_please_change_in_production"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
	SessionFile string        `yaml:"session_file" env:"SESSION_FILE" env-default:"session.json"`
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// LoadConfig reads the file at path (when given) and overlays environment
// variables. An empty path means environment-only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// MustLoadConfig is LoadConfig with panic on error, for use in main.
func MustLoadConfig(path string) *Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
