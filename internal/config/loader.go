package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	envServerPort = "GATEWAY_SERVER_PORT"
	envLogLevel   = "GATEWAY_LOG_LEVEL"
	envRedisURL   = "GATEWAY_REDIS_URL"
	envOTLP       = "GATEWAY_OTLP_ENDPOINT"
)

// Load reads the configuration file at path, applies environment overrides,
// and validates the result. Missing file values fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides overlays selected environment variables on the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(envRedisURL); v != "" {
		cfg.Cache.Redis.URL = v
	}
	if v := os.Getenv(envOTLP); v != "" {
		cfg.Tracing.Endpoint = v
	}
}
