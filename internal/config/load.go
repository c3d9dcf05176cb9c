package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads path, applies defaults and validates. Environment
// variables are not consulted; see LoadConfigWithEnvOverrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigWithEnvOverrides loads path (or the defaults when path is
// empty) and applies GOSU_* environment variables on top. Environment
// variables always win over the file.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies GOSU_SECTION_FIELD variables.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("GOSU_ENGINE_LANGUAGE"); val != "" {
		cfg.Engine.Language = val
	}
	if val := os.Getenv("GOSU_ENGINE_QUICKJS_MODULE"); val != "" {
		cfg.Engine.QuickJSModule = val
	}
	if val := os.Getenv("GOSU_ENGINE_CACHE_DIR"); val != "" {
		cfg.Engine.CacheDir = val
	}
	if val := os.Getenv("GOSU_ENGINE_MEMORY_LIMIT_PAGES"); val != "" {
		if n, err := strconv.ParseUint(val, 10, 32); err == nil {
			cfg.Engine.MemoryLimitPages = uint32(n)
		}
	}

	if val := os.Getenv("GOSU_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("GOSU_LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}

	if val := os.Getenv("GOSU_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("GOSU_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("GOSU_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("GOSU_SERVER_MAX_SCRIPT_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxScriptBytes = n
		}
	}

	if val := os.Getenv("GOSU_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("GOSU_METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}
}
