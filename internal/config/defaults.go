package config

import "time"

// Default values.
const (
	DefaultLanguage       = "gosu"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultListenAddress  = ":8080"
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxScriptBytes = 1 << 20
	DefaultMetricsPath    = "/metrics"
)

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields. Set fields are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg.Engine.Language == "" {
		cfg.Engine.Language = DefaultLanguage
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.MaxScriptBytes == 0 {
		cfg.Server.MaxScriptBytes = DefaultMaxScriptBytes
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}
