// Package config loads the gosu CLI configuration from YAML, applies
// defaults and GOSU_* environment overrides, and validates the result.
package config

import "time"

// Config is the root configuration.
type Config struct {
	// Engine selects and configures the language runtime.
	Engine EngineConfig `yaml:"engine"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// Server configures `gosu serve`.
	Server ServerConfig `yaml:"server"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// EngineConfig selects the runtime behind the engine.
type EngineConfig struct {
	// Language is "gosu" (goja) or "quickjs" (wazero).
	Language string `yaml:"language"`

	// QuickJSModule is the path to the QuickJS WASI binary.
	// Required when Language is "quickjs".
	QuickJSModule string `yaml:"quickjs_module"`

	// CacheDir holds wazero's compilation cache. Empty disables it.
	CacheDir string `yaml:"cache_dir"`

	// MemoryLimitPages caps QuickJS memory in 64KB pages. Zero means no cap.
	MemoryLimitPages uint32 `yaml:"memory_limit_pages"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is json or text.
	Format string `yaml:"format"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`

	// MaxScriptBytes bounds request bodies on POST /eval.
	MaxScriptBytes int64 `yaml:"max_script_bytes"`
}

// MetricsConfig configures metrics exposure.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
