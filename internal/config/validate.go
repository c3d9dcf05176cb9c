package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError collects every invalid field.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// Validate checks cfg and returns a *ValidationError listing all problems.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}

	var errs []string

	switch cfg.Engine.Language {
	case "gosu":
	case "quickjs":
		if cfg.Engine.QuickJSModule == "" {
			errs = append(errs, "engine.quickjs_module is required when engine.language is quickjs")
		}
	default:
		errs = append(errs, fmt.Sprintf("engine.language must be gosu or quickjs, got %q", cfg.Engine.Language))
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level))
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", cfg.Log.Format))
	}

	if cfg.Server.ReadTimeout < 0 {
		errs = append(errs, "server.read_timeout must not be negative")
	}
	if cfg.Server.WriteTimeout < 0 {
		errs = append(errs, "server.write_timeout must not be negative")
	}
	if cfg.Server.MaxScriptBytes < 0 {
		errs = append(errs, "server.max_script_bytes must not be negative")
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, fmt.Sprintf("metrics.path must start with /, got %q", cfg.Metrics.Path))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
