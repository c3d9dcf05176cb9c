package engine

import (
	"io"
	"log/slog"
	"time"
)

// Evaluation outcomes reported to an Observer.
const (
	OutcomeOK            = "ok"
	OutcomeCompileError  = "compile_error"
	OutcomeRuntimeError  = "runtime_error"
	OutcomeReadError     = "read_error"
	OutcomeBootstrapFail = "bootstrap_error"
)

// Observer receives evaluation events. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveEval(language, outcome string, d time.Duration)
	ObserveBootstrap(language string, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveEval(string, string, time.Duration)   {}
func (nopObserver) ObserveBootstrap(string, time.Duration, error) {}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	logger   *slog.Logger
	observer Observer
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
}

// WithLogger sets the logger used for bootstrap and evaluation events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an Observer, typically a metrics collector.
func WithObserver(obs Observer) Option {
	return func(c *engineConfig) {
		if obs != nil {
			c.observer = obs
		}
	}
}
