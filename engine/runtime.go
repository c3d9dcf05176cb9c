package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// runtimeState is the process-wide state for one embedded runtime.
type runtimeState struct {
	gate    *OnceGate
	parsers sync.Pool
}

var (
	runtimesMu sync.RWMutex
	runtimes   = make(map[string]*runtimeState)
)

// runtimeFor returns the shared state for lang, creating it on first use.
func runtimeFor(lang Language) *runtimeState {
	name := lang.Name()

	runtimesMu.RLock()
	if rs, ok := runtimes[name]; ok {
		runtimesMu.RUnlock()
		return rs
	}
	runtimesMu.RUnlock()

	runtimesMu.Lock()
	defer runtimesMu.Unlock()

	if rs, ok := runtimes[name]; ok {
		return rs
	}

	rs := &runtimeState{gate: NewOnceGate()}
	rs.parsers.New = func() any {
		return lang.NewParser()
	}
	runtimes[name] = rs
	return rs
}

// bootstrap runs lang's global setup through its gate.
func (rs *runtimeState) bootstrap(ctx context.Context, lang Language, logger *slog.Logger, obs Observer) error {
	if rs.gate.Initialized() {
		return nil
	}
	err := rs.gate.EnsureInitialized(func() error {
		start := time.Now()
		logger.Debug("bootstrapping runtime", "language", lang.Name())
		err := lang.Bootstrap(ctx)
		d := time.Since(start)
		obs.ObserveBootstrap(lang.Name(), d, err)
		if err != nil {
			logger.Error("runtime bootstrap failed", "language", lang.Name(), "error", err)
			return &BootstrapError{Language: lang.Name(), Err: err}
		}
		logger.Debug("runtime ready", "language", lang.Name(), "duration", d)
		return nil
	})
	var be *BootstrapError
	if err != nil && !errors.As(err, &be) {
		// The gate recovered a panic from lang.Bootstrap.
		return &BootstrapError{Language: lang.Name(), Err: err}
	}
	return err
}

func (rs *runtimeState) acquireParser() Parser {
	return rs.parsers.Get().(Parser)
}

func (rs *runtimeState) releaseParser(p Parser) {
	rs.parsers.Put(p)
}
