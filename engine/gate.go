package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// OnceGate is a single-transition latch: Uninitialized -> Initialized.
//
// The first EnsureInitialized call runs its bootstrap function; concurrent
// callers block until that call returns and then observe the same outcome.
// A failed or panicking bootstrap is terminal, the gate never retries.
// Gates held by the engine live for the process and have no teardown.
type OnceGate struct {
	once sync.Once
	done atomic.Bool
	err  error
}

// NewOnceGate returns a gate in the Uninitialized state.
func NewOnceGate() *OnceGate {
	return &OnceGate{}
}

// EnsureInitialized runs bootstrap exactly once across all callers and
// returns its result.
func (g *OnceGate) EnsureInitialized(bootstrap func() error) error {
	g.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				g.err = fmt.Errorf("bootstrap panicked: %v", r)
			}
			g.done.Store(true)
		}()
		g.err = bootstrap()
	})
	return g.err
}

// Initialized reports whether bootstrap ran and succeeded.
func (g *OnceGate) Initialized() bool {
	return g.done.Load() && g.err == nil
}
