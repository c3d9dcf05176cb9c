package engine

import (
	"fmt"
	"slices"
	"sync"
)

// Manager is a host-side registry of factories, looked up by name alias,
// file extension or mime type.
type Manager struct {
	mu        sync.RWMutex
	factories []*Factory
}

// NewManager returns a Manager holding the given factories.
func NewManager(factories ...*Factory) *Manager {
	m := &Manager{}
	for _, f := range factories {
		m.Register(f)
	}
	return m
}

// Register adds f. Later registrations win lookups that match several
// factories.
func (m *Manager) Register(f *Factory) {
	if f == nil {
		return
	}
	m.mu.Lock()
	m.factories = append(m.factories, f)
	m.mu.Unlock()
}

// Factories returns the registered factories in registration order.
func (m *Manager) Factories() []*Factory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.factories)
}

// EngineByName returns a new engine whose factory lists name as an alias.
func (m *Manager) EngineByName(name string) (*Engine, error) {
	return m.lookup("name", name, (*Factory).Names)
}

// EngineByExtension returns a new engine for files with extension ext
// (no leading dot).
func (m *Manager) EngineByExtension(ext string) (*Engine, error) {
	return m.lookup("extension", ext, (*Factory).Extensions)
}

// EngineByMimeType returns a new engine for scripts of the given mime type.
func (m *Manager) EngineByMimeType(mimeType string) (*Engine, error) {
	return m.lookup("mime type", mimeType, (*Factory).MimeTypes)
}

func (m *Manager) lookup(kind, key string, values func(*Factory) []string) (*Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.factories) - 1; i >= 0; i-- {
		f := m.factories[i]
		if slices.Contains(values(f), key) {
			return f.NewEngine(), nil
		}
	}
	return nil, fmt.Errorf("%w: no engine for %s %q", ErrEngineNotFound, kind, key)
}
