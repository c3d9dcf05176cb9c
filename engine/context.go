package engine

import "sync"

// Bindings is an ordinary name/value mapping.
type Bindings map[string]any

// Scope identifies a set of bindings inside a ScriptContext.
type Scope int

const (
	// EngineScope holds bindings private to one engine.
	EngineScope Scope = 100
	// GlobalScope holds bindings shared by engines of one host.
	GlobalScope Scope = 200
)

// ScriptContext carries host bindings by scope.
//
// Evaluation accepts a ScriptContext but never reads it: the embedded
// runtimes expose no way to seed a program's scope from the host, so
// nothing placed here is visible to scripts.
type ScriptContext struct {
	mu     sync.RWMutex
	scopes map[Scope]Bindings
}

// NewScriptContext returns a context with an empty engine scope.
func NewScriptContext() *ScriptContext {
	return &ScriptContext{
		scopes: map[Scope]Bindings{EngineScope: {}},
	}
}

// Bindings returns the bindings for scope, or nil if none are set.
func (c *ScriptContext) Bindings(scope Scope) Bindings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scopes[scope]
}

// SetBindings replaces the bindings for scope. A nil b removes the scope.
func (c *ScriptContext) SetBindings(scope Scope, b Bindings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b == nil {
		delete(c.scopes, scope)
		return
	}
	c.scopes[scope] = b
}

// SetAttribute binds name in scope, creating the scope if needed.
func (c *ScriptContext) SetAttribute(name string, value any, scope Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.scopes[scope]
	if !ok {
		b = Bindings{}
		c.scopes[scope] = b
	}
	b[name] = value
}

// Attribute looks name up in the engine scope, then the global scope.
func (c *ScriptContext) Attribute(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, scope := range []Scope{EngineScope, GlobalScope} {
		if v, ok := c.scopes[scope][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// AttributeIn looks name up in scope only.
func (c *ScriptContext) AttributeIn(name string, scope Scope) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.scopes[scope][name]
	return v, ok
}

// RemoveAttribute deletes name from scope and returns the old value.
func (c *ScriptContext) RemoveAttribute(name string, scope Scope) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.scopes[scope][name]
	if ok {
		delete(c.scopes[scope], name)
	}
	return v, ok
}
