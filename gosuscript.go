package gosuscript

import (
	"github.com/gorlowski/gosuscript/engine"
	"github.com/gorlowski/gosuscript/language/gosu"
)

// EngineFactory returns a new factory for engines on the default Gosu
// runtime. Each call allocates a new factory.
func EngineFactory(opts ...engine.Option) *engine.Factory {
	return engine.NewFactory(gosu.New(), opts...)
}

// NewEngine is shorthand for EngineFactory(opts...).NewEngine().
func NewEngine(opts ...engine.Option) *engine.Engine {
	return EngineFactory(opts...).NewEngine()
}
