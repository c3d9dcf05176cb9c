// Package gosu provides the default runtime for the Gosu engine:
// Gosu-flavoured expression scripts interpreted by goja.
//
// Scripts are ECMAScript 5.1+ source with a Gosu prelude of collection
// enhancements on arrays (where, firstWhere, countWhere, hasMatch,
// allMatch, each, sum, first, last, orderBy, toSet, Count) and a print
// built-in. The completion value of the last statement is the result.
package gosu

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dop251/goja"

	"github.com/gorlowski/gosuscript/engine"
)

//go:embed prelude.js
var preludeSource string

// ErrNotBootstrapped is returned when a program is instantiated before the
// runtime's Bootstrap has run.
var ErrNotBootstrapped = errors.New("gosu: runtime not bootstrapped")

// prelude is compiled by Bootstrap and shared, read-only, by every
// instance for the rest of the process.
var prelude atomic.Pointer[goja.Program]

// Gosu implements engine.Language on goja.
type Gosu struct {
	out io.Writer
}

// Option configures a Gosu runtime.
type Option func(*Gosu)

// WithOutput sets where print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(g *Gosu) {
		if w != nil {
			g.out = w
		}
	}
}

// New returns a Gosu runtime.
func New(opts ...Option) *Gosu {
	g := &Gosu{out: os.Stdout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns "gosu".
func (g *Gosu) Name() string {
	return "gosu"
}

// Bootstrap compiles the prelude.
func (g *Gosu) Bootstrap(ctx context.Context) error {
	p, err := goja.Compile("prelude.js", preludeSource, false)
	if err != nil {
		return fmt.Errorf("compile prelude: %w", err)
	}
	prelude.Store(p)
	return nil
}

// NewSymbolTable returns a table backed by a new goja runtime.
func (g *Gosu) NewSymbolTable() engine.SymbolTable {
	return newSymbolTable(g.out)
}

// NewParser returns a parser with the runtime's default parse mode.
func (g *Gosu) NewParser() engine.Parser {
	return newParser()
}
