// Package quickjs provides a Gosu engine runtime that runs QuickJS,
// compiled to WebAssembly, under wazero.
//
// The QuickJS WASI module is not bundled. Point the runtime at it with
// WithModulePath (internal/tools/download fetches one) or hand the bytes
// over with WithModule. The module is compiled once per process by
// Bootstrap; every parse and evaluation instantiates it afresh, so no
// script state survives between calls.
package quickjs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/gorlowski/gosuscript/engine"
)

var (
	// ErrNoModule is returned by Bootstrap when neither module bytes nor a
	// module path were configured.
	ErrNoModule = errors.New("quickjs: no WASM module configured")

	// ErrNotBootstrapped is returned when the runtime is used before
	// Bootstrap has succeeded.
	ErrNotBootstrapped = errors.New("quickjs: runtime not bootstrapped")
)

// wasmRuntime is the compiled interpreter. It lives for the process.
type wasmRuntime struct {
	runtime  wazero.Runtime
	cache    wazero.CompilationCache
	compiled wazero.CompiledModule
}

var shared atomic.Pointer[wasmRuntime]

// QuickJS implements engine.Language.
type QuickJS struct {
	module           []byte
	modulePath       string
	cacheDir         string
	memoryLimitPages uint32
	out              io.Writer
}

// Option configures a QuickJS runtime.
type Option func(*QuickJS)

// WithModule supplies the QuickJS WASI binary directly.
func WithModule(wasm []byte) Option {
	return func(q *QuickJS) {
		q.module = wasm
	}
}

// WithModulePath reads the QuickJS WASI binary from path at bootstrap.
func WithModulePath(path string) Option {
	return func(q *QuickJS) {
		q.modulePath = path
	}
}

// WithCacheDir enables wazero's on-disk compilation cache in dir.
func WithCacheDir(dir string) Option {
	return func(q *QuickJS) {
		q.cacheDir = dir
	}
}

// WithMemoryLimit caps module memory in 64KB pages. Zero keeps wazero's
// default of 4GB.
func WithMemoryLimit(pages uint32) Option {
	return func(q *QuickJS) {
		q.memoryLimitPages = pages
	}
}

// WithOutput sets where script output (print, console.log) is written.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(q *QuickJS) {
		if w != nil {
			q.out = w
		}
	}
}

// New returns a QuickJS runtime.
func New(opts ...Option) *QuickJS {
	q := &QuickJS{out: os.Stdout}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Name returns "quickjs".
func (q *QuickJS) Name() string {
	return "quickjs"
}

// Bootstrap creates the wazero runtime and compiles the module.
func (q *QuickJS) Bootstrap(ctx context.Context) error {
	module := q.module
	if len(module) == 0 {
		if q.modulePath == "" {
			return ErrNoModule
		}
		data, err := os.ReadFile(q.modulePath)
		if err != nil {
			return fmt.Errorf("read module: %w", err)
		}
		module = data
	}

	var cache wazero.CompilationCache
	if q.cacheDir != "" {
		var err error
		cache, err = wazero.NewCompilationCacheWithDir(q.cacheDir)
		if err != nil {
			return fmt.Errorf("create disk cache: %w", err)
		}
	}

	rtConfig := wazero.NewRuntimeConfig()
	if cache != nil {
		rtConfig = rtConfig.WithCompilationCache(cache)
	}
	if q.memoryLimitPages > 0 {
		rtConfig = rtConfig.WithMemoryLimitPages(q.memoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)
	closeAll := func() {
		rt.Close(ctx)
		if cache != nil {
			cache.Close(ctx)
		}
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		closeAll()
		return fmt.Errorf("instantiate WASI: %w", err)
	}

	compiled, err := rt.CompileModule(ctx, module)
	if err != nil {
		closeAll()
		return fmt.Errorf("compile module: %w", err)
	}

	shared.Store(&wasmRuntime{
		runtime:  rt,
		cache:    cache,
		compiled: compiled,
	})
	return nil
}

// NewSymbolTable returns a table with no visible bindings. QuickJS scopes
// live inside a module instance and are gone once it exits.
func (q *QuickJS) NewSymbolTable() engine.SymbolTable {
	return &symbolTable{out: q.out}
}

// NewParser returns a parser that syntax-checks inside the module.
func (q *QuickJS) NewParser() engine.Parser {
	return &parser{}
}

// symbolTable carries the output writer of the evaluation that owns it.
type symbolTable struct {
	out io.Writer
}

func (*symbolTable) Lookup(string) (any, bool) {
	return nil, false
}
