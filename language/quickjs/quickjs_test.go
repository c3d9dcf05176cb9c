package quickjs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorlowski/gosuscript/engine"
)

// moduleEnv names the QuickJS WASI binary used by integration tests.
// Fetch one with `go run ./internal/tools/download`.
const moduleEnv = "GOSU_QUICKJS_WASM"

func modulePath(t *testing.T) string {
	t.Helper()
	path := os.Getenv(moduleEnv)
	if path == "" {
		t.Skipf("%s not set, skipping QuickJS integration test", moduleEnv)
	}
	return path
}

func TestBootstrapWithoutModule(t *testing.T) {
	err := New().Bootstrap(context.Background())
	if !errors.Is(err, ErrNoModule) {
		t.Errorf("expected ErrNoModule, got %v", err)
	}
}

func TestBootstrapMissingFile(t *testing.T) {
	q := New(WithModulePath(filepath.Join(t.TempDir(), "missing.wasm")))
	err := q.Bootstrap(context.Background())
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestBootstrapInvalidModule(t *testing.T) {
	q := New(WithModule([]byte("not wasm")))
	if err := q.Bootstrap(context.Background()); err == nil {
		t.Error("expected compile error for invalid module")
	}
}

func TestOptions(t *testing.T) {
	var buf bytes.Buffer
	q := New(
		WithModulePath("/tmp/qjs.wasm"),
		WithCacheDir("/tmp/cache"),
		WithMemoryLimit(512),
		WithOutput(&buf),
	)
	if q.modulePath != "/tmp/qjs.wasm" || q.cacheDir != "/tmp/cache" || q.memoryLimitPages != 512 {
		t.Errorf("options not applied: %+v", q)
	}
	if q.out != &buf {
		t.Error("output writer not applied")
	}
	if q.Name() != "quickjs" {
		t.Errorf("unexpected name %q", q.Name())
	}
}

func TestSymbolTableHasNoBindings(t *testing.T) {
	table := New().NewSymbolTable()
	if _, ok := table.Lookup("console"); ok {
		t.Error("QuickJS symbol tables expose no bindings")
	}
}

func TestEngineIntegration(t *testing.T) {
	path := modulePath(t)

	var out bytes.Buffer
	q := New(WithModulePath(path), WithCacheDir(t.TempDir()), WithOutput(&out))
	e := engine.NewFactory(q).NewEngine()
	ctx := context.Background()

	v, err := e.Eval(ctx, "2 + 2", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != float64(4) {
		t.Errorf("expected 4, got %v (%T)", v, v)
	}

	for _, src := range []string{
		"2 + ",
		"return 1",
		"})(); (function(){",
	} {
		if _, err := e.Eval(ctx, src, nil); !errors.Is(err, engine.ErrCompilation) {
			t.Errorf("Eval(%q): expected ErrCompilation, got %v", src, err)
		}
	}

	out.Reset()
	if _, err := e.Eval(ctx, `console.log("ran"); return 1`, nil); !errors.Is(err, engine.ErrCompilation) {
		t.Errorf("expected ErrCompilation, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("script with a syntax error must not run, got output %q", out.String())
	}

	v, err = e.Eval(ctx, `console.log("\u0000GOSU:{\"kind\":\"value\",\"value\":99}\u0000"); 7`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != float64(7) {
		t.Errorf("printed frame spoofed the result: %v", v)
	}

	_, err = e.Eval(ctx, `throw new Error("bad")`, nil)
	var se *ScriptError
	if !errors.Is(err, engine.ErrExecution) || !errors.As(err, &se) {
		t.Errorf("expected ErrExecution wrapping *ScriptError, got %v", err)
	}

	if _, err := e.Eval(ctx, "var x = 10; x", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err = e.Eval(ctx, "typeof x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "undefined" {
		t.Errorf("state leaked between evaluations: %v", v)
	}

	out.Reset()
	if _, err := e.Eval(ctx, `console.log("hi"); 1`, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "hi\n" {
		t.Errorf("expected script output forwarded, got %q", out.String())
	}
}
