package gosuscript_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gorlowski/gosuscript"
	"github.com/gorlowski/gosuscript/engine"
)

func TestEngineFactory(t *testing.T) {
	f1, f2 := gosuscript.EngineFactory(), gosuscript.EngineFactory()
	if f1 == f2 {
		t.Error("EngineFactory should return a new factory per call")
	}
	if f1.EngineName() != "Gosu" {
		t.Errorf("unexpected engine name %q", f1.EngineName())
	}
	if f1.NewEngine().Language().Name() != "gosu" {
		t.Error("default runtime should be gosu")
	}
}

func TestNewEngine(t *testing.T) {
	v, err := gosuscript.NewEngine().Eval(context.Background(), "'go' + 'su'", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "gosu" {
		t.Errorf("expected gosu, got %v", v)
	}
}

func ExampleEngineFactory() {
	ctx := context.Background()
	f := gosuscript.EngineFactory()
	e := f.NewEngine()

	v, err := e.Eval(ctx, "[1, 2, 3].where(x => x > 1).sum()", nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(v)

	v, _ = e.EvalReader(ctx, strings.NewReader("2 + 2"), nil)
	fmt.Println(v)

	fmt.Println(f.EngineName(), f.LanguageVersion(), f.Extensions())
	// Output:
	// 5
	// 4
	// Gosu 0.8.6.1-C [gsp]
}

func Example_program() {
	f := gosuscript.EngineFactory()
	src := f.Program("var a = 1", "var b = 2;", "a + b")
	fmt.Println(src)

	v, _ := f.NewEngine().Eval(context.Background(), src, nil)
	fmt.Println(v)
	// Output:
	// var a = 1; var b = 2;a + b
	// 3
}

func Example_compilationError() {
	_, err := gosuscript.NewEngine().Eval(context.Background(), "2 +", nil)

	var ce *engine.CompilationError
	if errors.As(err, &ce) {
		d := ce.Diagnostics[0]
		fmt.Println(errors.Is(err, engine.ErrCompilation), d.Filename, d.Line)
	}
	// Output:
	// true <eval> 1
}
