// Package engine adapts an embedded scripting language to a host-facing
// scripting-engine contract: a Factory that reports metadata and builds
// engines, and an Engine that evaluates script fragments.
//
// # Basic Usage
//
//	f := engine.NewFactory(gosu.New())
//	e := f.NewEngine()
//
//	v, err := e.Eval(ctx, "2 + 2", e.Context())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(v) // 4
//
// # Evaluation
//
// Each call runs this pipeline:
//
//  1. Bootstrap the runtime through its process-wide [OnceGate] (first call only)
//  2. Build a fresh [SymbolTable] and [DefaultParserOptions]
//  3. Take a [Parser] from the runtime's pool
//  4. Parse the text as an expression unit
//  5. Materialize the program [Instance] and evaluate it with no arguments
//
// Syntax errors return a [*CompilationError] carrying the parser's
// [Diagnostics]; stream read failures return [*SourceReadError]; failures
// while running, and parser failures that carry no Diagnostics, return
// [*ExecutionError], which unwraps to the runtime's own error.
//
// # Bindings
//
// [ScriptContext] and [Bindings] exist for hosts that expect them, but the
// runtimes expose no way to seed a program's scope, so nothing bound in a
// context is visible to scripts. This is a fixed property of the engine.
//
// # Language Interface
//
// To plug in another interpreter, implement [Language]. See
// [github.com/gorlowski/gosuscript/language/gosu] for the default.
package engine
