// Package gosuscript exposes the Gosu scripting language to Go hosts
// through a small scripting-engine contract: a factory that describes the
// engine and an engine that evaluates script fragments.
//
// # Overview
//
// Each evaluation parses the fragment against a fresh environment and runs
// it to completion. The language runtime is initialized once per process,
// on first use. Host bindings are accepted but never reach the script.
//
// # Basic Usage
//
//	f := gosuscript.EngineFactory()
//	e := f.NewEngine()
//
//	v, err := e.Eval(ctx, "[1, 2, 3].where(x => x > 1).sum()", nil)
//	fmt.Println(v) // 5
//
//	// Streams are drained first
//	v, err = e.EvalReader(ctx, strings.NewReader("2 + 2"), nil)
//
// # Metadata
//
//	f.EngineName()      // "Gosu"
//	f.LanguageVersion() // "0.8.6.1-C"
//	f.Extensions()      // ["gsp"]
//
// See the engine, language/gosu and language/quickjs packages for
// detailed API documentation.
package gosuscript
