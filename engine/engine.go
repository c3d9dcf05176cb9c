package engine

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// readChunkSize is the buffer size used to drain script streams.
const readChunkSize = 1024

// Engine evaluates script fragments with an embedded language runtime.
//
// Every evaluation builds a fresh symbol table and default parser options,
// so no state is shared between calls. The runtime itself is bootstrapped
// once per process on first use, whichever Engine gets there first.
type Engine struct {
	lang Language
	opts []Option
	cfg  engineConfig
	rs   *runtimeState

	defaultCtx *ScriptContext
}

// New creates an Engine backed by lang. The runtime is not touched until
// the first evaluation.
func New(lang Language, opts ...Option) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{
		lang:       lang,
		opts:       opts,
		cfg:        cfg,
		rs:         runtimeFor(lang),
		defaultCtx: NewScriptContext(),
	}
}

// Language returns the runtime backing the engine.
func (e *Engine) Language() Language {
	return e.lang
}

// Eval parses and runs script and returns the value it produces.
//
// sc is accepted for contract compliance and is not consulted: bindings
// never reach the script's scope. ctx is handed to the runtime but does
// not interrupt a running script.
func (e *Engine) Eval(ctx context.Context, script string, sc *ScriptContext) (any, error) {
	start := time.Now()
	v, err := e.eval(ctx, script)
	e.observe(start, err)
	return v, err
}

// EvalReader drains r and evaluates its contents. The stream must end;
// its size is not bounded.
func (e *Engine) EvalReader(ctx context.Context, r io.Reader, sc *ScriptContext) (any, error) {
	start := time.Now()
	script, err := readScript(r)
	if err != nil {
		e.observe(start, err)
		return nil, err
	}
	return e.Eval(ctx, script, sc)
}

// EvalString evaluates script with the engine's default context.
func (e *Engine) EvalString(ctx context.Context, script string) (any, error) {
	return e.Eval(ctx, script, e.Context())
}

func (e *Engine) eval(ctx context.Context, script string) (any, error) {
	if err := e.rs.bootstrap(ctx, e.lang, e.cfg.logger, e.cfg.observer); err != nil {
		return nil, err
	}

	table := e.lang.NewSymbolTable()
	opts := DefaultParserOptions()

	parser := e.rs.acquireParser()
	program, err := parser.ParseExpressionOnly(ctx, script, table, opts)
	e.rs.releaseParser(parser)
	if err != nil {
		// Only positioned syntax errors are the script's fault; anything
		// else came from the runtime while checking it.
		var diags Diagnostics
		if !errors.As(err, &diags) {
			return nil, &ExecutionError{Err: err}
		}
		return nil, newCompilationError(err, opts.Filename)
	}

	inst, err := program.Instance()
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	v, err := inst.Evaluate(ctx)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}
	return v, nil
}

func (e *Engine) observe(start time.Time, err error) {
	outcome := OutcomeOf(err)
	d := time.Since(start)
	e.cfg.observer.ObserveEval(e.lang.Name(), outcome, d)
	if err != nil {
		e.cfg.logger.Debug("evaluation failed", "language", e.lang.Name(), "outcome", outcome, "duration", d, "error", err)
		return
	}
	e.cfg.logger.Debug("evaluation complete", "language", e.lang.Name(), "duration", d)
}

// OutcomeOf classifies an error returned by Eval.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrCompilation):
		return OutcomeCompileError
	case errors.Is(err, ErrSourceRead):
		return OutcomeReadError
	case errors.Is(err, ErrBootstrap):
		return OutcomeBootstrapFail
	default:
		return OutcomeRuntimeError
	}
}

// readScript accumulates r in fixed-size chunks until EOF.
func readScript(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		sb.Write(buf[:n])
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", &SourceReadError{Err: err}
		}
	}
}

// CreateBindings returns a new, empty Bindings.
func (e *Engine) CreateBindings() Bindings {
	return Bindings{}
}

// Context returns the engine's default ScriptContext.
func (e *Engine) Context() *ScriptContext {
	return e.defaultCtx
}

// SetContext replaces the default ScriptContext. nil is ignored.
func (e *Engine) SetContext(sc *ScriptContext) {
	if sc != nil {
		e.defaultCtx = sc
	}
}

// Put binds key in the default context's engine scope.
func (e *Engine) Put(key string, value any) {
	e.defaultCtx.SetAttribute(key, value, EngineScope)
}

// Get reads key from the default context's engine scope.
func (e *Engine) Get(key string) (any, bool) {
	return e.defaultCtx.AttributeIn(key, EngineScope)
}

// Factory returns a new Factory describing this engine's language. It is
// not memoized.
func (e *Engine) Factory() *Factory {
	return NewFactory(e.lang, e.opts...)
}
