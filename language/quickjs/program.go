package quickjs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/sys"

	"github.com/gorlowski/gosuscript/engine"
)

const strictDirective = "\"use strict\";\n"

type parser struct{}

// ParseExpressionOnly syntax-checks src in a module instance.
func (p *parser) ParseExpressionOnly(ctx context.Context, src string, table engine.SymbolTable, opts engine.ParserOptions) (engine.Program, error) {
	st, ok := table.(*symbolTable)
	if !ok {
		return nil, fmt.Errorf("quickjs: symbol table %T was not created by this runtime", table)
	}
	if opts.Strict {
		src = strictDirective + src
	}

	stdout, err := run(ctx, checkScript(src))
	if err != nil {
		return nil, err
	}
	env, _, err := splitOutput(stdout)
	if err != nil {
		return nil, err
	}
	if env.Kind == kindSyntax {
		return nil, engine.Diagnostics{{
			Filename: opts.Filename,
			Line:     env.Line,
			Message:  env.Message,
		}}
	}
	return &program{src: src, out: st.out}, nil
}

type program struct {
	src string
	out io.Writer
}

func (p *program) Instance() (engine.Instance, error) {
	if shared.Load() == nil {
		return nil, ErrNotBootstrapped
	}
	return &instance{src: p.src, out: p.out}, nil
}

type instance struct {
	src string
	out io.Writer
}

// Evaluate runs the program in a new module instance.
func (i *instance) Evaluate(ctx context.Context) (any, error) {
	stdout, err := run(ctx, evalScript(i.src))
	if err != nil {
		return nil, err
	}
	env, text, err := splitOutput(stdout)
	if text != "" {
		io.WriteString(i.out, text)
	}
	if err != nil {
		return nil, err
	}
	if env.Kind == kindError {
		return nil, &ScriptError{Message: env.Message, Stack: env.Stack}
	}
	return env.Value, nil
}

// run instantiates the compiled module with script as qjs -e input and
// returns its stdout.
func run(ctx context.Context, script string) (string, error) {
	rt := shared.Load()
	if rt == nil {
		return "", ErrNotBootstrapped
	}

	var stdout, stderr bytes.Buffer
	moduleConfig := wazero.NewModuleConfig().
		WithStdout(&stdout).
		WithStderr(&stderr).
		WithArgs("qjs", "--std", "-e", script).
		WithName("")

	mod, err := rt.runtime.InstantiateModule(ctx, rt.compiled, moduleConfig)
	if mod != nil {
		mod.Close(ctx)
	}
	if err != nil {
		var exitErr *sys.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 0 {
			return "", fmt.Errorf("quickjs: execution failed: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
	}
	return stdout.String(), nil
}
