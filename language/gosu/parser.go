package gosu

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"
	jsparser "github.com/dop251/goja/parser"

	"github.com/gorlowski/gosuscript/engine"
)

// parser parses and compiles source in two steps so that syntax errors
// keep their full diagnostic list.
type parser struct {
	mode jsparser.Mode
}

func newParser() *parser {
	return &parser{}
}

// ParseExpressionOnly parses src and compiles it against table.
func (p *parser) ParseExpressionOnly(ctx context.Context, src string, table engine.SymbolTable, opts engine.ParserOptions) (engine.Program, error) {
	st, ok := table.(*symbolTable)
	if !ok {
		return nil, fmt.Errorf("gosu: symbol table %T was not created by this runtime", table)
	}

	ast, err := jsparser.ParseFile(nil, opts.Filename, src, p.mode, jsparser.WithDisableSourceMaps)
	if err != nil {
		return nil, diagnosticsOf(err, opts.Filename)
	}

	compiled, err := goja.CompileAST(ast, opts.Strict)
	if err != nil {
		return nil, diagnosticsOf(err, opts.Filename)
	}

	return &program{table: st, compiled: compiled}, nil
}

// diagnosticsOf converts goja parse and compile errors.
func diagnosticsOf(err error, filename string) engine.Diagnostics {
	var list jsparser.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		diags := make(engine.Diagnostics, 0, len(list))
		for _, e := range list {
			diags = append(diags, engine.Diagnostic{
				Filename: e.Position.Filename,
				Line:     e.Position.Line,
				Column:   e.Position.Column,
				Message:  e.Message,
			})
		}
		return diags
	}

	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		diag := engine.Diagnostic{Filename: filename, Message: syntaxErr.Message}
		if syntaxErr.File != nil {
			pos := syntaxErr.File.Position(syntaxErr.Offset)
			diag.Line, diag.Column = pos.Line, pos.Column
		}
		return engine.Diagnostics{diag}
	}

	return engine.Diagnostics{{Filename: filename, Message: err.Error()}}
}

type program struct {
	table    *symbolTable
	compiled *goja.Program
}

// Instance loads the prelude into the program's runtime.
func (p *program) Instance() (engine.Instance, error) {
	pre := prelude.Load()
	if pre == nil {
		return nil, ErrNotBootstrapped
	}
	if _, err := p.table.vm.RunProgram(pre); err != nil {
		return nil, fmt.Errorf("run prelude: %w", err)
	}
	return &instance{vm: p.table.vm, compiled: p.compiled}, nil
}

type instance struct {
	vm       *goja.Runtime
	compiled *goja.Program
}

// Evaluate runs the program and exports its completion value.
func (i *instance) Evaluate(ctx context.Context) (any, error) {
	v, err := i.vm.RunProgram(i.compiled)
	if err != nil {
		return nil, err
	}
	return export(v), nil
}
