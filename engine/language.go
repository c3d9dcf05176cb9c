package engine

import (
	"context"
	"fmt"
	"strings"
)

// Language is an embedded language runtime the engine drives.
// Implement this interface to plug a new interpreter behind the engine
// (see language/gosu and language/quickjs).
type Language interface {
	// Name returns a unique identifier for the runtime (e.g. "gosu").
	// The engine keys its process-wide initialization gate and parser
	// pool by this name.
	Name() string

	// Bootstrap performs the runtime's global setup. The engine calls it
	// at most once per process for each Name, before any parse.
	Bootstrap(ctx context.Context) error

	// NewSymbolTable returns a fresh, isolated symbol table for one parse.
	NewSymbolTable() SymbolTable

	// NewParser returns a program parser. Parsers are pooled by the
	// engine and never used by two goroutines at the same time.
	NewParser() Parser
}

// SymbolTable is the scope a program is parsed against and executed in.
type SymbolTable interface {
	// Lookup returns the exported value bound to name.
	Lookup(name string) (any, bool)
}

// Parser turns source text into a program unit.
type Parser interface {
	// ParseExpressionOnly parses src as an expression unit bound to table.
	// On failure it returns Diagnostics describing every problem found.
	ParseExpressionOnly(ctx context.Context, src string, table SymbolTable, opts ParserOptions) (Program, error)
}

// Program is a compiled program unit.
type Program interface {
	// Instance materializes the program's entry point.
	Instance() (Instance, error)
}

// Instance is a runnable program entry point.
type Instance interface {
	// Evaluate runs the entry point with no external arguments and
	// returns the produced value, nil for void.
	Evaluate(ctx context.Context) (any, error)
}

// ParserOptions configures a single parse.
type ParserOptions struct {
	// Filename is reported in diagnostics.
	Filename string

	// Strict enables the runtime's strict mode where it has one.
	Strict bool
}

// DefaultParserOptions returns the options used for every evaluation.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		Filename: "<eval>",
	}
}

// Diagnostic is a single problem reported by a parser.
type Diagnostic struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", d.Filename, d.Line, d.Column, d.Message)
	}
	if d.Filename != "" {
		return d.Filename + ": " + d.Message
	}
	return d.Message
}

// Diagnostics is the error a Parser returns when parsing fails.
type Diagnostics []Diagnostic

func (d Diagnostics) Error() string {
	switch len(d) {
	case 0:
		return "no diagnostics"
	case 1:
		return d[0].String()
	}
	msgs := make([]string, len(d))
	for i, diag := range d {
		msgs[i] = diag.String()
	}
	return fmt.Sprintf("%d errors: %s", len(d), strings.Join(msgs, "; "))
}
