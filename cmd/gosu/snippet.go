package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorlowski/gosuscript/engine"
)

// snippetError renders a compilation error with the offending source line.
type snippetError struct {
	err     error
	snippet string
}

func (e *snippetError) Error() string { return e.snippet }
func (e *snippetError) Unwrap() error { return e.err }

// withSnippet decorates compilation errors that carry a position with a
// caret snippet of src. Other errors are returned unchanged.
func withSnippet(err error, name, src string) error {
	var ce *engine.CompilationError
	if !errors.As(err, &ce) || len(ce.Diagnostics) == 0 || ce.Diagnostics[0].Line == 0 {
		return err
	}
	d := ce.Diagnostics[0]
	return &snippetError{err: err, snippet: renderSnippet(src, name, d.Line, d.Column, d.Message)}
}

// renderSnippet shows line (1-based) with one line of context either side
// and a caret under col. Coordinates are clamped to the source.
func renderSnippet(src, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	line = min(max(line, 1), len(lines))
	col = max(col, 1)

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "syntax error in %s at %d:%d: %s\n\n", name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "syntax error at %d:%d: %s\n\n", line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
