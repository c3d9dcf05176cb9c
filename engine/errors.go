package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrCompilation indicates the script failed to parse or failed a
	// semantic check performed at parse time.
	ErrCompilation = errors.New("script compilation failed")

	// ErrSourceRead indicates a streamed script could not be read.
	ErrSourceRead = errors.New("script source read failed")

	// ErrExecution indicates the compiled program failed while running.
	ErrExecution = errors.New("script execution failed")

	// ErrBootstrap indicates the embedded runtime could not be initialized.
	ErrBootstrap = errors.New("runtime bootstrap failed")

	// ErrUnsupported is returned by operations the engine does not define.
	ErrUnsupported = errors.New("not supported")

	// ErrEngineNotFound is returned by Manager lookups with no match.
	ErrEngineNotFound = errors.New("engine not found")
)

// CompilationError wraps the diagnostics of a failed parse.
type CompilationError struct {
	// Diagnostics lists every problem the parser reported.
	Diagnostics Diagnostics

	// Err is the error returned by the parser.
	Err error
}

func (e *CompilationError) Error() string {
	if len(e.Diagnostics) > 0 {
		return fmt.Sprintf("%s: %s", ErrCompilation, e.Diagnostics.Error())
	}
	return fmt.Sprintf("%s: %v", ErrCompilation, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// Is matches ErrCompilation.
func (e *CompilationError) Is(target error) bool {
	return target == ErrCompilation
}

// newCompilationError builds a CompilationError from a parser failure.
// Parsers that do not return Diagnostics get a single positionless entry.
func newCompilationError(err error, filename string) *CompilationError {
	var diags Diagnostics
	if !errors.As(err, &diags) {
		diags = Diagnostics{{Filename: filename, Message: err.Error()}}
	}
	return &CompilationError{Diagnostics: diags, Err: err}
}

// SourceReadError reports a failure draining a script stream.
type SourceReadError struct {
	Err error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSourceRead, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// Is matches ErrSourceRead.
func (e *SourceReadError) Is(target error) bool {
	return target == ErrSourceRead
}

// ExecutionError wraps an error raised while running a program. The
// runtime's own error stays reachable through errors.As.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrExecution, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is matches ErrExecution.
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}

// BootstrapError reports a failed runtime bootstrap. It is returned by
// every evaluation against that runtime for the rest of the process.
type BootstrapError struct {
	Language string
	Err      error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrBootstrap, e.Language, e.Err)
}

func (e *BootstrapError) Unwrap() error {
	return e.Err
}

// Is matches ErrBootstrap.
func (e *BootstrapError) Is(target error) bool {
	return target == ErrBootstrap
}
