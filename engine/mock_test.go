package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// mockLanguage implements Language for testing engine logic without a
// real script runtime. Scripts are interpreted by prefix:
//
//	"syntax:msg"  parse fails with a Diagnostics error
//	"plain:msg"   parse fails with a non-diagnostic error
//	"inst:msg"    Instance fails
//	"throw:msg"   Evaluate fails
//	"lookup:name" evaluates to the symbol table's binding for name
//
// Anything else evaluates to the script text itself.
type mockLanguage struct {
	name           string
	bootstrapErr   error
	bootstrapPanic bool

	bootstraps atomic.Int32
	parsers    atomic.Int32

	mu     sync.Mutex
	tables []*mockTable
}

func newMockLanguage(name string) *mockLanguage {
	return &mockLanguage{name: name}
}

func (m *mockLanguage) Name() string {
	return m.name
}

func (m *mockLanguage) Bootstrap(ctx context.Context) error {
	m.bootstraps.Add(1)
	if m.bootstrapPanic {
		panic("bootstrap blew up")
	}
	return m.bootstrapErr
}

func (m *mockLanguage) NewSymbolTable() SymbolTable {
	t := &mockTable{vars: map[string]any{}}
	m.mu.Lock()
	m.tables = append(m.tables, t)
	m.mu.Unlock()
	return t
}

func (m *mockLanguage) NewParser() Parser {
	m.parsers.Add(1)
	return &mockParser{}
}

func (m *mockLanguage) tableCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables)
}

type mockTable struct {
	vars map[string]any
}

func (t *mockTable) Lookup(name string) (any, bool) {
	v, ok := t.vars[name]
	return v, ok
}

type mockParser struct{}

func (p *mockParser) ParseExpressionOnly(ctx context.Context, src string, table SymbolTable, opts ParserOptions) (Program, error) {
	switch {
	case strings.HasPrefix(src, "syntax:"):
		return nil, Diagnostics{{Filename: opts.Filename, Line: 1, Column: 1, Message: strings.TrimPrefix(src, "syntax:")}}
	case strings.HasPrefix(src, "plain:"):
		return nil, errors.New(strings.TrimPrefix(src, "plain:"))
	}
	return &mockProgram{src: src, table: table}, nil
}

type mockProgram struct {
	src   string
	table SymbolTable
}

func (p *mockProgram) Instance() (Instance, error) {
	if msg, ok := strings.CutPrefix(p.src, "inst:"); ok {
		return nil, errors.New(msg)
	}
	return p, nil
}

func (p *mockProgram) Evaluate(ctx context.Context) (any, error) {
	if msg, ok := strings.CutPrefix(p.src, "throw:"); ok {
		return nil, errors.New(msg)
	}
	if name, ok := strings.CutPrefix(p.src, "lookup:"); ok {
		v, _ := p.table.Lookup(name)
		return v, nil
	}
	return p.src, nil
}

// recordingObserver counts events for assertions.
type recordingObserver struct {
	mu         sync.Mutex
	outcomes   []string
	durations  []time.Duration
	bootstraps []error
}

func (r *recordingObserver) ObserveEval(language, outcome string, d time.Duration) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, outcome)
	r.durations = append(r.durations, d)
	r.mu.Unlock()
}

func (r *recordingObserver) ObserveBootstrap(language string, _ time.Duration, err error) {
	r.mu.Lock()
	r.bootstraps = append(r.bootstraps, err)
	r.mu.Unlock()
}

// slowReader blocks for delay, then fails with err.
type slowReader struct {
	delay time.Duration
	err   error
}

func (r slowReader) Read([]byte) (int, error) {
	time.Sleep(r.delay)
	return 0, r.err
}
