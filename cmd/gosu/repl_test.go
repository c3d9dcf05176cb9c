package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"

	"github.com/gorlowski/gosuscript/engine"
	"github.com/gorlowski/gosuscript/language/gosu"
)

// scriptedReader replays lines, then returns io.EOF.
type scriptedReader struct {
	lines   []string
	prompts []string
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func (r *scriptedReader) SetPrompt(p string) {
	r.prompts = append(r.prompts, p)
}

func replSession(t *testing.T, lines ...string) (string, string, *scriptedReader) {
	t.Helper()
	var out, errOut bytes.Buffer
	rl := &scriptedReader{lines: lines}
	factory := engine.NewFactory(gosu.New(gosu.WithOutput(&out)))
	if err := repl(context.Background(), factory, rl, &out, &errOut); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String(), errOut.String(), rl
}

func TestReplEvaluatesLines(t *testing.T) {
	out, errOut, _ := replSession(t, "1 + 1", "", "'x'.repeat(3)")
	if out != "2\nxxx\n\n" {
		t.Errorf("unexpected output %q", out)
	}
	if errOut != "" {
		t.Errorf("unexpected errors %q", errOut)
	}
}

func TestReplFreshEnvironmentPerLine(t *testing.T) {
	out, _, _ := replSession(t, "var x = 5; x", "typeof x")
	if out != "5\nundefined\n\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestReplMultiLine(t *testing.T) {
	out, _, rl := replSession(t, "var a = 20;\\", "a + 22")
	if out != "42\n\n" {
		t.Errorf("unexpected output %q", out)
	}
	if len(rl.prompts) != 2 || rl.prompts[0] != continuationPrompt || rl.prompts[1] != primaryPrompt {
		t.Errorf("unexpected prompts %q", rl.prompts)
	}
}

func TestReplInterruptCancelsMultiLine(t *testing.T) {
	out, _, _ := replSession(t, "1 +\\", "^C", "7")
	if out != "7\n\n" {
		t.Errorf("interrupt should discard pending input, got %q", out)
	}
}

func TestReplErrorsContinue(t *testing.T) {
	out, errOut, _ := replSession(t, "2 +", "nope()", "3")
	if out != "3\n\n" {
		t.Errorf("unexpected output %q", out)
	}
	var errs int
	for _, line := range strings.Split(errOut, "\n") {
		if strings.HasPrefix(line, "Error: ") {
			errs++
		}
	}
	if errs != 2 {
		t.Errorf("expected two errors, got %q", errOut)
	}
}

func TestReplExit(t *testing.T) {
	out, _, rl := replSession(t, "1", "exit", "2")
	if out != "1\n" {
		t.Errorf("unexpected output %q", out)
	}
	if len(rl.lines) != 1 {
		t.Errorf("exit should stop reading, %d lines left", len(rl.lines))
	}
}

func TestReplReadError(t *testing.T) {
	rl := &failingReader{err: errors.New("tty gone")}
	factory := engine.NewFactory(gosu.New(gosu.WithOutput(io.Discard)))
	err := repl(context.Background(), factory, rl, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "tty gone") {
		t.Errorf("expected read error, got %v", err)
	}
}

type failingReader struct{ err error }

func (r *failingReader) Readline() (string, error) { return "", r.err }
func (r *failingReader) SetPrompt(string)          {}
