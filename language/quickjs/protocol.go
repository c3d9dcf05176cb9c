package quickjs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Result protocol: the wrapper scripts print exactly one envelope to
// stdout, framed as \x00GOSU:{json}\x00. Everything else on stdout is
// script output.
const (
	protocolPrefix = "\x00GOSU:"
	protocolSuffix = "\x00"

	// jsPrefix and jsSuffix spell the frame inside JS string literals.
	jsPrefix = `"\u0000GOSU:"`
	jsSuffix = `"\u0000"`
)

// Envelope kinds.
const (
	kindOK     = "ok"
	kindSyntax = "syntax"
	kindValue  = "value"
	kindError  = "error"
)

var errNoEnvelope = errors.New("quickjs: module produced no result")

type envelope struct {
	Kind    string `json:"kind"`
	Value   any    `json:"value"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Stack   string `json:"stack"`
}

// ScriptError is an exception thrown by a QuickJS program.
type ScriptError struct {
	Message string
	Stack   string
}

func (e *ScriptError) Error() string {
	return e.Message
}

// splitOutput extracts the envelope from stdout and returns the remaining
// script output. The wrapper prints its envelope last, so the last frame
// wins over anything the script printed itself.
func splitOutput(stdout string) (envelope, string, error) {
	start := strings.LastIndex(stdout, protocolPrefix)
	if start == -1 {
		return envelope{}, stdout, errNoEnvelope
	}
	rest := stdout[start+len(protocolPrefix):]
	end := strings.Index(rest, protocolSuffix)
	if end == -1 {
		return envelope{}, stdout, errNoEnvelope
	}

	var env envelope
	if err := json.Unmarshal([]byte(rest[:end]), &env); err != nil {
		return envelope{}, stdout, fmt.Errorf("quickjs: decode result: %w", err)
	}

	text := stdout[:start] + strings.TrimPrefix(rest[end+len(protocolSuffix):], "\n")
	return env, text, nil
}

// quote renders src as a JS string literal.
func quote(src string) string {
	b, _ := json.Marshal(src)
	return string(b)
}

// parseGuard is thrown by the first statement of a checked script, so a
// script that parses never runs.
const parseGuard = `"\u0000gosu-parsed"`

// checkScript parses src with the same global-script grammar evalScript
// uses and reports SyntaxErrors without running any of it.
func checkScript(src string) string {
	return `(function () {
  var out = {kind: "ok"};
  try {
    (0, eval)(` + quote(guard(src)) + `);
  } catch (e) {
    if (e instanceof SyntaxError) {
      out = {kind: "syntax", message: String(e.message), line: e.lineNumber || 0};
    }
  }
  console.log(` + jsPrefix + ` + JSON.stringify(out) + ` + jsSuffix + `);
})();`
}

// guard puts a throw of parseGuard ahead of src's first statement, after
// the strict directive if present, without adding a line.
func guard(src string) string {
	stmt := "throw " + parseGuard + ";"
	if rest, ok := strings.CutPrefix(src, strictDirective); ok {
		return strictDirective + stmt + rest
	}
	return stmt + src
}

// evalScript runs src in global scope and reports its completion value.
func evalScript(src string) string {
	return `(function () {
  var out;
  try {
    var v = (0, eval)(` + quote(src) + `);
    if (v === undefined || v === null) {
      out = {kind: "value", value: null};
    } else {
      var s;
      try { s = JSON.stringify(v); } catch (e) { s = undefined; }
      out = {kind: "value", value: s === undefined ? String(v) : JSON.parse(s)};
    }
  } catch (e) {
    out = {kind: "error", message: String(e), stack: e && e.stack ? String(e.stack) : ""};
  }
  console.log(` + jsPrefix + ` + JSON.stringify(out) + ` + jsSuffix + `);
})();`
}
