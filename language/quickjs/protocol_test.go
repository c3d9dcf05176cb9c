package quickjs

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSplitOutput(t *testing.T) {
	tests := []struct {
		name     string
		stdout   string
		wantKind string
		wantText string
		wantErr  bool
	}{
		{
			name:     "envelope only",
			stdout:   protocolPrefix + `{"kind":"value","value":4}` + protocolSuffix + "\n",
			wantKind: kindValue,
			wantText: "",
		},
		{
			name:     "output before envelope",
			stdout:   "hello\n" + protocolPrefix + `{"kind":"ok"}` + protocolSuffix + "\n",
			wantKind: kindOK,
			wantText: "hello\n",
		},
		{
			name:     "output after envelope",
			stdout:   protocolPrefix + `{"kind":"ok"}` + protocolSuffix + "\nlate\n",
			wantKind: kindOK,
			wantText: "late\n",
		},
		{
			name:    "no envelope",
			stdout:  "just text\n",
			wantErr: true,
		},
		{
			name:    "unterminated envelope",
			stdout:  protocolPrefix + `{"kind":"ok"}`,
			wantErr: true,
		},
		{
			name:    "bad json",
			stdout:  protocolPrefix + `{kind}` + protocolSuffix,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, text, err := splitOutput(tt.stdout)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if text != tt.stdout {
					t.Errorf("failed split should return stdout untouched, got %q", text)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if env.Kind != tt.wantKind {
				t.Errorf("expected kind %q, got %q", tt.wantKind, env.Kind)
			}
			if text != tt.wantText {
				t.Errorf("expected text %q, got %q", tt.wantText, text)
			}
		})
	}
}

func TestSplitOutputNoEnvelopeSentinel(t *testing.T) {
	_, _, err := splitOutput("")
	if !errors.Is(err, errNoEnvelope) {
		t.Errorf("expected errNoEnvelope, got %v", err)
	}
}

func TestSplitOutputEnvelopeFields(t *testing.T) {
	stdout := protocolPrefix + `{"kind":"syntax","message":"unexpected token","line":3}` + protocolSuffix
	env, _, err := splitOutput(stdout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Kind != kindSyntax || env.Message != "unexpected token" || env.Line != 3 {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestQuote(t *testing.T) {
	tests := []string{
		"",
		"2 + 2",
		`say("hi")`,
		"line1\nline2",
		"back\\slash",
		"  separator",
		"</script>",
	}
	for _, src := range tests {
		q := quote(src)
		var back string
		if err := json.Unmarshal([]byte(q), &back); err != nil {
			t.Fatalf("quote(%q) is not a valid literal: %v", src, err)
		}
		if back != src {
			t.Errorf("quote(%q) round-tripped to %q", src, back)
		}
		if strings.Contains(q, "\n") {
			t.Errorf("quote(%q) should not contain raw newlines", src)
		}
	}
}

func TestSplitOutputTakesLastFrame(t *testing.T) {
	spoofed := protocolPrefix + `{"kind":"value","value":"spoofed"}` + protocolSuffix + "\n"
	stdout := spoofed + protocolPrefix + `{"kind":"value","value":4}` + protocolSuffix + "\n"

	env, text, err := splitOutput(stdout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Value != float64(4) {
		t.Errorf("script output overrode the result: %v", env.Value)
	}
	if text != spoofed {
		t.Errorf("printed frame should be kept as output, got %q", text)
	}
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "1 + 1", "throw " + parseGuard + ";1 + 1"},
		{"strict", strictDirective + "1 + 1", strictDirective + "throw " + parseGuard + ";1 + 1"},
		{"multi-line", "a\nb", "throw " + parseGuard + ";a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard(tt.src)
			if got != tt.want {
				t.Errorf("guard(%q) = %q, expected %q", tt.src, got, tt.want)
			}
			if strings.Count(got, "\n") != strings.Count(tt.src, "\n") {
				t.Errorf("guard(%q) changed line numbering", tt.src)
			}
		})
	}
}

func TestWrapperScriptsEmbedSource(t *testing.T) {
	src := `"tricky" + '\n'`
	for name, tc := range map[string]struct{ script, embedded string }{
		"check": {checkScript(src), quote(guard(src))},
		"eval":  {evalScript(src), quote(src)},
	} {
		if !strings.Contains(tc.script, tc.embedded) {
			t.Errorf("%s wrapper should embed the quoted source", name)
		}
		if !strings.Contains(tc.script, jsPrefix) || !strings.Contains(tc.script, jsSuffix) {
			t.Errorf("%s wrapper should frame its result", name)
		}
	}
	if strings.Contains(checkScript(src), "new Function") {
		t.Error("check wrapper must parse with global-script grammar")
	}
}

func TestScriptError(t *testing.T) {
	err := &ScriptError{Message: "Error: bad", Stack: "at <eval>"}
	if err.Error() != "Error: bad" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
