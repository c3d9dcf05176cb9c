package engine

import "strings"

// Parameter keys understood by Factory.Parameter.
const (
	ParamEngine          = "engine"
	ParamEngineVersion   = "engine_version"
	ParamName            = "name"
	ParamLanguage        = "language"
	ParamLanguageVersion = "language_version"
	ParamThreading       = "threading"
)

// statementSeparator terminates statements in joined programs.
const statementSeparator = ";"

// Factory answers metadata queries about the engine and creates Engine
// instances. All metadata is constant for the life of the process.
type Factory struct {
	lang Language
	opts []Option
}

// NewFactory returns a Factory whose engines run on lang.
func NewFactory(lang Language, opts ...Option) *Factory {
	return &Factory{lang: lang, opts: opts}
}

// EngineName returns "Gosu".
func (f *Factory) EngineName() string { return descriptor.EngineName }

// EngineVersion returns the adapter version.
func (f *Factory) EngineVersion() string { return descriptor.EngineVersion }

// LanguageName returns "Gosu".
func (f *Factory) LanguageName() string { return descriptor.LanguageName }

// LanguageVersion returns the Gosu language version the adapter targets.
func (f *Factory) LanguageVersion() string { return descriptor.LanguageVersion }

// Names returns the engine's name aliases.
func (f *Factory) Names() []string { return descriptor.clone().Names }

// Extensions returns the script file extensions, without dots.
func (f *Factory) Extensions() []string { return descriptor.clone().Extensions }

// MimeTypes returns the script mime types.
func (f *Factory) MimeTypes() []string { return descriptor.clone().MimeTypes }

// Descriptor returns a copy of the full metadata table.
func (f *Factory) Descriptor() Descriptor { return descriptor.clone() }

// Parameter returns the metadata value for a standard key. The threading
// key is known but has no value: the engine promises no threading policy.
func (f *Factory) Parameter(key string) (string, bool) {
	switch key {
	case ParamEngine:
		return descriptor.EngineName, true
	case ParamEngineVersion:
		return descriptor.EngineVersion, true
	case ParamName:
		return descriptor.Names[0], true
	case ParamLanguage:
		return descriptor.LanguageName, true
	case ParamLanguageVersion:
		return descriptor.LanguageVersion, true
	case ParamThreading:
		return "", false
	default:
		return "", false
	}
}

// NewEngine returns a new Engine. Engines from any factory share the
// runtime's one-time bootstrap.
func (f *Factory) NewEngine() *Engine {
	return New(f.lang, f.opts...)
}

// MethodCallSyntax is not defined for Gosu and always returns
// ErrUnsupported.
func (f *Factory) MethodCallSyntax(obj, method string, args ...string) (string, error) {
	return "", ErrUnsupported
}

// OutputStatement is not defined for Gosu and always returns
// ErrUnsupported.
func (f *Factory) OutputStatement(toDisplay string) (string, error) {
	return "", ErrUnsupported
}

// Program joins statements into one program. A separator follows every
// statement but the last unless its trimmed text already ends with one.
func (f *Factory) Program(statements ...string) string {
	if len(statements) == 0 {
		return ""
	}
	var sb strings.Builder
	last := len(statements) - 1
	for _, stmt := range statements[:last] {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), statementSeparator) {
			sb.WriteString(statementSeparator + " ")
		}
	}
	sb.WriteString(statements[last])
	return sb.String()
}
