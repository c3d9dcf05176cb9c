package engine

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	engineName      = "Gosu"
	engineVersion   = "0.0.1"
	languageVersion = "0.8.6.1-C"
)

// Descriptor is the static metadata the engine reports to its host.
type Descriptor struct {
	EngineName      string   `json:"engine_name" yaml:"engine_name"`
	EngineVersion   string   `json:"engine_version" yaml:"engine_version"`
	LanguageName    string   `json:"language_name" yaml:"language_name"`
	LanguageVersion string   `json:"language_version" yaml:"language_version"`
	Names           []string `json:"names" yaml:"names"`
	Extensions      []string `json:"extensions" yaml:"extensions"`
	MimeTypes       []string `json:"mime_types" yaml:"mime_types"`
}

// descriptor is built once and never mutated; accessors hand out copies.
var descriptor = Descriptor{
	EngineName:      engineName,
	EngineVersion:   engineVersion,
	LanguageName:    engineName,
	LanguageVersion: languageVersion,
	Names:           []string{engineName, cases.Lower(language.Und).String(engineName)},
	Extensions:      []string{"gsp"},
	MimeTypes:       []string{"application/gosu", "text/gosu"},
}

func (d Descriptor) clone() Descriptor {
	d.Names = slices.Clone(d.Names)
	d.Extensions = slices.Clone(d.Extensions)
	d.MimeTypes = slices.Clone(d.MimeTypes)
	return d
}
