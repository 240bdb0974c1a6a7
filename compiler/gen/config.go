package gen

import (
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
)

// Language is the target language of the generated SDK.
type Language string

// Supported target languages.
const (
	TypeScript Language = "typescript"
	Go         Language = "go"
)

// Ext returns the file extension the output file must carry.
func (l Language) Ext() string {
	switch l {
	case TypeScript:
		return ".ts"
	case Go:
		return ".go"
	default:
		return ""
	}
}

// DocumentMode selects the static type of the document handed to the requester.
type DocumentMode string

// Supported document modes.
const (
	// DocumentModeString passes the raw GraphQL document text.
	DocumentModeString DocumentMode = "string"
	// DocumentModeNode passes a pre-compiled typed document node.
	DocumentModeNode DocumentMode = "documentNode"
)

// IdentifyMode selects which operation variables may be satisfied by a
// parent model's fields.
type IdentifyMode int

const (
	// IdentifyByName treats required variables whose name is listed in
	// Config.IdentifyingNames as identifying. All of them must match.
	IdentifyByName IdentifyMode = iota
	// IdentifyByField treats every required variable as identifying. At least
	// one of them must match a field of the parent model.
	IdentifyByField
)

// String implements fmt.Stringer.
func (m IdentifyMode) String() string {
	switch m {
	case IdentifyByName:
		return "name"
	case IdentifyByField:
		return "field"
	default:
		return "unknown"
	}
}

// DefaultNameSuffixLimit is the highest numeric suffix used to disambiguate
// sibling call names.
const DefaultNameSuffixLimit = 99

var defaultScalars = map[Language]map[string]string{
	TypeScript: {
		"ID":      "string",
		"String":  "string",
		"Int":     "number",
		"Float":   "number",
		"Boolean": "boolean",
	},
	Go: {
		"ID":      "string",
		"String":  "string",
		"Int":     "int",
		"Float":   "float64",
		"Boolean": "bool",
	},
}

var defaultOpaqueScalar = map[Language]string{
	TypeScript: "unknown",
	Go:         "any",
}

// Config holds the configuration of a generation run.
type Config struct {
	// Output is the path of the generated SDK file.
	Output string
	// DocumentFile is the path of the typed-document module the SDK imports
	// its documents from.
	DocumentFile string
	// DocumentMode selects the requester's document type.
	DocumentMode DocumentMode
	// Language is the target language of the printer.
	Language Language
	// Package is the package name of generated Go code.
	Package string
	// Header is written at the top of each generated file.
	Header string
	// Scalars maps GraphQL scalar names to target types. Entries override
	// the language defaults.
	Scalars map[string]string
	// OpaqueScalar is the target type of custom scalars missing from Scalars.
	OpaqueScalar string
	// Identify selects the identifying-variable rule used for chaining.
	Identify IdentifyMode
	// IdentifyingNames lists the variable names treated as identifying in
	// IdentifyByName mode.
	IdentifyingNames []string
	// RequireNamePrefix requires a child operation's name to start with its
	// parent's name.
	RequireNamePrefix bool
	// NameSuffixLimit bounds the numeric suffix used to disambiguate sibling
	// call names. Zero disables disambiguation.
	NameSuffixLimit int
	// MaxNameLength bounds generated call names. Zero means unlimited.
	MaxNameLength int
	// Logger receives diagnostics from every stage.
	Logger *slog.Logger
	// Workers bounds the number of files written concurrently.
	Workers int
}

func defaultConfig() *Config {
	return &Config{
		DocumentMode:      DocumentModeNode,
		Language:          TypeScript,
		Package:           "sdk",
		Header:            "Code generated by chainsdk. DO NOT EDIT.",
		IdentifyingNames:  []string{"id"},
		RequireNamePrefix: true,
		NameSuffixLimit:   DefaultNameSuffixLimit,
	}
}

// ScalarMap returns the scalar mapping of the configured language with the
// user-defined overrides applied.
func (c *Config) ScalarMap() map[string]string {
	m := make(map[string]string)
	maps.Copy(m, defaultScalars[c.Language])
	maps.Copy(m, c.Scalars)
	return m
}

// Opaque returns the target type used for unmapped custom scalars.
func (c *Config) Opaque() string {
	if c.OpaqueScalar != "" {
		return c.OpaqueScalar
	}
	if s, ok := defaultOpaqueScalar[c.Language]; ok {
		return s
	}
	return "unknown"
}

// IsIdentifyingName reports whether a variable name is listed as identifying.
func (c *Config) IsIdentifyingName(name string) bool {
	return slices.Contains(c.IdentifyingNames, name)
}

// logger returns the configured diagnostics sink or a discarding one.
func (c *Config) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Validate checks the host-facing configuration before the core runs.
func (c *Config) Validate() error {
	switch c.Language {
	case TypeScript, Go:
	default:
		return NewConfigError("Language", c.Language, "unsupported language; use typescript or go")
	}
	if c.Output == "" {
		return NewConfigError("Output", nil, "output file cannot be empty")
	}
	if ext := filepath.Ext(c.Output); ext != c.Language.Ext() {
		return NewConfigError("Output", c.Output, "output file must have extension "+c.Language.Ext())
	}
	if c.DocumentFile == "" {
		return NewConfigError("DocumentFile", nil, "document file cannot be empty")
	}
	switch c.DocumentMode {
	case DocumentModeString, DocumentModeNode:
	default:
		return NewConfigError("DocumentMode", c.DocumentMode, "unsupported document mode; use string or documentNode")
	}
	if c.Language == Go {
		if c.Package == "" {
			return NewConfigError("Package", nil, "package cannot be empty for go output")
		}
		if filepath.Ext(c.DocumentFile) != ".go" {
			return NewConfigError("DocumentFile", c.DocumentFile, "document file must have extension .go")
		}
		if filepath.Dir(c.DocumentFile) != filepath.Dir(c.Output) {
			return NewConfigError("DocumentFile", c.DocumentFile, "document file must be in the output package directory")
		}
	}
	if c.NameSuffixLimit < 0 {
		return NewConfigError("NameSuffixLimit", c.NameSuffixLimit, "cannot be negative")
	}
	if c.MaxNameLength < 0 {
		return NewConfigError("MaxNameLength", c.MaxNameLength, "cannot be negative")
	}
	if c.Identify == IdentifyByName && len(c.IdentifyingNames) == 0 {
		return NewConfigError("IdentifyingNames", nil, "at least one identifying name is required in name mode")
	}
	return nil
}
