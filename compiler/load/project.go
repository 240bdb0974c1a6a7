package load

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/syssam/chainsdk/compiler/gen"
)

// DefaultProjectFile is the name of the project configuration file.
const DefaultProjectFile = "chainsdk.yml"

// Project is the configuration of a generation run as read from a
// chainsdk.yml file. Relative paths are resolved against the directory of
// the file.
type Project struct {
	// Schema lists the schema files or glob patterns.
	Schema StringList `yaml:"schema"`
	// Documents lists the operation document files or glob patterns.
	Documents StringList `yaml:"documents"`
	// Output is the path of the generated SDK.
	Output string `yaml:"output"`
	// DocumentFile is the module the SDK imports its documents from. For
	// TypeScript it is an import specifier and is kept as is.
	DocumentFile string `yaml:"documentFile"`
	// DocumentMode is "string" or "documentNode".
	DocumentMode string `yaml:"documentMode,omitempty"`
	// Language is "typescript" or "go".
	Language string `yaml:"language,omitempty"`
	// Package is the package name of generated Go code.
	Package string `yaml:"package,omitempty"`
	// Header overrides the generated file header.
	Header *string `yaml:"header,omitempty"`
	// Scalars maps custom scalars to target types.
	Scalars map[string]string `yaml:"scalars,omitempty"`
	// OpaqueScalar is the target type of unmapped custom scalars.
	OpaqueScalar string `yaml:"opaqueScalar,omitempty"`
	// Identify is "name" or "field".
	Identify string `yaml:"identify,omitempty"`
	// IdentifyingNames lists the identifying variable names in name mode.
	IdentifyingNames StringList `yaml:"identifyingNames,omitempty"`
	// RequireNamePrefix overrides the naming-hint requirement.
	RequireNamePrefix *bool `yaml:"requireNamePrefix,omitempty"`
	// NameSuffixLimit overrides the sibling disambiguation bound.
	NameSuffixLimit *int `yaml:"nameSuffixLimit,omitempty"`
	// MaxNameLength bounds call names.
	MaxNameLength int `yaml:"maxNameLength,omitempty"`
	// IR is the path the intermediate representation is written to.
	IR string `yaml:"ir,omitempty"`
	// Workers bounds concurrent file writes.
	Workers int `yaml:"workers,omitempty"`

	dir string
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for StringList.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadProject reads the project file at path. A directory path is joined
// with DefaultProjectFile.
func LoadProject(path string) (*Project, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DefaultProjectFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gen.NewConfigError("Project", path, err.Error())
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, gen.NewConfigError("Project", path, "parse: "+err.Error())
	}
	p.dir = filepath.Dir(path)
	p.resolve()
	return &p, nil
}

// Dir returns the directory relative paths were resolved against.
func (p *Project) Dir() string { return p.dir }

// resolve makes the file paths of p relative to its directory.
func (p *Project) resolve() {
	join := func(s string) string {
		if s == "" || filepath.IsAbs(s) {
			return s
		}
		return filepath.Join(p.dir, s)
	}
	for i := range p.Schema {
		p.Schema[i] = join(p.Schema[i])
	}
	for i := range p.Documents {
		p.Documents[i] = join(p.Documents[i])
	}
	p.Output = join(p.Output)
	p.IR = join(p.IR)
	if gen.Language(p.Language) == gen.Go {
		p.DocumentFile = join(p.DocumentFile)
	}
}

// Options converts the project settings into generator options.
func (p *Project) Options() []gen.Option {
	var opts []gen.Option
	if p.Language != "" {
		opts = append(opts, gen.WithLanguage(gen.Language(p.Language)))
	}
	if p.Output != "" {
		opts = append(opts, gen.WithOutput(p.Output))
	}
	if p.DocumentFile != "" {
		opts = append(opts, gen.WithDocumentFile(p.DocumentFile))
	}
	if p.DocumentMode != "" {
		opts = append(opts, gen.WithDocumentMode(gen.DocumentMode(p.DocumentMode)))
	}
	if p.Package != "" {
		opts = append(opts, gen.WithPackage(p.Package))
	}
	if p.Header != nil {
		opts = append(opts, gen.WithHeader(*p.Header))
	}
	if len(p.Scalars) > 0 {
		opts = append(opts, gen.WithScalars(p.Scalars))
	}
	if p.OpaqueScalar != "" {
		opts = append(opts, gen.WithOpaqueScalar(p.OpaqueScalar))
	}
	switch p.Identify {
	case "field":
		opts = append(opts, gen.WithIdentify(gen.IdentifyByField))
	case "name", "":
		if len(p.IdentifyingNames) > 0 {
			opts = append(opts, gen.WithIdentify(gen.IdentifyByName, p.IdentifyingNames...))
		}
	default:
		opts = append(opts, func(*gen.Config) error {
			return gen.NewConfigError("Identify", p.Identify, "unsupported identify mode; use name or field")
		})
	}
	if p.RequireNamePrefix != nil {
		opts = append(opts, gen.WithRequireNamePrefix(*p.RequireNamePrefix))
	}
	if p.NameSuffixLimit != nil {
		opts = append(opts, gen.WithNameSuffixLimit(*p.NameSuffixLimit))
	}
	if p.MaxNameLength != 0 {
		opts = append(opts, gen.WithMaxNameLength(p.MaxNameLength))
	}
	if p.Workers != 0 {
		opts = append(opts, gen.WithWorkers(p.Workers))
	}
	return opts
}
