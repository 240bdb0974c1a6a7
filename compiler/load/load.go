// Package load reads the inputs of a generation run: the schema, the
// operation documents and the project configuration.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/syssam/chainsdk/compiler/gen"
)

// LoadSchema parses and validates the schema files matched by patterns.
func LoadSchema(patterns ...string) (*ast.Schema, error) {
	sources, err := readSources(patterns)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, gen.NewSchemaError("", fmt.Sprintf("no schema files match %v", patterns), nil)
	}
	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, gen.NewSchemaError("", "load schema", err)
	}
	return schema, nil
}

// LoadDocuments parses the operation documents matched by patterns into a
// single document. When schema is not nil the merged document is validated
// against it.
func LoadDocuments(schema *ast.Schema, patterns ...string) (*ast.QueryDocument, error) {
	sources, err := readSources(patterns)
	if err != nil {
		return nil, err
	}
	var doc ast.QueryDocument
	for _, src := range sources {
		query, err := parser.ParseQuery(src)
		if err != nil {
			return nil, &gen.ValidationError{Message: "parse " + src.Name, Cause: err}
		}
		mergeQueryDocument(&doc, query)
	}
	if schema != nil {
		if errs := validator.Validate(schema, &doc); errs != nil {
			return nil, &gen.ValidationError{Message: "validate documents", Cause: errs}
		}
	}
	return &doc, nil
}

func mergeQueryDocument(q, other *ast.QueryDocument) {
	q.Operations = append(q.Operations, other.Operations...)
	q.Fragments = append(q.Fragments, other.Fragments...)
}

// readSources reads the files matched by patterns, sorted by path.
func readSources(patterns []string) ([]*ast.Source, error) {
	paths, err := Glob(patterns...)
	if err != nil {
		return nil, err
	}
	sources := make([]*ast.Source, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("load: read %s: %w", p, err)
		}
		sources = append(sources, &ast.Source{Name: p, Input: string(b)})
	}
	return sources, nil
}

// Glob returns the sorted, de-duplicated files matched by patterns. A "**"
// path element matches any number of directories.
func Glob(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("load: glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			seen[filepath.Clean(m)] = true
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths, nil
}
