// Package compiler runs a complete generation: it loads the project inputs,
// builds the graph and writes the SDK files.
package compiler

import (
	"context"
	"os"
	"path/filepath"

	"github.com/syssam/chainsdk/compiler/gen"
	"github.com/syssam/chainsdk/compiler/gen/golang"
	"github.com/syssam/chainsdk/compiler/gen/typescript"
	"github.com/syssam/chainsdk/compiler/load"
)

// LoadGraph loads the schema and documents of the project and builds the
// graph. Options are applied after the project settings.
func LoadGraph(project *load.Project, opts ...gen.Option) (*gen.Graph, error) {
	cfg, err := gen.NewConfig(append(project.Options(), opts...)...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	schema, err := load.LoadSchema(project.Schema...)
	if err != nil {
		return nil, err
	}
	doc, err := load.LoadDocuments(schema, project.Documents...)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(cfg, schema, doc)
}

// Generate runs the generation described by project.
func Generate(ctx context.Context, project *load.Project, opts ...gen.Option) error {
	g, err := LoadGraph(project, opts...)
	if err != nil {
		return err
	}
	if err := g.Gen(ctx, PrinterFor(g.Language)); err != nil {
		return err
	}
	if project.IR == "" {
		return nil
	}
	return writeIR(g, project.IR)
}

// PrinterFor returns the printer of the target language.
func PrinterFor(lang gen.Language) gen.Printer {
	if lang == gen.Go {
		return golang.New()
	}
	return typescript.New()
}

func writeIR(g *gen.Graph, path string) error {
	b, err := gen.EncodeIR(g)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return gen.NewGenerationError("ir", path, "create directory", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return gen.NewGenerationError("ir", path, "write file", err)
	}
	return nil
}
