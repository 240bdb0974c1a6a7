package gen

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Graph is the result of one generation run: the schema context, the models,
// the classified operations, the chain tree and the requester contract.
// It is immutable once NewGraph returns.
type Graph struct {
	*Config
	// Context is the schema lookup table with the fragment registry.
	Context *PluginContext
	// Models are the selection-set models in extraction order.
	Models []*SdkModel
	// Operations in document order.
	Operations []*OperationDocument
	// Definitions is the chain tree.
	Definitions *SdkDefinitions
	// Requester is the calling convention of generated call sites.
	Requester *RequesterContract

	idents map[*OperationDocument]string
}

// NewGraph runs the pipeline over an already parsed schema and document.
// The run is all-or-nothing: the first failing stage aborts it.
func NewGraph(c *Config, schema *ast.Schema, doc *ast.QueryDocument) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	log := c.logger()
	ctx, err := BuildContext(schema, c)
	if err != nil {
		return nil, err
	}
	if ctx, err = ctx.RegisterFragments(doc); err != nil {
		return nil, err
	}
	models, err := ExtractModels(ctx, doc, log)
	if err != nil {
		return nil, err
	}
	ops, err := NewOperations(ctx, doc, models, c)
	if err != nil {
		return nil, err
	}
	defs, err := ResolveChains(ctx, ops, models, c)
	if err != nil {
		return nil, err
	}
	g := &Graph{
		Config:      c,
		Context:     ctx,
		Models:      models,
		Operations:  ops,
		Definitions: defs,
		Requester:   NewRequesterContract(c),
		idents:      identifiers(ops, log),
	}
	log.Info("graph built", "types", len(ctx.Order), "models", len(models), "operations", len(ops))
	return g, nil
}

// Model returns the model with the given name, or nil.
func (g *Graph) Model(name string) *SdkModel {
	for _, m := range g.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Operation returns the operation with the given name, or nil.
func (g *Graph) Operation(name string) *OperationDocument {
	for _, op := range g.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

// Identifier returns the run-unique name printers derive the symbols of op
// from, such as its document and chain type. It is the operation name, with
// a numeric suffix for operations whose names only differ in case or
// underscores from an earlier one.
func (g *Graph) Identifier(op *OperationDocument) string {
	if id, ok := g.idents[op]; ok {
		return id
	}
	return op.Name
}

// identifiers assigns the identifiers of the operations in document order.
func identifiers(ops []*OperationDocument, log *slog.Logger) map[*OperationDocument]string {
	key := func(name string) string {
		return strings.ToLower(strings.ReplaceAll(name, "_", ""))
	}
	names := make(map[string]bool, len(ops))
	for _, op := range ops {
		names[key(op.Name)] = true
	}
	taken := make(map[string]bool, len(ops))
	idents := make(map[*OperationDocument]string, len(ops))
	for _, op := range ops {
		id := op.Name
		if taken[key(id)] {
			for i := 2; ; i++ {
				id = fmt.Sprintf("%s%d", op.Name, i)
				if k := key(id); !names[k] && !taken[k] {
					break
				}
			}
			log.Info("operation identifier renamed", "operation", op.Name, "identifier", id)
		}
		taken[key(id)] = true
		idents[op] = id
	}
	return idents
}

// Chains returns the nodes that have children, in walk order. Printers emit
// one chain wrapper per node.
func (g *Graph) Chains() []*SdkDefinition {
	var out []*SdkDefinition
	_ = g.Definitions.Walk(func(d *SdkDefinition) error {
		if len(d.Children) > 0 {
			out = append(out, d)
		}
		return nil
	})
	return out
}

// ReferencedTypes returns the enum and input object types reachable from
// the model fields and operation variables, sorted by name.
func (g *Graph) ReferencedTypes() []*TypeDescriptor {
	seen := make(map[string]bool)
	var visit func(ref *TypeRef)
	visit = func(ref *TypeRef) {
		name := ref.NamedType()
		t := g.Context.Type(name)
		if t == nil || seen[name] || (t.Kind != KindEnum && t.Kind != KindInputObject) {
			return
		}
		seen[name] = true
		for _, f := range t.Fields {
			visit(f.Type)
		}
	}
	for _, m := range g.Models {
		for _, f := range m.Fields {
			visit(f.Type)
		}
	}
	for _, op := range g.Operations {
		for _, v := range op.Variables {
			visit(v.Type)
		}
	}
	out := make([]*TypeDescriptor, 0, len(seen))
	for _, name := range slices.Sorted(maps.Keys(seen)) {
		out = append(out, g.Context.Type(name))
	}
	return out
}

// Gen prints the graph with p and writes the files.
func (g *Graph) Gen(ctx context.Context, p Printer) error {
	files, err := p.Print(g)
	if err != nil {
		if IsGenerationError(err) {
			return err
		}
		return NewGenerationError("print", "", "printer failed", err)
	}
	return NewWriter(g.Config).Write(ctx, files)
}
