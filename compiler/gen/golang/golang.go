// Package golang prints Go SDKs. A run emits three files in one package:
// the client with its chains, the models, and the documents.
package golang

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/chainsdk/compiler/gen"
)

// runtimePkg is the import path of the generated code's runtime.
const runtimePkg = "github.com/syssam/chainsdk"

// Printer prints Go SDKs with jennifer.
type Printer struct{}

// New returns a Go printer.
func New() *Printer { return &Printer{} }

// Print renders the graph into the client, model and document files.
func (*Printer) Print(g *gen.Graph) ([]*gen.File, error) {
	if g.Language != gen.Go {
		return nil, gen.NewGenerationError("print", g.Output, "go printer cannot print "+string(g.Language), nil)
	}
	p := newPrinter(g)
	gens := []struct {
		path string
		gen  func(*jen.File)
	}{
		{g.Output, p.genClient},
		{gen.SiblingPath(g.Output, "_models"), p.genModels},
		{g.DocumentFile, p.genDocuments},
	}
	files := make([]*gen.File, 0, len(gens))
	for _, x := range gens {
		f := p.newFile()
		x.gen(f)
		var buf bytes.Buffer
		if err := f.Render(&buf); err != nil {
			return nil, gen.NewGenerationError("print", x.path, "render go source", err)
		}
		files = append(files, &gen.File{Path: x.path, Content: buf.Bytes()})
	}
	return files, nil
}

// printer holds the state of one Print call.
type printer struct {
	g *gen.Graph
	// fields maps a model to the Go names of its fields by response key.
	fields map[*gen.SdkModel]map[string]string
	// chains maps a definition with children to its Go type name.
	chains map[*gen.SdkDefinition]string
}

func newPrinter(g *gen.Graph) *printer {
	p := &printer{
		g:      g,
		fields: make(map[*gen.SdkModel]map[string]string, len(g.Models)),
		chains: make(map[*gen.SdkDefinition]string),
	}
	for _, m := range g.Models {
		p.fields[m] = goFieldNames(m)
	}
	for _, d := range g.Chains() {
		p.chains[d] = pascal(g.Identifier(d.Operation)) + "Chain"
	}
	return p
}

// goFieldNames assigns unique Go names to the fields of m.
func goFieldNames(m *gen.SdkModel) map[string]string {
	names := make(map[string]string, len(m.Fields))
	used := make(map[string]bool, len(m.Fields))
	for _, f := range m.Fields {
		name := pascal(f.Name)
		for i := 2; used[name]; i++ {
			name = fmt.Sprintf("%s%d", pascal(f.Name), i)
		}
		used[name] = true
		names[f.Name] = name
	}
	return names
}

func (p *printer) newFile() *jen.File {
	f := jen.NewFile(p.g.Package)
	if p.g.Header != "" {
		f.HeaderComment(p.g.Header)
	}
	f.ImportName(runtimePkg, "chainsdk")
	return f
}

// fieldName returns the Go name of the field of m with the given key.
func (p *printer) fieldName(m *gen.SdkModel, key string) string {
	if name, ok := p.fields[m][key]; ok {
		return name
	}
	return pascal(key)
}

// typeCode returns the Go type of ref. Composite types resolve to model.
// Composite values and nullable values are pointers.
func (p *printer) typeCode(ref *gen.TypeRef, model *gen.SdkModel) *jen.Statement {
	if ref.IsList() {
		return jen.Index().Add(p.typeCode(ref.Elem, model))
	}
	t := p.g.Context.Type(ref.Name)
	if t != nil && t.Kind.IsComposite() && model != nil {
		return jen.Op("*").Id(model.Name)
	}
	named := p.namedType(ref.Name)
	if !ref.NonNull {
		return jen.Op("*").Add(named)
	}
	return named
}

// namedType returns the Go type of a leaf or input type.
func (p *printer) namedType(name string) *jen.Statement {
	t := p.g.Context.Type(name)
	if t == nil {
		return jen.Any()
	}
	switch t.Kind {
	case gen.KindScalar:
		return scalarCode(t.Scalar)
	case gen.KindEnum, gen.KindInputObject:
		return jen.Id(pascal(name))
	default:
		return jen.Any()
	}
}

// scalarCode converts a mapped scalar like "string" or "time.Time".
func scalarCode(s string) *jen.Statement {
	i := strings.LastIndex(s, ".")
	if i <= 0 {
		return jen.Id(s)
	}
	return jen.Qual(s[:i], s[i+1:])
}

// nilable reports whether the zero value of ref's Go type is nil.
func (p *printer) nilable(ref *gen.TypeRef) bool {
	if ref.IsList() || !ref.NonNull {
		return true
	}
	t := p.g.Context.Type(ref.Name)
	return t != nil && t.Kind.IsComposite()
}

// documentType returns the Go type of the requester's document argument.
func (p *printer) documentType() *jen.Statement {
	r := p.g.Requester
	if r.DocumentImport == "" {
		return jen.Id(r.DocumentType)
	}
	name := r.DocumentType[strings.LastIndex(r.DocumentType, ".")+1:]
	return jen.Qual(r.DocumentImport, name)
}

// requesterType returns chainsdk.Requester instantiated with the document type.
func (p *printer) requesterType() *jen.Statement {
	return jen.Qual(runtimePkg, "Requester").Types(p.documentType())
}

// documentName returns the name of the document of op.
func (p *printer) documentName(op *gen.OperationDocument) string {
	return pascal(p.g.Identifier(op)) + "Document"
}
