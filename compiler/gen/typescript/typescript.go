// Package typescript prints TypeScript SDKs from a text template. A run
// emits a single module exporting the models, the chain classes and the
// createSdk factory.
package typescript

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/chainsdk/compiler/gen"
)

//go:embed template/sdk.tmpl
var sdkTemplate string

// templates holds the parsed SDK template.
var templates = template.Must(template.New("typescript").
	Funcs(template.FuncMap{
		"title": cases.Title(language.English).String,
		"join":  strings.Join,
	}).
	Parse(sdkTemplate))

// Printer prints TypeScript SDKs.
type Printer struct{}

// New returns a TypeScript printer.
func New() *Printer { return &Printer{} }

// Print renders the graph into the SDK module.
func (*Printer) Print(g *gen.Graph) ([]*gen.File, error) {
	if g.Language != gen.TypeScript {
		return nil, gen.NewGenerationError("print", g.Output, "typescript printer cannot print "+string(g.Language), nil)
	}
	v := newView(g)
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "sdk", v); err != nil {
		return nil, gen.NewGenerationError("print", g.Output, "execute template", err)
	}
	return []*gen.File{{Path: g.Output, Content: buf.Bytes()}}, nil
}

type (
	// view is the data of the SDK template.
	view struct {
		Header       string
		DocumentFile string
		Requester    *gen.RequesterContract
		Enums        []*enumView
		Inputs       []*objectView
		Models       []*objectView
		Operations   []*operationView
		Chains       []*chainView
		Groups       []*groupView
	}

	enumView struct {
		Name   string
		Values []string
	}

	objectView struct {
		Name    string
		Comment string
		Fields  []*fieldView
	}

	fieldView struct {
		Name     string
		Type     string
		Optional bool
	}

	operationView struct {
		Name      string
		Kind      gen.OperationKind
		VarsType  string
		Variables []*fieldView
	}

	chainView struct {
		Name   string
		Model  string
		Parent string
		Calls  []*callView
	}

	groupView struct {
		Kind  gen.OperationKind
		Calls []*callView
	}

	callView struct {
		Name       string
		Operation  string
		Kind       gen.OperationKind
		Document   string
		DataType   string
		VarsType   string
		Params     []*fieldView
		Vars       []*varView
		ResultType string
		Result     string
		Chain      string
		Chained    bool
		// Request is the expression of the requester at the call site.
		Request string
		// Indent prefixes every line of the method.
		Indent string
	}

	varView struct {
		Name  string
		Value string
	}
)

// builder holds the state of one view construction.
type builder struct {
	g      *gen.Graph
	chains map[*gen.SdkDefinition]string
}

func newView(g *gen.Graph) *view {
	b := &builder{g: g, chains: make(map[*gen.SdkDefinition]string)}
	for _, d := range g.Chains() {
		b.chains[d] = strcase.ToCamel(g.Identifier(d.Operation)) + "Chain"
	}
	v := &view{
		Header:       g.Header,
		DocumentFile: g.DocumentFile,
		Requester:    g.Requester,
	}
	for _, t := range g.ReferencedTypes() {
		switch t.Kind {
		case gen.KindEnum:
			v.Enums = append(v.Enums, &enumView{Name: t.Name, Values: t.EnumValues})
		case gen.KindInputObject:
			v.Inputs = append(v.Inputs, b.input(t))
		}
	}
	for _, m := range g.Models {
		v.Models = append(v.Models, b.model(m))
	}
	for _, op := range g.Operations {
		v.Operations = append(v.Operations, b.operation(op))
	}
	for _, d := range g.Chains() {
		v.Chains = append(v.Chains, b.chain(d))
	}
	for _, grp := range g.Definitions.Groups() {
		gv := &groupView{Kind: grp.Kind}
		for _, d := range grp.Definitions {
			call := b.call(d, d.Name)
			call.Request, call.Indent = "request", "      "
			gv.Calls = append(gv.Calls, call)
		}
		v.Groups = append(v.Groups, gv)
	}
	return v
}

func (b *builder) input(t *gen.TypeDescriptor) *objectView {
	o := &objectView{Name: t.Name}
	for _, f := range t.Fields {
		o.Fields = append(o.Fields, &fieldView{Name: f.Name, Type: b.typeName(f.Type, nil), Optional: f.Nullable()})
	}
	return o
}

func (b *builder) model(m *gen.SdkModel) *objectView {
	o := &objectView{Name: m.Name}
	switch {
	case m.IsRoot() && m.SourceKind == gen.SourceOperation:
		o.Comment = m.Name + " is the response data of " + m.Source + "."
	case m.IsRoot():
		o.Comment = m.Name + " is the " + m.Type.Name + " selection of fragment " + m.Source + "."
	default:
		o.Comment = m.Name + " is the " + m.Type.Name + " selection of " + m.Source + " at " + strings.Join(m.Path, ".") + "."
	}
	for _, f := range m.Fields {
		o.Fields = append(o.Fields, &fieldView{Name: f.Name, Type: b.typeName(f.Type, f.Model)})
	}
	return o
}

func (b *builder) operation(op *gen.OperationDocument) *operationView {
	o := &operationView{Name: op.Name, Kind: op.Kind, VarsType: varsType(op)}
	for _, v := range op.Variables {
		o.Variables = append(o.Variables, &fieldView{Name: v.Name, Type: b.typeName(v.Type, nil), Optional: !v.Required})
	}
	return o
}

func (b *builder) chain(d *gen.SdkDefinition) *chainView {
	c := &chainView{Name: b.chains[d], Model: d.Model.Name}
	if p := d.Parent(); p != nil {
		c.Parent = b.chains[p]
	}
	names := methods(d)
	for _, child := range d.Children {
		call := b.call(child, names[child])
		call.Request, call.Indent = "this.$request", "  "
		c.Calls = append(c.Calls, call)
	}
	return c
}

// methods assigns the method names of the children of d. A name that clashes
// with a model field or the constructor gets the operation kind appended,
// and a numeric suffix while it still clashes with a sibling or a field.
func methods(d *gen.SdkDefinition) map[*gen.SdkDefinition]string {
	clashes := func(name string) bool {
		return d.Model.Field(name) != nil || name == "constructor"
	}
	taken := make(map[string]bool, len(d.Children))
	for _, c := range d.Children {
		taken[c.Name] = true
	}
	out := make(map[*gen.SdkDefinition]string, len(d.Children))
	for _, c := range d.Children {
		name := c.Name
		if clashes(name) {
			base := name + strcase.ToCamel(string(c.Operation.Kind))
			name = base
			for i := 2; taken[name] || clashes(name); i++ {
				name = fmt.Sprintf("%s%d", base, i)
			}
			taken[name] = true
		}
		out[c] = name
	}
	return out
}

// call builds the view of the method performing d.
func (b *builder) call(d *gen.SdkDefinition, name string) *callView {
	op := d.Operation
	c := &callView{
		Name:      name,
		Operation: op.Name,
		Kind:      op.Kind,
		Document:  "documents." + strcase.ToCamel(b.g.Identifier(op)) + "Document",
		DataType:  op.RootModel.Name,
		VarsType:  varsType(op),
		Chain:     b.chains[d],
		Chained:   d.Parent() != nil,
	}
	values := make(map[string]string, len(op.Variables))
	for _, in := range d.Inherited {
		values[in.Variable.Name] = inheritedValue(d, in)
	}
	// Parameters are optional only when every later parameter is optional.
	trailing := true
	c.Params = make([]*fieldView, len(d.Args))
	for i := len(d.Args) - 1; i >= 0; i-- {
		v := d.Args[i]
		p := &fieldView{Name: param(v.Name), Type: b.typeName(v.Type, nil)}
		switch {
		case v.Required:
			trailing = false
		case trailing:
			p.Optional = true
		default:
			p.Type += " | undefined"
		}
		c.Params[i] = p
		values[v.Name] = p.Name
	}
	for _, v := range op.Variables {
		c.Vars = append(c.Vars, &varView{Name: v.Name, Value: values[v.Name]})
	}
	switch {
	case c.Chain != "":
		c.ResultType = c.Chain + " | null"
		c.Result = "r." + op.Field
	case op.Field == "":
		c.ResultType = op.RootModel.Name
		c.Result = "r"
	default:
		c.ResultType = b.typeName(op.ResultType, op.Result)
		c.Result = "r." + op.Field
	}
	return c
}

// inheritedValue returns the expression reading an inherited variable from
// the ancestor results reachable from this.
func inheritedValue(d *gen.SdkDefinition, in *gen.InheritedArg) string {
	s := "this"
	for a := d.Parent(); a != nil && a != in.From; a = a.Parent() {
		s += ".$parent"
	}
	return s + "." + in.Field.Name
}

func varsType(op *gen.OperationDocument) string {
	return op.RootModel.Name + "Variables"
}

// typeName returns the TypeScript type of ref. Composite types resolve to
// model.
func (b *builder) typeName(ref *gen.TypeRef, model *gen.SdkModel) string {
	var s string
	if ref.IsList() {
		s = "Array<" + b.typeName(ref.Elem, model) + ">"
	} else {
		s = b.namedType(ref.Name, model)
	}
	if !ref.NonNull {
		return "Maybe<" + s + ">"
	}
	return s
}

func (b *builder) namedType(name string, model *gen.SdkModel) string {
	t := b.g.Context.Type(name)
	switch {
	case t == nil:
		return "unknown"
	case t.Kind.IsComposite() && model != nil:
		return model.Name
	case t.Kind == gen.KindScalar:
		return t.Scalar
	case t.Kind == gen.KindEnum, t.Kind == gen.KindInputObject:
		return t.Name
	default:
		return "unknown"
	}
}

// reserved holds the words a TypeScript parameter cannot be named.
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true, "let": true, "static": true, "await": true,
	"r": true, "request": true, "documents": true,
}

// param returns the TypeScript parameter name of a variable.
func param(name string) string {
	if reserved[name] {
		return name + "Arg"
	}
	return name
}
