package gen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
	"github.com/vektah/gqlparser/v2/ast"
)

// SourceKind tells whether a model was derived from an operation or a fragment.
type SourceKind uint8

// Model sources.
const (
	SourceOperation SourceKind = iota + 1
	SourceFragment
)

// String implements fmt.Stringer.
func (k SourceKind) String() string {
	switch k {
	case SourceOperation:
		return "operation"
	case SourceFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

type (
	// SdkModel is the concrete shape of one selection set. Two selection sets
	// on the same schema type yield two models.
	SdkModel struct {
		// Name of the model, unique within a run.
		Name string
		// Type is the schema type the selection set applies to.
		Type *TypeDescriptor
		// Fields holds the flattened selection in first-seen order.
		Fields []*ModelField
		fields map[string]*ModelField
		// Source is the operation or fragment name the model was derived from.
		Source string
		// SourceKind tells what Source names.
		SourceKind SourceKind
		// Path holds the response keys leading from the source root to this
		// selection set. It is empty for roots.
		Path []string
	}

	// ModelField is one selected field of a model.
	ModelField struct {
		// Name is the response key (the alias when one is given).
		Name string
		// FieldName is the schema field name.
		FieldName string
		// Type is the schema type reference of the field.
		Type *TypeRef
		// Descriptor is the named type of the field.
		Descriptor *TypeDescriptor
		// Model is the nested model of composite fields and nil for leaves.
		Model *SdkModel
	}
)

// Field returns the field with the given response key, or nil.
func (m *SdkModel) Field(key string) *ModelField {
	if m == nil {
		return nil
	}
	if m.fields == nil {
		for _, f := range m.Fields {
			if f.Name == key {
				return f
			}
		}
		return nil
	}
	return m.fields[key]
}

// IsRoot reports whether the model is the root selection of its source.
func (m *SdkModel) IsRoot() bool { return len(m.Path) == 0 }

// typenameRef is the type of the __typename meta field.
var typenameRef = &TypeRef{Name: "String", NonNull: true}

// ExtractModels produces one model per selection set of the document:
// operations first, then fragments, both in document order.
func ExtractModels(ctx *PluginContext, doc *ast.QueryDocument, log *slog.Logger) ([]*SdkModel, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	x := &extractor{
		ctx:       ctx,
		log:       log,
		names:     make(map[string]int),
		expanded:  make(map[string][]selected),
		expanding: make(map[string]bool),
	}
	if doc == nil {
		return nil, nil
	}
	for _, op := range doc.Operations {
		if op.Name == "" {
			return nil, NewValidationError("", "anonymous operations are not supported")
		}
		root := ctx.RootType(OperationKind(op.Operation))
		if root == nil {
			return nil, NewUnresolvedModelReferenceError(op.Name, string(op.Operation), "", "schema has no root type for operation")
		}
		name := strcase.ToCamel(op.Name) + strcase.ToCamel(string(op.Operation))
		if _, err := x.model(name, root, op.SelectionSet, op.Name, SourceOperation, nil); err != nil {
			return nil, err
		}
	}
	for _, f := range doc.Fragments {
		t := ctx.Type(f.TypeCondition)
		if t == nil {
			return nil, NewUnresolvedModelReferenceError(f.Name, f.TypeCondition, "", "fragment type condition is not defined")
		}
		if _, err := x.model(strcase.ToCamel(f.Name), t, f.SelectionSet, f.Name, SourceFragment, nil); err != nil {
			return nil, err
		}
	}
	log.Debug("models extracted", "models", len(x.models))
	return x.models, nil
}

// extractor holds the state of one extraction run.
type extractor struct {
	ctx    *PluginContext
	log    *slog.Logger
	models []*SdkModel
	names  map[string]int
	// expanded memoises the flattened selection of each fragment.
	expanded  map[string][]selected
	expanding map[string]bool
}

// selected is a field occurrence after fragment flattening, with the type
// it was selected on.
type selected struct {
	field  *ast.Field
	parent *TypeDescriptor
}

// merged is the result of applying the collision policy to one response key.
type merged struct {
	key    string
	last   selected
	subsel ast.SelectionSet
}

func (x *extractor) model(name string, t *TypeDescriptor, set ast.SelectionSet, source string, kind SourceKind, path []string) (*SdkModel, error) {
	m := &SdkModel{
		Name:       x.uniqueName(name),
		Type:       t,
		Source:     source,
		SourceKind: kind,
		Path:       path,
		fields:     make(map[string]*ModelField),
	}
	x.models = append(x.models, m)
	flat, err := x.flatten(source, t, set)
	if err != nil {
		return nil, err
	}
	for _, mf := range mergeSelected(flat) {
		f, err := x.field(m, mf)
		if err != nil {
			return nil, err
		}
		m.Fields = append(m.Fields, f)
		m.fields[f.Name] = f
	}
	x.log.Debug("model extracted", "model", m.Name, "type", t.Name, "at", describePath(m))
	return m, nil
}

func (x *extractor) field(m *SdkModel, mf *merged) (*ModelField, error) {
	af := mf.last.field
	f := &ModelField{Name: mf.key, FieldName: af.Name}
	if af.Name == "__typename" {
		f.Type = typenameRef
	} else {
		fd := mf.last.parent.Field(af.Name)
		if fd == nil {
			return nil, NewUnresolvedModelReferenceError(m.Source, mf.last.parent.Name, af.Name, "field is not defined on type")
		}
		f.Type = fd.Type
	}
	f.Descriptor = x.ctx.Type(f.Type.NamedType())
	if f.Descriptor == nil {
		return nil, NewUnresolvedModelReferenceError(m.Source, f.Type.NamedType(), af.Name, "field type is not defined")
	}
	if len(mf.subsel) == 0 {
		if f.Descriptor.Kind.IsComposite() {
			return nil, NewValidationError(m.Source, fmt.Sprintf("field %q of composite type %s has no selection", mf.key, f.Descriptor.Name))
		}
		return f, nil
	}
	if !f.Descriptor.Kind.IsComposite() {
		return nil, NewValidationError(m.Source, fmt.Sprintf("field %q of leaf type %s has a selection", mf.key, f.Descriptor.Name))
	}
	key := strcase.ToCamel(mf.key)
	if f.Type.IsList() {
		key = inflect.Singularize(key)
	}
	path := append(append([]string(nil), m.Path...), mf.key)
	nested, err := x.model(m.Name+key, f.Descriptor, mf.subsel, m.Source, m.SourceKind, path)
	if err != nil {
		return nil, err
	}
	f.Model = nested
	return f, nil
}

// flatten expands fragment spreads and inline fragments of set into a flat
// list of field occurrences in document order.
func (x *extractor) flatten(source string, t *TypeDescriptor, set ast.SelectionSet) ([]selected, error) {
	var out []selected
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			out = append(out, selected{field: sel, parent: t})
		case *ast.InlineFragment:
			on := t
			if sel.TypeCondition != "" {
				if on = x.ctx.Type(sel.TypeCondition); on == nil {
					return nil, NewUnresolvedModelReferenceError(source, sel.TypeCondition, "", "inline fragment type condition is not defined")
				}
			}
			inner, err := x.flatten(source, on, sel.SelectionSet)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		case *ast.FragmentSpread:
			inner, err := x.expand(source, sel.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		default:
			return nil, NewValidationError(source, fmt.Sprintf("unexpected selection %T", sel))
		}
	}
	return out, nil
}

// expand returns the memoised flattened selection of a named fragment.
func (x *extractor) expand(source, name string) ([]selected, error) {
	if flat, ok := x.expanded[name]; ok {
		return flat, nil
	}
	if x.expanding[name] {
		return nil, NewValidationError(source, fmt.Sprintf("fragment spread cycle through %q", name))
	}
	def := x.ctx.Fragment(name)
	if def == nil {
		return nil, NewValidationError(source, fmt.Sprintf("unknown fragment %q", name))
	}
	t := x.ctx.Type(def.TypeCondition)
	if t == nil {
		return nil, NewUnresolvedModelReferenceError(name, def.TypeCondition, "", "fragment type condition is not defined")
	}
	x.expanding[name] = true
	flat, err := x.flatten(source, t, def.SelectionSet)
	delete(x.expanding, name)
	if err != nil {
		return nil, err
	}
	x.expanded[name] = flat
	return flat, nil
}

// mergeSelected applies the collision policy: a response key keeps its first
// position, the last occurrence defines the field and sub-selections are
// concatenated in document order.
func mergeSelected(flat []selected) []*merged {
	var (
		order []*merged
		byKey = make(map[string]*merged, len(flat))
	)
	for _, s := range flat {
		key := responseKey(s.field)
		m, ok := byKey[key]
		if !ok {
			m = &merged{key: key}
			byKey[key] = m
			order = append(order, m)
		}
		m.last = s
		m.subsel = append(m.subsel, s.field.SelectionSet...)
	}
	return order
}

func responseKey(f *ast.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// uniqueName returns name, or name with a numeric suffix when it is taken.
func (x *extractor) uniqueName(name string) string {
	n := x.names[name]
	x.names[name] = n + 1
	if n == 0 {
		return name
	}
	for i := n + 1; ; i++ {
		candidate := name + fmt.Sprint(i)
		if x.names[candidate] == 0 {
			x.names[candidate] = 1
			x.log.Debug("model name taken", "name", name, "renamed", candidate)
			return candidate
		}
	}
}

// ModelsByName indexes models by name.
func ModelsByName(models []*SdkModel) map[string]*SdkModel {
	m := make(map[string]*SdkModel, len(models))
	for _, model := range models {
		m[model.Name] = model
	}
	return m
}

// rootModel returns the root model of the named source.
func rootModel(models []*SdkModel, source string, kind SourceKind) *SdkModel {
	for _, m := range models {
		if m.Source == source && m.SourceKind == kind && m.IsRoot() {
			return m
		}
	}
	return nil
}

// describePath formats a model path for diagnostics.
func describePath(m *SdkModel) string {
	if m.IsRoot() {
		return m.Source
	}
	return m.Source + "." + strings.Join(m.Path, ".")
}
