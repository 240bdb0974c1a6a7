package gen

import (
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// OperationKind is the root operation type of a document.
type OperationKind string

// Operation kinds.
const (
	OperationQuery        OperationKind = "query"
	OperationMutation     OperationKind = "mutation"
	OperationSubscription OperationKind = "subscription"
)

// OperationKinds lists the kinds in the order groups are emitted.
var OperationKinds = []OperationKind{OperationQuery, OperationMutation, OperationSubscription}

// String implements fmt.Stringer.
func (k OperationKind) String() string { return string(k) }

type (
	// Variable is a declared operation variable.
	Variable struct {
		// Name without the leading "$".
		Name string
		// Type reference of the variable.
		Type *TypeRef
		// Required is set for non-null variables without a default value.
		Required bool
		// Identifying is set for required variables a parent model may supply.
		Identifying bool
		// Default holds the default value in GraphQL notation, if any.
		Default string
	}

	// OperationDocument is a classified operation of the document set.
	OperationDocument struct {
		// Name of the operation.
		Name string
		// Kind of the operation.
		Kind OperationKind
		// Variables in declaration order.
		Variables []*Variable
		// RootModel is the model of the operation's root selection set.
		RootModel *SdkModel
		// Field is the response key of the single root field, or empty when
		// the operation selects several root fields.
		Field string
		// ResultType is the type of the single root field, or the root type.
		ResultType *TypeRef
		// Result is the model of the result. It is nil for leaf results.
		Result *SdkModel
		// Document is the printed operation, fragments included.
		Document string
		// Index is the position of the operation in the document.
		Index int
	}
)

// Variable returns the variable with the given name, or nil.
func (o *OperationDocument) Variable(name string) *Variable {
	for _, v := range o.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// IsList reports whether the operation returns a list.
func (o *OperationDocument) IsList() bool { return o.ResultType.IsList() }

// NewOperations classifies the operations of doc in document order.
func NewOperations(ctx *PluginContext, doc *ast.QueryDocument, models []*SdkModel, cfg *Config) ([]*OperationDocument, error) {
	if doc == nil {
		return nil, nil
	}
	log := cfg.logger()
	ops := make([]*OperationDocument, 0, len(doc.Operations))
	seen := make(map[string]bool, len(doc.Operations))
	for i, op := range doc.Operations {
		if op.Name == "" {
			return nil, NewValidationError("", "anonymous operations are not supported")
		}
		if seen[op.Name] {
			return nil, NewValidationError(op.Name, "operation is declared more than once")
		}
		seen[op.Name] = true
		o := &OperationDocument{
			Name:  op.Name,
			Kind:  OperationKind(op.Operation),
			Index: i,
		}
		switch o.Kind {
		case OperationQuery, OperationMutation, OperationSubscription:
		default:
			return nil, NewValidationError(op.Name, fmt.Sprintf("unsupported operation kind %q", op.Operation))
		}
		vars, err := newVariables(ctx, cfg, op)
		if err != nil {
			return nil, err
		}
		o.Variables = vars
		if o.RootModel = rootModel(models, op.Name, SourceOperation); o.RootModel == nil {
			return nil, NewUnresolvedModelReferenceError(op.Name, string(op.Operation), "", "operation has no root model")
		}
		if fields := o.RootModel.Fields; len(fields) == 1 {
			o.Field = fields[0].Name
			o.ResultType = fields[0].Type
			o.Result = fields[0].Model
		} else {
			o.ResultType = &TypeRef{Name: o.RootModel.Type.Name, NonNull: true}
			o.Result = o.RootModel
		}
		if o.Document, err = printOperation(doc, op); err != nil {
			return nil, err
		}
		log.Debug("operation classified", "operation", o.Name, "kind", o.Kind, "result", o.ResultType.String())
		ops = append(ops, o)
	}
	return ops, nil
}

func newVariables(ctx *PluginContext, cfg *Config, op *ast.OperationDefinition) ([]*Variable, error) {
	vars := make([]*Variable, 0, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		v := &Variable{Name: def.Variable, Type: NewTypeRef(def.Type)}
		if ctx.Type(v.Type.NamedType()) == nil {
			return nil, NewUnresolvedModelReferenceError(op.Name, v.Type.NamedType(), "$"+v.Name, "variable type is not defined")
		}
		if def.DefaultValue != nil {
			v.Default = def.DefaultValue.String()
		}
		v.Required = v.Type.NonNull && def.DefaultValue == nil
		v.Identifying = v.Required && (cfg.Identify == IdentifyByField || cfg.IsIdentifyingName(v.Name))
		vars = append(vars, v)
	}
	return vars, nil
}

// printOperation prints op together with the fragments it spreads,
// transitively, in document order.
func printOperation(doc *ast.QueryDocument, op *ast.OperationDefinition) (string, error) {
	used := make(map[string]bool)
	if err := collectSpreads(doc, op.Name, op.SelectionSet, used); err != nil {
		return "", err
	}
	out := &ast.QueryDocument{Operations: ast.OperationList{op}}
	for _, f := range doc.Fragments {
		if used[f.Name] {
			out.Fragments = append(out.Fragments, f)
		}
	}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(out)
	return buf.String(), nil
}

func collectSpreads(doc *ast.QueryDocument, source string, set ast.SelectionSet, used map[string]bool) error {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			if err := collectSpreads(doc, source, sel.SelectionSet, used); err != nil {
				return err
			}
		case *ast.InlineFragment:
			if err := collectSpreads(doc, source, sel.SelectionSet, used); err != nil {
				return err
			}
		case *ast.FragmentSpread:
			if used[sel.Name] {
				continue
			}
			f := doc.Fragments.ForName(sel.Name)
			if f == nil {
				return NewValidationError(source, fmt.Sprintf("unknown fragment %q", sel.Name))
			}
			used[sel.Name] = true
			if err := collectSpreads(doc, source, f.SelectionSet, used); err != nil {
				return err
			}
		}
	}
	return nil
}
