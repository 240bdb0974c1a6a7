package gen

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// PluginContext is the schema-derived lookup table shared by all stages.
// It is read-only once built.
type PluginContext struct {
	// Types maps every named, non-introspection type to its descriptor.
	Types map[string]*TypeDescriptor
	// Order holds the type names in sorted order.
	Order []string
	// Fragments is the fragment registry of the document set.
	Fragments map[string]*ast.FragmentDefinition
	// FragmentOrder holds the fragment names in document order.
	FragmentOrder []string
	// Root type names. Mutation and subscription may be empty.
	QueryType        string
	MutationType     string
	SubscriptionType string
}

// builtin scalars every valid schema declares.
var requiredScalars = []string{"Boolean", "Float", "ID", "Int", "String"}

// BuildContext walks every type definition of the schema exactly once and
// returns the lookup table used by the later stages.
func BuildContext(schema *ast.Schema, cfg *Config) (*PluginContext, error) {
	if schema == nil {
		return nil, NewSchemaError("", "schema is nil", nil)
	}
	if schema.Query == nil {
		return nil, NewSchemaError("Query", "schema has no query root type", nil)
	}
	for _, name := range requiredScalars {
		if def := schema.Types[name]; def == nil || def.Kind != ast.Scalar {
			return nil, NewSchemaError(name, "builtin scalar is missing", nil)
		}
	}
	log := cfg.logger()
	scalars := cfg.ScalarMap()
	ctx := &PluginContext{
		Types:     make(map[string]*TypeDescriptor, len(schema.Types)),
		Fragments: make(map[string]*ast.FragmentDefinition),
		QueryType: schema.Query.Name,
	}
	if schema.Mutation != nil {
		ctx.MutationType = schema.Mutation.Name
	}
	if schema.Subscription != nil {
		ctx.SubscriptionType = schema.Subscription.Name
	}
	names := slices.Sorted(maps.Keys(schema.Types))
	for _, name := range names {
		if strings.HasPrefix(name, "__") {
			continue
		}
		t, err := describeType(schema, schema.Types[name], scalars, cfg.Opaque())
		if err != nil {
			return nil, err
		}
		if t.Opaque {
			log.Warn("custom scalar has no mapping", "scalar", t.Name, "type", t.Scalar)
		}
		ctx.Types[name] = t
		ctx.Order = append(ctx.Order, name)
	}
	log.Debug("schema context built", "types", len(ctx.Order))
	return ctx, nil
}

// describeType converts one definition. Each definition kind has exactly one
// branch.
func describeType(schema *ast.Schema, def *ast.Definition, scalars map[string]string, opaque string) (*TypeDescriptor, error) {
	t := &TypeDescriptor{
		Name:        def.Name,
		Description: def.Description,
		BuiltIn:     def.BuiltIn,
	}
	switch def.Kind {
	case ast.Scalar:
		t.Kind = KindScalar
		if s, ok := scalars[def.Name]; ok {
			t.Scalar = s
		} else {
			t.Scalar, t.Opaque = opaque, true
		}
	case ast.Enum:
		t.Kind = KindEnum
		for _, v := range def.EnumValues {
			t.EnumValues = append(t.EnumValues, v.Name)
		}
	case ast.Object:
		t.Kind = KindObject
		t.Interfaces = slices.Clone(def.Interfaces)
		describeFields(t, def.Fields)
	case ast.Interface:
		t.Kind = KindInterface
		t.Interfaces = slices.Clone(def.Interfaces)
		for _, p := range schema.PossibleTypes[def.Name] {
			t.PossibleTypes = append(t.PossibleTypes, p.Name)
		}
		sort.Strings(t.PossibleTypes)
		describeFields(t, def.Fields)
	case ast.Union:
		t.Kind = KindUnion
		t.PossibleTypes = slices.Clone(def.Types)
	case ast.InputObject:
		t.Kind = KindInputObject
		describeFields(t, def.Fields)
	default:
		return nil, NewSchemaError(def.Name, "unsupported definition kind "+string(def.Kind), nil)
	}
	return t, nil
}

func describeFields(t *TypeDescriptor, fields ast.FieldList) {
	t.fields = make(map[string]*FieldDescriptor, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		fd := &FieldDescriptor{
			Name:        f.Name,
			Type:        NewTypeRef(f.Type),
			Description: f.Description,
			Deprecated:  f.Directives.ForName("deprecated") != nil,
		}
		t.Fields = append(t.Fields, fd)
		t.fields[f.Name] = fd
	}
}

// Type returns the descriptor of the named type, or nil.
func (c *PluginContext) Type(name string) *TypeDescriptor {
	return c.Types[name]
}

// Fragment returns the registered fragment with the given name, or nil.
func (c *PluginContext) Fragment(name string) *ast.FragmentDefinition {
	return c.Fragments[name]
}

// RootType returns the root type of the given operation kind, or nil when
// the schema does not declare one.
func (c *PluginContext) RootType(kind OperationKind) *TypeDescriptor {
	switch kind {
	case OperationQuery:
		return c.Types[c.QueryType]
	case OperationMutation:
		return c.Types[c.MutationType]
	case OperationSubscription:
		return c.Types[c.SubscriptionType]
	default:
		return nil
	}
}

// RegisterFragments returns a copy of the context whose fragment registry
// holds the fragments of doc. The receiver is not modified.
func (c *PluginContext) RegisterFragments(doc *ast.QueryDocument) (*PluginContext, error) {
	next := *c
	next.Fragments = maps.Clone(c.Fragments)
	if next.Fragments == nil {
		next.Fragments = make(map[string]*ast.FragmentDefinition)
	}
	next.FragmentOrder = slices.Clone(c.FragmentOrder)
	if doc == nil {
		return &next, nil
	}
	for _, f := range doc.Fragments {
		if _, ok := next.Fragments[f.Name]; ok {
			return nil, NewValidationError(f.Name, "fragment is declared more than once")
		}
		if c.Type(f.TypeCondition) == nil {
			return nil, NewUnresolvedModelReferenceError(f.Name, f.TypeCondition, "", "fragment type condition is not defined")
		}
		next.Fragments[f.Name] = f
		next.FragmentOrder = append(next.FragmentOrder, f.Name)
	}
	return &next, nil
}
