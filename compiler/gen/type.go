package gen

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// TypeKind is the kind of a named GraphQL type.
type TypeKind uint8

// Type kinds.
const (
	KindScalar TypeKind = iota + 1
	KindEnum
	KindObject
	KindInterface
	KindUnion
	KindInputObject
)

// String implements fmt.Stringer.
func (k TypeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindInterface:
		return "interface"
	case KindUnion:
		return "union"
	case KindInputObject:
		return "input"
	default:
		return "unknown"
	}
}

// IsComposite reports whether values of the kind carry a selection set.
func (k TypeKind) IsComposite() bool {
	return k == KindObject || k == KindInterface || k == KindUnion
}

// IsLeaf reports whether values of the kind are leaves of a selection.
func (k TypeKind) IsLeaf() bool {
	return k == KindScalar || k == KindEnum
}

// The following types describe the schema as seen by the generator.
type (
	// TypeDescriptor describes one named type of the schema.
	TypeDescriptor struct {
		// Name of the type, e.g. "Issue".
		Name string
		// Kind of the type.
		Kind TypeKind
		// Fields of object, interface and input types in declaration order.
		Fields []*FieldDescriptor
		fields map[string]*FieldDescriptor
		// Scalar holds the mapped target type of scalars.
		Scalar string
		// Opaque is set for custom scalars without an explicit mapping.
		Opaque bool
		// EnumValues of enum types in declaration order.
		EnumValues []string
		// PossibleTypes holds union members and interface implementors.
		PossibleTypes []string
		// Interfaces implemented by an object or interface type.
		Interfaces []string
		// Description from the schema.
		Description string
		// BuiltIn is set for types of the GraphQL prelude.
		BuiltIn bool
	}

	// FieldDescriptor describes a field of an object, interface or input type.
	FieldDescriptor struct {
		// Name of the field.
		Name string
		// Type reference of the field.
		Type *TypeRef
		// Description from the schema.
		Description string
		// Deprecated is set when the field carries @deprecated.
		Deprecated bool
	}

	// TypeRef is a reference to a named type, possibly wrapped in lists and
	// non-null markers.
	TypeRef struct {
		// Name is set for named references and empty for lists.
		Name string
		// NonNull marks the reference as non-nullable.
		NonNull bool
		// Elem is the element type of a list reference.
		Elem *TypeRef
	}
)

// Field returns the field with the given name, or nil.
func (t *TypeDescriptor) Field(name string) *FieldDescriptor {
	if t == nil {
		return nil
	}
	if t.fields == nil {
		for _, f := range t.Fields {
			if f.Name == name {
				return f
			}
		}
		return nil
	}
	return t.fields[name]
}

// Nullable reports whether the field may be null.
func (f *FieldDescriptor) Nullable() bool { return f.Type.Nullable() }

// IsList reports whether the field holds a list.
func (f *FieldDescriptor) IsList() bool { return f.Type.IsList() }

// NewTypeRef converts a gqlparser type into a TypeRef.
func NewTypeRef(t *ast.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.Elem != nil {
		return &TypeRef{NonNull: t.NonNull, Elem: NewTypeRef(t.Elem)}
	}
	return &TypeRef{Name: t.NamedType, NonNull: t.NonNull}
}

// NamedType returns the innermost named type.
func (r *TypeRef) NamedType() string {
	for r != nil && r.Elem != nil {
		r = r.Elem
	}
	if r == nil {
		return ""
	}
	return r.Name
}

// IsList reports whether the reference is a list.
func (r *TypeRef) IsList() bool {
	return r != nil && r.Elem != nil
}

// Nullable reports whether the outermost reference accepts null.
func (r *TypeRef) Nullable() bool {
	return r == nil || !r.NonNull
}

// String returns the reference in GraphQL notation, e.g. "[Comment!]!".
func (r *TypeRef) String() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	r.write(&b)
	return b.String()
}

func (r *TypeRef) write(b *strings.Builder) {
	if r.Elem != nil {
		b.WriteByte('[')
		r.Elem.write(b)
		b.WriteByte(']')
	} else {
		b.WriteString(r.Name)
	}
	if r.NonNull {
		b.WriteByte('!')
	}
}

// Equal reports whether two references denote the same type.
func (r *TypeRef) Equal(o *TypeRef) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.NonNull != o.NonNull || r.Name != o.Name {
		return false
	}
	return r.Elem.Equal(o.Elem)
}
