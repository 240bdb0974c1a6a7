package gen

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// IRVersion is the version of the exported intermediate representation.
const IRVersion = 1

// The following types form the language-neutral export of a Graph consumed
// by out-of-process printers. References between entities are by name.
type (
	// IR is the exported graph.
	IR struct {
		Version      int           `msgpack:"version"`
		Language     string        `msgpack:"language"`
		DocumentMode string        `msgpack:"document_mode"`
		DocumentType string        `msgpack:"document_type"`
		DocumentFile string        `msgpack:"document_file"`
		Types        []IRType      `msgpack:"types"`
		Models       []IRModel     `msgpack:"models"`
		Operations   []IROperation `msgpack:"operations"`
		Groups       []IRGroup     `msgpack:"groups"`
	}

	// IRType is an exported TypeDescriptor.
	IRType struct {
		Name          string    `msgpack:"name"`
		Kind          string    `msgpack:"kind"`
		Scalar        string    `msgpack:"scalar,omitempty"`
		Opaque        bool      `msgpack:"opaque,omitempty"`
		Fields        []IRField `msgpack:"fields,omitempty"`
		EnumValues    []string  `msgpack:"enum_values,omitempty"`
		PossibleTypes []string  `msgpack:"possible_types,omitempty"`
	}

	// IRField is an exported field of a type or model.
	IRField struct {
		Name      string `msgpack:"name"`
		FieldName string `msgpack:"field_name,omitempty"`
		Type      string `msgpack:"type"`
		Model     string `msgpack:"model,omitempty"`
	}

	// IRModel is an exported SdkModel.
	IRModel struct {
		Name       string    `msgpack:"name"`
		Type       string    `msgpack:"type"`
		Source     string    `msgpack:"source"`
		SourceKind string    `msgpack:"source_kind"`
		Path       []string  `msgpack:"path,omitempty"`
		Fields     []IRField `msgpack:"fields"`
	}

	// IRVariable is an exported Variable.
	IRVariable struct {
		Name        string `msgpack:"name"`
		Type        string `msgpack:"type"`
		Required    bool   `msgpack:"required"`
		Identifying bool   `msgpack:"identifying"`
		Default     string `msgpack:"default,omitempty"`
	}

	// IROperation is an exported OperationDocument.
	IROperation struct {
		Name       string       `msgpack:"name"`
		Kind       string       `msgpack:"kind"`
		Variables  []IRVariable `msgpack:"variables,omitempty"`
		Field      string       `msgpack:"field,omitempty"`
		ResultType string       `msgpack:"result_type"`
		Result     string       `msgpack:"result,omitempty"`
		Document   string       `msgpack:"document"`
	}

	// IRGroup is an exported SdkGroup.
	IRGroup struct {
		Kind        string         `msgpack:"kind"`
		Definitions []IRDefinition `msgpack:"definitions"`
	}

	// IRDefinition is an exported chain node.
	IRDefinition struct {
		Name      string         `msgpack:"name"`
		Operation string         `msgpack:"operation"`
		Model     string         `msgpack:"model,omitempty"`
		Path      []string       `msgpack:"path,omitempty"`
		Args      []string       `msgpack:"args,omitempty"`
		Inherited []IRInherited  `msgpack:"inherited,omitempty"`
		Children  []IRDefinition `msgpack:"children,omitempty"`
	}

	// IRInherited is an exported InheritedArg.
	IRInherited struct {
		Variable string `msgpack:"variable"`
		From     string `msgpack:"from"`
		Field    string `msgpack:"field"`
	}
)

// NewIR exports the graph.
func NewIR(g *Graph) *IR {
	ir := &IR{
		Version:      IRVersion,
		Language:     string(g.Language),
		DocumentMode: string(g.Requester.Mode),
		DocumentType: g.Requester.DocumentType,
		DocumentFile: g.Requester.DocumentFile,
	}
	for _, name := range g.Context.Order {
		t := g.Context.Types[name]
		it := IRType{
			Name:          t.Name,
			Kind:          t.Kind.String(),
			Scalar:        t.Scalar,
			Opaque:        t.Opaque,
			EnumValues:    t.EnumValues,
			PossibleTypes: t.PossibleTypes,
		}
		for _, f := range t.Fields {
			it.Fields = append(it.Fields, IRField{Name: f.Name, Type: f.Type.String()})
		}
		ir.Types = append(ir.Types, it)
	}
	for _, m := range g.Models {
		im := IRModel{
			Name:       m.Name,
			Type:       m.Type.Name,
			Source:     m.Source,
			SourceKind: m.SourceKind.String(),
			Path:       m.Path,
		}
		for _, f := range m.Fields {
			im.Fields = append(im.Fields, irModelField(f))
		}
		ir.Models = append(ir.Models, im)
	}
	for _, op := range g.Operations {
		io := IROperation{
			Name:       op.Name,
			Kind:       string(op.Kind),
			Field:      op.Field,
			ResultType: op.ResultType.String(),
			Document:   op.Document,
		}
		if op.Result != nil {
			io.Result = op.Result.Name
		}
		for _, v := range op.Variables {
			io.Variables = append(io.Variables, IRVariable{
				Name:        v.Name,
				Type:        v.Type.String(),
				Required:    v.Required,
				Identifying: v.Identifying,
				Default:     v.Default,
			})
		}
		ir.Operations = append(ir.Operations, io)
	}
	for _, grp := range g.Definitions.Groups() {
		ig := IRGroup{Kind: string(grp.Kind)}
		for _, d := range grp.Definitions {
			ig.Definitions = append(ig.Definitions, irDefinition(d))
		}
		ir.Groups = append(ir.Groups, ig)
	}
	return ir
}

func irModelField(f *ModelField) IRField {
	out := IRField{Name: f.Name, FieldName: f.FieldName, Type: f.Type.String()}
	if f.Model != nil {
		out.Model = f.Model.Name
	}
	return out
}

func irDefinition(d *SdkDefinition) IRDefinition {
	out := IRDefinition{
		Name:      d.Name,
		Operation: d.Operation.Name,
		Path:      d.Path,
	}
	if d.Model != nil {
		out.Model = d.Model.Name
	}
	for _, a := range d.Args {
		out.Args = append(out.Args, a.Name)
	}
	for _, in := range d.Inherited {
		out.Inherited = append(out.Inherited, IRInherited{
			Variable: in.Variable.Name,
			From:     in.From.Operation.Name,
			Field:    in.Field.Name,
		})
	}
	for _, c := range d.Children {
		out.Children = append(out.Children, irDefinition(c))
	}
	return out
}

// EncodeIR exports the graph in msgpack encoding.
func EncodeIR(g *Graph) ([]byte, error) {
	b, err := msgpack.Marshal(NewIR(g))
	if err != nil {
		return nil, NewGenerationError("ir", "", "encode", err)
	}
	return b, nil
}

// DecodeIR decodes an exported graph.
func DecodeIR(data []byte) (*IR, error) {
	var ir IR
	if err := msgpack.Unmarshal(data, &ir); err != nil {
		return nil, NewGenerationError("ir", "", "decode", err)
	}
	if ir.Version != IRVersion {
		return nil, NewGenerationError("ir", "", fmt.Sprintf("unsupported IR version %d", ir.Version), nil)
	}
	return &ir, nil
}
