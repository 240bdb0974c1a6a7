package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/chainsdk/compiler/gen"
)

// genModels generates the enum, input and model types.
func (p *printer) genModels(f *jen.File) {
	for _, t := range p.g.ReferencedTypes() {
		switch t.Kind {
		case gen.KindEnum:
			p.genEnum(f, t)
		case gen.KindInputObject:
			p.genInput(f, t)
		}
	}
	for _, m := range p.g.Models {
		p.genModel(f, m)
	}
}

func (p *printer) genEnum(f *jen.File, t *gen.TypeDescriptor) {
	name := pascal(t.Name)
	f.Commentf("%s is the %s enum.", name, t.Name)
	f.Type().Id(name).String()
	f.Commentf("%s values.", name)
	f.Const().DefsFunc(func(group *jen.Group) {
		for _, v := range t.EnumValues {
			group.Id(name + pascal(strings.ToLower(v))).Id(name).Op("=").Lit(v)
		}
	})
}

func (p *printer) genInput(f *jen.File, t *gen.TypeDescriptor) {
	name := pascal(t.Name)
	f.Commentf("%s is the %s input.", name, t.Name)
	f.Type().Id(name).StructFunc(func(group *jen.Group) {
		for _, fd := range t.Fields {
			tag := fd.Name
			if fd.Nullable() {
				tag += ",omitempty"
			}
			group.Id(pascal(fd.Name)).Add(p.typeCode(fd.Type, nil)).Tag(map[string]string{"json": tag})
		}
	})
}

func (p *printer) genModel(f *jen.File, m *gen.SdkModel) {
	switch {
	case m.IsRoot() && m.SourceKind == gen.SourceOperation:
		f.Commentf("%s is the response data of %s.", m.Name, m.Source)
	case m.IsRoot():
		f.Commentf("%s is the %s selection of fragment %s.", m.Name, m.Type.Name, m.Source)
	default:
		f.Commentf("%s is the %s selection of %s at %s.", m.Name, m.Type.Name, m.Source, strings.Join(m.Path, "."))
	}
	f.Type().Id(m.Name).StructFunc(func(group *jen.Group) {
		for _, fd := range m.Fields {
			group.Id(p.fieldName(m, fd.Name)).Add(p.typeCode(fd.Type, fd.Model)).Tag(map[string]string{"json": fd.Name})
		}
	})
}

// genDocuments generates one document per operation.
func (p *printer) genDocuments(f *jen.File) {
	for _, op := range p.g.Operations {
		name := p.documentName(op)
		f.Commentf("%s is the %s %s.", name, op.Name, op.Kind)
		text := jen.Lit(op.Document)
		if raw := rawString(op.Document); raw != "" {
			text = jen.Op(raw)
		}
		if !p.g.Requester.IsNode() {
			f.Const().Id(name).Op("=").Add(text)
			continue
		}
		f.Var().Id(name).Op("=").Add(p.documentType()).Values(jen.Dict{
			jen.Id("Name"):  jen.Lit(op.Name),
			jen.Id("Kind"):  jen.Lit(string(op.Kind)),
			jen.Id("Query"): text,
		})
	}
}
