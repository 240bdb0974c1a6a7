package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/chainsdk/compiler/gen"
)

// genClient generates the Client, one client per operation kind, and the
// chain types.
func (p *printer) genClient(f *jen.File) {
	groups := p.g.Definitions.Groups()

	f.Comment("Client performs the operations of the SDK through a requester.")
	f.Type().Id("Client").StructFunc(func(group *jen.Group) {
		for _, grp := range groups {
			group.Id(pascal(string(grp.Kind))).Op("*").Id(kindClient(grp.Kind))
		}
	})

	f.Comment("NewClient returns a client performing every operation through r.")
	f.Func().Id("NewClient").Params(
		jen.Id("r").Add(p.requesterType()),
	).Op("*").Id("Client").Block(
		jen.Return(jen.Op("&").Id("Client").ValuesFunc(func(vals *jen.Group) {
			for _, grp := range groups {
				vals.Id(pascal(string(grp.Kind))).Op(":").Op("&").Id(kindClient(grp.Kind)).Values(jen.Dict{
					jen.Id("request"): jen.Id("r"),
				})
			}
		})),
	)

	for _, grp := range groups {
		name := kindClient(grp.Kind)
		f.Commentf("%s holds the %s operations.", name, grp.Kind)
		f.Type().Id(name).Struct(
			jen.Id("request").Add(p.requesterType()),
		)
		for _, d := range grp.Definitions {
			p.genCall(f, "c", name, d, pascal(d.Name))
		}
	}

	for _, d := range p.g.Chains() {
		p.genChain(f, d)
	}
}

func kindClient(k gen.OperationKind) string {
	return pascal(string(k)) + "Client"
}

// genChain generates the chain type of d and the methods of its children.
func (p *printer) genChain(f *jen.File, d *gen.SdkDefinition) {
	name := p.chains[d]
	f.Commentf("%s is the result of %s and the operations chained from it.", name, d.Operation.Name)
	f.Type().Id(name).StructFunc(func(group *jen.Group) {
		group.Op("*").Id(d.Model.Name)
		group.Id("request").Add(p.requesterType())
		if parent := d.Parent(); parent != nil {
			group.Id("parent").Op("*").Id(p.chains[parent])
		}
	})
	methods := p.methods(d)
	for _, c := range d.Children {
		p.genCall(f, "n", name, c, methods[c])
	}
}

// methods assigns the method names of the children of d. A name that clashes
// with a model field gets the operation kind appended, and a numeric suffix
// while it still clashes with a sibling or a field.
func (p *printer) methods(d *gen.SdkDefinition) map[*gen.SdkDefinition]string {
	taken := make(map[string]bool, len(d.Children))
	for _, c := range d.Children {
		taken[pascal(c.Name)] = true
	}
	out := make(map[*gen.SdkDefinition]string, len(d.Children))
	for _, c := range d.Children {
		method := pascal(c.Name)
		if d.Model.Field(c.Name) != nil || p.hasGoField(d.Model, method) {
			base := method + pascal(string(c.Operation.Kind))
			method = base
			for i := 2; taken[method] || p.hasGoField(d.Model, method); i++ {
				method = fmt.Sprintf("%s%d", base, i)
			}
			taken[method] = true
		}
		out[c] = method
	}
	return out
}

func (p *printer) hasGoField(m *gen.SdkModel, name string) bool {
	for _, goName := range p.fields[m] {
		if goName == name {
			return true
		}
	}
	return false
}

// genCall generates the method performing d on the receiver type recv.
func (p *printer) genCall(f *jen.File, rv, recv string, d *gen.SdkDefinition, method string) {
	op := d.Operation
	result, zero := p.resultType(d)
	chained := d.Parent() != nil

	params := []jen.Code{jen.Id("ctx").Qual("context", "Context")}
	for _, v := range d.Args {
		params = append(params, jen.Id(param(v.Name)).Add(p.argType(v)))
	}

	f.Commentf("%s performs the %s %s.", method, op.Name, op.Kind)
	f.Func().Params(jen.Id(rv).Op("*").Id(recv)).Id(method).Params(params...).Params(result, jen.Error()).BlockFunc(func(body *jen.Group) {
		if chained {
			body.If(jen.Id(rv).Op("==").Nil()).BlockFunc(func(grp *jen.Group) {
				returnZero(grp, result, zero, jen.Qual(runtimePkg, "NewNotFoundError").Call(jen.Lit(d.Parent().Operation.Name)))
			})
		}
		body.Id("vars").Op(":=").Qual(runtimePkg, "Variables").Values(jen.DictFunc(func(dict jen.Dict) {
			for _, in := range d.Inherited {
				dict[jen.Lit(in.Variable.Name)] = p.inheritedValue(rv, d, in)
			}
			for _, v := range d.Args {
				if v.Required {
					dict[jen.Lit(v.Name)] = jen.Id(param(v.Name))
				}
			}
		}))
		for _, v := range d.Args {
			if v.Required {
				continue
			}
			helper := "Optional"
			if v.Type.IsList() {
				helper = "OptionalSlice"
			}
			body.Qual(runtimePkg, helper).Call(jen.Id("vars"), jen.Lit(v.Name), jen.Id(param(v.Name)))
		}
		body.List(jen.Id("data"), jen.Err()).Op(":=").Qual(runtimePkg, "Do").Index(jen.Id(op.RootModel.Name)).Call(
			jen.Id("ctx"),
			jen.Id(rv).Dot("request"),
			jen.Lit(op.Name),
			jen.Id(p.documentName(op)),
			jen.Id("vars"),
		)
		body.If(jen.Err().Op("!=").Nil()).BlockFunc(func(grp *jen.Group) {
			returnZero(grp, result, zero, jen.Err())
		})
		p.genReturn(body, rv, d)
	})
}

// resultType returns the Go result type of d and its zero value. The zero
// value is nil when the type has no literal zero.
func (p *printer) resultType(d *gen.SdkDefinition) (*jen.Statement, jen.Code) {
	op := d.Operation
	switch {
	case len(d.Children) > 0:
		return jen.Op("*").Id(p.chains[d]), jen.Nil()
	case op.Field == "":
		return jen.Op("*").Id(op.RootModel.Name), jen.Nil()
	case p.nilable(op.ResultType):
		return p.typeCode(op.ResultType, op.Result), jen.Nil()
	default:
		return p.typeCode(op.ResultType, op.Result), nil
	}
}

// returnZero returns the zero value of result with err.
func returnZero(grp *jen.Group, result *jen.Statement, zero jen.Code, err jen.Code) {
	if zero == nil {
		grp.Var().Id("zero").Add(result.Clone())
		grp.Return(jen.Id("zero"), err)
		return
	}
	grp.Return(zero, err)
}

func (p *printer) genReturn(body *jen.Group, rv string, d *gen.SdkDefinition) {
	op := d.Operation
	if op.Field == "" {
		body.Return(jen.Id("data"), jen.Nil())
		return
	}
	value := jen.Id("data").Dot(p.fieldName(op.RootModel, op.Field))
	if len(d.Children) == 0 {
		body.Return(value, jen.Nil())
		return
	}
	body.If(value.Clone().Op("==").Nil()).Block(jen.Return(jen.Nil(), jen.Nil()))
	body.Return(jen.Op("&").Id(p.chains[d]).ValuesFunc(func(vals *jen.Group) {
		vals.Id(d.Model.Name).Op(":").Add(value.Clone())
		vals.Id("request").Op(":").Id(rv).Dot("request")
		if d.Parent() != nil {
			vals.Id("parent").Op(":").Id(rv)
		}
	}), jen.Nil())
}

// argType returns the parameter type of a caller-supplied variable. Optional
// variables are pointers or slices so that nil omits them.
func (p *printer) argType(v *gen.Variable) *jen.Statement {
	if v.Required || v.Type.IsList() {
		return p.typeCode(v.Type, nil)
	}
	return jen.Op("*").Add(p.namedType(v.Type.Name))
}

// inheritedValue returns the expression reading an inherited variable from
// the ancestor results reachable from the receiver.
func (p *printer) inheritedValue(rv string, d *gen.SdkDefinition, in *gen.InheritedArg) *jen.Statement {
	s := jen.Id(rv)
	for a := d.Parent(); a != nil && a != in.From; a = a.Parent() {
		s = s.Dot("parent")
	}
	return s.Dot(in.From.Model.Name).Dot(p.fieldName(in.From.Model, in.Field.Name))
}
