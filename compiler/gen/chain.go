package gen

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

type (
	// SdkDefinition is a node of the chain tree: one callable operation.
	SdkDefinition struct {
		// Name is the generated call name, unique among siblings.
		Name string
		// Operation the node invokes.
		Operation *OperationDocument
		// Path holds the result-model names of the ancestors, root first.
		Path []string
		// Args are the variables callers still supply, in declaration order.
		Args []*Variable
		// Inherited are the variables filled from ancestor results.
		Inherited []*InheritedArg
		// Model is the result model. It is nil for leaf results.
		Model *SdkModel
		// Children are the operations chained from this node's result.
		Children []*SdkDefinition
		parent   *SdkDefinition
	}

	// InheritedArg is a variable elided from a call site because an ancestor's
	// result carries it.
	InheritedArg struct {
		// Variable of the child operation.
		Variable *Variable
		// From is the ancestor whose result supplies the value.
		From *SdkDefinition
		// Field of From's result model holding the value.
		Field *ModelField
	}

	// SdkGroup holds the root definitions of one operation kind.
	SdkGroup struct {
		Kind        OperationKind
		Definitions []*SdkDefinition
	}

	// SdkDefinitions is the chain tree of a run, grouped by operation kind.
	SdkDefinitions struct {
		groups map[OperationKind]*SdkGroup
	}
)

// Parent returns the parent node, or nil for roots.
func (d *SdkDefinition) Parent() *SdkDefinition { return d.parent }

// Ancestors returns the ancestors of the node, root first.
func (d *SdkDefinition) Ancestors() []*SdkDefinition {
	var out []*SdkDefinition
	for p := d.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	slices.Reverse(out)
	return out
}

// Child returns the child with the given call name, or nil.
func (d *SdkDefinition) Child(name string) *SdkDefinition {
	for _, c := range d.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Get returns the group of the given kind, or nil.
func (s *SdkDefinitions) Get(kind OperationKind) *SdkGroup {
	if s == nil {
		return nil
	}
	return s.groups[kind]
}

// Groups returns the non-empty groups in query, mutation, subscription order.
func (s *SdkDefinitions) Groups() []*SdkGroup {
	var out []*SdkGroup
	for _, k := range OperationKinds {
		if g := s.Get(k); g != nil && len(g.Definitions) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Walk calls fn for every node in pre-order, groups in Groups order. It
// stops at the first error.
func (s *SdkDefinitions) Walk(fn func(*SdkDefinition) error) error {
	for _, g := range s.Groups() {
		for _, d := range g.Definitions {
			if err := walk(d, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func walk(d *SdkDefinition, fn func(*SdkDefinition) error) error {
	if err := fn(d); err != nil {
		return err
	}
	for _, c := range d.Children {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// candidate is an eligible parent of an operation.
type candidate struct {
	parent  *OperationDocument
	matched int
	prefix  int
}

// ResolveChains infers the chain tree of the operations. Operations are
// classified first, then attached to their most specific parent; nodes are
// built once and never modified afterwards.
func ResolveChains(ctx *PluginContext, ops []*OperationDocument, models []*SdkModel, cfg *Config) (*SdkDefinitions, error) {
	log := cfg.logger()
	cands := classify(ops, cfg)
	parentOf := assemble(ops, cands, log)

	children := make(map[*OperationDocument][]*OperationDocument)
	roots := make(map[OperationKind][]*OperationDocument)
	for _, op := range ops {
		if p := parentOf[op]; p != nil {
			children[p] = append(children[p], op)
		} else {
			roots[op.Kind] = append(roots[op.Kind], op)
		}
	}
	b := &builder{cfg: cfg, log: log, children: children}
	defs := &SdkDefinitions{groups: make(map[OperationKind]*SdkGroup)}
	for _, kind := range OperationKinds {
		nodes, err := b.nodes(nil, roots[kind])
		if err != nil {
			return nil, err
		}
		defs.groups[kind] = &SdkGroup{Kind: kind, Definitions: nodes}
	}
	if err := validateChains(ctx, defs, models); err != nil {
		return nil, err
	}
	return defs, nil
}

// classify computes the eligible parents of every operation, most specific
// first: the most matched identifying variables, then the longest parent name
// prefixing the child's, then the earliest declared parent.
func classify(ops []*OperationDocument, cfg *Config) map[*OperationDocument][]candidate {
	cands := make(map[*OperationDocument][]candidate, len(ops))
	for _, child := range ops {
		for _, parent := range ops {
			if !canParent(parent) || parent == child {
				continue
			}
			prefix := namePrefix(child.Name, parent.Name)
			if cfg.RequireNamePrefix && prefix == 0 {
				continue
			}
			matched := matchIdentifying(cfg, parent.Result, child)
			if matched == 0 {
				continue
			}
			cands[child] = append(cands[child], candidate{parent: parent, matched: matched, prefix: prefix})
		}
		slices.SortStableFunc(cands[child], func(a, b candidate) int {
			switch {
			case a.matched != b.matched:
				return b.matched - a.matched
			case a.prefix != b.prefix:
				return b.prefix - a.prefix
			default:
				return a.parent.Index - b.parent.Index
			}
		})
	}
	return cands
}

// canParent reports whether other operations may chain from op's result.
func canParent(op *OperationDocument) bool {
	if op.Kind != OperationQuery || op.Field == "" || op.Result == nil || op.ResultType.IsList() {
		return false
	}
	k := op.Result.Type.Kind
	return k == KindObject || k == KindInterface
}

// namePrefix returns the length of parent's name when the child's name
// starts with it at a word boundary, and zero otherwise.
func namePrefix(child, parent string) int {
	c, p := strcase.ToLowerCamel(child), strcase.ToLowerCamel(parent)
	if len(c) <= len(p) || !strings.HasPrefix(c, p) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c[len(p):])
	if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
		return 0
	}
	return len(p)
}

// matchIdentifying returns the number of identifying variables of child that
// the model can supply. In name mode every identifying variable must match.
func matchIdentifying(cfg *Config, m *SdkModel, child *OperationDocument) int {
	matched := 0
	for _, v := range child.Variables {
		if !v.Identifying {
			continue
		}
		if f := m.Field(v.Name); f != nil && f.Type.Equal(v.Type) {
			matched++
		} else if cfg.Identify == IdentifyByName {
			return 0
		}
	}
	return matched
}

// assemble picks the parent of every operation in document order. A
// candidate whose ancestry already contains the child is skipped.
func assemble(ops []*OperationDocument, cands map[*OperationDocument][]candidate, log *slog.Logger) map[*OperationDocument]*OperationDocument {
	parentOf := make(map[*OperationDocument]*OperationDocument, len(ops))
	for _, op := range ops {
		for _, c := range cands[op] {
			if descendsFrom(c.parent, op, parentOf) {
				log.Debug("chain candidate skipped", "operation", op.Name, "parent", c.parent.Name, "reason", "cycle")
				continue
			}
			parentOf[op] = c.parent
			log.Debug("operation chained", "operation", op.Name, "parent", c.parent.Name, "matched", c.matched)
			break
		}
	}
	return parentOf
}

func descendsFrom(op, ancestor *OperationDocument, parentOf map[*OperationDocument]*OperationDocument) bool {
	for p := op; p != nil; p = parentOf[p] {
		if p == ancestor {
			return true
		}
	}
	return false
}

// builder creates the nodes of the tree top-down.
type builder struct {
	cfg      *Config
	log      *slog.Logger
	children map[*OperationDocument][]*OperationDocument
}

func (b *builder) nodes(parent *SdkDefinition, ops []*OperationDocument) ([]*SdkDefinition, error) {
	var (
		nodes []*SdkDefinition
		owner = make(map[string]string, len(ops))
	)
	for _, op := range ops {
		name, err := b.callName(parent, op, owner)
		if err != nil {
			return nil, err
		}
		owner[name] = op.Name
		d := &SdkDefinition{
			Name:      name,
			Operation: op,
			Model:     op.Result,
			parent:    parent,
		}
		ancestors := d.Ancestors()
		for _, a := range ancestors {
			d.Path = append(d.Path, modelName(a))
		}
		d.Args, d.Inherited = ElideArguments(ancestors, op)
		if d.Children, err = b.nodes(d, b.children[op]); err != nil {
			return nil, err
		}
		nodes = append(nodes, d)
	}
	return nodes, nil
}

// callName returns the sibling-unique call name of op. owner maps the names
// already taken to the operations holding them.
func (b *builder) callName(parent *SdkDefinition, op *OperationDocument, owner map[string]string) (string, error) {
	base := strcase.ToLowerCamel(op.Name)
	under := ""
	if parent != nil {
		under = parent.Name
		if n := namePrefix(op.Name, parent.Operation.Name); n > 0 {
			// A remainder like "2" is not an identifier.
			if r, _ := utf8.DecodeRuneInString(base[n:]); unicode.IsLetter(r) {
				base = strcase.ToLowerCamel(base[n:])
			}
		}
	}
	if b.cfg.MaxNameLength > 0 && len(base) > b.cfg.MaxNameLength {
		return "", NewChainNameConflictError(under, base, fmt.Sprintf("call name exceeds %d characters", b.cfg.MaxNameLength), op.Name)
	}
	prev, taken := owner[base]
	if !taken {
		return base, nil
	}
	if b.cfg.NameSuffixLimit == 0 {
		return "", NewChainNameConflictError(under, base, "name disambiguation is disabled", prev, op.Name)
	}
	for i := 2; i <= b.cfg.NameSuffixLimit; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if b.cfg.MaxNameLength > 0 && len(name) > b.cfg.MaxNameLength {
			break
		}
		if _, ok := owner[name]; !ok {
			b.log.Info("chain call renamed", "operation", op.Name, "parent", under, "name", base, "renamed", name, "conflicts_with", prev)
			return name, nil
		}
	}
	return "", NewChainNameConflictError(under, base, "name disambiguation exhausted", prev, op.Name)
}

func modelName(d *SdkDefinition) string {
	if d.Model == nil {
		return d.Operation.ResultType.NamedType()
	}
	return d.Model.Name
}

// ElideArguments splits the variables of op into the ones callers supply and
// the ones inherited from ancestors, root first. An identifying variable is
// inherited from the nearest ancestor whose result model carries a field
// with the same name and type.
func ElideArguments(ancestors []*SdkDefinition, op *OperationDocument) ([]*Variable, []*InheritedArg) {
	var (
		args      []*Variable
		inherited []*InheritedArg
	)
	for _, v := range op.Variables {
		if in := inherit(ancestors, v); in != nil {
			inherited = append(inherited, in)
			continue
		}
		args = append(args, v)
	}
	return args, inherited
}

func inherit(ancestors []*SdkDefinition, v *Variable) *InheritedArg {
	if !v.Identifying {
		return nil
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		a := ancestors[i]
		if f := a.Model.Field(v.Name); f != nil && f.Type.Equal(v.Type) {
			return &InheritedArg{Variable: v, From: a, Field: f}
		}
	}
	return nil
}

// validateChains checks the postconditions of the tree.
func validateChains(ctx *PluginContext, defs *SdkDefinitions, models []*SdkModel) error {
	known := make(map[*SdkModel]bool, len(models))
	for _, m := range models {
		known[m] = true
	}
	for _, g := range defs.Groups() {
		if err := uniqueSiblings("", g.Definitions); err != nil {
			return err
		}
	}
	return defs.Walk(func(d *SdkDefinition) error {
		op := d.Operation
		t := ctx.Type(op.ResultType.NamedType())
		if t == nil {
			return NewUnresolvedModelReferenceError(op.Name, op.ResultType.NamedType(), op.Field, "result type is not defined")
		}
		if t.Kind.IsComposite() && (d.Model == nil || !known[d.Model]) {
			return NewUnresolvedModelReferenceError(op.Name, t.Name, op.Field, "result model is not defined")
		}
		for _, in := range d.Inherited {
			if in.From == nil || in.Field == nil || !known[in.From.Model] {
				return NewUnresolvedModelReferenceError(op.Name, "", in.Variable.Name, "inherited argument has no source field")
			}
		}
		if err := uniqueSiblings(d.Name, d.Children); err != nil {
			return err
		}
		for _, a := range d.Ancestors() {
			if a.Operation == op {
				return NewValidationError(op.Name, "chain node is its own ancestor")
			}
		}
		return nil
	})
}

func uniqueSiblings(parent string, nodes []*SdkDefinition) error {
	owner := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if prev, ok := owner[n.Name]; ok {
			return NewChainNameConflictError(parent, n.Name, "sibling call names collide", prev, n.Operation.Name)
		}
		owner[n.Name] = n.Operation.Name
	}
	return nil
}
