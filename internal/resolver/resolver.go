// Package resolver turns the raw declarations of a registry into a fully
// resolved schema model. Every global element gets its complete shape: the
// effective attribute set and child list after walking the derivation chain,
// expanding attribute and model groups, and following element references.
// Type resolution is memoized per qualified name, so shared base types are
// walked once no matter how many elements derive from them.
package resolver

import (
	xsderrors "github.com/ocxtools/xsdmodel/errors"
	"github.com/ocxtools/xsdmodel/internal/model"
	"github.com/ocxtools/xsdmodel/internal/registry"
)

// shape is the resolved body of a complex type: the effective attribute set
// in precedence order and the child elements in declaration order.
type shape struct {
	attrs    []model.AttributeDecl
	children []model.ChildElementDecl
}

func (s *shape) clone() *shape {
	out := &shape{
		attrs:    make([]model.AttributeDecl, len(s.attrs)),
		children: make([]model.ChildElementDecl, len(s.children)),
	}
	copy(out.attrs, s.attrs)
	copy(out.children, s.children)
	return out
}

var emptyShape = &shape{}

type resolver struct {
	reg *registry.Registry

	types     map[model.QName]*shape
	resolving map[model.QName]bool
	path      []model.QName
}

// Resolve builds the schema model from a fully collected registry. The
// first unresolved reference, derivation cycle, or malformed declaration
// aborts the build; a model is never returned half resolved.
func Resolve(reg *registry.Registry) (*model.SchemaModel, error) {
	r := &resolver{
		reg:       reg,
		types:     make(map[model.QName]*shape),
		resolving: make(map[model.QName]bool),
	}

	out := model.NewSchemaModel(reg.Namespaces)
	for _, name := range reg.Names(model.CategoryElement) {
		decl, _ := reg.Element(name)
		resolved, err := r.element(decl)
		if err != nil {
			return nil, err
		}
		out.AddElement(resolved)
	}

	subs, err := r.substitutions()
	if err != nil {
		return nil, err
	}
	out.Substitutions = subs

	for _, cat := range []model.Category{
		model.CategoryElement,
		model.CategoryAttribute,
		model.CategoryComplexType,
		model.CategorySimpleType,
		model.CategoryAttributeGroup,
		model.CategoryGroup,
	} {
		out.SetCount(cat, reg.Count(cat))
	}

	return out, nil
}

func (r *resolver) element(decl *registry.Element) (*model.GlobalElementDecl, error) {
	out := &model.GlobalElementDecl{
		Name:              decl.Name,
		Prefix:            decl.Prefix,
		Type:              decl.Type,
		Abstract:          decl.Abstract,
		SubstitutionGroup: decl.SubstitutionGroup.Name(),
		Description:       decl.Doc,
	}

	var body *shape
	var err error
	switch {
	case decl.Inline != nil:
		body, err = r.typeBody(decl.Inline)
	case !decl.Type.IsZero():
		body, err = r.typeShape(decl.Type, decl.Name)
	default:
		body = emptyShape
	}
	if err != nil {
		return nil, err
	}

	out.Attributes = append([]model.AttributeDecl(nil), body.attrs...)
	out.Children = append([]model.ChildElementDecl(nil), body.children...)
	return out, nil
}

// typeShape resolves a named type reference to its shape. Builtin types and
// simple types have no attributes or children. The resolving set catches
// derivation cycles; the path stack names every participant in the error.
func (r *resolver) typeShape(ref model.TypeRef, from model.QName) (*shape, error) {
	if ref.IsBuiltin() {
		return emptyShape, nil
	}
	name := ref.Name()
	if cached, ok := r.types[name]; ok {
		return cached, nil
	}
	if r.resolving[name] {
		return nil, &xsderrors.CyclicType{Name: name.String(), Chain: r.chain(name)}
	}

	ct, ok := r.reg.ComplexType(name)
	if !ok {
		if _, simple := r.reg.SimpleType(name); simple {
			r.types[name] = emptyShape
			return emptyShape, nil
		}
		return nil, &xsderrors.UnresolvedReference{
			Ref:      name.String(),
			Category: string(model.CategoryComplexType),
			From:     from.String(),
		}
	}

	r.resolving[name] = true
	r.path = append(r.path, name)
	body, err := r.typeBody(ct)
	r.path = r.path[:len(r.path)-1]
	delete(r.resolving, name)
	if err != nil {
		return nil, err
	}

	r.types[name] = body
	return body, nil
}

// chain renders the cycle participants from the first occurrence of name,
// closed by repeating it.
func (r *resolver) chain(name model.QName) []string {
	start := 0
	for i, node := range r.path {
		if node == name {
			start = i
			break
		}
	}
	chain := make([]string, 0, len(r.path)-start+1)
	for _, node := range r.path[start:] {
		chain = append(chain, node.String())
	}
	return append(chain, name.String())
}

// typeBody resolves a complex type body against its base. An extension
// inherits the base shape and adds to it; a restriction inherits the base
// attribute set with in-place narrowing, and restates the content model.
func (r *resolver) typeBody(ct *registry.ComplexType) (*shape, error) {
	base := emptyShape
	if !ct.Base.IsZero() {
		resolved, err := r.typeShape(ct.Base, ct.Name)
		if err != nil {
			return nil, err
		}
		base = resolved
	}

	body := base.clone()

	own, err := r.attrEntries(ct.AttrItems, ct.Name, nil)
	if err != nil {
		return nil, err
	}
	for _, entry := range own {
		body.attrs = mergeAttr(body.attrs, entry)
	}

	if ct.Content != nil {
		children, err := r.walkContent(ct.Content, false, registry.GroupOccurs{}, ct.Name, nil)
		if err != nil {
			return nil, err
		}
		if ct.Derivation == registry.DerivationRestriction {
			// A restriction restates the full content model of its base.
			body.children = children
		} else {
			body.children = append(body.children, children...)
		}
	}

	return body, nil
}

// attrEntry is one step of the attribute merge: a resolved declaration or a
// prohibition removing an inherited one.
type attrEntry struct {
	decl       model.AttributeDecl
	prohibited bool
}

// mergeAttr applies one entry to an attribute set. A matching name is
// replaced in place so the inherited position is kept; a prohibition
// removes the match; anything else appends.
func mergeAttr(attrs []model.AttributeDecl, entry attrEntry) []model.AttributeDecl {
	for i, existing := range attrs {
		if existing.Name != entry.decl.Name {
			continue
		}
		if entry.prohibited {
			return append(attrs[:i], attrs[i+1:]...)
		}
		attrs[i] = entry.decl
		return attrs
	}
	if entry.prohibited {
		return attrs
	}
	return append(attrs, entry.decl)
}

// attrEntries resolves attribute items in document order, expanding
// attribute group references inline. The seen set guards against attribute
// groups referencing each other in a loop.
func (r *resolver) attrEntries(items []registry.AttrItem, from model.QName, seen map[model.QName]bool) ([]attrEntry, error) {
	var out []attrEntry
	for _, item := range items {
		switch it := item.(type) {
		case registry.AttrDecl:
			entry, err := r.attrDecl(it, from)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		case registry.AttrGroupRef:
			group, err := r.reg.RequireAttributeGroup(it.Ref, from)
			if err != nil {
				return nil, err
			}
			if seen == nil {
				seen = make(map[model.QName]bool)
			}
			if seen[group.Name] {
				return nil, &xsderrors.CyclicType{
					Name:  group.Name.String(),
					Chain: []string{from.String(), group.Name.String(), group.Name.String()},
				}
			}
			seen[group.Name] = true
			nested, err := r.attrEntries(group.AttrItems, group.Name, seen)
			if err != nil {
				return nil, err
			}
			delete(seen, group.Name)
			out = append(out, nested...)
		}
	}
	return out, nil
}

func (r *resolver) attrDecl(it registry.AttrDecl, from model.QName) (attrEntry, error) {
	if !it.Ref.IsZero() {
		global, ok := r.reg.Attribute(it.Ref.Name())
		if !ok {
			return attrEntry{}, &xsderrors.UnresolvedReference{
				Ref:      it.Ref.Name().String(),
				Category: string(model.CategoryAttribute),
				From:     from.String(),
			}
		}
		decl := model.AttributeDecl{
			Name:        global.Name.Local,
			Namespace:   global.Name.Namespace,
			Type:        global.Type,
			TypeSummary: global.TypeSummary,
			Default:     firstNonEmpty(it.Default, global.Default),
			Fixed:       firstNonEmpty(it.Fixed, global.Fixed),
			Use:         it.Use,
			Description: firstNonEmpty(it.Doc, global.Doc),
			Enumeration: global.Enumeration,
		}
		return attrEntry{decl: decl, prohibited: it.Use == model.UseProhibited}, nil
	}

	decl := model.AttributeDecl{
		Name:        it.Name,
		Type:        it.Type,
		TypeSummary: it.TypeSummary,
		Default:     it.Default,
		Fixed:       it.Fixed,
		Use:         it.Use,
		Description: it.Doc,
		Enumeration: it.Enumeration,
	}
	if decl.Enumeration == nil && !it.Type.IsZero() && !it.Type.IsBuiltin() {
		if st, ok := r.reg.SimpleType(it.Type.Name()); ok {
			decl.Enumeration = st.Enumeration
		}
	}
	return attrEntry{decl: decl, prohibited: it.Use == model.UseProhibited}, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// walkContent flattens a content model tree into the ordered child list.
// A child is marked as a choice member exactly when its immediate enclosing
// compositor is an xs:choice. The occurs argument carries bounds declared on
// that compositor or on the group reference that pulled the content in; a
// declared bound replaces the particle's own, so every member of an
// <xs:choice minOccurs="0"> resolves as optional. Nested compositors start
// over: only the closest one decides. The seen set guards model group
// reference loops.
func (r *resolver) walkContent(node registry.ContentNode, inChoice bool, occurs registry.GroupOccurs, from model.QName, seen map[model.QName]bool) ([]model.ChildElementDecl, error) {
	switch n := node.(type) {
	case *registry.ModelGroup:
		memberOfChoice := n.Kind == registry.GroupChoice
		bounds := n.Occurs.Or(occurs)
		var out []model.ChildElementDecl
		for _, particle := range n.Particles {
			inner := bounds
			if _, nested := particle.(*registry.ModelGroup); nested {
				inner = registry.GroupOccurs{}
			}
			children, err := r.walkContent(particle, memberOfChoice, inner, from, seen)
			if err != nil {
				return nil, err
			}
			out = append(out, children...)
		}
		return out, nil

	case *registry.ElementParticle:
		child, err := r.childElement(n, inChoice, from)
		if err != nil {
			return nil, err
		}
		if occurs.HasMin {
			child.Cardinality.Min = occurs.Min
		}
		if occurs.HasMax {
			child.Cardinality.Max = occurs.Max
		}
		return []model.ChildElementDecl{child}, nil

	case *registry.GroupRef:
		group, err := r.reg.RequireGroup(n.Ref, from)
		if err != nil {
			return nil, err
		}
		if seen == nil {
			seen = make(map[model.QName]bool)
		}
		if seen[group.Name] {
			return nil, &xsderrors.CyclicType{
				Name:  group.Name.String(),
				Chain: []string{from.String(), group.Name.String(), group.Name.String()},
			}
		}
		if group.Content == nil {
			return nil, nil
		}
		seen[group.Name] = true
		out, err := r.walkContent(group.Content, inChoice, n.Occurs.Or(occurs), group.Name, seen)
		delete(seen, group.Name)
		return out, err
	}
	return nil, nil
}

// childElement resolves one element particle. A particle declared through
// ref= takes its name, type, and documentation from the referenced global
// element but keeps the referencing particle's cardinality.
func (r *resolver) childElement(p *registry.ElementParticle, inChoice bool, from model.QName) (model.ChildElementDecl, error) {
	child := model.ChildElementDecl{
		Name:        p.Name,
		Type:        p.Type,
		Cardinality: p.Cardinality,
		IsChoice:    inChoice,
		Description: p.Doc,
	}

	if !p.Ref.IsZero() {
		target, ok := r.reg.Element(p.Ref.Name())
		if !ok {
			return model.ChildElementDecl{}, &xsderrors.UnresolvedReference{
				Ref:      p.Ref.Name().String(),
				Category: string(model.CategoryElement),
				From:     from.String(),
			}
		}
		child.Name = target.Name.Local
		child.Type = target.Type
		child.RefTarget = target.Name
		if child.Description == "" {
			child.Description = target.Doc
		}
	}

	return child, nil
}
