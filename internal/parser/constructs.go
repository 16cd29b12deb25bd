package parser

import (
	"strings"

	xsderrors "github.com/ocxtools/xsdmodel/errors"
	"github.com/ocxtools/xsdmodel/internal/model"
	"github.com/ocxtools/xsdmodel/internal/registry"
	"github.com/ocxtools/xsdmodel/internal/xmltree"
)

func (p *Parser) collectElement(node xmltree.Node) error {
	name := node.Attr("name")
	if name == "" {
		return nil
	}
	decl := &registry.Element{
		Name:     p.qualify(name),
		Prefix:   p.prefixOf(p.target),
		Abstract: node.Attr("abstract") == "true",
		Doc:      node.Documentation(),
	}

	var err error
	if decl.Type, err = p.typeRef(node.Attr("type"), decl.Name.String()); err != nil {
		return err
	}
	if decl.SubstitutionGroup, err = p.typeRef(node.Attr("substitutionGroup"), decl.Name.String()); err != nil {
		return err
	}

	if inline, ok := node.FirstChildNamed("complexType"); ok {
		ct, err := p.parseComplexTypeBody(inline, decl.Name)
		if err != nil {
			return err
		}
		decl.Inline = ct
		// An untyped element with a derived inline type displays the base
		// type, matching how the reference tables name such elements.
		if decl.Type.IsZero() && !ct.Base.IsZero() {
			decl.Type = ct.Base
		}
	}

	p.reg.AddElement(decl)
	return nil
}

func (p *Parser) collectComplexType(node xmltree.Node) error {
	name := node.Attr("name")
	if name == "" {
		return nil
	}
	ct, err := p.parseComplexTypeBody(node, p.qualify(name))
	if err != nil {
		return err
	}
	p.reg.AddComplexType(ct)
	return nil
}

// parseComplexTypeBody parses a named or anonymous complexType into its raw
// form: derivation method and base, attribute items in document order, and
// the content model tree.
func (p *Parser) parseComplexTypeBody(node xmltree.Node, name model.QName) (*registry.ComplexType, error) {
	ct := &registry.ComplexType{
		Name:     name,
		Abstract: node.Attr("abstract") == "true",
		Mixed:    node.Attr("mixed") == "true",
		Doc:      node.Documentation(),
	}

	for _, child := range node.Children() {
		if child.Namespace() != model.XSDNamespace.String() {
			continue
		}
		switch child.LocalName() {
		case "complexContent", "simpleContent":
			if err := p.parseDerivation(child, ct); err != nil {
				return nil, err
			}
		case "sequence", "choice", "all":
			content, err := p.parseModelGroup(child, name)
			if err != nil {
				return nil, err
			}
			ct.Content = content
		case "group":
			content, err := p.parseGroupRef(child, name)
			if err != nil {
				return nil, err
			}
			ct.Content = content
		case "attribute":
			item, err := p.parseAttrDecl(child, name)
			if err != nil {
				return nil, err
			}
			ct.AttrItems = append(ct.AttrItems, item)
		case "attributeGroup":
			item, err := p.parseAttrGroupRef(child, name)
			if err != nil {
				return nil, err
			}
			if item != nil {
				ct.AttrItems = append(ct.AttrItems, *item)
			}
		}
	}

	return ct, nil
}

// parseDerivation fills ct from a complexContent or simpleContent child:
// the extension or restriction inside contributes the base reference, the
// derived content model, and the derived attribute items.
func (p *Parser) parseDerivation(node xmltree.Node, ct *registry.ComplexType) error {
	for _, child := range node.Children() {
		if child.Namespace() != model.XSDNamespace.String() {
			continue
		}
		switch child.LocalName() {
		case "extension":
			ct.Derivation = registry.DerivationExtension
		case "restriction":
			ct.Derivation = registry.DerivationRestriction
		default:
			continue
		}

		base, err := p.typeRef(child.Attr("base"), ct.Name.String())
		if err != nil {
			return err
		}
		if base.IsZero() {
			return &xsderrors.MalformedDeclaration{
				Name:   ct.Name.String(),
				Field:  child.LocalName(),
				Reason: "has no base type reference",
			}
		}
		ct.Base = base

		for _, inner := range child.Children() {
			if inner.Namespace() != model.XSDNamespace.String() {
				continue
			}
			switch inner.LocalName() {
			case "sequence", "choice", "all":
				content, err := p.parseModelGroup(inner, ct.Name)
				if err != nil {
					return err
				}
				ct.Content = content
			case "group":
				content, err := p.parseGroupRef(inner, ct.Name)
				if err != nil {
					return err
				}
				ct.Content = content
			case "attribute":
				item, err := p.parseAttrDecl(inner, ct.Name)
				if err != nil {
					return err
				}
				ct.AttrItems = append(ct.AttrItems, item)
			case "attributeGroup":
				item, err := p.parseAttrGroupRef(inner, ct.Name)
				if err != nil {
					return err
				}
				if item != nil {
					ct.AttrItems = append(ct.AttrItems, *item)
				}
			}
		}
	}
	return nil
}

func (p *Parser) collectSimpleType(node xmltree.Node) error {
	name := node.Attr("name")
	if name == "" {
		return nil
	}
	st := &registry.SimpleType{
		Name: p.qualify(name),
		Doc:  node.Documentation(),
	}

	if restriction, ok := node.FirstChildNamed("restriction"); ok {
		base, err := p.typeRef(restriction.Attr("base"), st.Name.String())
		if err != nil {
			return err
		}
		st.Base = base
		st.Summary = "Restriction of type " + base.String()
		st.Enumeration = parseEnumeration(restriction)
	}
	if list, ok := node.FirstChildNamed("list"); ok {
		item, err := p.typeRef(list.Attr("itemType"), st.Name.String())
		if err != nil {
			return err
		}
		st.Summary = "List of type " + item.String()
	}
	if union, ok := node.FirstChildNamed("union"); ok {
		members := strings.Fields(union.Attr("memberTypes"))
		st.Summary = "Union of " + strings.Join(members, ", ")
	}

	p.reg.AddSimpleType(st)
	return nil
}

func (p *Parser) collectAttribute(node xmltree.Node) error {
	name := node.Attr("name")
	if name == "" {
		return nil
	}
	qname := p.qualify(name)
	decl := &registry.Attribute{
		Name:    qname,
		Default: node.Attr("default"),
		Fixed:   node.Attr("fixed"),
		Doc:     node.Documentation(),
	}

	var err error
	if decl.Type, err = p.typeRef(node.Attr("type"), qname.String()); err != nil {
		return err
	}
	if decl.Type.IsZero() {
		if summary, base, enum, err := p.parseInlineSimpleType(node, qname); err != nil {
			return err
		} else if summary != "" {
			decl.TypeSummary = summary
			decl.Type = base
			decl.Enumeration = enum
		}
	}

	p.reg.AddAttribute(decl)
	return nil
}

func (p *Parser) collectAttributeGroup(node xmltree.Node) error {
	name := node.Attr("name")
	if name == "" {
		return nil
	}
	group := &registry.AttributeGroup{
		Name: p.qualify(name),
		Doc:  node.Documentation(),
	}

	for _, child := range node.Children() {
		if child.Namespace() != model.XSDNamespace.String() {
			continue
		}
		switch child.LocalName() {
		case "attribute":
			item, err := p.parseAttrDecl(child, group.Name)
			if err != nil {
				return err
			}
			group.AttrItems = append(group.AttrItems, item)
		case "attributeGroup":
			item, err := p.parseAttrGroupRef(child, group.Name)
			if err != nil {
				return err
			}
			if item != nil {
				group.AttrItems = append(group.AttrItems, *item)
			}
		}
	}

	p.reg.AddAttributeGroup(group)
	return nil
}

func (p *Parser) collectGroup(node xmltree.Node) error {
	name := node.Attr("name")
	if name == "" {
		return nil
	}
	group := &registry.Group{
		Name: p.qualify(name),
		Doc:  node.Documentation(),
	}

	for _, child := range node.Children() {
		switch child.LocalName() {
		case "sequence", "choice", "all":
			content, err := p.parseModelGroup(child, group.Name)
			if err != nil {
				return err
			}
			group.Content = content
		}
	}

	p.reg.AddGroup(group)
	return nil
}

// parseAttrDecl parses a local attribute declaration or reference.
func (p *Parser) parseAttrDecl(node xmltree.Node, from model.QName) (registry.AttrDecl, error) {
	item := registry.AttrDecl{
		Name:    node.Attr("name"),
		Use:     model.ParseUse(node.Attr("use")),
		Default: node.Attr("default"),
		Fixed:   node.Attr("fixed"),
		Doc:     node.Documentation(),
	}

	var err error
	if item.Ref, err = p.typeRef(node.Attr("ref"), from.String()); err != nil {
		return item, err
	}
	if item.Type, err = p.typeRef(node.Attr("type"), from.String()); err != nil {
		return item, err
	}
	if item.Name == "" && item.Ref.IsZero() {
		return item, &xsderrors.MalformedDeclaration{
			Name:   from.String(),
			Field:  "attribute",
			Reason: "has neither a name nor a reference",
		}
	}
	if item.Type.IsZero() && item.Ref.IsZero() {
		if summary, base, enum, err := p.parseInlineSimpleType(node, from); err != nil {
			return item, err
		} else if summary != "" {
			item.TypeSummary = summary
			item.Type = base
			item.Enumeration = enum
		}
	}

	return item, nil
}

// parseInlineSimpleType summarizes an anonymous simpleType inside an
// attribute declaration: the restriction base for identity, a display
// summary, and any enumeration values.
func (p *Parser) parseInlineSimpleType(node xmltree.Node, from model.QName) (string, model.TypeRef, *model.Enumeration, error) {
	inline, ok := node.FirstChildNamed("simpleType")
	if !ok {
		return "", model.TypeRef{}, nil, nil
	}
	restriction, ok := inline.FirstChildNamed("restriction")
	if !ok {
		return "", model.TypeRef{}, nil, nil
	}
	base, err := p.typeRef(restriction.Attr("base"), from.String())
	if err != nil {
		return "", model.TypeRef{}, nil, err
	}
	return "Restriction of type " + base.String(), base, parseEnumeration(restriction), nil
}

// parseEnumeration collects enumeration facets with their documentation.
func parseEnumeration(restriction xmltree.Node) *model.Enumeration {
	facets := restriction.ChildrenNamed("enumeration")
	if len(facets) == 0 {
		return nil
	}
	enum := &model.Enumeration{
		Values:       make([]string, 0, len(facets)),
		Descriptions: make([]string, 0, len(facets)),
	}
	for _, facet := range facets {
		enum.Values = append(enum.Values, facet.Attr("value"))
		enum.Descriptions = append(enum.Descriptions, facet.Documentation())
	}
	return enum
}

func (p *Parser) parseAttrGroupRef(node xmltree.Node, from model.QName) (*registry.AttrGroupRef, error) {
	lexical := node.Attr("ref")
	if lexical == "" {
		return nil, nil
	}
	ref, err := p.typeRef(lexical, from.String())
	if err != nil {
		return nil, err
	}
	return &registry.AttrGroupRef{Ref: ref}, nil
}
