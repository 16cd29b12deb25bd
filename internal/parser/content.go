package parser

import (
	xsderrors "github.com/ocxtools/xsdmodel/errors"
	"github.com/ocxtools/xsdmodel/internal/model"
	"github.com/ocxtools/xsdmodel/internal/registry"
	"github.com/ocxtools/xsdmodel/internal/xmltree"
)

// parseModelGroup parses an xs:sequence, xs:choice, or xs:all compositor with
// its particles in document order. Nested compositors stay nested; the
// content-model walker flattens them during resolution.
func (p *Parser) parseModelGroup(node xmltree.Node, from model.QName) (*registry.ModelGroup, error) {
	group := &registry.ModelGroup{}
	switch node.LocalName() {
	case "choice":
		group.Kind = registry.GroupChoice
	case "all":
		group.Kind = registry.GroupAll
	default:
		group.Kind = registry.GroupSequence
	}

	var err error
	if group.Occurs, err = p.parseGroupOccurs(node, from); err != nil {
		return nil, err
	}

	for _, child := range node.Children() {
		if child.Namespace() != model.XSDNamespace.String() {
			continue
		}
		switch child.LocalName() {
		case "element":
			particle, err := p.parseElementParticle(child, from)
			if err != nil {
				return nil, err
			}
			group.Particles = append(group.Particles, particle)
		case "group":
			ref, err := p.parseGroupRef(child, from)
			if err != nil {
				return nil, err
			}
			group.Particles = append(group.Particles, ref)
		case "sequence", "choice", "all":
			nested, err := p.parseModelGroup(child, from)
			if err != nil {
				return nil, err
			}
			group.Particles = append(group.Particles, nested)
		}
	}

	return group, nil
}

func (p *Parser) parseElementParticle(node xmltree.Node, from model.QName) (*registry.ElementParticle, error) {
	particle := &registry.ElementParticle{
		Name: node.Attr("name"),
		Doc:  node.Documentation(),
	}

	var err error
	if particle.Ref, err = p.typeRef(node.Attr("ref"), from.String()); err != nil {
		return nil, err
	}
	if particle.Type, err = p.typeRef(node.Attr("type"), from.String()); err != nil {
		return nil, err
	}
	if particle.Name == "" && particle.Ref.IsZero() {
		return nil, &xsderrors.MalformedDeclaration{
			Name:   from.String(),
			Field:  "element",
			Reason: "has neither a name nor a reference",
		}
	}
	if particle.Cardinality, err = p.parseCardinality(node, from); err != nil {
		return nil, err
	}

	if particle.Type.IsZero() && particle.Ref.IsZero() {
		inline, ok := node.FirstChildNamed("complexType")
		if !ok {
			return nil, &xsderrors.MalformedDeclaration{
				Name:   from.String(),
				Field:  particle.Name,
				Reason: "has no type reference",
			}
		}
		ct, err := p.parseComplexTypeBody(inline, from)
		if err != nil {
			return nil, err
		}
		if !ct.Base.IsZero() {
			particle.Type = ct.Base
		}
	}

	return particle, nil
}

func (p *Parser) parseGroupRef(node xmltree.Node, from model.QName) (*registry.GroupRef, error) {
	lexical := node.Attr("ref")
	if lexical == "" {
		return nil, &xsderrors.MalformedDeclaration{
			Name:   from.String(),
			Field:  "group",
			Reason: "has no reference",
		}
	}
	ref, err := p.typeRef(lexical, from.String())
	if err != nil {
		return nil, err
	}
	occurs, err := p.parseGroupOccurs(node, from)
	if err != nil {
		return nil, err
	}
	return &registry.GroupRef{Ref: ref, Occurs: occurs}, nil
}

// parseGroupOccurs reads the occurrence bounds declared on a compositor or
// group reference, recording which of the two were actually written.
func (p *Parser) parseGroupOccurs(node xmltree.Node, from model.QName) (registry.GroupOccurs, error) {
	var out registry.GroupOccurs
	if value := node.Attr("minOccurs"); value != "" {
		occ, ok := model.ParseOccurs(value, 1)
		if !ok {
			return out, &xsderrors.MalformedDeclaration{
				Name:   from.String(),
				Field:  "minOccurs",
				Reason: "is not a non-negative integer",
			}
		}
		out.Min, out.HasMin = occ, true
	}
	if value := node.Attr("maxOccurs"); value != "" {
		occ, ok := model.ParseOccurs(value, 1)
		if !ok {
			return out, &xsderrors.MalformedDeclaration{
				Name:   from.String(),
				Field:  "maxOccurs",
				Reason: "is not a non-negative integer or unbounded",
			}
		}
		out.Max, out.HasMax = occ, true
	}
	return out, nil
}

// parseCardinality reads minOccurs and maxOccurs, defaulting both to one.
func (p *Parser) parseCardinality(node xmltree.Node, from model.QName) (model.Cardinality, error) {
	min, ok := model.ParseOccurs(node.Attr("minOccurs"), 1)
	if !ok {
		return model.Cardinality{}, &xsderrors.MalformedDeclaration{
			Name:   from.String(),
			Field:  "minOccurs",
			Reason: "is not a non-negative integer",
		}
	}
	max, ok := model.ParseOccurs(node.Attr("maxOccurs"), 1)
	if !ok {
		return model.Cardinality{}, &xsderrors.MalformedDeclaration{
			Name:   from.String(),
			Field:  "maxOccurs",
			Reason: "is not a non-negative integer or unbounded",
		}
	}
	card := model.Cardinality{Min: min, Max: max}
	if !card.IsValid() {
		return model.Cardinality{}, &xsderrors.MalformedDeclaration{
			Name:   from.String(),
			Field:  "maxOccurs",
			Reason: "is smaller than minOccurs",
		}
	}
	return card, nil
}
