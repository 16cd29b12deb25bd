// Package parser performs the collection pass over one schema document:
// every top-level declaration is parsed into its raw form and registered,
// bodies included, without resolving any reference. Reference resolution is
// the resolver's job, which makes forward references and cross-document
// references (imports) order-independent.
package parser

import (
	"fmt"

	xsderrors "github.com/ocxtools/xsdmodel/errors"
	"github.com/ocxtools/xsdmodel/internal/model"
	"github.com/ocxtools/xsdmodel/internal/registry"
	"github.com/ocxtools/xsdmodel/internal/xmltree"
)

// Reference is one xs:import or xs:include directive of a schema document.
type Reference struct {
	Namespace model.NamespaceURI
	Location  string
}

// DocumentInfo reports what the collection pass found in one document.
type DocumentInfo struct {
	Target     model.NamespaceURI
	Version    string
	Changes    []model.SchemaChange
	References []Reference
}

// Parser collects one schema document into a shared registry.
type Parser struct {
	reg      *registry.Registry
	target   model.NamespaceURI
	bindings map[string]model.NamespaceURI
	location string
}

// ParseDocument collects all top-level declarations of doc into reg.
// The document's namespace declarations are merged into the registry's
// table; the first binding of a prefix wins.
func ParseDocument(reg *registry.Registry, doc *xmltree.Document, location string) (*DocumentInfo, error) {
	root, err := doc.Root()
	if err != nil {
		return nil, fmt.Errorf("schema document %s: %w", location, err)
	}
	if root.Namespace() != model.XSDNamespace.String() || root.LocalName() != "schema" {
		return nil, &xsderrors.MalformedDeclaration{
			Name:   location,
			Field:  "root",
			Reason: "is not an XML Schema document",
		}
	}

	p := &Parser{
		reg:      reg,
		target:   model.NamespaceURI(root.Attr("targetNamespace")),
		bindings: map[string]model.NamespaceURI{"xml": model.XMLNamespace},
		location: location,
	}
	p.collectBindings(root)

	info := &DocumentInfo{Target: p.target, Version: root.Attr("version")}

	for _, child := range root.Children() {
		if child.Namespace() != model.XSDNamespace.String() {
			continue
		}
		switch child.LocalName() {
		case "element":
			if err := p.collectElement(child); err != nil {
				return nil, err
			}
		case "complexType":
			if err := p.collectComplexType(child); err != nil {
				return nil, err
			}
		case "simpleType":
			if err := p.collectSimpleType(child); err != nil {
				return nil, err
			}
		case "attribute":
			if err := p.collectAttribute(child); err != nil {
				return nil, err
			}
		case "attributeGroup":
			if err := p.collectAttributeGroup(child); err != nil {
				return nil, err
			}
		case "group":
			if err := p.collectGroup(child); err != nil {
				return nil, err
			}
		case "import", "include":
			ref := Reference{
				Namespace: model.NamespaceURI(child.Attr("namespace")),
				Location:  child.Attr("schemaLocation"),
			}
			if ref.Location != "" {
				info.References = append(info.References, ref)
			}
		}
	}

	if version := findSchemaVersion(root); version != "" {
		info.Version = version
	}
	info.Changes = findSchemaChanges(root)

	return info, nil
}

// collectBindings walks the whole document for xmlns declarations. Prefixes
// may be declared on any node, not just the root; the first binding of a
// prefix wins, so a root declaration shadows a later inner rebinding.
func (p *Parser) collectBindings(node xmltree.Node) {
	for _, b := range node.NamespaceDecls() {
		if _, bound := p.bindings[b.Prefix]; bound {
			continue
		}
		p.bindings[b.Prefix] = model.NamespaceURI(b.Namespace)
		p.reg.Namespaces.Add(b.Prefix, model.NamespaceURI(b.Namespace))
	}
	for _, child := range node.Children() {
		p.collectBindings(child)
	}
}

// qualify builds the target-namespace qualified name of a declaration.
func (p *Parser) qualify(local string) model.QName {
	return model.QName{Namespace: p.target, Local: local}
}

// typeRef resolves a prefixed lexical reference against the document's
// prefix bindings. An unprefixed reference resolves through the default
// namespace binding, falling back to the target namespace.
func (p *Parser) typeRef(lexical string, from string) (model.TypeRef, error) {
	if lexical == "" {
		return model.TypeRef{}, nil
	}
	prefix, local, hasPrefix := model.SplitPrefixed(lexical)
	if !hasPrefix {
		if ns, ok := p.bindings[""]; ok {
			return model.TypeRef{Local: local, Namespace: ns}, nil
		}
		return model.TypeRef{Local: local, Namespace: p.target}, nil
	}
	ns, ok := p.bindings[prefix]
	if !ok {
		return model.TypeRef{}, &xsderrors.MalformedDeclaration{
			Name:   from,
			Field:  lexical,
			Reason: fmt.Sprintf("uses undeclared namespace prefix %q", prefix),
		}
	}
	return model.TypeRef{Prefix: prefix, Local: local, Namespace: ns}, nil
}

// prefixOf returns a non-default document prefix bound to the namespace.
func (p *Parser) prefixOf(ns model.NamespaceURI) string {
	for prefix, bound := range p.bindings {
		if bound == ns && prefix != "" {
			return prefix
		}
	}
	return ""
}

// findSchemaVersion extracts the declared schema version: the fixed value
// of the attribute declaration named schemaVersion, anywhere in the
// document. Missing versions are informational, not an error.
func findSchemaVersion(root xmltree.Node) string {
	for _, attr := range root.Descendants("attribute") {
		if attr.Attr("name") == "schemaVersion" {
			return attr.Attr("fixed")
		}
	}
	return ""
}

// findSchemaChanges collects the schema's embedded change history entries.
func findSchemaChanges(root xmltree.Node) []model.SchemaChange {
	var changes []model.SchemaChange
	for _, node := range root.Descendants("SchemaChange") {
		change := model.SchemaChange{
			Version: node.Attr("version"),
			Author:  node.Attr("author"),
			Date:    node.Attr("date"),
		}
		if desc, ok := node.FirstChildNamed("Description"); ok {
			change.Description = xmltree.NormalizeSpace(desc.Text())
		} else {
			change.Description = xmltree.NormalizeSpace(node.Text())
		}
		changes = append(changes, change)
	}
	return changes
}
