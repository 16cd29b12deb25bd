// Package registry indexes every top-level schema declaration by qualified
// name and category. It is built in two phases: the parser collects all
// top-level names and bodies in a single linear pass, then the resolver
// queries the registry on demand, so forward references resolve naturally.
// A Registry is owned by one schema model build and is never shared.
package registry

import (
	xsderrors "github.com/ocxtools/xsdmodel/errors"
	"github.com/ocxtools/xsdmodel/internal/model"
)

// Registry holds the raw top-level declarations of one schema snapshot,
// including declarations merged from imported documents.
type Registry struct {
	Namespaces *model.NamespaceTable

	elements        map[model.QName]*Element
	complexTypes    map[model.QName]*ComplexType
	simpleTypes     map[model.QName]*SimpleType
	attributes      map[model.QName]*Attribute
	attributeGroups map[model.QName]*AttributeGroup
	groups          map[model.QName]*Group

	order map[model.Category][]model.QName
}

// New returns an empty registry owning the given namespace table.
func New(namespaces *model.NamespaceTable) *Registry {
	return &Registry{
		Namespaces:      namespaces,
		elements:        make(map[model.QName]*Element),
		complexTypes:    make(map[model.QName]*ComplexType),
		simpleTypes:     make(map[model.QName]*SimpleType),
		attributes:      make(map[model.QName]*Attribute),
		attributeGroups: make(map[model.QName]*AttributeGroup),
		groups:          make(map[model.QName]*Group),
		order:           make(map[model.Category][]model.QName),
	}
}

func (r *Registry) recordOrder(cat model.Category, name model.QName, existed bool) {
	if existed {
		return
	}
	r.order[cat] = append(r.order[cat], name)
}

// AddElement registers a top-level element declaration.
// Re-registration of the same qualified name keeps the first entry, matching
// the first-binding-wins rule of the namespace table.
func (r *Registry) AddElement(decl *Element) {
	if _, exists := r.elements[decl.Name]; exists {
		return
	}
	r.elements[decl.Name] = decl
	r.recordOrder(model.CategoryElement, decl.Name, false)
}

// AddComplexType registers a top-level complexType declaration.
func (r *Registry) AddComplexType(decl *ComplexType) {
	if _, exists := r.complexTypes[decl.Name]; exists {
		return
	}
	r.complexTypes[decl.Name] = decl
	r.recordOrder(model.CategoryComplexType, decl.Name, false)
}

// AddSimpleType registers a top-level simpleType declaration.
func (r *Registry) AddSimpleType(decl *SimpleType) {
	if _, exists := r.simpleTypes[decl.Name]; exists {
		return
	}
	r.simpleTypes[decl.Name] = decl
	r.recordOrder(model.CategorySimpleType, decl.Name, false)
}

// AddAttribute registers a top-level attribute declaration.
func (r *Registry) AddAttribute(decl *Attribute) {
	if _, exists := r.attributes[decl.Name]; exists {
		return
	}
	r.attributes[decl.Name] = decl
	r.recordOrder(model.CategoryAttribute, decl.Name, false)
}

// AddAttributeGroup registers a top-level attributeGroup declaration.
func (r *Registry) AddAttributeGroup(decl *AttributeGroup) {
	if _, exists := r.attributeGroups[decl.Name]; exists {
		return
	}
	r.attributeGroups[decl.Name] = decl
	r.recordOrder(model.CategoryAttributeGroup, decl.Name, false)
}

// AddGroup registers a top-level group declaration.
func (r *Registry) AddGroup(decl *Group) {
	if _, exists := r.groups[decl.Name]; exists {
		return
	}
	r.groups[decl.Name] = decl
	r.recordOrder(model.CategoryGroup, decl.Name, false)
}

// Element looks up a top-level element declaration.
func (r *Registry) Element(name model.QName) (*Element, bool) {
	decl, ok := r.elements[name]
	return decl, ok
}

// ComplexType looks up a top-level complexType declaration.
func (r *Registry) ComplexType(name model.QName) (*ComplexType, bool) {
	decl, ok := r.complexTypes[name]
	return decl, ok
}

// SimpleType looks up a top-level simpleType declaration.
func (r *Registry) SimpleType(name model.QName) (*SimpleType, bool) {
	decl, ok := r.simpleTypes[name]
	return decl, ok
}

// Attribute looks up a top-level attribute declaration.
func (r *Registry) Attribute(name model.QName) (*Attribute, bool) {
	decl, ok := r.attributes[name]
	return decl, ok
}

// AttributeGroup looks up a top-level attributeGroup declaration.
func (r *Registry) AttributeGroup(name model.QName) (*AttributeGroup, bool) {
	decl, ok := r.attributeGroups[name]
	return decl, ok
}

// Group looks up a top-level group declaration.
func (r *Registry) Group(name model.QName) (*Group, bool) {
	decl, ok := r.groups[name]
	return decl, ok
}

// RequireAttributeGroup looks up an attributeGroup or fails with an
// unresolved-reference error naming the referencing declaration.
func (r *Registry) RequireAttributeGroup(ref model.TypeRef, from model.QName) (*AttributeGroup, error) {
	if decl, ok := r.attributeGroups[ref.Name()]; ok {
		return decl, nil
	}
	return nil, &xsderrors.UnresolvedReference{
		Ref:      ref.Name().String(),
		Category: string(model.CategoryAttributeGroup),
		From:     from.String(),
	}
}

// RequireGroup looks up a model group or fails with an unresolved-reference
// error naming the referencing declaration.
func (r *Registry) RequireGroup(ref model.TypeRef, from model.QName) (*Group, error) {
	if decl, ok := r.groups[ref.Name()]; ok {
		return decl, nil
	}
	return nil, &xsderrors.UnresolvedReference{
		Ref:      ref.Name().String(),
		Category: string(model.CategoryGroup),
		From:     from.String(),
	}
}

// Names returns the qualified names registered in a category, in document
// order across all merged schema documents.
func (r *Registry) Names(cat model.Category) []model.QName {
	names := r.order[cat]
	out := make([]model.QName, len(names))
	copy(out, names)
	return out
}

// Count returns the number of declarations registered in a category.
func (r *Registry) Count(cat model.Category) int {
	return len(r.order[cat])
}
