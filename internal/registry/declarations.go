package registry

import "github.com/ocxtools/xsdmodel/internal/model"

// Derivation identifies how a complex type derives from its base.
type Derivation uint8

const (
	DerivationNone Derivation = iota
	DerivationExtension
	DerivationRestriction
)

// Element is a raw top-level xs:element declaration, collected before any
// body resolution takes place.
type Element struct {
	Name              model.QName
	Prefix            string
	Type              model.TypeRef
	Abstract          bool
	SubstitutionGroup model.TypeRef
	Doc               string
	// Inline carries an anonymous complexType declared inside the element.
	Inline *ComplexType
}

// ComplexType is a raw top-level (or inline) xs:complexType declaration.
// AttrItems preserves the document order of attribute and attributeGroup
// declarations; the order decides override precedence during resolution.
type ComplexType struct {
	Name       model.QName
	Abstract   bool
	Mixed      bool
	Doc        string
	Derivation Derivation
	Base       model.TypeRef
	AttrItems  []AttrItem
	Content    ContentNode
}

// SimpleType is a raw top-level xs:simpleType declaration. Summary renders
// the inline restriction or list for display ("Restriction of type xs:string").
type SimpleType struct {
	Name        model.QName
	Doc         string
	Base        model.TypeRef
	Summary     string
	Enumeration *model.Enumeration
}

// Attribute is a raw top-level xs:attribute declaration.
type Attribute struct {
	Name        model.QName
	Type        model.TypeRef
	TypeSummary string
	Default     string
	Fixed       string
	Doc         string
	Enumeration *model.Enumeration
}

// AttributeGroup is a raw top-level xs:attributeGroup declaration.
type AttributeGroup struct {
	Name      model.QName
	Doc       string
	AttrItems []AttrItem
}

// Group is a raw top-level xs:group declaration wrapping one model group.
type Group struct {
	Name    model.QName
	Doc     string
	Content ContentNode
}

// AttrItem is one entry of a type's attribute declaration list: either a
// local attribute declaration (possibly by reference) or an attributeGroup
// reference expanded at resolution time.
type AttrItem interface {
	attrItem()
}

// AttrDecl is a local attribute declaration or reference.
type AttrDecl struct {
	Name        string
	Ref         model.TypeRef
	Type        model.TypeRef
	TypeSummary string
	Use         model.Use
	Default     string
	Fixed       string
	Doc         string
	Enumeration *model.Enumeration
}

func (AttrDecl) attrItem() {}

// AttrGroupRef references a named attribute group.
type AttrGroupRef struct {
	Ref model.TypeRef
}

func (AttrGroupRef) attrItem() {}
