package model

// Use is an attribute use constraint.
type Use string

const (
	UseOptional   Use = "optional"
	UseRequired   Use = "required"
	UseProhibited Use = "prohibited"
)

// ParseUse maps a lexical use value to a Use, defaulting to optional.
func ParseUse(value string) Use {
	switch value {
	case string(UseRequired), "req":
		return UseRequired
	case string(UseProhibited):
		return UseProhibited
	default:
		return UseOptional
	}
}

// Enumeration captures the value set of an enumerated attribute type,
// with per-value documentation when the schema carries it.
type Enumeration struct {
	Values       []string
	Descriptions []string
}

// AttributeDecl is one attribute in a resolved effective attribute set.
// Use is never UseProhibited on a resolved declaration: prohibition removes
// the inherited attribute before the set is exposed.
type AttributeDecl struct {
	Name        string
	Namespace   NamespaceURI
	Type        TypeRef
	TypeSummary string
	Default     string
	Fixed       string
	Use         Use
	Description string
	Enumeration *Enumeration
}

// IsEnumerator returns true when the attribute carries enumeration values.
func (a AttributeDecl) IsEnumerator() bool {
	return a.Enumeration != nil && len(a.Enumeration.Values) > 0
}

// ChildElementDecl is one child element in a resolved content model.
// IsChoice marks membership of the immediate enclosing xs:choice group:
// siblings in the same choice group are mutually exclusive alternatives.
type ChildElementDecl struct {
	Name        string
	Type        TypeRef
	Cardinality Cardinality
	IsChoice    bool
	Description string
	// RefTarget is the qualified name of the referenced global element
	// when the child was declared through ref=, zero otherwise.
	RefTarget QName
}

// IsGlobalRef returns true when the child references a global element.
func (c ChildElementDecl) IsGlobalRef() bool {
	return !c.RefTarget.IsZero()
}

// IsMandatory returns true when at least one occurrence is required.
func (c ChildElementDecl) IsMandatory() bool {
	return !c.Cardinality.IsOptional()
}

// GlobalElementDecl is a fully resolved top-level element declaration.
// Attributes and Children are populated exactly once by the content-model
// walker and treated as immutable afterwards. Attributes are unique by name;
// Children preserve declaration order.
type GlobalElementDecl struct {
	Name              QName
	Prefix            string
	Type              TypeRef
	Abstract          bool
	SubstitutionGroup QName
	Description       string
	Attributes        []AttributeDecl
	Children          []ChildElementDecl
}

// HasSubstitutionGroup returns true when the element names a substitution head.
func (g *GlobalElementDecl) HasSubstitutionGroup() bool {
	return !g.SubstitutionGroup.IsZero()
}

// Attribute returns the resolved attribute with the given name, if present.
func (g *GlobalElementDecl) Attribute(name string) (AttributeDecl, bool) {
	for _, a := range g.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeDecl{}, false
}

// Child returns the first resolved child with the given name, if present.
func (g *GlobalElementDecl) Child(name string) (ChildElementDecl, bool) {
	for _, c := range g.Children {
		if c.Name == name {
			return c, true
		}
	}
	return ChildElementDecl{}, false
}
