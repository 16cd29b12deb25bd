package model

// Category classifies a top-level schema declaration.
type Category string

const (
	CategoryElement        Category = "element"
	CategoryAttribute      Category = "attribute"
	CategoryComplexType    Category = "complexType"
	CategorySimpleType     Category = "simpleType"
	CategoryAttributeGroup Category = "attributeGroup"
	CategoryGroup          Category = "group"
)

// SummaryCategories lists the categories reported by the schema summary,
// in stable display order.
var SummaryCategories = []Category{
	CategoryElement,
	CategoryAttribute,
	CategoryComplexType,
	CategorySimpleType,
	CategoryAttributeGroup,
}

// SchemaChange is one entry of the schema's embedded change history.
type SchemaChange struct {
	Version     string
	Author      string
	Date        string
	Description string
}

// VersionUnknown marks a schema that does not declare its version.
const VersionUnknown = "Missing"

// SchemaModel is one fully resolved schema version: the namespace table,
// every global element with its complete inherited shape, the substitution
// closure, and per-category declaration counts. A model is never mutated
// after the resolution pass completes, so concurrent readers are safe.
type SchemaModel struct {
	Namespaces    *NamespaceTable
	Version       string
	Changes       []SchemaChange
	Substitutions map[QName][]QName

	elements map[QName]*GlobalElementDecl
	order    []QName
	counts   map[Category]int
}

// NewSchemaModel returns an empty model owning the given namespace table.
func NewSchemaModel(namespaces *NamespaceTable) *SchemaModel {
	return &SchemaModel{
		Namespaces:    namespaces,
		Version:       VersionUnknown,
		Substitutions: make(map[QName][]QName),
		elements:      make(map[QName]*GlobalElementDecl),
		counts:        make(map[Category]int),
	}
}

// AddElement records a resolved global element, preserving declaration order.
func (m *SchemaModel) AddElement(decl *GlobalElementDecl) {
	if _, exists := m.elements[decl.Name]; !exists {
		m.order = append(m.order, decl.Name)
	}
	m.elements[decl.Name] = decl
}

// Element returns the resolved global element with the given qualified name.
func (m *SchemaModel) Element(name QName) (*GlobalElementDecl, bool) {
	decl, ok := m.elements[name]
	return decl, ok
}

// Elements returns all resolved global elements in declaration order.
func (m *SchemaModel) Elements() []*GlobalElementDecl {
	out := make([]*GlobalElementDecl, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.elements[name])
	}
	return out
}

// ElementNames returns the qualified names of all global elements in
// declaration order.
func (m *SchemaModel) ElementNames() []QName {
	out := make([]QName, len(m.order))
	copy(out, m.order)
	return out
}

// SetCount records the number of top-level declarations in a category.
func (m *SchemaModel) SetCount(cat Category, n int) {
	m.counts[cat] = n
}

// Count returns the number of top-level declarations in a category.
func (m *SchemaModel) Count(cat Category) int {
	return m.counts[cat]
}

// SubstitutesFor returns the transitive set of elements substitutable for
// the given head, in declaration order. Empty when the element heads no
// substitution group.
func (m *SchemaModel) SubstitutesFor(head QName) []QName {
	subs := m.Substitutions[head]
	out := make([]QName, len(subs))
	copy(out, subs)
	return out
}
