// Package xsdmodel resolves XML Schema documents into a queryable model of
// their global elements. Each element carries its complete resolved shape:
// the effective attribute set and ordered child elements after walking
// extension and restriction chains, expanding attribute and model groups,
// and following element references. The package also computes substitution
// group closures, condenses a model into a summary report, and compares two
// schema versions element by element.
package xsdmodel

import (
	"github.com/ocxtools/xsdmodel/internal/diffengine"
	"github.com/ocxtools/xsdmodel/internal/model"
	"github.com/ocxtools/xsdmodel/internal/summary"
)

// Model and identity types, re-exported so callers never import internal
// packages.
type (
	SchemaModel      = model.SchemaModel
	GlobalElement    = model.GlobalElementDecl
	Attribute        = model.AttributeDecl
	ChildElement     = model.ChildElementDecl
	QName            = model.QName
	TypeRef          = model.TypeRef
	NamespaceURI     = model.NamespaceURI
	NamespaceTable   = model.NamespaceTable
	NamespaceBinding = model.NamespaceBinding
	Cardinality      = model.Cardinality
	Occurs           = model.Occurs
	Use              = model.Use
	Enumeration      = model.Enumeration
	SchemaChange     = model.SchemaChange
	Category         = model.Category
	AttributeRecord  = model.AttributeRecord
	ChildRecord      = model.ChildRecord
)

// Reporting types.
type (
	Summary      = summary.SchemaSummary
	SummaryRow   = summary.Row
	NamespaceRow = summary.NamespaceRow
	ChangeSet    = diffengine.ChangeSet
	ElementDiff  = diffengine.ElementDiff
	FieldChange  = diffengine.FieldChange
)

const (
	CategoryElement        = model.CategoryElement
	CategoryAttribute      = model.CategoryAttribute
	CategoryComplexType    = model.CategoryComplexType
	CategorySimpleType     = model.CategorySimpleType
	CategoryAttributeGroup = model.CategoryAttributeGroup
	CategoryGroup          = model.CategoryGroup

	UseOptional   = model.UseOptional
	UseRequired   = model.UseRequired
	UseProhibited = model.UseProhibited

	// VersionUnknown marks a schema that does not declare its version.
	VersionUnknown = model.VersionUnknown

	// OccursUnbounded represents maxOccurs="unbounded".
	OccursUnbounded = model.OccursUnbounded
)

// Summarize condenses a resolved model into its summary report.
func Summarize(m *SchemaModel) *Summary {
	return summary.Summarize(m)
}

// Compare reports the element-level differences between two resolved
// models, typically two versions of the same schema.
func Compare(older, newer *SchemaModel) *ChangeSet {
	return diffengine.Diff(older, newer)
}
