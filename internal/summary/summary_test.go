package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocxtools/xsdmodel/internal/model"
)

func TestSummarizeCountsAndVersion(t *testing.T) {
	table := model.NewNamespaceTable("https://example.org/ocx")
	table.Add("ocx", "https://example.org/ocx")

	m := model.NewSchemaModel(table)
	m.Version = "3.0.1"
	m.SetCount(model.CategoryElement, 12)
	m.SetCount(model.CategoryAttribute, 4)
	m.SetCount(model.CategoryComplexType, 9)
	m.SetCount(model.CategorySimpleType, 3)
	m.SetCount(model.CategoryAttributeGroup, 2)
	m.Changes = []model.SchemaChange{
		{Version: "3.0.1", Author: "nv", Date: "2023-05-10", Description: "Initial release."},
	}

	s := Summarize(m)

	require.Len(t, s.Rows, len(model.SummaryCategories)+1)
	assert.Equal(t, Row{Label: "Schema Version", Value: "3.0.1"}, s.Rows[0])
	assert.Equal(t, Row{Label: "element", Value: "12"}, s.Rows[1])
	assert.Equal(t, Row{Label: "attributeGroup", Value: "2"}, s.Rows[5])

	assert.Equal(t, s.Changes, m.Changes)
}

func TestSummarizeDefaultsToUnknownVersion(t *testing.T) {
	m := model.NewSchemaModel(model.NewNamespaceTable(""))
	s := Summarize(m)
	assert.Equal(t, model.VersionUnknown, s.Version)
	assert.Equal(t, Row{Label: "Schema Version", Value: model.VersionUnknown}, s.Rows[0])
}

func TestSummarizeNamespacesKeepOrder(t *testing.T) {
	table := model.NewNamespaceTable("https://example.org/ocx")
	table.Add("xs", model.XSDNamespace)
	table.Add("ocx", "https://example.org/ocx")

	s := Summarize(model.NewSchemaModel(table))

	require.Len(t, s.Namespaces, 3)
	assert.Equal(t, "xml", s.Namespaces[0].Prefix)
	assert.Equal(t, "xs", s.Namespaces[1].Prefix)
	assert.Equal(t, "ocx", s.Namespaces[2].Prefix)
}
