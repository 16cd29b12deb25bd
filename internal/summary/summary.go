// Package summary condenses a resolved schema model into the flat rows a
// report renders: the declared version, per-category declaration counts,
// the namespace table, and the embedded change history.
package summary

import (
	"strconv"

	"github.com/ocxtools/xsdmodel/internal/model"
)

// Row is one label and value pair of the summary table.
type Row struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// NamespaceRow is one prefix binding of the summary's namespace table.
type NamespaceRow struct {
	Prefix    string `yaml:"prefix"`
	Namespace string `yaml:"namespace"`
}

// SchemaSummary is the condensed report of one resolved schema model.
type SchemaSummary struct {
	Version    string               `yaml:"version"`
	Rows       []Row                `yaml:"rows"`
	Namespaces []NamespaceRow       `yaml:"namespaces"`
	Changes    []model.SchemaChange `yaml:"changes,omitempty"`
}

// Summarize builds the summary of a resolved model. Count rows follow the
// fixed category display order; namespaces keep document declaration order.
func Summarize(m *model.SchemaModel) *SchemaSummary {
	out := &SchemaSummary{
		Version: m.Version,
		Rows:    make([]Row, 0, len(model.SummaryCategories)+1),
		Changes: m.Changes,
	}

	out.Rows = append(out.Rows, Row{Label: "Schema Version", Value: m.Version})
	for _, cat := range model.SummaryCategories {
		out.Rows = append(out.Rows, Row{
			Label: string(cat),
			Value: strconv.Itoa(m.Count(cat)),
		})
	}

	for _, b := range m.Namespaces.Bindings() {
		out.Namespaces = append(out.Namespaces, NamespaceRow{
			Prefix:    b.Prefix,
			Namespace: b.Namespace.String(),
		})
	}

	return out
}
