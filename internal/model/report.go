package model

// AttributeRecord is the flat reporting row for one resolved attribute.
// These records are the regression-fixture serialization format: one record
// per attribute, stable field order, no references back into the model.
type AttributeRecord struct {
	Name        string `yaml:"name"`
	Namespace   string `yaml:"namespace"`
	Type        string `yaml:"type"`
	Use         string `yaml:"use"`
	Default     string `yaml:"default,omitempty"`
	Fixed       string `yaml:"fixed,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// ChildRecord is the flat reporting row for one resolved child element.
type ChildRecord struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Cardinality string `yaml:"cardinality"`
	Choice      bool   `yaml:"choice"`
	Global      bool   `yaml:"global"`
	Description string `yaml:"description,omitempty"`
}

// AttributeRecords flattens the resolved attribute set for display and
// golden-fixture comparison.
func (g *GlobalElementDecl) AttributeRecords() []AttributeRecord {
	out := make([]AttributeRecord, 0, len(g.Attributes))
	for _, a := range g.Attributes {
		typeName := a.Type.String()
		if a.TypeSummary != "" {
			typeName = a.TypeSummary
		}
		out = append(out, AttributeRecord{
			Name:        a.Name,
			Namespace:   a.Namespace.String(),
			Type:        typeName,
			Use:         string(a.Use),
			Default:     a.Default,
			Fixed:       a.Fixed,
			Description: a.Description,
		})
	}
	return out
}

// ChildRecords flattens the resolved child sequence for display and
// golden-fixture comparison, preserving declaration order.
func (g *GlobalElementDecl) ChildRecords() []ChildRecord {
	out := make([]ChildRecord, 0, len(g.Children))
	for _, c := range g.Children {
		out = append(out, ChildRecord{
			Name:        c.Name,
			Type:        c.Type.String(),
			Cardinality: c.Cardinality.String(),
			Choice:      c.IsChoice,
			Global:      c.IsGlobalRef(),
			Description: c.Description,
		})
	}
	return out
}
