package registry

import "github.com/ocxtools/xsdmodel/internal/model"

// GroupKind distinguishes the model group compositors.
type GroupKind uint8

const (
	GroupSequence GroupKind = iota
	GroupChoice
	GroupAll
)

// ContentNode is one node of a raw content model: a closed set of variants
// resolved by exhaustive case analysis in the content-model walker.
type ContentNode interface {
	contentNode()
}

// GroupOccurs carries the occurrence bounds declared on a compositor or
// group reference. Declared bounds are tracked separately from defaults:
// only a bound the schema actually writes overrides the cardinality of the
// enclosed particles.
type GroupOccurs struct {
	Min    model.Occurs
	Max    model.Occurs
	HasMin bool
	HasMax bool
}

// Or returns o with every undeclared bound taken from fallback.
func (o GroupOccurs) Or(fallback GroupOccurs) GroupOccurs {
	if !o.HasMin && fallback.HasMin {
		o.Min, o.HasMin = fallback.Min, true
	}
	if !o.HasMax && fallback.HasMax {
		o.Max, o.HasMax = fallback.Max, true
	}
	return o
}

// ModelGroup is an xs:sequence, xs:choice, or xs:all compositor.
// Occurs holds the bounds declared on the compositor itself; they replace
// the bounds of its immediate element particles during resolution.
type ModelGroup struct {
	Kind      GroupKind
	Occurs    GroupOccurs
	Particles []ContentNode
}

func (*ModelGroup) contentNode() {}

// ElementParticle is a child element declaration or reference inside a
// content model.
type ElementParticle struct {
	Name        string
	Ref         model.TypeRef
	Type        model.TypeRef
	Cardinality model.Cardinality
	Doc         string
}

func (*ElementParticle) contentNode() {}

// GroupRef references a named model group, expanded inline at resolution.
// Occurs declared on the reference carry over to the expanded content when
// the group's own compositor declares none.
type GroupRef struct {
	Ref    model.TypeRef
	Occurs GroupOccurs
}

func (*GroupRef) contentNode() {}
