package model

import "strconv"

// Occurs is a content-model occurrence bound.
// OccursUnbounded represents maxOccurs="unbounded".
type Occurs int

// OccursUnbounded is the sentinel for an unbounded upper occurrence bound.
const OccursUnbounded Occurs = -1

// IsUnbounded returns true for the unbounded sentinel.
func (o Occurs) IsUnbounded() bool {
	return o == OccursUnbounded
}

// String renders the bound the way it appears in a schema document.
func (o Occurs) String() string {
	if o.IsUnbounded() {
		return "unbounded"
	}
	return strconv.Itoa(int(o))
}

// ParseOccurs parses a minOccurs/maxOccurs lexical value.
// An empty value yields the supplied default.
func ParseOccurs(value string, def Occurs) (Occurs, bool) {
	if value == "" {
		return def, true
	}
	if value == "unbounded" {
		return OccursUnbounded, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return def, false
	}
	return Occurs(n), true
}

// Cardinality is the (minOccurs, maxOccurs) pair bounding a child element.
type Cardinality struct {
	Min Occurs
	Max Occurs
}

// CardinalityOnce is the default [1, 1] cardinality.
var CardinalityOnce = Cardinality{Min: 1, Max: 1}

// IsValid reports whether min <= max, treating unbounded as no upper limit.
func (c Cardinality) IsValid() bool {
	if c.Min < 0 {
		return false
	}
	return c.Max.IsUnbounded() || c.Min <= c.Max
}

// IsOptional returns true when the lower bound is zero.
func (c Cardinality) IsOptional() bool {
	return c.Min == 0
}

// String renders the cardinality as [min, max].
func (c Cardinality) String() string {
	return "[" + c.Min.String() + ", " + c.Max.String() + "]"
}
