// Package errors defines the schema-integrity error taxonomy reported by
// model resolution. All three error kinds abort resolution of the whole
// schema model: a partially resolved model could silently misreport the
// effective shape of elements that depend on the failed one.
package errors

import (
	"fmt"
	"strings"
)

// Code identifies a schema-integrity error kind.
type Code string

const (
	// CodeUnresolvedReference indicates a type, group, attributeGroup, or
	// substitutionGroup target not found in the registry.
	CodeUnresolvedReference Code = "schema-unresolved-reference"
	// CodeCyclicType indicates an extension, restriction, or substitution cycle.
	CodeCyclicType Code = "schema-cyclic-type"
	// CodeMalformedDeclaration indicates a required structural field is absent.
	CodeMalformedDeclaration Code = "schema-malformed-declaration"
	// CodeSourceUnavailable indicates the schema document could not be read.
	CodeSourceUnavailable Code = "schema-source-unavailable"
)

// UnresolvedReference reports a dangling reference, naming the missing
// qualified name, its declaration category, and the referencing declaration.
type UnresolvedReference struct {
	Ref      string
	Category string
	From     string
}

// Error returns the error string.
func (e *UnresolvedReference) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] unresolved %s reference %s", CodeUnresolvedReference, e.Category, e.Ref)
	if e.From != "" {
		fmt.Fprintf(&b, " referenced from %s", e.From)
	}
	return b.String()
}

// CyclicType reports a derivation or substitution cycle. Chain holds the
// participating qualified names in traversal order, ending at the revisit.
type CyclicType struct {
	Name  string
	Chain []string
}

// Error returns the error string.
func (e *CyclicType) Error() string {
	if len(e.Chain) == 0 {
		return fmt.Sprintf("[%s] cyclic type definition at %s", CodeCyclicType, e.Name)
	}
	return fmt.Sprintf("[%s] cyclic type definition at %s: %s", CodeCyclicType, e.Name, strings.Join(e.Chain, " -> "))
}

// MalformedDeclaration reports a structurally invalid declaration,
// for example a child element carrying neither a type nor a reference.
type MalformedDeclaration struct {
	Name   string
	Field  string
	Reason string
}

// Error returns the error string.
func (e *MalformedDeclaration) Error() string {
	return fmt.Sprintf("[%s] malformed declaration %s: %s %s", CodeMalformedDeclaration, e.Name, e.Field, e.Reason)
}

// SourceUnavailable reports that a schema document could not be materialized
// from its logical location.
type SourceUnavailable struct {
	Location string
	Err      error
}

// Error returns the error string.
func (e *SourceUnavailable) Error() string {
	return fmt.Sprintf("[%s] schema source %s unavailable: %v", CodeSourceUnavailable, e.Location, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SourceUnavailable) Unwrap() error {
	return e.Err
}
