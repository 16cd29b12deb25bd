package model

import "strings"

// NamespaceURI represents a namespace URI.
// This is a newtype over string to provide type safety for namespace URIs.
type NamespaceURI string

// XSDNamespace is the W3C XML Schema namespace.
const XSDNamespace NamespaceURI = "http://www.w3.org/2001/XMLSchema"

// XMLNamespace is the reserved namespace bound to the "xml" prefix.
const XMLNamespace NamespaceURI = "http://www.w3.org/XML/1998/namespace"

// String returns the namespace URI as a string.
func (ns NamespaceURI) String() string {
	return string(ns)
}

// IsEmpty returns true if the namespace URI is empty.
func (ns NamespaceURI) IsEmpty() bool {
	return ns == ""
}

// IsBuiltin returns true if the namespace is the XML Schema namespace,
// whose types terminate base-type chains.
func (ns NamespaceURI) IsBuiltin() bool {
	return ns == XSDNamespace
}

// QName identifies a declaration by namespace URI and local name.
// Prefixes are schema-local aliases and never participate in identity.
type QName struct {
	Namespace NamespaceURI
	Local     string
}

// String returns the QName in {namespace}local form, or just local if no namespace.
func (q QName) String() string {
	if q.Namespace.IsEmpty() {
		return q.Local
	}
	return "{" + q.Namespace.String() + "}" + q.Local
}

// IsZero returns true if the QName is the zero value.
func (q QName) IsZero() bool {
	return q.Namespace.IsEmpty() && q.Local == ""
}

// Equal returns true if two QNames are equal.
func (q QName) Equal(other QName) bool {
	return q == other
}

// TypeRef is a reference to a named type or declaration as written in the
// schema document: the literal prefix plus the resolved namespace URI.
// Identity is (Namespace, Local); the prefix is kept for display only.
type TypeRef struct {
	Prefix    string
	Local     string
	Namespace NamespaceURI
}

// Name returns the resolved identity of the reference.
func (r TypeRef) Name() QName {
	return QName{Namespace: r.Namespace, Local: r.Local}
}

// IsZero returns true if the reference is absent.
func (r TypeRef) IsZero() bool {
	return r.Local == ""
}

// IsBuiltin returns true if the reference names a W3C built-in type.
func (r TypeRef) IsBuiltin() bool {
	return r.Namespace.IsBuiltin()
}

// Equal compares references by resolved identity, ignoring the prefix text.
func (r TypeRef) Equal(other TypeRef) bool {
	return r.Name() == other.Name()
}

// String returns the reference in prefix:local form as written in the schema.
func (r TypeRef) String() string {
	if r.Prefix == "" {
		return r.Local
	}
	return r.Prefix + ":" + r.Local
}

// SplitPrefixed splits a prefixed lexical name into prefix and local parts.
func SplitPrefixed(name string) (prefix, local string, hasPrefix bool) {
	prefix, local, hasPrefix = strings.Cut(name, ":")
	if !hasPrefix {
		return "", name, false
	}
	return prefix, local, true
}
