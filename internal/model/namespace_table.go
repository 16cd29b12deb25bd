package model

// NamespaceBinding is one prefix to namespace URI binding.
// The prefix may be empty for the default namespace.
type NamespaceBinding struct {
	Prefix    string
	Namespace NamespaceURI
}

// NamespaceTable is the ordered prefix to namespace mapping of a schema
// snapshot, together with its target namespace. Immutable after the
// resolution pass; bindings keep document declaration order and the first
// binding of a prefix wins when imported schemas redeclare it.
type NamespaceTable struct {
	bindings []NamespaceBinding
	byPrefix map[string]NamespaceURI
	target   NamespaceURI
}

// NewNamespaceTable returns a table seeded with the reserved xml prefix.
func NewNamespaceTable(target NamespaceURI) *NamespaceTable {
	t := &NamespaceTable{
		byPrefix: make(map[string]NamespaceURI),
		target:   target,
	}
	t.Add("xml", XMLNamespace)
	return t
}

// Add records a binding unless the prefix is already bound.
// It reports whether the binding was added.
func (t *NamespaceTable) Add(prefix string, ns NamespaceURI) bool {
	if _, exists := t.byPrefix[prefix]; exists {
		return false
	}
	t.byPrefix[prefix] = ns
	t.bindings = append(t.bindings, NamespaceBinding{Prefix: prefix, Namespace: ns})
	return true
}

// Resolve returns the namespace bound to prefix.
func (t *NamespaceTable) Resolve(prefix string) (NamespaceURI, bool) {
	ns, ok := t.byPrefix[prefix]
	return ns, ok
}

// PrefixOf returns the first prefix bound to the given namespace.
func (t *NamespaceTable) PrefixOf(ns NamespaceURI) (string, bool) {
	for _, b := range t.bindings {
		if b.Namespace == ns {
			return b.Prefix, true
		}
	}
	return "", false
}

// Target returns the schema's target namespace.
func (t *NamespaceTable) Target() NamespaceURI {
	return t.target
}

// Bindings returns all bindings in declaration order.
func (t *NamespaceTable) Bindings() []NamespaceBinding {
	out := make([]NamespaceBinding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// RefOf renders a qualified name as prefix:local using the table,
// falling back to the bare local name when no prefix is bound.
func (t *NamespaceTable) RefOf(q QName) TypeRef {
	ref := TypeRef{Local: q.Local, Namespace: q.Namespace}
	if prefix, ok := t.PrefixOf(q.Namespace); ok {
		ref.Prefix = prefix
	}
	return ref
}
