package model

import "testing"

func TestNamespaceTableFirstBindingWins(t *testing.T) {
	table := NewNamespaceTable("https://example.org/schema")

	if !table.Add("ocx", "https://example.org/schema") {
		t.Fatalf("first binding of ocx must be added")
	}
	if table.Add("ocx", "https://example.org/other") {
		t.Fatalf("second binding of ocx must be rejected")
	}

	ns, ok := table.Resolve("ocx")
	if !ok || ns != "https://example.org/schema" {
		t.Errorf("Resolve(ocx) = (%q, %v), want first binding", ns, ok)
	}
}

func TestNamespaceTableSeedsXMLPrefix(t *testing.T) {
	table := NewNamespaceTable("")
	ns, ok := table.Resolve("xml")
	if !ok || ns != XMLNamespace {
		t.Errorf("xml prefix must be bound to %q, got (%q, %v)", XMLNamespace, ns, ok)
	}
}

func TestNamespaceTableBindingsKeepOrder(t *testing.T) {
	table := NewNamespaceTable("")
	table.Add("xs", XSDNamespace)
	table.Add("ocx", "https://example.org/schema")
	table.Add("", "https://example.org/default")

	bindings := table.Bindings()
	want := []string{"xml", "xs", "ocx", ""}
	if len(bindings) != len(want) {
		t.Fatalf("got %d bindings, want %d", len(bindings), len(want))
	}
	for i, prefix := range want {
		if bindings[i].Prefix != prefix {
			t.Errorf("bindings[%d].Prefix = %q, want %q", i, bindings[i].Prefix, prefix)
		}
	}
}

func TestNamespaceTableRefOf(t *testing.T) {
	table := NewNamespaceTable("https://example.org/schema")
	table.Add("ocx", "https://example.org/schema")

	ref := table.RefOf(QName{Namespace: "https://example.org/schema", Local: "Panel_T"})
	if ref.String() != "ocx:Panel_T" {
		t.Errorf("RefOf() = %q, want ocx:Panel_T", ref.String())
	}

	unbound := table.RefOf(QName{Namespace: "https://example.org/unbound", Local: "X"})
	if unbound.String() != "X" {
		t.Errorf("RefOf() without binding = %q, want bare local", unbound.String())
	}
}
