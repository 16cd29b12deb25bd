// Package xmltree is the tree-query layer over the XML DOM. The schema
// parser never touches raw markup: it sees qualified tag names, direct
// children in document order, attribute values, and the prefix bindings
// declared on a node.
package xmltree

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentflare-ai/go-xmldom"
)

// Document wraps a parsed XML document.
type Document struct {
	doc xmldom.Document
}

// Parse reads an XML document from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := xmldom.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Root returns the document element.
func (d *Document) Root() (Node, error) {
	if d == nil || d.doc == nil {
		return Node{}, fmt.Errorf("nil document")
	}
	root := d.doc.DocumentElement()
	if root == nil {
		return Node{}, fmt.Errorf("document has no root element")
	}
	return Node{el: root}, nil
}

// Node is one element node of the document tree.
type Node struct {
	el xmldom.Element
}

// IsZero returns true for the absent node.
func (n Node) IsZero() bool {
	return n.el == nil
}

// LocalName returns the node's local tag name.
func (n Node) LocalName() string {
	if n.el == nil {
		return ""
	}
	return string(n.el.LocalName())
}

// Namespace returns the node's namespace URI.
func (n Node) Namespace() string {
	if n.el == nil {
		return ""
	}
	return string(n.el.NamespaceURI())
}

// Attr returns the value of the named attribute, empty when absent.
func (n Node) Attr(name string) string {
	if n.el == nil {
		return ""
	}
	return string(n.el.GetAttribute(xmldom.DOMString(name)))
}

// Children returns the direct element children in document order.
func (n Node) Children() []Node {
	if n.el == nil {
		return nil
	}
	children := n.el.Children()
	out := make([]Node, 0, children.Length())
	for i := uint(0); i < children.Length(); i++ {
		child := children.Item(i)
		if child == nil {
			continue
		}
		out = append(out, Node{el: child})
	}
	return out
}

// ChildrenNamed returns direct children with the given local name,
// regardless of namespace, in document order.
func (n Node) ChildrenNamed(local string) []Node {
	var out []Node
	for _, child := range n.Children() {
		if child.LocalName() == local {
			out = append(out, child)
		}
	}
	return out
}

// FirstChildNamed returns the first direct child with the given local name.
func (n Node) FirstChildNamed(local string) (Node, bool) {
	for _, child := range n.Children() {
		if child.LocalName() == local {
			return child, true
		}
	}
	return Node{}, false
}

// Descendants returns every descendant element with the given local name,
// depth-first in document order.
func (n Node) Descendants(local string) []Node {
	var out []Node
	var walk func(Node)
	walk = func(cur Node) {
		for _, child := range cur.Children() {
			if child.LocalName() == local {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

// Text returns the node's text content with surrounding whitespace removed.
func (n Node) Text() string {
	if n.el == nil {
		return ""
	}
	return strings.TrimSpace(string(n.el.TextContent()))
}

// NamespaceDecls returns the xmlns declarations made on this node in
// document order. The default namespace is reported with an empty prefix.
func (n Node) NamespaceDecls() []PrefixBinding {
	if n.el == nil {
		return nil
	}
	attrs := n.el.Attributes()
	if attrs == nil {
		return nil
	}
	var out []PrefixBinding
	for i := uint(0); i < attrs.Length(); i++ {
		attr := attrs.Item(i)
		if attr == nil {
			continue
		}
		name := string(attr.NodeName())
		value := string(attr.NodeValue())
		switch {
		case name == "xmlns":
			out = append(out, PrefixBinding{Prefix: "", Namespace: value})
		case strings.HasPrefix(name, "xmlns:"):
			out = append(out, PrefixBinding{Prefix: strings.TrimPrefix(name, "xmlns:"), Namespace: value})
		case string(attr.NamespaceURI()) == "xmlns":
			// The DOM stores xmlns:foo="uri" with node name "foo" in the
			// reserved "xmlns" namespace, not under the literal qualified name.
			out = append(out, PrefixBinding{Prefix: name, Namespace: value})
		}
	}
	return out
}

// PrefixBinding is one xmlns declaration.
type PrefixBinding struct {
	Prefix    string
	Namespace string
}

// Documentation returns the normalized xs:annotation/xs:documentation text
// of a schema construct, empty when the construct carries none.
func (n Node) Documentation() string {
	annotation, ok := n.FirstChildNamed("annotation")
	if !ok {
		return ""
	}
	var parts []string
	for _, doc := range annotation.ChildrenNamed("documentation") {
		if text := doc.Text(); text != "" {
			parts = append(parts, text)
		}
	}
	return NormalizeSpace(strings.Join(parts, " "))
}

// NormalizeSpace collapses internal whitespace runs to single spaces.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
