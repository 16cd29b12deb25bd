package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xsderrors "github.com/ocxtools/xsdmodel/errors"
	"github.com/ocxtools/xsdmodel/internal/model"
	"github.com/ocxtools/xsdmodel/internal/parser"
	"github.com/ocxtools/xsdmodel/internal/registry"
	"github.com/ocxtools/xsdmodel/internal/xmltree"
)

const ns = "https://example.org/ocx"

const schemaHeader = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
	xmlns:ocx="` + ns + `" targetNamespace="` + ns + `">`

func build(t *testing.T, body string) *model.SchemaModel {
	t.Helper()
	m, err := tryBuild(body)
	require.NoError(t, err)
	return m
}

func tryBuild(body string) (*model.SchemaModel, error) {
	doc, err := xmltree.Parse(strings.NewReader(schemaHeader + body + `</xs:schema>`))
	if err != nil {
		return nil, err
	}
	reg := registry.New(model.NewNamespaceTable(ns))
	if _, err := parser.ParseDocument(reg, doc, "test.xsd"); err != nil {
		return nil, err
	}
	return Resolve(reg)
}

func qn(local string) model.QName {
	return model.QName{Namespace: ns, Local: local}
}

func attrNames(decl *model.GlobalElementDecl) []string {
	out := make([]string, 0, len(decl.Attributes))
	for _, a := range decl.Attributes {
		out = append(out, a.Name)
	}
	return out
}

func childNames(decl *model.GlobalElementDecl) []string {
	out := make([]string, 0, len(decl.Children))
	for _, c := range decl.Children {
		out = append(out, c.Name)
	}
	return out
}

func TestExtensionInheritsBaseShape(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:complexType name="StructureBase_T">
		<xs:sequence>
			<xs:element name="Description" type="xs:string" minOccurs="0"/>
		</xs:sequence>
		<xs:attribute name="id" type="xs:ID" use="required"/>
	</xs:complexType>
	<xs:complexType name="Panel_T">
		<xs:complexContent>
			<xs:extension base="ocx:StructureBase_T">
				<xs:sequence>
					<xs:element name="StiffenedBy" type="ocx:StiffenedBy_T" minOccurs="0"/>
				</xs:sequence>
				<xs:attribute name="functionType" type="xs:string"/>
			</xs:extension>
		</xs:complexContent>
	</xs:complexType>
	<xs:complexType name="StiffenedBy_T"/>`)

	panel, ok := m.Element(qn("Panel"))
	require.True(t, ok)

	assert.Equal(t, []string{"id", "functionType"}, attrNames(panel),
		"inherited attributes come before the extension's own")
	assert.Equal(t, []string{"Description", "StiffenedBy"}, childNames(panel),
		"inherited children come before the extension's own")

	id, ok := panel.Attribute("id")
	require.True(t, ok)
	assert.Equal(t, model.UseRequired, id.Use)
}

func TestExtensionOverrideKeepsInheritedPosition(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:complexType name="Base_T">
		<xs:attribute name="id" type="xs:ID"/>
		<xs:attribute name="name" type="xs:string"/>
	</xs:complexType>
	<xs:complexType name="Panel_T">
		<xs:complexContent>
			<xs:extension base="ocx:Base_T">
				<xs:attribute name="id" type="xs:ID" use="required"/>
			</xs:extension>
		</xs:complexContent>
	</xs:complexType>`)

	panel, _ := m.Element(qn("Panel"))
	assert.Equal(t, []string{"id", "name"}, attrNames(panel))

	id, _ := panel.Attribute("id")
	assert.Equal(t, model.UseRequired, id.Use, "redeclaration wins over the inherited attribute")
}

func TestProhibitedRemovesInheritedAttribute(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:complexType name="Base_T">
		<xs:attribute name="id" type="xs:ID"/>
		<xs:attribute name="legacyRef" type="xs:string"/>
	</xs:complexType>
	<xs:complexType name="Panel_T">
		<xs:complexContent>
			<xs:restriction base="ocx:Base_T">
				<xs:attribute name="legacyRef" use="prohibited"/>
			</xs:restriction>
		</xs:complexContent>
	</xs:complexType>`)

	panel, _ := m.Element(qn("Panel"))
	assert.Equal(t, []string{"id"}, attrNames(panel))

	_, found := panel.Attribute("legacyRef")
	assert.False(t, found, "prohibited attribute must not appear in the resolved set")
}

func TestRestrictionRestatesContentModel(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Narrow_T"/>
	<xs:complexType name="Wide_T">
		<xs:sequence>
			<xs:element name="CutBy" type="ocx:Cut_T" minOccurs="0"/>
			<xs:element name="SplitBy" type="ocx:Cut_T" minOccurs="0"/>
		</xs:sequence>
		<xs:attribute name="id" type="xs:ID"/>
	</xs:complexType>
	<xs:complexType name="Narrow_T">
		<xs:complexContent>
			<xs:restriction base="ocx:Wide_T">
				<xs:sequence>
					<xs:element name="CutBy" type="ocx:Cut_T" minOccurs="1"/>
				</xs:sequence>
			</xs:restriction>
		</xs:complexContent>
	</xs:complexType>
	<xs:complexType name="Cut_T"/>`)

	panel, _ := m.Element(qn("Panel"))
	assert.Equal(t, []string{"CutBy"}, childNames(panel),
		"restriction content replaces the base content model")
	assert.Equal(t, []string{"id"}, attrNames(panel),
		"restriction still inherits the base attribute set")

	cutBy, _ := panel.Child("CutBy")
	assert.Equal(t, model.Cardinality{Min: 1, Max: 1}, cutBy.Cardinality)
}

func TestRestrictionWithoutContentInheritsChildren(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Narrow_T"/>
	<xs:complexType name="Wide_T">
		<xs:sequence>
			<xs:element name="CutBy" type="ocx:Cut_T"/>
		</xs:sequence>
	</xs:complexType>
	<xs:complexType name="Narrow_T">
		<xs:complexContent>
			<xs:restriction base="ocx:Wide_T">
				<xs:attribute name="id" type="xs:ID"/>
			</xs:restriction>
		</xs:complexContent>
	</xs:complexType>
	<xs:complexType name="Cut_T"/>`)

	panel, _ := m.Element(qn("Panel"))
	assert.Equal(t, []string{"CutBy"}, childNames(panel))
}

func TestChoiceMembership(t *testing.T) {
	m := build(t, `
	<xs:element name="Surface" type="ocx:Surface_T"/>
	<xs:complexType name="Surface_T">
		<xs:sequence>
			<xs:element name="Origin" type="ocx:Point_T"/>
			<xs:choice>
				<xs:element name="Plane" type="ocx:Plane_T"/>
				<xs:element name="Sphere" type="ocx:Sphere_T"/>
				<xs:sequence>
					<xs:element name="Knots" type="xs:string"/>
				</xs:sequence>
			</xs:choice>
		</xs:sequence>
	</xs:complexType>
	<xs:complexType name="Point_T"/>
	<xs:complexType name="Plane_T"/>
	<xs:complexType name="Sphere_T"/>`)

	surface, _ := m.Element(qn("Surface"))
	require.Equal(t, []string{"Origin", "Plane", "Sphere", "Knots"}, childNames(surface))

	expectChoice := map[string]bool{
		"Origin": false,
		"Plane":  true,
		"Sphere": true,
		// A sequence nested inside the choice is the alternative, not
		// its individual elements.
		"Knots": false,
	}
	for _, c := range surface.Children {
		assert.Equal(t, expectChoice[c.Name], c.IsChoice, "choice flag of %s", c.Name)
	}
}

func TestElementReferenceFollowsGlobal(t *testing.T) {
	m := build(t, `
	<xs:element name="Bracket" type="ocx:Bracket_T">
		<xs:annotation><xs:documentation>A connecting bracket.</xs:documentation></xs:annotation>
	</xs:element>
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:complexType name="Panel_T">
		<xs:sequence>
			<xs:element ref="ocx:Bracket" minOccurs="0" maxOccurs="4"/>
		</xs:sequence>
	</xs:complexType>
	<xs:complexType name="Bracket_T"/>`)

	panel, _ := m.Element(qn("Panel"))
	require.Len(t, panel.Children, 1)

	child := panel.Children[0]
	assert.Equal(t, "Bracket", child.Name)
	assert.Equal(t, qn("Bracket_T"), child.Type.Name())
	assert.Equal(t, qn("Bracket"), child.RefTarget)
	assert.True(t, child.IsGlobalRef())
	assert.Equal(t, "A connecting bracket.", child.Description)
	assert.Equal(t, model.Cardinality{Min: 0, Max: 4}, child.Cardinality,
		"the referencing particle's cardinality wins")
}

func TestModelGroupExpandsInline(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:group name="limits">
		<xs:sequence>
			<xs:element name="LimitedBy" type="ocx:Limit_T" maxOccurs="unbounded"/>
		</xs:sequence>
	</xs:group>
	<xs:complexType name="Panel_T">
		<xs:sequence>
			<xs:element name="Description" type="xs:string"/>
			<xs:group ref="ocx:limits"/>
		</xs:sequence>
	</xs:complexType>
	<xs:complexType name="Limit_T"/>`)

	panel, _ := m.Element(qn("Panel"))
	assert.Equal(t, []string{"Description", "LimitedBy"}, childNames(panel))

	limitedBy, _ := panel.Child("LimitedBy")
	assert.Equal(t, model.Cardinality{Min: 1, Max: model.OccursUnbounded}, limitedBy.Cardinality)
}

func TestAttributeGroupAndGlobalAttributeExpand(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:attribute name="GUIDRef" type="xs:string">
		<xs:annotation><xs:documentation>Globally unique reference.</xs:documentation></xs:annotation>
	</xs:attribute>
	<xs:attributeGroup name="idBase">
		<xs:attribute name="id" type="xs:ID" use="required"/>
		<xs:attribute ref="ocx:GUIDRef" use="required"/>
	</xs:attributeGroup>
	<xs:complexType name="Panel_T">
		<xs:attributeGroup ref="ocx:idBase"/>
		<xs:attribute name="functionType" type="xs:string"/>
	</xs:complexType>`)

	panel, _ := m.Element(qn("Panel"))
	assert.Equal(t, []string{"id", "GUIDRef", "functionType"}, attrNames(panel))

	guid, ok := panel.Attribute("GUIDRef")
	require.True(t, ok)
	assert.Equal(t, model.UseRequired, guid.Use, "local use constraint wins over the global declaration")
	assert.Equal(t, model.NamespaceURI(ns), guid.Namespace)
	assert.Equal(t, "Globally unique reference.", guid.Description)
}

func TestEnumerationFromNamedSimpleType(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:simpleType name="FunctionType">
		<xs:restriction base="xs:string">
			<xs:enumeration value="deck"/>
			<xs:enumeration value="bulkhead"/>
		</xs:restriction>
	</xs:simpleType>
	<xs:complexType name="Panel_T">
		<xs:attribute name="functionType" type="ocx:FunctionType"/>
	</xs:complexType>`)

	panel, _ := m.Element(qn("Panel"))
	functionType, ok := panel.Attribute("functionType")
	require.True(t, ok)
	assert.True(t, functionType.IsEnumerator())
	assert.Equal(t, []string{"deck", "bulkhead"}, functionType.Enumeration.Values)
}

func TestSimpleTypedElementHasEmptyShape(t *testing.T) {
	m := build(t, `
	<xs:element name="Description" type="ocx:Text_T"/>
	<xs:simpleType name="Text_T">
		<xs:restriction base="xs:string"/>
	</xs:simpleType>`)

	decl, ok := m.Element(qn("Description"))
	require.True(t, ok)
	assert.Empty(t, decl.Attributes)
	assert.Empty(t, decl.Children)
}

func TestInlineComplexType(t *testing.T) {
	m := build(t, `
	<xs:element name="Header">
		<xs:complexType>
			<xs:attribute name="author" type="xs:string"/>
			<xs:attribute name="time_stamp" type="xs:dateTime"/>
		</xs:complexType>
	</xs:element>`)

	header, ok := m.Element(qn("Header"))
	require.True(t, ok)
	assert.Equal(t, []string{"author", "time_stamp"}, attrNames(header))
}

func TestDerivationCycleFails(t *testing.T) {
	_, err := tryBuild(`
	<xs:element name="Broken" type="ocx:X_T"/>
	<xs:complexType name="X_T">
		<xs:complexContent><xs:extension base="ocx:Y_T"/></xs:complexContent>
	</xs:complexType>
	<xs:complexType name="Y_T">
		<xs:complexContent><xs:extension base="ocx:X_T"/></xs:complexContent>
	</xs:complexType>`)

	var cyclic *xsderrors.CyclicType
	require.ErrorAs(t, err, &cyclic)
	assert.Contains(t, cyclic.Chain, qn("X_T").String())
	assert.Contains(t, cyclic.Chain, qn("Y_T").String())
}

func TestUnresolvedTypeFails(t *testing.T) {
	_, err := tryBuild(`<xs:element name="Panel" type="ocx:Ghost_T"/>`)

	var unresolved *xsderrors.UnresolvedReference
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, qn("Ghost_T").String(), unresolved.Ref)
	assert.Equal(t, qn("Panel").String(), unresolved.From)
}

func TestBuiltinBaseTerminatesChain(t *testing.T) {
	m := build(t, `
	<xs:element name="Quantity" type="ocx:Quantity_T"/>
	<xs:complexType name="Quantity_T">
		<xs:simpleContent>
			<xs:extension base="xs:double">
				<xs:attribute name="unit" type="xs:string" use="required"/>
			</xs:extension>
		</xs:simpleContent>
	</xs:complexType>`)

	quantity, _ := m.Element(qn("Quantity"))
	assert.Equal(t, []string{"unit"}, attrNames(quantity))
}

func TestSubstitutionClosureIsTransitive(t *testing.T) {
	m := build(t, `
	<xs:element name="StructurePart" type="ocx:Part_T" abstract="true"/>
	<xs:element name="Panel" type="ocx:Part_T" substitutionGroup="ocx:StructurePart"/>
	<xs:element name="Stiffener" type="ocx:Part_T" substitutionGroup="ocx:Panel"/>
	<xs:complexType name="Part_T"/>`)

	assert.Equal(t, []model.QName{qn("Panel"), qn("Stiffener")}, m.SubstitutesFor(qn("StructurePart")),
		"closure includes members of member heads")
	assert.Equal(t, []model.QName{qn("Stiffener")}, m.SubstitutesFor(qn("Panel")))
	assert.Empty(t, m.SubstitutesFor(qn("Stiffener")))
}

func TestSubstitutionMissingHeadFails(t *testing.T) {
	_, err := tryBuild(`
	<xs:element name="Panel" type="ocx:Part_T" substitutionGroup="ocx:Ghost"/>
	<xs:complexType name="Part_T"/>`)

	var unresolved *xsderrors.UnresolvedReference
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, qn("Ghost").String(), unresolved.Ref)
}

func TestSubstitutionCycleFails(t *testing.T) {
	_, err := tryBuild(`
	<xs:element name="A" type="ocx:Part_T" substitutionGroup="ocx:B"/>
	<xs:element name="B" type="ocx:Part_T" substitutionGroup="ocx:A"/>
	<xs:complexType name="Part_T"/>`)

	var cyclic *xsderrors.CyclicType
	require.ErrorAs(t, err, &cyclic)
}

func TestResolveIsDeterministic(t *testing.T) {
	const body = `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:element name="Bracket" type="ocx:Base_T"/>
	<xs:complexType name="Base_T">
		<xs:attribute name="id" type="xs:ID"/>
	</xs:complexType>
	<xs:complexType name="Panel_T">
		<xs:complexContent>
			<xs:extension base="ocx:Base_T">
				<xs:sequence>
					<xs:element name="CutBy" type="ocx:Base_T" minOccurs="0"/>
				</xs:sequence>
			</xs:extension>
		</xs:complexContent>
	</xs:complexType>`

	first := build(t, body)
	second := build(t, body)

	require.Equal(t, first.ElementNames(), second.ElementNames())
	for _, name := range first.ElementNames() {
		a, _ := first.Element(name)
		b, _ := second.Element(name)
		assert.Equal(t, a.AttributeRecords(), b.AttributeRecords())
		assert.Equal(t, a.ChildRecords(), b.ChildRecords())
	}
}

func TestOptionalChoiceRelaxesMembers(t *testing.T) {
	m := build(t, `
	<xs:element name="Surface" type="ocx:Surface_T"/>
	<xs:complexType name="Surface_T">
		<xs:sequence>
			<xs:element name="Origin" type="ocx:Point_T"/>
			<xs:choice minOccurs="0" maxOccurs="unbounded">
				<xs:element name="Plane" type="ocx:Plane_T"/>
				<xs:element name="Sphere" type="ocx:Sphere_T" minOccurs="1"/>
				<xs:sequence>
					<xs:element name="Knots" type="xs:string"/>
				</xs:sequence>
			</xs:choice>
		</xs:sequence>
	</xs:complexType>
	<xs:complexType name="Point_T"/>
	<xs:complexType name="Plane_T"/>
	<xs:complexType name="Sphere_T"/>`)

	surface, _ := m.Element(qn("Surface"))

	origin, _ := surface.Child("Origin")
	assert.Equal(t, model.CardinalityOnce, origin.Cardinality,
		"siblings outside the choice keep their own bounds")

	want := model.Cardinality{Min: 0, Max: model.OccursUnbounded}
	plane, _ := surface.Child("Plane")
	assert.Equal(t, want, plane.Cardinality, "the choice's declared bounds win")
	sphere, _ := surface.Child("Sphere")
	assert.Equal(t, want, sphere.Cardinality, "even over the member's own minOccurs")

	knots, _ := surface.Child("Knots")
	assert.Equal(t, model.CardinalityOnce, knots.Cardinality,
		"a nested compositor without bounds starts over")
}

func TestOptionalGroupRefRelaxesChildren(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:group name="limits">
		<xs:sequence>
			<xs:element name="LimitedBy" type="ocx:Limit_T" maxOccurs="unbounded"/>
		</xs:sequence>
	</xs:group>
	<xs:complexType name="Panel_T">
		<xs:sequence>
			<xs:group ref="ocx:limits" minOccurs="0"/>
		</xs:sequence>
	</xs:complexType>
	<xs:complexType name="Limit_T"/>`)

	panel, _ := m.Element(qn("Panel"))
	limitedBy, _ := panel.Child("LimitedBy")
	assert.Equal(t, model.Cardinality{Min: 0, Max: model.OccursUnbounded}, limitedBy.Cardinality,
		"an optional group reference expands to optional children")
}

func TestProhibitedInExtensionRemovesInheritedAttribute(t *testing.T) {
	m := build(t, `
	<xs:element name="Panel" type="ocx:Panel_T"/>
	<xs:complexType name="Base_T">
		<xs:attribute name="id" type="xs:ID"/>
		<xs:attribute name="legacyRef" type="xs:string"/>
	</xs:complexType>
	<xs:complexType name="Panel_T">
		<xs:complexContent>
			<xs:extension base="ocx:Base_T">
				<xs:attribute name="legacyRef" use="prohibited"/>
				<xs:attribute name="functionType" type="xs:string"/>
			</xs:extension>
		</xs:complexContent>
	</xs:complexType>`)

	panel, _ := m.Element(qn("Panel"))
	assert.Equal(t, []string{"id", "functionType"}, attrNames(panel))

	_, found := panel.Attribute("legacyRef")
	assert.False(t, found, "prohibition inside an extension removes the inherited attribute")
}
