// Package diffengine compares two resolved schema models element by
// element. The comparison works on resolved shapes, so a change anywhere in
// a derivation chain shows up on every global element that inherits it.
package diffengine

import (
	"fmt"
	"sort"

	"github.com/ocxtools/xsdmodel/internal/model"
)

// FieldChange is one observed difference on a global element: the member it
// concerns (an attribute or child by name, or the element itself) and the
// field values on both sides. Added and removed members use the sentinel
// value "-" on the absent side.
type FieldChange struct {
	Member string `yaml:"member"`
	Field  string `yaml:"field"`
	Old    string `yaml:"old"`
	New    string `yaml:"new"`
}

// Absent is the sentinel rendered for the missing side of an added or
// removed member.
const Absent = "-"

// ElementDiff lists every field change of one modified global element.
type ElementDiff struct {
	Name    model.QName   `yaml:"name"`
	Changes []FieldChange `yaml:"changes"`
}

// ChangeSet is the full comparison of two schema versions. All three lists
// are sorted by qualified name, so comparing the same pair of models twice
// yields identical output.
type ChangeSet struct {
	OldVersion string        `yaml:"oldVersion"`
	NewVersion string        `yaml:"newVersion"`
	Added      []model.QName `yaml:"added,omitempty"`
	Removed    []model.QName `yaml:"removed,omitempty"`
	Modified   []ElementDiff `yaml:"modified,omitempty"`
}

// IsEmpty returns true when the two models have identical element sets and
// shapes.
func (c *ChangeSet) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0
}

// Diff compares two resolved models. Elements present only in the newer
// model are added, elements present only in the older one are removed, and
// elements in both are compared field by field over their resolved shapes.
func Diff(older, newer *model.SchemaModel) *ChangeSet {
	out := &ChangeSet{
		OldVersion: older.Version,
		NewVersion: newer.Version,
	}

	for _, name := range newer.ElementNames() {
		if _, ok := older.Element(name); !ok {
			out.Added = append(out.Added, name)
		}
	}
	for _, name := range older.ElementNames() {
		newDecl, ok := newer.Element(name)
		if !ok {
			out.Removed = append(out.Removed, name)
			continue
		}
		oldDecl, _ := older.Element(name)
		if changes := compareElement(oldDecl, newDecl); len(changes) > 0 {
			out.Modified = append(out.Modified, ElementDiff{Name: name, Changes: changes})
		}
	}

	sortNames(out.Added)
	sortNames(out.Removed)
	sort.Slice(out.Modified, func(i, j int) bool {
		return out.Modified[i].Name.String() < out.Modified[j].Name.String()
	})

	return out
}

func sortNames(names []model.QName) {
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
}

func compareElement(older, newer *model.GlobalElementDecl) []FieldChange {
	var changes []FieldChange

	record := func(member, field, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, FieldChange{
				Member: member, Field: field, Old: oldValue, New: newValue,
			})
		}
	}

	record("element", "type", older.Type.Name().String(), newer.Type.Name().String())
	record("element", "abstract", boolValue(older.Abstract), boolValue(newer.Abstract))
	record("element", "substitutionGroup", older.SubstitutionGroup.String(), newer.SubstitutionGroup.String())

	changes = append(changes, compareAttributes(older, newer)...)
	changes = append(changes, compareChildren(older, newer)...)
	return changes
}

func compareAttributes(older, newer *model.GlobalElementDecl) []FieldChange {
	var changes []FieldChange
	for _, name := range attrNames(older, newer) {
		oldAttr, inOld := older.Attribute(name)
		newAttr, inNew := newer.Attribute(name)
		member := "attribute " + name
		switch {
		case !inOld:
			changes = append(changes, FieldChange{
				Member: member, Field: "presence", Old: Absent, New: newAttr.Type.Name().String(),
			})
		case !inNew:
			changes = append(changes, FieldChange{
				Member: member, Field: "presence", Old: oldAttr.Type.Name().String(), New: Absent,
			})
		default:
			if oldAttr.Type.Name() != newAttr.Type.Name() {
				changes = append(changes, FieldChange{
					Member: member, Field: "type",
					Old: oldAttr.Type.Name().String(), New: newAttr.Type.Name().String(),
				})
			}
			if oldAttr.Use != newAttr.Use {
				changes = append(changes, FieldChange{
					Member: member, Field: "use",
					Old: string(oldAttr.Use), New: string(newAttr.Use),
				})
			}
			if oldAttr.Default != newAttr.Default {
				changes = append(changes, FieldChange{
					Member: member, Field: "default",
					Old: oldAttr.Default, New: newAttr.Default,
				})
			}
		}
	}
	return changes
}

// compareChildren matches children of the same name positionally, so a name
// repeated across choice branches is compared occurrence by occurrence and a
// changed occurrence count shows up as a presence change.
func compareChildren(older, newer *model.GlobalElementDecl) []FieldChange {
	oldGroups := childGroups(older)
	newGroups := childGroups(newer)

	var changes []FieldChange
	for _, name := range childNames(older, newer) {
		oldGroup := oldGroups[name]
		newGroup := newGroups[name]
		count := len(oldGroup)
		if len(newGroup) > count {
			count = len(newGroup)
		}
		for i := 0; i < count; i++ {
			member := "child " + name
			if len(oldGroup) > 1 || len(newGroup) > 1 {
				member = fmt.Sprintf("child %s #%d", name, i+1)
			}
			switch {
			case i >= len(oldGroup):
				changes = append(changes, FieldChange{
					Member: member, Field: "presence", Old: Absent, New: newGroup[i].Cardinality.String(),
				})
			case i >= len(newGroup):
				changes = append(changes, FieldChange{
					Member: member, Field: "presence", Old: oldGroup[i].Cardinality.String(), New: Absent,
				})
			default:
				oldChild := oldGroup[i]
				newChild := newGroup[i]
				if oldChild.Type.Name() != newChild.Type.Name() {
					changes = append(changes, FieldChange{
						Member: member, Field: "type",
						Old: oldChild.Type.Name().String(), New: newChild.Type.Name().String(),
					})
				}
				if oldChild.Cardinality != newChild.Cardinality {
					changes = append(changes, FieldChange{
						Member: member, Field: "cardinality",
						Old: oldChild.Cardinality.String(), New: newChild.Cardinality.String(),
					})
				}
				if oldChild.IsChoice != newChild.IsChoice {
					changes = append(changes, FieldChange{
						Member: member, Field: "choice",
						Old: boolValue(oldChild.IsChoice), New: boolValue(newChild.IsChoice),
					})
				}
			}
		}
	}
	return changes
}

// childGroups collects the resolved children by name in declaration order.
// The same name may legally appear more than once across choice branches.
func childGroups(decl *model.GlobalElementDecl) map[string][]model.ChildElementDecl {
	groups := make(map[string][]model.ChildElementDecl)
	for _, c := range decl.Children {
		groups[c.Name] = append(groups[c.Name], c)
	}
	return groups
}

// attrNames merges attribute names of both sides, sorted for stable output.
func attrNames(older, newer *model.GlobalElementDecl) []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range older.Attributes {
		if !seen[a.Name] {
			seen[a.Name] = true
			names = append(names, a.Name)
		}
	}
	for _, a := range newer.Attributes {
		if !seen[a.Name] {
			seen[a.Name] = true
			names = append(names, a.Name)
		}
	}
	sort.Strings(names)
	return names
}

func childNames(older, newer *model.GlobalElementDecl) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range older.Children {
		if !seen[c.Name] {
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}
	for _, c := range newer.Children {
		if !seen[c.Name] {
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}
	sort.Strings(names)
	return names
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
