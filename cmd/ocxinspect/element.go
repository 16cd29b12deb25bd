package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ocxtools/xsdmodel"
)

var elementCmd = &cobra.Command{
	Use:   "element <schema> [name]",
	Short: "Print the resolved shape of a global element",
	Long: `Resolve a schema and print the effective attribute set and child
elements of one global element, inherited members included. Without a name,
all global element names are listed.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(args) == 1 {
			names := make([]string, 0, len(m.ElementNames()))
			for _, name := range m.ElementNames() {
				names = append(names, name.Local)
			}
			sort.Strings(names)
			fmt.Println(strings.Join(names, "\n"))
			return nil
		}

		decl, ok := findElement(m, args[1])
		if !ok {
			return fmt.Errorf("element %q not found", args[1])
		}

		if yamlOutput(cmd) {
			return yaml.NewEncoder(os.Stdout).Encode(elementReport(m, decl))
		}
		return printElement(m, decl)
	},
}

// findElement matches a global element by local name, accepting an optional
// prefix.
func findElement(m *xsdmodel.SchemaModel, name string) (*xsdmodel.GlobalElement, bool) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	for _, decl := range m.Elements() {
		if decl.Name.Local == name {
			return decl, true
		}
	}
	return nil, false
}

type elementView struct {
	Name              string                     `yaml:"name"`
	Type              string                     `yaml:"type"`
	Abstract          bool                       `yaml:"abstract"`
	SubstitutionGroup string                     `yaml:"substitutionGroup,omitempty"`
	SubstitutedBy     []string                   `yaml:"substitutedBy,omitempty"`
	Description       string                     `yaml:"description,omitempty"`
	Attributes        []xsdmodel.AttributeRecord `yaml:"attributes,omitempty"`
	Children          []xsdmodel.ChildRecord     `yaml:"children,omitempty"`
}

func elementReport(m *xsdmodel.SchemaModel, decl *xsdmodel.GlobalElement) elementView {
	view := elementView{
		Name:        decl.Name.String(),
		Type:        decl.Type.String(),
		Abstract:    decl.Abstract,
		Description: decl.Description,
		Attributes:  decl.AttributeRecords(),
		Children:    decl.ChildRecords(),
	}
	if decl.HasSubstitutionGroup() {
		view.SubstitutionGroup = decl.SubstitutionGroup.String()
	}
	for _, sub := range m.SubstitutesFor(decl.Name) {
		view.SubstitutedBy = append(view.SubstitutedBy, sub.String())
	}
	return view
}

func printElement(m *xsdmodel.SchemaModel, decl *xsdmodel.GlobalElement) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "Element\t%s\n", decl.Name)
	fmt.Fprintf(w, "Type\t%s\n", decl.Type)
	if decl.Abstract {
		fmt.Fprintf(w, "Abstract\ttrue\n")
	}
	if decl.HasSubstitutionGroup() {
		fmt.Fprintf(w, "SubstitutionGroup\t%s\n", decl.SubstitutionGroup)
	}
	if subs := m.SubstitutesFor(decl.Name); len(subs) > 0 {
		names := make([]string, 0, len(subs))
		for _, sub := range subs {
			names = append(names, sub.Local)
		}
		fmt.Fprintf(w, "SubstitutedBy\t%s\n", strings.Join(names, ", "))
	}
	if decl.Description != "" {
		fmt.Fprintf(w, "Description\t%s\n", decl.Description)
	}

	if attrs := decl.AttributeRecords(); len(attrs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Attribute\tType\tUse\tDefault")
		for _, a := range attrs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.Type, a.Use, a.Default)
		}
	}
	if children := decl.ChildRecords(); len(children) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Child\tType\tCardinality\tChoice")
		for _, c := range children {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", c.Name, c.Type, c.Cardinality, c.Choice)
		}
	}
	return w.Flush()
}
