package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ocxtools/xsdmodel"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-schema> <new-schema>",
	Short: "Compare two schema versions",
	Long: `Resolve two schemas and report their element-level differences:
elements added, elements removed, and field-by-field changes on elements
present in both.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		older, err := loadModel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		newer, err := loadModel(cmd.Context(), args[1])
		if err != nil {
			return err
		}

		changes := xsdmodel.Compare(older, newer)
		if yamlOutput(cmd) {
			return yaml.NewEncoder(os.Stdout).Encode(changes)
		}

		if changes.IsEmpty() {
			fmt.Printf("no differences between %s and %s\n", changes.OldVersion, changes.NewVersion)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintf(w, "Versions\t%s -> %s\n", changes.OldVersion, changes.NewVersion)
		for _, name := range changes.Added {
			fmt.Fprintf(w, "added\t%s\n", name)
		}
		for _, name := range changes.Removed {
			fmt.Fprintf(w, "removed\t%s\n", name)
		}
		for _, diff := range changes.Modified {
			for _, change := range diff.Changes {
				fmt.Fprintf(w, "modified\t%s\t%s %s\t%s -> %s\n",
					diff.Name, change.Member, change.Field, change.Old, change.New)
			}
		}
		return w.Flush()
	},
}
