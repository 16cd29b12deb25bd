package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ocxtools/xsdmodel"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <schema>",
	Short: "Print a schema summary",
	Long: `Resolve a schema and print its summary: the declared version,
declaration counts per category, the namespace table, and the embedded
change history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		s := xsdmodel.Summarize(m)

		if yamlOutput(cmd) {
			return yaml.NewEncoder(os.Stdout).Encode(s)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		for _, row := range s.Rows {
			fmt.Fprintf(w, "%s\t%s\n", row.Label, row.Value)
		}
		fmt.Fprintln(w)
		for _, ns := range s.Namespaces {
			prefix := ns.Prefix
			if prefix == "" {
				prefix = "(default)"
			}
			fmt.Fprintf(w, "%s\t%s\n", prefix, ns.Namespace)
		}
		if len(s.Changes) > 0 {
			fmt.Fprintln(w)
			for _, change := range s.Changes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", change.Version, change.Date, change.Author, change.Description)
			}
		}
		return w.Flush()
	},
}
