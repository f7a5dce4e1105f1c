package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir...]",
		Short: "List annotated struct declarations without generating code",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			for _, dir := range targetDirs(args) {
				g, _, err := setup(cmd, dir)
				if err != nil {
					return err
				}

				files, err := g.ScanDir(cmd.Context(), dir)
				if err != nil {
					return err
				}

				for _, f := range files {
					for _, decl := range f.Decls {
						fmt.Fprintf(w, "%s\t%s.%s\t%s\n", decl.Pos, f.Package, decl.Name, decl.Kind)
					}
				}
			}

			return w.Flush()
		},
	}
}
