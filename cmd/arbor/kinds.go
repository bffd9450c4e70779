package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the node kinds a definition may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := kinds()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tARITY")
			for _, kind := range reg.Kinds() {
				arity, err := reg.Arity(kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", kind, arity)
			}
			return w.Flush()
		},
	}
}
