package main

import (
	"fmt"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <tree.yaml>",
		Short: "Print a tree as a Mermaid flowchart",
		Long: `Builds a tree and prints it as Mermaid. With --ticks the tree is ticked
that many times first and every node is annotated with its status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticks, _ := cmd.Flags().GetInt("ticks")

			eng, err := arbor.Load(args[0], arbor.WithLogger(newLogger()), arbor.WithRegistry(kinds()))
			if err != nil {
				return err
			}
			defer eng.Close()

			for range ticks {
				if err := eng.Tick(cmd.Context()); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(eng.Root(), graph.Options{Statuses: ticks > 0}))
			return nil
		},
	}
	cmd.Flags().Int("ticks", 0, "Tick the tree this many times and show statuses")
	return cmd
}
