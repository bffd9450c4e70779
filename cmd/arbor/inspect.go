package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [tree-name]",
		Short: "Show the last recorded snapshot of a tree",
		Long: `Reads the snapshot store filled by "arbor run --snapshot-dir" or
"--redis-addr". Without a name, lists the recorded trees.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyStoreFlags(cmd)
			store, closeStore := openStore()
			if store == nil {
				return errors.New("no snapshot store configured (use --snapshot-dir or --redis-addr)")
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				names, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			snap, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("tree %q: %w", args[0], err)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}
	storeFlags(cmd)
	return cmd
}

func applyStoreFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("snapshot-dir") {
		cfg.SnapshotDir, _ = cmd.Flags().GetString("snapshot-dir")
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.RedisAddr, _ = cmd.Flags().GetString("redis-addr")
	}
}
