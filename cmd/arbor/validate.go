package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <tree.yaml>...",
		Short: "Check tree definitions without running them",
		Long:  `Checks node kinds, child counts and parameters of every given definition.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := kinds()
			var errs []error
			for _, path := range args {
				if err := validateFile(path, reg); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", path)
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			return errors.Join(errs...)
		},
	}
}

func validateFile(path string, reg *registry.Registry) error {
	f, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	if err := loader.Validate(f.Root, reg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	// Building catches bad parameters; nothing is ticked.
	if _, err := loader.Build(f.Root, reg, registry.Env{}); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
