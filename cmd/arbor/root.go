package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/highfreq"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/spf13/cobra"
)

// cfg is resolved once per invocation: .env, then ARBOR_* variables, then flags.
var cfg *config.Config

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arbor",
		Short: "Arbor runs behaviour trees built from decorators",
		Long: `Arbor loads behaviour-tree definitions (YAML or JSON), validates them and
ticks them until they settle, printing every tick and optionally exposing
Prometheus metrics and a snapshot endpoint over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			if cmd.Flags().Changed("no-color") {
				loaded.NoColor, _ = cmd.Flags().GetBool("no-color")
			}
			cfg = loaded
			return nil
		},
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file with ARBOR_* settings")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")

	cmd.AddCommand(
		newRunCmd(),
		newValidateCmd(),
		newHighFreqCmd(),
		newKindsCmd(),
		newInspectCmd(),
		newGraphCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel))
}

// kinds returns the registry every command builds trees with.
func kinds() *registry.Registry {
	r := registry.Default()
	highfreq.Register(r)
	return r
}
