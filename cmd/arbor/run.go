package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/arbor"
	httpAdapter "github.com/aretw0/arbor/internal/adapters/http"
	"github.com/aretw0/arbor/internal/presentation/console"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <tree.yaml>",
		Short: "Tick a tree until it settles",
		Long: `Loads a tree definition and ticks it every --period until the root reports
SUCCESS or FAILURE, --iterations ticks have run, or the process is interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("period") {
				cfg.TickPeriod, _ = cmd.Flags().GetDuration("period")
			}
			if cmd.Flags().Changed("iterations") {
				cfg.Iterations, _ = cmd.Flags().GetInt("iterations")
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
			}
			applyStoreFlags(cmd)
			verbose, _ := cmd.Flags().GetBool("verbose")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTree(ctx, cmd, args[0], verbose)
		},
	}

	cmd.Flags().Duration("period", 500*time.Millisecond, "Pause between ticks")
	cmd.Flags().Int("iterations", -1, "Maximum number of ticks (-1 for no limit)")
	cmd.Flags().String("metrics-addr", "", "Serve /metrics and /snapshot on this address (e.g. :2112)")
	cmd.Flags().BoolP("verbose", "v", false, "Print every visited node")
	storeFlags(cmd)
	return cmd
}

func runTree(ctx context.Context, cmd *cobra.Command, path string, verbose bool) error {
	logger := newLogger()
	out := cmd.OutOrStdout()
	printer := console.NewPrinter(out, !cfg.NoColor, verbose)
	metrics := prometheus.NewRegistry()

	opts := []arbor.Option{
		arbor.WithLogger(logger),
		arbor.WithRegistry(kinds()),
		arbor.WithMetrics(metrics),
		arbor.WithLifecycleHooks(printer.Hooks()),
	}
	store, closeStore := openStore()
	defer closeStore()
	if store != nil {
		opts = append(opts, arbor.WithSnapshotStore(store))
	}

	eng, err := arbor.Load(path, opts...)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		handler := httpAdapter.NewHandler(&httpAdapter.Server{
			Name:     eng.Name(),
			Source:   eng,
			Gatherer: metrics,
			Logger:   logger,
		})
		go func() {
			logger.Info("serving introspection", "addr", cfg.MetricsAddr)
			if err := httpAdapter.ListenAndServe(ctx, cfg.MetricsAddr, handler, 5*time.Second); err != nil {
				logger.Error("introspection server failed", "error", err)
			}
		}()
	}

	printer.Banner(eng.Name(), arbor.Version)
	runErr := eng.Run(ctx, cfg.TickPeriod, cfg.Iterations)
	if errors.Is(runErr, context.Canceled) {
		logger.Info("interrupted")
		runErr = nil
	}

	status := eng.Root().Status()
	fmt.Fprintf(out, "final status: %s after %d ticks\n", printer.Status(status), eng.Tree().Count())
	return errors.Join(runErr, eng.Close())
}
