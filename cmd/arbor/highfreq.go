package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/highfreq"
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/behaviours"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/spf13/cobra"
)

func newHighFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highfreq [tree.yaml]",
		Short: "Run a tree with high-frequency checks between ticks",
		Long: `Ticks a tree and, between ticks, re-ticks its active high_frequency
decorators until one of them changes status. Without a definition a demo tree
is used: a counter that runs for five ticks behind a high_frequency decorator.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxRounds, _ := cmd.Flags().GetInt("max-rounds")
			maxTicks, _ := cmd.Flags().GetInt("max-ticks")
			period, _ := cmd.Flags().GetDuration("period")
			logger := newLogger()

			opts := []arbor.Option{arbor.WithLogger(logger), arbor.WithRegistry(kinds())}
			var eng *arbor.Engine
			if len(args) == 1 {
				var err error
				if eng, err = arbor.Load(args[0], opts...); err != nil {
					return err
				}
			} else {
				eng = arbor.New(demoTree(logger), opts...)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tester := highfreq.NewTester(
				highfreq.WithMaxRounds(maxRounds),
				highfreq.WithMaxTicks(maxTicks),
				highfreq.WithPeriod(period),
				highfreq.WithLogger(logger),
			)
			if err := tester.Run(ctx, eng.Tree()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tree Ticks %d (%s)\n", eng.Tree().Count(), eng.Root().Status())
			return nil
		},
	}

	cmd.Flags().Int("max-rounds", highfreq.DefaultMaxRounds, "Maximum re-tick rounds between two tree ticks")
	cmd.Flags().Int("max-ticks", 0, "Maximum number of tree ticks (0 for no limit)")
	cmd.Flags().Duration("period", highfreq.DefaultPeriod, "Pause between tree ticks")
	return cmd
}

// demoTree runs for five ticks and then succeeds, all under a ten second deadline.
func demoTree(logger *slog.Logger) behaviour.Behaviour {
	counter := behaviours.NewCount("Counter",
		behaviours.CountConfig{FailUntil: 0, RunningUntil: 5, SuccessUntil: math.MaxInt},
		behaviour.WithLogger(logger),
	)
	hf := highfreq.New(counter, decorators.WithLogger(logger))
	return decorators.NewTimeout(hf, 10*time.Second, decorators.WithName("Deadline"), decorators.WithLogger(logger))
}
