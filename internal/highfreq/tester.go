package highfreq

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/google/uuid"
)

const (
	// DefaultMaxRounds bounds one Check when nothing changes.
	DefaultMaxRounds = 1000
	// DefaultPeriod is the pause between tree ticks in Run.
	DefaultPeriod = 100 * time.Millisecond
)

// Tester drives a tree and, between tree ticks, re-ticks its active
// high-frequency decorators until one of them changes status.
type Tester struct {
	visitor   *ActiveVisitor
	maxRounds int
	maxTicks  int
	period    time.Duration
	logger    *slog.Logger
}

// Option defines a functional option for configuring a Tester.
type Option func(*Tester)

// WithMaxRounds bounds how many re-tick rounds one Check may run.
func WithMaxRounds(n int) Option {
	return func(t *Tester) {
		if n > 0 {
			t.maxRounds = n
		}
	}
}

// WithMaxTicks bounds how many tree ticks Run performs (0 means unbounded).
func WithMaxTicks(n int) Option {
	return func(t *Tester) {
		t.maxTicks = n
	}
}

// WithPeriod sets the pause between tree ticks.
func WithPeriod(d time.Duration) Option {
	return func(t *Tester) {
		t.period = d
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tester) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTester creates a tester with its own active visitor.
func NewTester(opts ...Option) *Tester {
	t := &Tester{
		visitor:   NewActiveVisitor(),
		maxRounds: DefaultMaxRounds,
		period:    DefaultPeriod,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Visitor returns the visitor that must be registered on the driven tree.
func (t *Tester) Visitor() *ActiveVisitor {
	return t.visitor
}

// Check re-ticks the active decorators until their combined statuses differ from
// those recorded by the last tree tick. It reports the rounds run and whether a
// change was seen before the round limit.
func (t *Tester) Check(ctx context.Context) (int, bool, error) {
	last := t.visitor.States()
	if len(last) == 0 {
		return 0, false, nil
	}

	for round := 1; round <= t.maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return round - 1, false, err
		}
		next := make(map[uuid.UUID]domain.Status, len(last))
		for _, node := range t.visitor.Active() {
			behaviour.Drain(node)
			next[node.ID()] = node.Status()
		}
		if !maps.Equal(next, last) {
			t.logger.Debug("high frequency change", "rounds", round)
			return round, true, nil
		}
	}
	t.logger.Debug("high frequency check gave up", "rounds", t.maxRounds)
	return t.maxRounds, false, nil
}

// Run ticks tr until its root reports SUCCESS or FAILURE, running a Check
// between ticks. The tester's visitor is added to tr.
func (t *Tester) Run(ctx context.Context, tr *tree.Tree) error {
	tr.AddVisitor(t.visitor)

	if err := tr.Tick(ctx); err != nil {
		return err
	}
	for !tr.Root().Status().IsTerminal() {
		if t.maxTicks > 0 && tr.Count() >= t.maxTicks {
			t.logger.Info("tick limit reached", "ticks", tr.Count(), "status", tr.Root().Status())
			return nil
		}
		if _, _, err := t.Check(ctx); err != nil {
			return err
		}
		if err := tr.Tick(ctx); err != nil {
			return err
		}
		if t.period > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(t.period):
			}
		}
	}
	t.logger.Info("tree settled", "ticks", tr.Count(), "status", tr.Root().Status())
	return nil
}
