package arbor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is the current release of arbor.
const Version = "0.1.0"

// storeTimeout bounds each snapshot write so a slow store cannot stall ticking.
const storeTimeout = 2 * time.Second

// Engine is the high-level entry point for the arbor library.
// It wraps a tree driver with the observers most hosts want: a snapshot of the
// last tick, optional Prometheus metrics and structured logging.
type Engine struct {
	tree     *tree.Tree
	snapshot *tree.SnapshotVisitor
	metrics  *observability.Metrics

	kinds      *registry.Registry
	clock      func() time.Time
	hooks      []domain.LifecycleHooks
	visitors   []tree.Visitor
	treeOpts   []tree.Option
	registerer prometheus.Registerer
	store      ports.SnapshotStore
	logger     *slog.Logger
	running    bool
	name       string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. It can be repeated.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the engine and every loaded node.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry sets the kind registry used by Load (default: registry.Default()).
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.kinds = r
	}
}

// WithClock sets the time source handed to loaded time-based decorators.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithMetrics exports Prometheus metrics through reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.registerer = reg
	}
}

// WithSnapshotStore records the snapshot of every tick in store, under the tree name.
func WithSnapshotStore(store ports.SnapshotStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithName overrides the tree name used for logging and as the snapshot key.
func WithName(name string) Option {
	return func(e *Engine) {
		e.name = name
	}
}

// WithVisitors registers extra tree visitors.
func WithVisitors(visitors ...tree.Visitor) Option {
	return func(e *Engine) {
		e.visitors = append(e.visitors, visitors...)
	}
}

// WithTreeOptions passes options straight to the tree driver.
func WithTreeOptions(opts ...tree.Option) Option {
	return func(e *Engine) {
		e.treeOpts = append(e.treeOpts, opts...)
	}
}

func newEngine(opts []Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.kinds == nil {
		e.kinds = registry.Default()
	}
	return e
}

// New wraps an already built root.
func New(root behaviour.Behaviour, opts ...Option) *Engine {
	e := newEngine(opts)
	if e.name == "" {
		e.name = root.Name()
	}
	e.wire(root)
	return e
}

// Load reads a definition file and builds its tree.
func Load(path string, opts ...Option) (*Engine, error) {
	f, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return FromDefinition(f, opts...)
}

// FromDefinition validates and builds an in-memory definition.
func FromDefinition(f *loader.File, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	if e.name == "" {
		e.name = f.Name
	}
	if e.name != "" {
		e.logger = e.logger.With("tree", e.name)
	}

	if err := loader.Validate(f.Root, e.kinds); err != nil {
		return nil, fmt.Errorf("invalid tree %q: %w", f.Name, err)
	}
	root, err := loader.Build(f.Root, e.kinds, registry.Env{Logger: e.logger, Clock: e.clock})
	if err != nil {
		return nil, fmt.Errorf("failed to build tree %q: %w", f.Name, err)
	}

	e.wire(root)
	return e, nil
}

func (e *Engine) wire(root behaviour.Behaviour) {
	e.snapshot = tree.NewSnapshotVisitor()

	opts := []tree.Option{
		tree.WithLogger(e.logger),
		tree.WithVisitors(e.snapshot),
		tree.WithVisitors(e.visitors...),
		tree.WithLifecycleHooks(observability.LoggingHooks(e.logger)),
	}
	if e.registerer != nil {
		e.metrics = observability.NewMetrics(e.registerer)
		opts = append(opts, tree.WithVisitors(e.metrics), tree.WithLifecycleHooks(e.metrics.Hooks()))
	}
	for _, h := range e.hooks {
		opts = append(opts, tree.WithLifecycleHooks(h))
	}
	opts = append(opts, e.treeOpts...)
	if e.store != nil {
		opts = append(opts, tree.WithPostTickHandler(e.recordSnapshot))
	}
	opts = append(opts, tree.WithPostTickHandler(e.stopWhenSettled))

	e.tree = tree.New(root, opts...)
}

// Name returns the tree name: the WithName value, the definition name, or the root name.
func (e *Engine) Name() string {
	return e.name
}

// recordSnapshot never fails the tick; store errors are only logged.
func (e *Engine) recordSnapshot(t *tree.Tree) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	snap := e.snapshot.Snapshot()
	if err := e.store.Save(ctx, e.name, &snap); err != nil {
		e.logger.Warn("failed to record snapshot", "error", err)
	}
}

func (e *Engine) stopWhenSettled(t *tree.Tree) {
	if e.running && t.Root().Status().IsTerminal() {
		e.logger.Info("tree settled", "status", t.Root().Status(), "ticks", t.Count()+1)
		t.Interrupt()
	}
}

// Tree returns the underlying driver.
func (e *Engine) Tree() *tree.Tree { return e.tree }

// Root returns the root behaviour.
func (e *Engine) Root() behaviour.Behaviour { return e.tree.Root() }

// Snapshot returns what the last tick visited. Safe from any goroutine.
func (e *Engine) Snapshot() tree.Snapshot { return e.snapshot.Snapshot() }

// Tick runs one traversal.
func (e *Engine) Tick(ctx context.Context) error { return e.tree.Tick(ctx) }

// Run ticks every period until the root reports SUCCESS or FAILURE, iterations
// ticks have run (tree.Continuous for no limit), or ctx is done.
func (e *Engine) Run(ctx context.Context, period time.Duration, iterations int) error {
	e.running = true
	defer func() { e.running = false }()
	return e.tree.TickTock(ctx, period, iterations)
}

// Close cancels the tree, leaving every node INVALID.
func (e *Engine) Close() error {
	return e.tree.Destroy()
}
