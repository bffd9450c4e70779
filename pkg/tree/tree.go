package tree

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/petermattis/goid"
)

// Continuous makes TickTock run until interrupted or cancelled.
const Continuous = -1

// Handler runs before or after a whole tick.
type Handler func(t *Tree)

// Tree ticks a root behaviour and fans visited nodes out to observers.
type Tree struct {
	root     behaviour.Behaviour
	visitors []Visitor
	pre      []Handler
	post     []Handler
	hooks    []domain.LifecycleHooks
	logger   *slog.Logger

	count       atomic.Int64
	owner       atomic.Int64
	interrupted atomic.Bool
}

// Option defines a functional option for configuring a Tree.
type Option func(*Tree)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithVisitors registers visitors in order.
func WithVisitors(visitors ...Visitor) Option {
	return func(t *Tree) {
		t.visitors = append(t.visitors, visitors...)
	}
}

// WithLifecycleHooks registers a set of callbacks. It can be repeated; hooks run
// in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Tree) {
		t.hooks = append(t.hooks, hooks)
	}
}

// WithPreTickHandler registers a handler that runs before every tick.
func WithPreTickHandler(h Handler) Option {
	return func(t *Tree) {
		t.pre = append(t.pre, h)
	}
}

// WithPostTickHandler registers a handler that runs after every tick.
func WithPostTickHandler(h Handler) Option {
	return func(t *Tree) {
		t.post = append(t.post, h)
	}
}

// New creates a tree around root. It panics if root is nil.
func New(root behaviour.Behaviour, opts ...Option) *Tree {
	if root == nil {
		panic("tree: root must not be nil")
	}
	t := &Tree{
		root:   root,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the root behaviour.
func (t *Tree) Root() behaviour.Behaviour { return t.root }

// Count returns the number of completed ticks.
func (t *Tree) Count() int { return int(t.count.Load()) }

// AddVisitor registers a visitor after construction.
func (t *Tree) AddVisitor(v Visitor) { t.visitors = append(t.visitors, v) }

// AddPreTickHandler registers a handler that runs before every tick.
func (t *Tree) AddPreTickHandler(h Handler) { t.pre = append(t.pre, h) }

// AddPostTickHandler registers a handler that runs after every tick.
func (t *Tree) AddPostTickHandler(h Handler) { t.post = append(t.post, h) }

// claim binds the tree to the calling goroutine on first use.
func (t *Tree) claim() error {
	id := goid.Get()
	if t.owner.CompareAndSwap(0, id) || t.owner.Load() == id {
		return nil
	}
	return domain.ErrForeignGoroutine
}

// Tick runs one full traversal of the tree.
// The root's visit sequence is always drained to the end; ctx is only consulted
// before the traversal starts.
func (t *Tree) Tick(ctx context.Context) error {
	if err := t.claim(); err != nil {
		return fmt.Errorf("tick %d: %w", t.Count()+1, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tick := t.Count() + 1
	start := time.Now()
	t.logger.Debug("tick", "tick", tick)

	// 1. Pre-tick handlers and visitor reset
	for _, h := range t.pre {
		h(t)
	}
	for _, v := range t.visitors {
		v.Initialise()
	}
	t.emitTick(ctx, domain.EventTickStart, &domain.TickEvent{
		EventBase:  domain.EventBase{Timestamp: start, Type: domain.EventTickStart, Tick: tick},
		RootStatus: t.root.Status(),
	})

	// 2. Traversal: only what the tick actually yields
	visited := 0
	for node := range t.root.Tick() {
		visited++
		for _, v := range t.visitors {
			if !v.Full() {
				v.Run(node)
			}
		}
		t.emitVisit(ctx, tick, node)
	}

	// 3. Full visitors see the settled tree
	for node := range behaviour.Iterate(t.root) {
		for _, v := range t.visitors {
			if v.Full() {
				v.Run(node)
			}
		}
	}

	elapsed := time.Since(start)
	t.emitTick(ctx, domain.EventTickEnd, &domain.TickEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventTickEnd, Tick: tick},
		RootStatus: t.root.Status(),
		Visited:    visited,
		Duration:   elapsed,
	})

	// 4. Post-tick handlers
	for _, h := range t.post {
		h(t)
	}
	t.count.Add(1)

	t.logger.Debug("tick complete",
		"tick", tick,
		"status", t.root.Status(),
		"visited", visited,
		"duration", elapsed,
	)
	return nil
}

// TickTock ticks the tree every period until iterations ticks have run
// (Continuous for no limit), Interrupt is called, or ctx is done.
// Interrupt is a clean stop and yields a nil error.
func (t *Tree) TickTock(ctx context.Context, period time.Duration, iterations int) error {
	defer t.interrupted.Store(false)

	timer := time.NewTimer(period)
	defer timer.Stop()

	for n := 0; iterations == Continuous || n < iterations; n++ {
		if t.interrupted.Load() {
			t.logger.Debug("tick-tock interrupted", "ticks", n)
			return nil
		}
		if err := t.Tick(ctx); err != nil {
			return err
		}
		if iterations != Continuous && n+1 >= iterations {
			break
		}

		timer.Reset(period)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Interrupt asks a running TickTock to stop before its next tick.
// It is safe to call from any goroutine.
func (t *Tree) Interrupt() {
	t.interrupted.Store(true)
}

// Destroy cancels the whole tree by stopping the root with INVALID.
func (t *Tree) Destroy() error {
	if err := t.claim(); err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	t.logger.Debug("destroy", "root", t.root.Name())
	t.root.Stop(domain.StatusInvalid)
	return nil
}

func (t *Tree) emitTick(ctx context.Context, typ domain.EventType, ev *domain.TickEvent) {
	for _, h := range t.hooks {
		switch typ {
		case domain.EventTickStart:
			if h.OnTickStart != nil {
				h.OnTickStart(ctx, ev)
			}
		case domain.EventTickEnd:
			if h.OnTickEnd != nil {
				h.OnTickEnd(ctx, ev)
			}
		}
	}
}

func (t *Tree) emitVisit(ctx context.Context, tick int, node behaviour.Behaviour) {
	var ev *domain.NodeEvent
	for _, h := range t.hooks {
		if h.OnNodeVisit == nil {
			continue
		}
		if ev == nil {
			ev = &domain.NodeEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeVisit, Tick: tick},
				NodeID:    node.ID().String(),
				NodeName:  node.Name(),
				Status:    node.Status(),
				Feedback:  node.Feedback(),
			}
		}
		h.OnNodeVisit(ctx, ev)
	}
}
