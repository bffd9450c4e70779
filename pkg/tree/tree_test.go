package tree_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/behaviours"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a visitor that keeps node names per tick.
type recorder struct {
	full        bool
	initialised int
	names       []string
}

func (r *recorder) Initialise() {
	r.initialised++
	r.names = nil
}

func (r *recorder) Run(b behaviour.Behaviour) { r.names = append(r.names, b.Name()) }

func (r *recorder) Full() bool { return r.full }

func TestNew_NilRootPanics(t *testing.T) {
	assert.Panics(t, func() { tree.New(nil) })
}

func TestTree_Tick(t *testing.T) {
	root := decorators.NewInverter(behaviours.NewSuccess(""))
	tr := tree.New(root)

	require.NoError(t, tr.Tick(context.Background()))

	assert.Equal(t, 1, tr.Count())
	assert.Equal(t, domain.StatusFailure, tr.Root().Status())
}

func TestTree_Visitors(t *testing.T) {
	root := decorators.NewOneshot(decorators.NewInverter(behaviours.NewFailure("")))
	partial := &recorder{}
	full := &recorder{full: true}
	tr := tree.New(root, tree.WithVisitors(partial, full))

	require.NoError(t, tr.Tick(context.Background()))
	assert.Equal(t, []string{"Oneshot"}, partial.names, "decorators do not forward their child")
	assert.Equal(t, []string{"Failure", "Inverter", "Oneshot"}, full.names)

	require.NoError(t, tr.Tick(context.Background()))
	assert.Equal(t, 2, partial.initialised)
	assert.Equal(t, []string{"Oneshot"}, partial.names)
}

func TestTree_Handlers(t *testing.T) {
	var order []string
	tr := tree.New(behaviours.NewSuccess(""),
		tree.WithPreTickHandler(func(tr *tree.Tree) {
			order = append(order, "pre")
		}),
		tree.WithPostTickHandler(func(tr *tree.Tree) {
			order = append(order, "post")
		}),
	)
	tr.AddVisitor(&recorder{})
	tr.AddPreTickHandler(func(tr *tree.Tree) { order = append(order, "pre2") })
	tr.AddPostTickHandler(func(tr *tree.Tree) {
		order = append(order, "post2")
		// The count reflects completed ticks, so the current one is not counted yet.
		assert.Equal(t, 0, tr.Count())
	})

	require.NoError(t, tr.Tick(context.Background()))
	assert.Equal(t, []string{"pre", "pre2", "post", "post2"}, order)
}

func TestTree_LifecycleHooks(t *testing.T) {
	var starts, ends []*domain.TickEvent
	var visits []*domain.NodeEvent
	hooks := domain.LifecycleHooks{
		OnTickStart: func(_ context.Context, e *domain.TickEvent) { starts = append(starts, e) },
		OnTickEnd:   func(_ context.Context, e *domain.TickEvent) { ends = append(ends, e) },
		OnNodeVisit: func(_ context.Context, e *domain.NodeEvent) { visits = append(visits, e) },
	}
	root := decorators.NewRunningIsFailure(behaviours.NewRunning(""))
	tr := tree.New(root, tree.WithLifecycleHooks(hooks), tree.WithLifecycleHooks(domain.LifecycleHooks{}))

	require.NoError(t, tr.Tick(context.Background()))
	require.NoError(t, tr.Tick(context.Background()))

	require.Len(t, starts, 2)
	require.Len(t, ends, 2)
	assert.Equal(t, domain.EventTickStart, starts[0].Type)
	assert.Equal(t, 1, starts[0].Tick)
	assert.Equal(t, domain.StatusInvalid, starts[0].RootStatus)
	assert.Equal(t, 2, ends[1].Tick)
	assert.Equal(t, domain.StatusFailure, ends[1].RootStatus)
	assert.Equal(t, 1, ends[1].Visited)

	require.Len(t, visits, 2)
	assert.Equal(t, root.ID().String(), visits[0].NodeID)
	assert.Equal(t, "RunningIsFailure", visits[0].NodeName)
	assert.Equal(t, "running is failure", visits[0].Feedback)
}

func TestTree_ForeignGoroutine(t *testing.T) {
	tr := tree.New(behaviours.NewSuccess(""))
	require.NoError(t, tr.Tick(context.Background()))

	errs := make(chan error, 2)
	go func() {
		errs <- tr.Tick(context.Background())
		errs <- tr.Destroy()
	}()

	assert.ErrorIs(t, <-errs, domain.ErrForeignGoroutine)
	assert.ErrorIs(t, <-errs, domain.ErrForeignGoroutine)
	assert.Equal(t, 1, tr.Count())
}

func TestTree_TickCancelledContext(t *testing.T) {
	tr := tree.New(behaviours.NewSuccess(""))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, tr.Tick(ctx), context.Canceled)
	assert.Equal(t, 0, tr.Count())
}

func TestTree_TickTock(t *testing.T) {
	t.Run("iterations", func(t *testing.T) {
		tr := tree.New(behaviours.NewSuccess(""))
		require.NoError(t, tr.TickTock(context.Background(), time.Millisecond, 3))
		assert.Equal(t, 3, tr.Count())
	})

	t.Run("interrupt from a handler", func(t *testing.T) {
		tr := tree.New(behaviours.NewCount("", behaviours.DefaultCountConfig()))
		tr.AddPostTickHandler(func(tr *tree.Tree) {
			if tr.Root().Status() == domain.StatusSuccess {
				tr.Interrupt()
			}
		})

		require.NoError(t, tr.TickTock(context.Background(), time.Millisecond, tree.Continuous))
		assert.Equal(t, 6, tr.Count())

		// The interrupt flag is consumed; the next tick-tock runs again.
		require.NoError(t, tr.TickTock(context.Background(), time.Millisecond, 1))
		assert.Equal(t, 7, tr.Count())
	})

	t.Run("context cancellation", func(t *testing.T) {
		tr := tree.New(behaviours.NewRunning(""))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		err := tr.TickTock(ctx, 5*time.Millisecond, tree.Continuous)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Positive(t, tr.Count())
	})
}

func TestTree_Destroy(t *testing.T) {
	leaf := behaviours.NewRunning("")
	root := decorators.NewPassthrough(leaf)
	tr := tree.New(root)

	require.NoError(t, tr.Tick(context.Background()))
	require.Equal(t, domain.StatusRunning, leaf.Status())

	require.NoError(t, tr.Destroy())
	assert.Equal(t, domain.StatusInvalid, root.Status())
	assert.Equal(t, domain.StatusInvalid, leaf.Status())
}

func TestTree_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)
	tr := tree.New(behaviours.NewSuccess(""), tree.WithLogger(logger), tree.WithVisitors(tree.NewDebugVisitor(logger)))

	require.NoError(t, tr.Tick(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "msg=\"tick complete\"")
	assert.Contains(t, out, "status=SUCCESS")
	assert.Equal(t, 1, strings.Count(out, "msg=visit"))
}
