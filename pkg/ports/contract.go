package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	sample := func(tick int) *tree.Snapshot {
		id := uuid.New()
		return &tree.Snapshot{
			Tick: tick,
			Nodes: []tree.NodeState{
				{ID: id, Name: "Patrol", Status: domain.StatusRunning, Feedback: "walking"},
			},
			Running:           []uuid.UUID{id},
			PreviouslyRunning: []uuid.UUID{},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := sample(3)
		require.NoError(t, store.Save(ctx, name, snap))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 3, loaded.Tick)
		require.Len(t, loaded.Nodes, 1)
		assert.Equal(t, snap.Nodes[0], loaded.Nodes[0])
		assert.Equal(t, snap.Running, loaded.Running)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample(4)))
		require.NoError(t, store.Save(ctx, name, sample(5)))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 5, loaded.Tick)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+name)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample(1)))
		require.NoError(t, store.Delete(ctx, name))

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		a, b := name+"-a", name+"-b"
		require.NoError(t, store.Save(ctx, a, sample(1)))
		require.NoError(t, store.Save(ctx, b, sample(1)))
		defer func() {
			_ = store.Delete(ctx, a)
			_ = store.Delete(ctx, b)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, a)
		assert.Contains(t, names, b)
	})
}
