package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/tree"
)

// SnapshotStore keeps the most recent snapshot of each tree, keyed by tree name.
type SnapshotStore interface {
	// Save replaces the snapshot recorded for treeName.
	Save(ctx context.Context, treeName string, snap *tree.Snapshot) error

	// Load retrieves the snapshot recorded for treeName.
	// Returns domain.ErrSnapshotNotFound if nothing was recorded.
	Load(ctx context.Context, treeName string) (*tree.Snapshot, error)

	// Delete forgets treeName.
	Delete(ctx context.Context, treeName string) error

	// List returns the names of every recorded tree.
	List(ctx context.Context) ([]string, error)
}
