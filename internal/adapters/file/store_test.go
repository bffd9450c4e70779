package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSnapshotStoreContract(t, store)
}

func TestFileStore_WritesReadableJSON(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	snap := &tree.Snapshot{Tick: 7, Nodes: []tree.NodeState{{Name: "Guard", Status: domain.StatusFailure}}}

	require.NoError(t, store.Save(context.Background(), "guard", snap))

	data, err := os.ReadFile(filepath.Join(dir, "guard.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tick": 7`)
	assert.Contains(t, string(data), `"status": "FAILURE"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, store.Save(ctx, name, &tree.Snapshot{}), name)
		_, err := store.Load(ctx, name)
		assert.Error(t, err, name)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNew_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".arbor", "snapshots"), file.New("").BasePath)
}
