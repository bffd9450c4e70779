package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_YAML(t *testing.T) {
	f, err := loader.LoadFile(filepath.Join("testdata", "patrol.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "patrol", f.Name)
	require.NoError(t, loader.Validate(f.Root, registry.Default()))

	root, err := loader.Build(f.Root, registry.Default(), registry.Env{})
	require.NoError(t, err)
	assert.Equal(t, "Oneshot", root.Name())

	var names []string
	for n := range behaviour.Iterate(root) {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"Waypoints", "Patrol Deadline", "Oneshot"}, names)

	var statuses []domain.Status
	for range 4 {
		behaviour.Drain(root)
		statuses = append(statuses, root.Status())
	}
	assert.Equal(t, []domain.Status{
		domain.StatusRunning,
		domain.StatusRunning,
		domain.StatusSuccess,
		domain.StatusSuccess,
	}, statuses)
}

func TestLoadFile_JSON(t *testing.T) {
	f, err := loader.LoadFile(filepath.Join("testdata", "patrol.json"))
	require.NoError(t, err)

	root, err := loader.Build(f.Root, registry.Default(), registry.Env{})
	require.NoError(t, err)
	_, ok := root.(*decorators.Decorator)
	require.True(t, ok)

	behaviour.Drain(root)
	assert.Equal(t, domain.StatusRunning, root.Status())
	behaviour.Drain(root)
	assert.Equal(t, domain.StatusSuccess, root.Status())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := loader.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_NoRoot(t *testing.T) {
	_, err := loader.Parse([]byte("name: empty\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestParse_Malformed(t *testing.T) {
	_, err := loader.Parse([]byte("root: [unclosed"))
	assert.Error(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	f, err := loader.Parse([]byte(`
root:
  kind: timeout
  params: {duration: 1s}
  child:
    kind: selector
    child:
      kind: success
      child:
        kind: inverter
`))
	require.NoError(t, err)

	err = loader.Validate(f.Root, registry.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "root/child: ")
	assert.Contains(t, err.Error(), "root/child/child: success takes no child")
	assert.Contains(t, err.Error(), "root/child/child/child: inverter needs a child")
}

func TestValidate_MissingKind(t *testing.T) {
	err := loader.Validate(&loader.Definition{Name: "anon"}, registry.Default())
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestBuild_ErrorCarriesPath(t *testing.T) {
	def := &loader.Definition{
		Kind:  "inverter",
		Child: &loader.Definition{Kind: "timeout", Child: &loader.Definition{Kind: "running"}},
	}

	_, err := loader.Build(def, registry.Default(), registry.Env{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "root/child:")
}
