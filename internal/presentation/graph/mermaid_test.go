package graph

import (
	"testing"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/behaviours"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid_Shapes(t *testing.T) {
	root := decorators.NewInverter(decorators.NewOneshot(behaviours.NewSuccess(`say "hi"`)))

	got := GenerateMermaid(root, Options{})

	expected := "graph TD\n" +
		"    n0{{\"Inverter\"}}\n" +
		"    n1{{\"Oneshot\"}}\n" +
		"    n2[\"say 'hi'\"]\n" +
		"    n1 --> n2\n" +
		"    n0 --> n1\n"
	assert.Equal(t, expected, got)
}

func TestGenerateMermaid_Statuses(t *testing.T) {
	root := decorators.NewFailureIsRunning(behaviours.NewFailure("Probe"))
	behaviour.Drain(root)

	got := GenerateMermaid(root, Options{Statuses: true})

	assert.Contains(t, got, "n0{{\"FailureIsRunning<br/>RUNNING\"}}")
	assert.Contains(t, got, "n1[\"Probe<br/>FAILURE\"]")
	assert.Contains(t, got, "classDef running")
	assert.Contains(t, got, "class n0 running;")
	assert.Contains(t, got, "class n1 failure;")
	assert.NotContains(t, got, "class n0,n1")
}
