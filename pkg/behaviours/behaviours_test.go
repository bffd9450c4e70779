package behaviours_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/behaviours"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	tests := []struct {
		name string
		node *behaviours.Fixed
		want domain.Status
	}{
		{"Success", behaviours.NewSuccess(""), domain.StatusSuccess},
		{"Failure", behaviours.NewFailure(""), domain.StatusFailure},
		{"Running", behaviours.NewRunning(""), domain.StatusRunning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visited := behaviour.Drain(tt.node)
			require.Len(t, visited, 1)
			assert.Equal(t, tt.node.ID(), visited[0].ID())
			assert.Equal(t, tt.want, tt.node.Status())
			assert.Equal(t, tt.name, tt.node.Name())
		})
	}
}

func TestCount_Phases(t *testing.T) {
	count := behaviours.NewCount("", behaviours.CountConfig{
		FailUntil: 1, RunningUntil: 2, SuccessUntil: 3,
	})

	want := []domain.Status{
		domain.StatusFailure,
		domain.StatusRunning,
		domain.StatusSuccess,
		domain.StatusFailure,
	}
	for i, w := range want {
		behaviour.Drain(count)
		assert.Equal(t, w, count.Status(), "tick %d", i+1)
	}
	assert.Equal(t, "failing forever more", count.Feedback())
}

func TestCount_ResetOnlyOnCancellation(t *testing.T) {
	count := behaviours.NewCount("", behaviours.CountConfig{
		FailUntil: 2, RunningUntil: 2, SuccessUntil: 10, Reset: true,
	})

	behaviour.Drain(count)
	behaviour.Drain(count)
	assert.Equal(t, 2, count.Count(), "FAILURE must not rewind the counter")

	count.Stop(domain.StatusInvalid)
	assert.Equal(t, 0, count.Count())
	assert.Equal(t, domain.StatusInvalid, count.Status())
}

func TestStatusQueue(t *testing.T) {
	eventually := domain.StatusFailure
	q := behaviours.NewStatusQueue("script", []domain.Status{
		domain.StatusRunning, domain.StatusSuccess,
	}, &eventually)

	behaviour.Drain(q)
	assert.Equal(t, domain.StatusRunning, q.Status())
	behaviour.Drain(q)
	assert.Equal(t, domain.StatusSuccess, q.Status())
	behaviour.Drain(q)
	assert.Equal(t, domain.StatusFailure, q.Status())
	assert.Equal(t, 3, q.Ticks())

	q.Stop(domain.StatusInvalid)
	behaviour.Drain(q)
	assert.Equal(t, domain.StatusRunning, q.Status(), "cancellation rewinds the script")
}

func TestStatusQueue_RepeatsLast(t *testing.T) {
	q := behaviours.NewStatusQueue("", []domain.Status{domain.StatusSuccess}, nil)
	behaviour.Drain(q)
	behaviour.Drain(q)
	assert.Equal(t, domain.StatusSuccess, q.Status())
}
