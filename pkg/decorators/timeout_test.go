package decorators_test

import (
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/behaviours"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeoutRule(t *testing.T, d *decorators.Decorator) *decorators.Timeout {
	t.Helper()
	rule, ok := d.Rule().(*decorators.Timeout)
	require.True(t, ok)
	return rule
}

func TestTimeout_Fires(t *testing.T) {
	clock := newFakeClock()
	child := newSpy("working", domain.StatusRunning)
	d := decorators.NewTimeout(child, 200*time.Millisecond, decorators.WithClock(clock.Now))
	rule := timeoutRule(t, d)

	behaviour.Drain(d)
	assert.Equal(t, domain.StatusRunning, d.Status())
	assert.Equal(t, "working [time left: 200ms]", d.Feedback())
	deadline, armed := rule.Deadline()
	require.True(t, armed)
	assert.Equal(t, clock.Now().Add(200*time.Millisecond), deadline)

	clock.Advance(300 * time.Millisecond)
	behaviour.Drain(d)

	assert.Equal(t, domain.StatusFailure, d.Status())
	assert.Equal(t, "timed out", d.Feedback())
	assert.Equal(t, domain.StatusInvalid, child.Status())
	_, armed = rule.Deadline()
	assert.False(t, armed, "deadline is forgotten once the decorator settles")
}

func TestTimeout_RearmsOnNextActivation(t *testing.T) {
	clock := newFakeClock()
	d := decorators.NewTimeout(newSpy("", domain.StatusRunning), 200*time.Millisecond, decorators.WithClock(clock.Now))
	rule := timeoutRule(t, d)

	for range 2 {
		start := clock.Now()
		behaviour.Drain(d)
		deadline, armed := rule.Deadline()
		require.True(t, armed)
		assert.Equal(t, start.Add(200*time.Millisecond), deadline)

		clock.Advance(300 * time.Millisecond)
		behaviour.Drain(d)
		assert.Equal(t, domain.StatusFailure, d.Status())
	}
}

func TestTimeout_DeadlineIsInclusive(t *testing.T) {
	clock := newFakeClock()
	d := decorators.NewTimeout(newSpy("", domain.StatusRunning), time.Second, decorators.WithClock(clock.Now))

	behaviour.Drain(d)
	clock.Advance(time.Second)
	behaviour.Drain(d)

	assert.Equal(t, domain.StatusRunning, d.Status())
	assert.Equal(t, "[time left: 0s]", d.Feedback())
}

func TestTimeout_ChildSucceedsBeforeDeadline(t *testing.T) {
	clock := newFakeClock()
	child := newSpy("done", domain.StatusRunning, domain.StatusSuccess)
	d := decorators.NewTimeout(child, 200*time.Millisecond, decorators.WithClock(clock.Now))
	rule := timeoutRule(t, d)

	behaviour.Drain(d)
	clock.Advance(100 * time.Millisecond)
	behaviour.Drain(d)

	assert.Equal(t, domain.StatusSuccess, d.Status())
	assert.Equal(t, "done [time left: 100ms]", d.Feedback())
	_, armed := rule.Deadline()
	assert.False(t, armed)
}

func TestTimeout_ChildFinishingLateStillTimesOut(t *testing.T) {
	tests := []struct {
		name   string
		settle domain.Status
	}{
		{"success", domain.StatusSuccess},
		{"failure", domain.StatusFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			child := newSpy("done", domain.StatusRunning, tt.settle)
			d := decorators.NewTimeout(child, 200*time.Millisecond, decorators.WithClock(clock.Now))
			rule := timeoutRule(t, d)

			behaviour.Drain(d)
			clock.Advance(300 * time.Millisecond)
			behaviour.Drain(d)

			assert.Equal(t, domain.StatusFailure, d.Status())
			assert.Equal(t, "timed out", d.Feedback())
			assert.Equal(t, domain.StatusInvalid, child.Status(), "late child is cancelled")
			_, armed := rule.Deadline()
			assert.False(t, armed)
		})
	}
}

func TestTimeout_FailurePassesThrough(t *testing.T) {
	clock := newFakeClock()
	d := decorators.NewTimeout(newSpy("broken", domain.StatusFailure), time.Second, decorators.WithClock(clock.Now))

	behaviour.Drain(d)

	assert.Equal(t, domain.StatusFailure, d.Status())
	assert.Equal(t, "broken [time left: 1s]", d.Feedback())
}

func TestTimeout_CancellationClearsDeadline(t *testing.T) {
	clock := newFakeClock()
	child := newSpy("", domain.StatusRunning)
	d := decorators.NewTimeout(child, 200*time.Millisecond, decorators.WithClock(clock.Now))
	rule := timeoutRule(t, d)

	behaviour.Drain(d)
	d.Stop(domain.StatusInvalid)

	_, armed := rule.Deadline()
	assert.False(t, armed)
	assert.Equal(t, domain.StatusInvalid, d.Status())
	assert.Equal(t, domain.StatusInvalid, child.Status())
}

func TestTimeout_RealClock(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps")
	}
	d := decorators.NewTimeout(behaviours.NewRunning(""), 200*time.Millisecond)
	assert.Equal(t, 200*time.Millisecond, timeoutRule(t, d).Duration())

	behaviour.Drain(d)
	assert.Equal(t, domain.StatusRunning, d.Status())

	time.Sleep(300 * time.Millisecond)
	behaviour.Drain(d)
	assert.Equal(t, domain.StatusFailure, d.Status())
	assert.Equal(t, domain.StatusInvalid, d.Child().Status())
}
