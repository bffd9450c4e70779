package decorators

import (
	"strings"
	"time"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// Timeout fails its child once the deadline has passed, whatever the child
// reports on that tick. The deadline is armed at the start of an activation and
// forgotten whenever the decorator settles, so every activation gets a fresh budget.
type Timeout struct {
	duration time.Duration
	clock    Clock
	deadline time.Time
	armed    bool
}

// Duration returns the configured budget.
func (t *Timeout) Duration() time.Duration {
	return t.duration
}

// Deadline returns the armed deadline, if any.
func (t *Timeout) Deadline() (time.Time, bool) {
	return t.deadline, t.armed
}

// Initialise arms the deadline unless it is already armed.
func (t *Timeout) Initialise(d *Decorator) {
	if t.armed {
		return
	}
	t.deadline = t.clock().Add(t.duration)
	t.armed = true
	d.Logger().Debug("initialise", "deadline", t.deadline)
}

// Update implements Rule. The clock is checked on every update; in budget the
// child's status is reported with the time left appended to its feedback.
func (t *Timeout) Update(d *Decorator) domain.Status {
	t.Initialise(d)
	child := d.Child()

	now := t.clock()
	if now.After(t.deadline) {
		d.Logger().Debug("update", "timed_out", true)
		d.SetFeedback("timed out")
		child.Stop(domain.StatusInvalid)
		return domain.StatusFailure
	}

	remaining := t.deadline.Sub(now)
	d.SetFeedback(strings.TrimSpace(child.Feedback() + " [time left: " + remaining.String() + "]"))
	return child.Status()
}

// Terminate clears the deadline on any non-RUNNING settle, including external
// cancellation.
func (t *Timeout) Terminate(d *Decorator, newStatus domain.Status) {
	if newStatus == domain.StatusRunning {
		return
	}
	d.Logger().Debug("terminate", "status", newStatus)
	t.deadline = time.Time{}
	t.armed = false
}

// NewTimeout bounds how long child may stay RUNNING.
func NewTimeout(child behaviour.Behaviour, duration time.Duration, opts ...Option) *Decorator {
	cfg := newConfig("Timeout", opts)
	return newDecorator(child, &Timeout{duration: duration, clock: cfg.clock}, cfg)
}
