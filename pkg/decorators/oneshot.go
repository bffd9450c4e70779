package decorators

import (
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// Oneshot drives its child until the first SUCCESS or FAILURE and then replays
// that outcome without touching the child again. Cancelling the decorator
// (Stop with INVALID) releases the latch.
type Oneshot struct{}

// Gate implements Gater.
func (Oneshot) Gate(d *Decorator) Gate {
	if d.Status().IsTerminal() {
		return GateReplay
	}
	return GateDrive
}

// Update implements Rule.
func (Oneshot) Update(d *Decorator) domain.Status {
	d.SetFeedback(d.Child().Feedback())
	return d.Child().Status()
}

// NewOneshot latches the first terminal outcome of child.
func NewOneshot(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, Oneshot{}, named("Oneshot", opts)...)
}
