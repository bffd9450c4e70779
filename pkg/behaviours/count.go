package behaviours

import (
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// CountConfig describes the phases of a Count leaf. Each bound is inclusive and
// compared against the number of updates seen in the current activation.
type CountConfig struct {
	FailUntil    int  `mapstructure:"fail_until"`
	RunningUntil int  `mapstructure:"running_until"`
	SuccessUntil int  `mapstructure:"success_until"`
	Reset        bool `mapstructure:"reset"`
}

// DefaultCountConfig fails for 3 ticks, runs for 2 and then succeeds once.
func DefaultCountConfig() CountConfig {
	return CountConfig{FailUntil: 3, RunningUntil: 5, SuccessUntil: 6, Reset: true}
}

// Count walks through failure, running and success phases as it is ticked,
// then fails forever. With Reset, cancellation (INVALID) rewinds the counter.
type Count struct {
	*behaviour.Base
	cfg   CountConfig
	count int
}

// NewCount creates a Count leaf.
func NewCount(name string, cfg CountConfig, opts ...behaviour.Option) *Count {
	if name == "" {
		name = "Count"
	}
	c := &Count{cfg: cfg}
	c.Base = behaviour.NewBase(c, name, opts...)
	return c
}

// Count returns the number of updates in the current phase sequence.
func (c *Count) Count() int {
	return c.count
}

// Update implements behaviour.Updater.
func (c *Count) Update() domain.Status {
	c.count++
	switch {
	case c.count <= c.cfg.FailUntil:
		c.SetFeedback("failing")
		return domain.StatusFailure
	case c.count <= c.cfg.RunningUntil:
		c.SetFeedback("running")
		return domain.StatusRunning
	case c.count <= c.cfg.SuccessUntil:
		c.SetFeedback("success")
		return domain.StatusSuccess
	default:
		c.SetFeedback("failing forever more")
		return domain.StatusFailure
	}
}

// Terminate resets the counter only when the activation was cancelled.
func (c *Count) Terminate(newStatus domain.Status) {
	c.Logger().Debug("terminate", "status", newStatus, "count", c.count)
	if newStatus == domain.StatusInvalid && c.cfg.Reset {
		c.count = 0
	}
}
