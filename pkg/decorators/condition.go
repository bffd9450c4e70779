package decorators

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// Condition waits for its child to reach a target status. It reports SUCCESS on
// a match and RUNNING otherwise; it never fails on its own.
type Condition struct {
	succeedStatus domain.Status
}

// Target returns the awaited status.
func (c *Condition) Target() domain.Status {
	return c.succeedStatus
}

// Update implements Rule.
func (c *Condition) Update(d *Decorator) domain.Status {
	child := d.Child()
	d.Logger().Debug("update", "child_status", child.Status(), "target", c.succeedStatus)
	d.SetFeedback(fmt.Sprintf("'%s' has status %s, waiting for %s",
		child.Name(), child.Status(), c.succeedStatus))

	if child.Status() != c.succeedStatus {
		return domain.StatusRunning
	}
	// A match observed mid-execution must not leave the child running unattended.
	if child.Status() == domain.StatusRunning {
		child.Stop(domain.StatusInvalid)
	}
	return domain.StatusSuccess
}

// NewCondition polls child until it reports status.
func NewCondition(child behaviour.Behaviour, status domain.Status, opts ...Option) *Decorator {
	return New(child, &Condition{succeedStatus: status}, named("Condition", opts)...)
}
