package behaviours

import (
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// StatusQueue replays a scripted list of statuses, one per tick. Once the script
// is exhausted it reports Eventually, or the last scripted status when Eventually
// is nil. Cancellation rewinds the script.
type StatusQueue struct {
	*behaviour.Base
	script     []domain.Status
	eventually *domain.Status
	next       int
	ticks      int
}

// NewStatusQueue creates a scripted leaf.
func NewStatusQueue(name string, script []domain.Status, eventually *domain.Status, opts ...behaviour.Option) *StatusQueue {
	if name == "" {
		name = "StatusQueue"
	}
	q := &StatusQueue{
		script:     append([]domain.Status(nil), script...),
		eventually: eventually,
	}
	q.Base = behaviour.NewBase(q, name, opts...)
	return q
}

// Ticks returns how many times Update ran.
func (q *StatusQueue) Ticks() int {
	return q.ticks
}

// Update implements behaviour.Updater.
func (q *StatusQueue) Update() domain.Status {
	q.ticks++
	if q.next < len(q.script) {
		s := q.script[q.next]
		q.next++
		q.SetFeedback("scripted")
		return s
	}
	q.SetFeedback("exhausted")
	if q.eventually != nil {
		return *q.eventually
	}
	if len(q.script) == 0 {
		return domain.StatusInvalid
	}
	return q.script[len(q.script)-1]
}

// Terminate rewinds the script on cancellation.
func (q *StatusQueue) Terminate(newStatus domain.Status) {
	if newStatus == domain.StatusInvalid {
		q.next = 0
	}
}
