package highfreq

import (
	"maps"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/google/uuid"
)

// ActiveVisitor collects the high-frequency decorators that are not INVALID
// after a tick. It is a full visitor because decorators do not forward their
// children to the traversal, so nested nodes would otherwise go unseen.
type ActiveVisitor struct {
	nodes  []*decorators.Decorator
	states map[uuid.UUID]domain.Status
}

// NewActiveVisitor creates an empty visitor.
func NewActiveVisitor() *ActiveVisitor {
	return &ActiveVisitor{states: make(map[uuid.UUID]domain.Status)}
}

// Initialise clears the results of the previous tick.
func (v *ActiveVisitor) Initialise() {
	v.nodes = nil
	v.states = make(map[uuid.UUID]domain.Status)
}

// Full reports true so nodes nested under decorators are visited.
func (v *ActiveVisitor) Full() bool { return true }

// Run records b when it is a high-frequency decorator that is not INVALID.
func (v *ActiveVisitor) Run(b behaviour.Behaviour) {
	d, ok := IsHighFrequency(b)
	if !ok || d.Status() == domain.StatusInvalid {
		return
	}
	v.nodes = append(v.nodes, d)
	v.states[d.ID()] = d.Status()
}

// Active returns the collected decorators in traversal order.
func (v *ActiveVisitor) Active() []*decorators.Decorator {
	return v.nodes
}

// States returns a copy of the collected statuses.
func (v *ActiveVisitor) States() map[uuid.UUID]domain.Status {
	return maps.Clone(v.states)
}
