// Package highfreq re-ticks selected decorators between tree ticks, so fast
// subtrees can settle without waiting for the next full traversal.
package highfreq

import (
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// Kind is the registry kind of the high-frequency decorator.
const Kind = "high_frequency"

// Rule passes the child's status through, but when that status changes it holds
// the new value for one extra tick without ticking the child. Observers polling
// the decorator therefore always see a change at least twice.
type Rule struct {
	last    domain.Status
	seen    bool
	pending bool
}

// Gate implements decorators.Gater.
func (r *Rule) Gate(d *decorators.Decorator) decorators.Gate {
	if r.pending {
		return decorators.GateSkip
	}
	return decorators.GateDrive
}

// Update implements decorators.Rule.
func (r *Rule) Update(d *decorators.Decorator) domain.Status {
	if r.pending {
		r.pending = false
		return r.last
	}
	child := d.Child()
	d.SetFeedback(child.Feedback())
	if !r.seen || child.Status() != r.last {
		d.Logger().Debug("update", "child_status", child.Status(), "previous", r.last, "changed", true)
		r.last = child.Status()
		r.seen = true
		r.pending = true
	}
	return child.Status()
}

// Terminate forgets the last seen status on cancellation.
func (r *Rule) Terminate(d *decorators.Decorator, newStatus domain.Status) {
	if newStatus == domain.StatusInvalid {
		r.seen = false
		r.pending = false
	}
}

// New wraps child in a high-frequency decorator.
func New(child behaviour.Behaviour, opts ...decorators.Option) *decorators.Decorator {
	return decorators.New(child, &Rule{}, append([]decorators.Option{decorators.WithName("HighFrequency")}, opts...)...)
}

// IsHighFrequency reports whether b is a decorator built by New.
func IsHighFrequency(b behaviour.Behaviour) (*decorators.Decorator, bool) {
	d, ok := b.(*decorators.Decorator)
	if !ok {
		return nil, false
	}
	_, ok = d.Rule().(*Rule)
	return d, ok
}

// Register adds the high-frequency decorator to reg under Kind.
func Register(reg *registry.Registry) {
	reg.Register(Kind, registry.Decorator, func(env registry.Env, spec registry.Spec) (behaviour.Behaviour, error) {
		if err := registry.DecodeParams(spec.Params, &struct{}{}); err != nil {
			return nil, err
		}
		return New(spec.Child, env.DecoratorOptions(spec.Name)...), nil
	})
}
