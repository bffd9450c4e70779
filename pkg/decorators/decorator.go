package decorators

import (
	"iter"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// Rule computes a decorator's status from its child and the rule's own state.
type Rule interface {
	Update(d *Decorator) domain.Status
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(d *Decorator) domain.Status

// Update implements Rule.
func (f RuleFunc) Update(d *Decorator) domain.Status { return f(d) }

// Initialiser is implemented by rules that prepare state for a new activation.
type Initialiser interface {
	Initialise(d *Decorator)
}

// Terminator is implemented by rules that must forget state once the decorator
// settles to a non-RUNNING status.
type Terminator interface {
	Terminate(d *Decorator, newStatus domain.Status)
}

// Gate selects how much of the tick protocol runs.
type Gate int

const (
	// GateDrive ticks the child, then applies the rule.
	GateDrive Gate = iota
	// GateSkip applies the rule without ticking the child.
	GateSkip
	// GateReplay re-reports the current status; neither child nor rule runs.
	GateReplay
)

// Gater is implemented by rules that can short-circuit the child.
type Gater interface {
	Gate(d *Decorator) Gate
}

// Clock supplies the current time.
type Clock func() time.Time

type config struct {
	name  string
	clock Clock
	base  []behaviour.Option
}

// Option defines a functional option for configuring a decorator.
type Option func(*config)

// WithName overrides the decorator's default name.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithClock sets the time source used by time-based rules.
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger injects the logger used for debug traces and contract violations.
func WithLogger(logger *slog.Logger) Option {
	return WithBehaviourOptions(behaviour.WithLogger(logger))
}

// WithBehaviourOptions forwards options to the embedded behaviour.Base
// (logger, identity).
func WithBehaviourOptions(opts ...behaviour.Option) Option {
	return func(c *config) {
		c.base = append(c.base, opts...)
	}
}

func newConfig(defaultName string, opts []Option) config {
	cfg := config{name: defaultName, clock: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Decorator wraps exactly one child for its whole lifetime.
type Decorator struct {
	*behaviour.Base
	child behaviour.Behaviour
	rule  Rule
}

// New wraps child with rule. It panics if child or rule is nil: a decorator
// without a child is a construction bug, not a runtime condition.
func New(child behaviour.Behaviour, rule Rule, opts ...Option) *Decorator {
	return newDecorator(child, rule, newConfig("Decorator", opts))
}

func newDecorator(child behaviour.Behaviour, rule Rule, cfg config) *Decorator {
	if child == nil {
		panic("decorators: child must not be nil")
	}
	if rule == nil {
		panic("decorators: rule must not be nil")
	}
	d := &Decorator{child: child, rule: rule}
	d.Base = behaviour.NewBase(d, cfg.name, cfg.base...)
	return d
}

// Child returns the decorated behaviour.
func (d *Decorator) Child() behaviour.Behaviour { return d.child }

// Rule returns the rule selected at construction.
func (d *Decorator) Rule() Rule { return d.rule }

// Children implements behaviour.Behaviour.
func (d *Decorator) Children() []behaviour.Behaviour {
	return []behaviour.Behaviour{d.child}
}

// Initialise forwards to the rule when it holds activation state.
func (d *Decorator) Initialise() {
	if i, ok := d.rule.(Initialiser); ok {
		i.Initialise(d)
	}
}

// Terminate forwards to the rule when it holds activation state.
func (d *Decorator) Terminate(newStatus domain.Status) {
	if t, ok := d.rule.(Terminator); ok {
		t.Terminate(d, newStatus)
	}
}

// Tick yields every node the child visits except the child itself, then the
// decorator with its freshly computed status.
func (d *Decorator) Tick() iter.Seq[behaviour.Behaviour] {
	return func(yield func(behaviour.Behaviour) bool) {
		d.Logger().Debug("tick")

		gate := GateDrive
		if g, ok := d.rule.(Gater); ok {
			gate = g.Gate(d)
		}
		if gate == GateReplay {
			yield(d)
			return
		}

		if d.Status() != domain.StatusRunning {
			d.Initialise()
		}

		if gate == GateDrive {
			childID := d.child.ID()
			for node := range d.child.Tick() {
				if node.ID() == childID {
					continue
				}
				if !yield(node) {
					return
				}
			}
		}

		newStatus := d.rule.Update(d)
		if !newStatus.Valid() {
			d.Logger().Error("a decorator rule produced a status outside the valid domain",
				"status", int(newStatus),
			)
			newStatus = domain.StatusInvalid
		}
		if newStatus != domain.StatusRunning {
			d.Stop(newStatus)
		}
		d.SetStatus(newStatus)
		yield(d)
	}
}

// Stop terminates the decorator and makes sure the child is not left RUNNING.
// Cancellation (INVALID) is always propagated.
func (d *Decorator) Stop(newStatus domain.Status) {
	d.Logger().Debug("stop", "status", newStatus)
	d.Terminate(newStatus)
	if newStatus == domain.StatusInvalid {
		d.child.Stop(newStatus)
	}
	if d.child.Status() == domain.StatusRunning {
		d.child.Stop(domain.StatusInvalid)
	}
	d.SetStatus(newStatus)
}

type passthrough struct{}

func (passthrough) Update(d *Decorator) domain.Status {
	d.SetFeedback(d.child.Feedback())
	return d.child.Status()
}

// NewPassthrough returns the identity decorator.
func NewPassthrough(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, passthrough{}, named("Passthrough", opts)...)
}
