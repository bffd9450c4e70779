package behaviour

import (
	"iter"
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/google/uuid"
)

// Behaviour is the capability set every tree element satisfies.
type Behaviour interface {
	ID() uuid.UUID
	Name() string
	Status() domain.Status
	SetStatus(domain.Status)
	Feedback() string
	SetFeedback(string)

	// Tick returns the nodes visited by one traversal of this subtree.
	// The sequence must be drained by the caller within the same driver cycle.
	Tick() iter.Seq[Behaviour]

	// Stop forces immediate termination with the given status, cascading to children.
	Stop(newStatus domain.Status)

	// Initialise runs at the start of a fresh activation.
	Initialise()
	// Terminate runs whenever the node settles to a non-RUNNING status.
	Terminate(newStatus domain.Status)

	Children() []Behaviour
	Logger() *slog.Logger
}

// Updater is implemented by nodes that compute their own status on every tick.
type Updater interface {
	Update() domain.Status
}

// Base implements the bookkeeping of Behaviour. Embed it and hand the outer
// node to NewBase so hooks dispatch to the outer type.
type Base struct {
	id       uuid.UUID
	name     string
	status   domain.Status
	feedback string
	logger   *slog.Logger
	self     Behaviour
}

// Option defines a functional option for configuring a Base.
type Option func(*Base)

// WithLogger injects the logger used for debug traces and contract violations.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithID overrides the generated identity.
func WithID(id uuid.UUID) Option {
	return func(b *Base) {
		b.id = id
	}
}

// NewBase creates the embedded state for self.
func NewBase(self Behaviour, name string, opts ...Option) *Base {
	b := &Base{
		id:     uuid.New(),
		name:   name,
		status: domain.StatusInvalid,
		logger: logging.NewNop(),
		self:   self,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("node", name)
	return b
}

func (b *Base) ID() uuid.UUID { return b.id }

func (b *Base) Name() string { return b.name }

func (b *Base) Status() domain.Status { return b.status }

func (b *Base) SetStatus(s domain.Status) { b.status = s }

func (b *Base) Feedback() string { return b.feedback }

func (b *Base) SetFeedback(msg string) { b.feedback = msg }

func (b *Base) Logger() *slog.Logger { return b.logger }

// Children returns nil; leaves have none.
func (b *Base) Children() []Behaviour { return nil }

// Initialise is a no-op by default.
func (b *Base) Initialise() {}

// Terminate is a no-op by default.
func (b *Base) Terminate(newStatus domain.Status) {}

// Tick runs the leaf protocol against the outer node's Update.
func (b *Base) Tick() iter.Seq[Behaviour] {
	return func(yield func(Behaviour) bool) {
		b.logger.Debug("tick")
		if b.status != domain.StatusRunning {
			b.self.Initialise()
		}

		newStatus := domain.StatusInvalid
		if u, ok := b.self.(Updater); ok {
			newStatus = u.Update()
		}
		newStatus = b.Validate(newStatus)
		if newStatus != domain.StatusRunning {
			b.self.Stop(newStatus)
		}
		b.status = newStatus
		yield(b.self)
	}
}

// Stop runs the terminate hook and then overwrites the status.
func (b *Base) Stop(newStatus domain.Status) {
	b.logger.Debug("stop", "status", newStatus)
	b.self.Terminate(newStatus)
	b.status = newStatus
}

// Validate coerces a status outside the domain to INVALID, logging the violation.
// A broken update rule must degrade the tree, never halt it.
func (b *Base) Validate(s domain.Status) domain.Status {
	if s.Valid() {
		return s
	}
	b.logger.Error("a behaviour returned an invalid status, setting to INVALID",
		"status", s,
	)
	return domain.StatusInvalid
}
