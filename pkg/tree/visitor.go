package tree

import (
	"log/slog"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/google/uuid"
)

// Visitor observes nodes during a tick.
// Initialise runs before every tick. Run receives each node yielded by the tick,
// or every node of the tree after the tick when Full reports true.
type Visitor interface {
	Initialise()
	Run(b behaviour.Behaviour)
	Full() bool
}

// DebugVisitor logs every visited node at debug level.
type DebugVisitor struct {
	logger *slog.Logger
}

// NewDebugVisitor creates a visitor logging to logger (no-op when nil).
func NewDebugVisitor(logger *slog.Logger) *DebugVisitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &DebugVisitor{logger: logger}
}

// Initialise is a no-op.
func (v *DebugVisitor) Initialise() {}

// Full reports false: only nodes ticked this round are logged.
func (v *DebugVisitor) Full() bool { return false }

// Run logs the node status and feedback at debug level.
func (v *DebugVisitor) Run(b behaviour.Behaviour) {
	v.logger.Debug("visit",
		"node", b.Name(),
		"status", b.Status(),
		"feedback", b.Feedback(),
	)
}

// NodeState is the observed state of one node.
type NodeState struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Status   domain.Status `json:"status"`
	Feedback string        `json:"feedback,omitempty"`
}

// Snapshot is a copy of what the last tick visited.
type Snapshot struct {
	Tick              int         `json:"tick"`
	Nodes             []NodeState `json:"nodes"`
	Running           []uuid.UUID `json:"running"`
	PreviouslyRunning []uuid.UUID `json:"previously_running"`
}

// SnapshotVisitor records the nodes visited by the most recent tick.
// Snapshot may be called from any goroutine.
type SnapshotVisitor struct {
	mu       sync.RWMutex
	tick     int
	nodes    []NodeState
	running  []uuid.UUID
	previous []uuid.UUID
}

// NewSnapshotVisitor creates an empty snapshot visitor.
func NewSnapshotVisitor() *SnapshotVisitor {
	return &SnapshotVisitor{}
}

// Full reports false: only nodes ticked this round are captured.
func (v *SnapshotVisitor) Full() bool { return false }

// Initialise starts a new snapshot, remembering which nodes were running.
func (v *SnapshotVisitor) Initialise() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tick++
	v.nodes = nil
	v.previous = v.running
	v.running = nil
}

// Run records b.
func (v *SnapshotVisitor) Run(b behaviour.Behaviour) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nodes = append(v.nodes, NodeState{
		ID:       b.ID(),
		Name:     b.Name(),
		Status:   b.Status(),
		Feedback: b.Feedback(),
	})
	if b.Status() == domain.StatusRunning {
		v.running = append(v.running, b.ID())
	}
}

// Snapshot returns a copy of the last recorded tick.
func (v *SnapshotVisitor) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Snapshot{
		Tick:              v.tick,
		Nodes:             append([]NodeState{}, v.nodes...),
		Running:           append([]uuid.UUID{}, v.running...),
		PreviouslyRunning: append([]uuid.UUID{}, v.previous...),
	}
}
