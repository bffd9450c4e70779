package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// Arity tells the builder how many children a kind takes.
type Arity int

const (
	// Leaf kinds take no child.
	Leaf Arity = iota
	// Decorator kinds take exactly one child.
	Decorator
)

func (a Arity) String() string {
	if a == Decorator {
		return "decorator"
	}
	return "leaf"
}

// Env carries the ambient collaborators every built node receives.
type Env struct {
	Logger *slog.Logger
	Clock  func() time.Time
}

// Spec is one node to build. Child is nil for leaves and already built for
// decorators.
type Spec struct {
	Kind   string
	Name   string
	Params map[string]any
	Child  behaviour.Behaviour
}

// Factory builds one node.
type Factory func(env Env, spec Spec) (behaviour.Behaviour, error)

type entry struct {
	kind    string
	arity   Arity
	factory Factory
}

// Registry maps node kinds to factories.
// Kind lookups ignore case, '_' and '-', so "success_is_failure" and
// "SuccessIsFailure" name the same kind.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]entry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]entry),
	}
}

// Register adds a kind to the registry.
// If the kind already exists, it is overwritten.
func (r *Registry) Register(kind string, arity Arity, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[normalize(kind)] = entry{kind: kind, arity: arity, factory: f}
}

// Arity reports how many children kind takes.
func (r *Registry) Arity(kind string) (Arity, error) {
	e, err := r.lookup(kind)
	if err != nil {
		return Leaf, err
	}
	return e.arity, nil
}

// Kinds lists the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.kinds))
	for _, e := range r.kinds {
		out = append(out, e.kind)
	}
	sort.Strings(out)
	return out
}

// Build checks the spec against the kind's arity and runs its factory.
func (r *Registry) Build(env Env, spec Spec) (behaviour.Behaviour, error) {
	e, err := r.lookup(spec.Kind)
	if err != nil {
		return nil, err
	}

	switch {
	case e.arity == Decorator && spec.Child == nil:
		return nil, fmt.Errorf("%s %q needs a child: %w", e.kind, spec.Name, domain.ErrInvalidDefinition)
	case e.arity == Leaf && spec.Child != nil:
		return nil, fmt.Errorf("%s %q takes no child: %w", e.kind, spec.Name, domain.ErrInvalidDefinition)
	}

	node, err := e.factory(env, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %q: %w", e.kind, spec.Name, err)
	}
	return node, nil
}

func (r *Registry) lookup(kind string) (entry, error) {
	r.mu.RLock()
	e, ok := r.kinds[normalize(kind)]
	r.mu.RUnlock()
	if !ok {
		return entry{}, fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}
	return e, nil
}

func normalize(kind string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(kind)))
}
