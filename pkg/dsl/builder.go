package dsl

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/registry"
)

// Builder manages the tree construction.
type Builder struct {
	name string
	root *loader.Definition
}

// New creates a new tree builder.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Leaf starts the chain with a leaf of the given kind.
// Calling it again starts over.
func (b *Builder) Leaf(kind string) *NodeBuilder {
	b.root = &loader.Definition{Kind: kind}
	return &NodeBuilder{def: b.root, builder: b}
}

// File returns the definition built so far.
func (b *Builder) File() *loader.File {
	return &loader.File{Name: b.name, Root: b.root}
}

// Build validates the definition and constructs the behaviours.
func (b *Builder) Build(reg *registry.Registry, env registry.Env) (behaviour.Behaviour, error) {
	if b.root == nil {
		return nil, fmt.Errorf("tree %q has no leaf: %w", b.name, domain.ErrInvalidDefinition)
	}
	if err := loader.Validate(b.root, reg); err != nil {
		return nil, fmt.Errorf("tree %q: %w", b.name, err)
	}
	root, err := loader.Build(b.root, reg, env)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", b.name, err)
	}
	return root, nil
}
