package dsl

import (
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
)

// NodeBuilder provides a fluent API for configuring the outermost node.
type NodeBuilder struct {
	def     *loader.Definition
	builder *Builder
}

// Named sets the node's name.
func (n *NodeBuilder) Named(name string) *NodeBuilder {
	n.def.Name = name
	return n
}

// Param sets one parameter of the node.
func (n *NodeBuilder) Param(key string, value any) *NodeBuilder {
	if n.def.Params == nil {
		n.def.Params = make(map[string]any)
	}
	n.def.Params[key] = value
	return n
}

// Wrap puts a decorator of the given kind around the current node and returns
// the builder for the decorator.
func (n *NodeBuilder) Wrap(kind string) *NodeBuilder {
	outer := &loader.Definition{Kind: kind, Child: n.def}
	n.builder.root = outer
	return &NodeBuilder{def: outer, builder: n.builder}
}

func (n *NodeBuilder) Passthrough() *NodeBuilder { return n.Wrap("passthrough") }

func (n *NodeBuilder) Inverter() *NodeBuilder { return n.Wrap("inverter") }

func (n *NodeBuilder) SuccessIsFailure() *NodeBuilder { return n.Wrap("success_is_failure") }

func (n *NodeBuilder) SuccessIsRunning() *NodeBuilder { return n.Wrap("success_is_running") }

func (n *NodeBuilder) RunningIsSuccess() *NodeBuilder { return n.Wrap("running_is_success") }

func (n *NodeBuilder) RunningIsFailure() *NodeBuilder { return n.Wrap("running_is_failure") }

func (n *NodeBuilder) FailureIsSuccess() *NodeBuilder { return n.Wrap("failure_is_success") }

func (n *NodeBuilder) FailureIsRunning() *NodeBuilder { return n.Wrap("failure_is_running") }

func (n *NodeBuilder) Oneshot() *NodeBuilder { return n.Wrap("oneshot") }

// Condition waits until the current node reports status.
func (n *NodeBuilder) Condition(status domain.Status) *NodeBuilder {
	return n.Wrap("condition").Param("status", status.String())
}

// Timeout bounds how long the current node may stay RUNNING.
func (n *NodeBuilder) Timeout(d time.Duration) *NodeBuilder {
	return n.Wrap("timeout").Param("duration", d.String())
}

// Definition returns the node's definition, including its descendants.
func (n *NodeBuilder) Definition() *loader.Definition {
	return n.def
}
