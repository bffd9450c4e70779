/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing arbor trees.

It allows developers to define decorator chains using a type-safe, fluent builder pattern instead of
relying on external YAML or JSON files. The builder produces the same definitions the loader reads,
so a tree built here can be validated, built or written out exactly like a file-based one.

Example usage:

	package main

	import (
		"time"

		"github.com/aretw0/arbor/pkg/dsl"
		"github.com/aretw0/arbor/pkg/registry"
	)

	func main() {
		b := dsl.New("patrol")

		b.Leaf("count").
			Named("Waypoints").
			Param("running_until", 3).
			Timeout(2 * time.Second).
			Oneshot()

		root, err := b.Build(registry.Default(), registry.Env{})
		// ... hand root to tree.New(...)
	}

Each wrapping call returns the builder for the new outermost node, so Named and Param always apply
to the node added last.
*/
package dsl
