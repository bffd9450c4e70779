/*
Package arbor is a behaviour-tree decorator engine for control loops.

A behaviour tree is ticked repeatedly by a driver; every tick walks the tree and
each node reports one of four statuses: RUNNING, SUCCESS, FAILURE or INVALID.
Arbor focuses on decorators, nodes that wrap exactly one child and change what
its status means without changing how it runs: remapping statuses, inverting
them, waiting for a condition, bounding time, or latching the first outcome.

# Concept

Ticks are lazy sequences (iter.Seq) of the nodes they visit. Decorators forward
everything their child's subtree visits except the child itself, then yield
themselves. A decorator that settles to anything but RUNNING stops itself, and a
child left RUNNING is cancelled with INVALID. Cancellation (Stop with INVALID)
always reaches the child and clears per-activation state such as Timeout
deadlines and Oneshot latches.

# Packages

  - pkg/domain: statuses, events and errors.
  - pkg/behaviour: the node contract and the embeddable leaf protocol.
  - pkg/behaviours: stock leaves (Success, Failure, Running, Count, StatusQueue).
  - pkg/decorators: the decorator protocol and every stock variant.
  - pkg/tree: the driver, visitors and tick-tock loop.
  - pkg/registry, pkg/loader, pkg/dsl: building trees from YAML, JSON or Go.
  - pkg/observability: Prometheus metrics and logging hooks.
  - pkg/ports: the SnapshotStore port; memory, file and Redis adapters live
    under internal/adapters and are selected with WithSnapshotStore.

# Usage

	package main

	import (
		"context"
		"log"
		"time"

		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/tree"
	)

	func main() {
		eng, err := arbor.Load("patrol.yaml")
		if err != nil {
			log.Fatal(err)
		}
		defer eng.Close()

		if err := eng.Run(context.Background(), 100*time.Millisecond, tree.Continuous); err != nil {
			log.Fatal(err)
		}
		log.Printf("finished with %s", eng.Root().Status())
	}

A tree must be ticked from a single goroutine; Snapshot and the metrics endpoint
are safe to read from others.
*/
package arbor
