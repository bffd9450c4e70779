/*
Package behaviour defines the node contract shared by every element of an arbor tree.

A Behaviour owns a Status and an optional feedback annotation, exposes a lazy tick
sequence and explicit lifecycle hooks (Initialise, Terminate, Stop). Concrete nodes
embed *Base, which implements the plain leaf tick protocol:

	if status != RUNNING { Initialise() }
	status = Update()
	if status != RUNNING { Stop(status) }
	yield self

Tick never blocks: RUNNING only tells the driver that the next tick should resume
the underlying task.
*/
package behaviour
