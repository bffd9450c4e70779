/*
Package domain contains the core vocabulary of the arbor behaviour tree engine.

It defines the status algebra every node reports, the sentinel errors returned by
the ambient surfaces (loader, registry, driver) and the lifecycle events emitted
while a tree is ticked. This package is kept pure and free of I/O.

# Key Entities

  - Status: INVALID, RUNNING, SUCCESS or FAILURE.
  - TickEvent / NodeEvent: observability payloads emitted by the tree driver.
  - LifecycleHooks: callbacks registered by hosts to audit ticks.
*/
package domain
