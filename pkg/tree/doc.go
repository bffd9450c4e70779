/*
Package tree drives a behaviour tree.

A Tree owns a root behaviour and ticks it on demand or periodically. Every node
yielded by the root's tick is handed to the registered visitors and lifecycle
hooks, so observers see exactly what the traversal touched. Visitors that declare
themselves Full instead see the whole tree once the tick has finished.

A tree is single-threaded: the goroutine that ticks it first owns it, and ticks
from any other goroutine are rejected with domain.ErrForeignGoroutine. Interrupt
is the only call that is safe from elsewhere.
*/
package tree
