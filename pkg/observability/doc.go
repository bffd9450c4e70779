/*
Package observability provides tools for monitoring a running behaviour tree.

It includes Prometheus metrics fed by a tree visitor and lifecycle hooks, and
hooks that turn tick events into structured log records.
*/
package observability
