// Package behaviours provides stock leaf behaviours used by demos, tree
// definitions and tests.
package behaviours
