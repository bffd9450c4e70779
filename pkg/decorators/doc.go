/*
Package decorators implements single-child behaviours that transform the meaning
of their child's status without altering its execution.

Every decorator is a *Decorator driven by a Rule chosen at construction time:

  - pass-through (identity)
  - SuccessIsFailure, SuccessIsRunning, RunningIsSuccess, RunningIsFailure,
    FailureIsSuccess, FailureIsRunning
  - Inverter
  - Condition: poll until the child reaches a target status
  - Timeout: fail a child that stays RUNNING past a deadline
  - Oneshot: latch the first terminal outcome

A rule may additionally implement Initialiser, Terminator or Gater to hold private
state across activations.
*/
package decorators
