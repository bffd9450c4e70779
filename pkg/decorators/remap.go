package decorators

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// Remap rewrites exactly one child status and passes every other through with
// the child's feedback untouched.
type Remap struct {
	From  domain.Status
	To    domain.Status
	Label string
}

// Update implements Rule.
func (r Remap) Update(d *Decorator) domain.Status {
	child := d.Child()
	if child.Status() == r.From {
		d.SetFeedback(annotate(r.Label, child.Feedback()))
		return r.To
	}
	d.SetFeedback(child.Feedback())
	return child.Status()
}

var (
	successIsFailure = Remap{From: domain.StatusSuccess, To: domain.StatusFailure, Label: "success is failure"}
	successIsRunning = Remap{From: domain.StatusSuccess, To: domain.StatusRunning, Label: "success is running"}
	runningIsSuccess = Remap{From: domain.StatusRunning, To: domain.StatusSuccess, Label: "running is success"}
	runningIsFailure = Remap{From: domain.StatusRunning, To: domain.StatusFailure, Label: "running is failure"}
	failureIsSuccess = Remap{From: domain.StatusFailure, To: domain.StatusSuccess, Label: "failure is success"}
	failureIsRunning = Remap{From: domain.StatusFailure, To: domain.StatusRunning, Label: "failure is running"}
)

// NewSuccessIsFailure reports FAILURE when the child succeeds.
func NewSuccessIsFailure(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, successIsFailure, named("SuccessIsFailure", opts)...)
}

// NewSuccessIsRunning keeps reporting RUNNING once the child succeeds.
func NewSuccessIsRunning(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, successIsRunning, named("SuccessIsRunning", opts)...)
}

// NewRunningIsSuccess reports SUCCESS while the child is still running.
func NewRunningIsSuccess(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, runningIsSuccess, named("RunningIsSuccess", opts)...)
}

// NewRunningIsFailure reports FAILURE while the child is still running.
func NewRunningIsFailure(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, runningIsFailure, named("RunningIsFailure", opts)...)
}

// NewFailureIsSuccess reports SUCCESS when the child fails.
func NewFailureIsSuccess(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, failureIsSuccess, named("FailureIsSuccess", opts)...)
}

// NewFailureIsRunning reports RUNNING when the child fails, so it is retried next tick.
func NewFailureIsRunning(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, failureIsRunning, named("FailureIsRunning", opts)...)
}

type inverter struct{}

func (inverter) Update(d *Decorator) domain.Status {
	child := d.Child()
	switch child.Status() {
	case domain.StatusSuccess:
		d.SetFeedback(annotate("success -> failure", child.Feedback()))
		return domain.StatusFailure
	case domain.StatusFailure:
		d.SetFeedback(annotate("failure -> success", child.Feedback()))
		return domain.StatusSuccess
	default:
		d.SetFeedback(child.Feedback())
		return child.Status()
	}
}

// NewInverter swaps SUCCESS and FAILURE.
func NewInverter(child behaviour.Behaviour, opts ...Option) *Decorator {
	return New(child, inverter{}, named("Inverter", opts)...)
}

func annotate(label, childFeedback string) string {
	if childFeedback == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, childFeedback)
}

func named(name string, opts []Option) []Option {
	return append([]Option{WithName(name)}, opts...)
}
