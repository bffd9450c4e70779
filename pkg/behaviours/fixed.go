package behaviours

import (
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// Fixed always reports the same status.
type Fixed struct {
	*behaviour.Base
	status domain.Status
}

func newFixed(name, fallback string, status domain.Status, opts ...behaviour.Option) *Fixed {
	if name == "" {
		name = fallback
	}
	f := &Fixed{status: status}
	f.Base = behaviour.NewBase(f, name, opts...)
	return f
}

// NewSuccess returns a leaf that always succeeds.
func NewSuccess(name string, opts ...behaviour.Option) *Fixed {
	return newFixed(name, "Success", domain.StatusSuccess, opts...)
}

// NewFailure returns a leaf that always fails.
func NewFailure(name string, opts ...behaviour.Option) *Fixed {
	return newFixed(name, "Failure", domain.StatusFailure, opts...)
}

// NewRunning returns a leaf that never finishes.
func NewRunning(name string, opts ...behaviour.Option) *Fixed {
	return newFixed(name, "Running", domain.StatusRunning, opts...)
}

// Update implements behaviour.Updater.
func (f *Fixed) Update() domain.Status {
	return f.status
}
