package domain

import (
	"fmt"
	"strings"
)

// Status is the outcome a node reports for its most recent tick.
type Status int

const (
	// StatusInvalid is the reset state, and the state forced by cancellation.
	StatusInvalid Status = iota
	// StatusRunning means the node is in progress and wants another tick.
	StatusRunning
	// StatusSuccess is a terminal outcome for one activation.
	StatusSuccess
	// StatusFailure is a terminal outcome for one activation.
	StatusFailure
)

// Statuses lists the whole domain in declaration order.
var Statuses = []Status{StatusInvalid, StatusRunning, StatusSuccess, StatusFailure}

// String returns the canonical upper-case token used in logs and feedback.
func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "INVALID"
	case StatusRunning:
		return "RUNNING"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Valid reports whether s belongs to the status domain.
func (s Status) Valid() bool {
	return s >= StatusInvalid && s <= StatusFailure
}

// IsTerminal reports whether s ends an activation (SUCCESS or FAILURE).
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// ParseStatus converts a case-insensitive token into a Status.
func ParseStatus(token string) (Status, error) {
	for _, s := range Statuses {
		if strings.EqualFold(strings.TrimSpace(token), s.String()) {
			return s, nil
		}
	}
	return StatusInvalid, fmt.Errorf("%w: %q", ErrUnknownStatus, token)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
