package domain

import "errors"

// ErrUnknownStatus is returned when a token or value is outside the status domain.
var ErrUnknownStatus = errors.New("unknown status")

// ErrUnknownKind is returned when a tree definition names a node kind nobody registered.
var ErrUnknownKind = errors.New("unknown node kind")

// ErrInvalidDefinition is returned when a tree definition is structurally wrong
// (missing child, unexpected children, bad parameters).
var ErrInvalidDefinition = errors.New("invalid tree definition")

// ErrForeignGoroutine is returned when a tree is ticked from a goroutine other
// than the one that owns it.
var ErrForeignGoroutine = errors.New("tree ticked from a foreign goroutine")

// ErrSnapshotNotFound is returned when a snapshot store has nothing recorded for a tree.
var ErrSnapshotNotFound = errors.New("snapshot not found")
