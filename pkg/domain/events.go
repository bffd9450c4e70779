package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTickStart EventType = "tick_start"
	EventTickEnd   EventType = "tick_end"
	EventNodeVisit EventType = "node_visit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Tick      int       `json:"tick"`
}

// TickEvent brackets one full traversal of the tree.
type TickEvent struct {
	EventBase
	RootStatus Status        `json:"root_status"`
	Visited    int           `json:"visited,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// NodeEvent is emitted for every node yielded during a tick.
type NodeEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	NodeName string `json:"node_name"`
	Status   Status `json:"status"`
	Feedback string `json:"feedback,omitempty"`
}

// LifecycleHooks defines callbacks for driver observability.
type LifecycleHooks struct {
	OnTickStart func(context.Context, *TickEvent)
	OnTickEnd   func(context.Context, *TickEvent)
	OnNodeVisit func(context.Context, *NodeEvent)
}
