package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

// LoggingHooks turns tick events into structured log records.
// Node visits are logged at debug level, tick ends at info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeVisit: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_visit",
				"tick", e.Tick,
				"node_id", e.NodeID,
				"node", e.NodeName,
				"status", e.Status,
				"feedback", e.Feedback,
			)
		},
		OnTickEnd: func(ctx context.Context, e *domain.TickEvent) {
			logger.InfoContext(ctx, "tick_end",
				"tick", e.Tick,
				"root_status", e.RootStatus,
				"visited", e.Visited,
				"duration", e.Duration,
			)
		},
	}
}
