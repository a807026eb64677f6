package ports

import (
	"context"
	"time"

	"github.com/vidtube/user-service/internal/core/domain"
)

// AccountEventInput is the DTO passed from the transport layer to the
// account-event pipeline.
type AccountEventInput struct {
	Username  string
	Action    domain.AccountAction
	Timestamp time.Time
	RequestID string
}

// EventService records account lifecycle events to the audit trail.
type EventService interface {
	Record(ctx context.Context, event AccountEventInput) error
}

// EventSink accepts events for asynchronous processing. Implementations must
// preserve per-user ordering.
type EventSink interface {
	Enqueue(event AccountEventInput)
}
