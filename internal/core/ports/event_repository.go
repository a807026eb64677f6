package ports

import (
	"context"

	"github.com/vidtube/user-service/internal/core/domain"
)

// EventRepository persists account events to the audit collection.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AccountEvent) error
}
