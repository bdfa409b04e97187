package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// ActivityEvent is a recorded domain event.
type ActivityEvent struct {
	Key         string
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	OccurredAt  time.Time
}

// ActivityRepository writes domain events into the same batch as the
// command that produced them.
type ActivityRepository interface {
	// InsertOps creates one op per event.
	InsertOps(events []domain.DomainEvent) ([]kvstore.Op, error)
}

// ActivityFilter narrows ListEvents.
type ActivityFilter struct {
	EventType   *string
	AggregateID *string
	Limit       int
}

// ActivityReadModel reads the activity log.
type ActivityReadModel interface {
	// ListEvents returns matching events, newest first.
	ListEvents(ctx context.Context, filter *ActivityFilter) ([]*ActivityEvent, error)

	// DeleteBeforeOps builds ops removing events that occurred before cutoff.
	DeleteBeforeOps(ctx context.Context, cutoff time.Time) ([]kvstore.Op, error)
}
