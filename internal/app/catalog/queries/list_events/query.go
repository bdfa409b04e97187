package list_events

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType   *string // e.g. "product.created"
	AggregateID *string // product id, or "business"
	Limit       int
}

// Query handles the list events query use case.
type Query struct {
	readModel contracts.ActivityReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel contracts.ActivityReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves activity events, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ActivityEvent, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return q.readModel.ListEvents(ctx, &contracts.ActivityFilter{
		EventType:   req.EventType,
		AggregateID: req.AggregateID,
		Limit:       limit,
	})
}
