package get_business_config

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

// Query handles the get business config query use case.
type Query struct {
	businessRepo contracts.BusinessConfigRepository
}

// NewQuery creates a new get business config query.
func NewQuery(businessRepo contracts.BusinessConfigRepository) *Query {
	return &Query{
		businessRepo: businessRepo,
	}
}

// Execute returns the stored configuration, or the defaults when none has
// been saved yet.
func (q *Query) Execute(ctx context.Context) (*domain.BusinessConfig, error) {
	cfg, _, err := q.businessRepo.Load(ctx)
	return cfg, err
}
