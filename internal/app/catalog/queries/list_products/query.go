package list_products

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

// Request contains the search term.
type Request struct {
	Search string
}

// Query handles the list products query use case.
type Query struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
}

// NewQuery creates a new list products query.
func NewQuery(repo contracts.ProductRepository, businessRepo contracts.BusinessConfigRepository) *Query {
	return &Query{
		repo:         repo,
		businessRepo: businessRepo,
	}
}

// Execute returns the active products matching the search term, in
// insertion order.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.Product, error) {
	cfg, _, err := q.businessRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	registry, _, err := q.repo.LoadActive(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return registry.Search(req.Search), nil
}
