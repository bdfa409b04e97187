package bulk_entries

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

// Request selects the state bucket. Nil or "All" returns every entry.
type Request struct {
	State *string
}

// Response is the bulk workflow view.
type Response struct {
	Summary domain.WorkflowSummary
	Records []domain.EntryRecord
	Config  *domain.BusinessConfig
}

// Query handles the bulk entries query use case.
type Query struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
}

// NewQuery creates a new bulk entries query.
func NewQuery(repo contracts.ProductRepository, businessRepo contracts.BusinessConfigRepository) *Query {
	return &Query{
		repo:         repo,
		businessRepo: businessRepo,
	}
}

// Execute flattens the entries of every active product, counts them per
// configured state and returns the ones in the requested bucket.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	cfg, _, err := q.businessRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	registry, _, err := q.repo.LoadActive(ctx, cfg)
	if err != nil {
		return nil, err
	}

	records := domain.Flatten(registry.Products())
	return &Response{
		Summary: domain.Aggregate(records, cfg),
		Records: domain.FilterByState(records, req.State),
		Config:  cfg,
	}, nil
}
