package list_archive

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

// Request contains the search term.
type Request struct {
	Search string
}

// Query handles the list archive query use case.
type Query struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
}

// NewQuery creates a new list archive query.
func NewQuery(repo contracts.ProductRepository, businessRepo contracts.BusinessConfigRepository) *Query {
	return &Query{
		repo:         repo,
		businessRepo: businessRepo,
	}
}

// Execute returns archived products whose name, note or entry data
// contains the search term.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.Product, error) {
	cfg, _, err := q.businessRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	archive, _, err := q.repo.LoadArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return archive.Search(req.Search), nil
}
