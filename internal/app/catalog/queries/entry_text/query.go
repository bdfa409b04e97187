package entry_text

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

// Request identifies the entry.
type Request struct {
	ProductID int64
	EntryID   int64
}

// Query returns the text of a customer entry for the copy action.
type Query struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
}

// NewQuery creates a new entry text query.
func NewQuery(repo contracts.ProductRepository, businessRepo contracts.BusinessConfigRepository) *Query {
	return &Query{
		repo:         repo,
		businessRepo: businessRepo,
	}
}

// Execute returns the entry data verbatim.
func (q *Query) Execute(ctx context.Context, req *Request) (string, error) {
	cfg, _, err := q.businessRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	registry, _, err := q.repo.LoadActive(ctx, cfg)
	if err != nil {
		return "", err
	}
	product := registry.Find(req.ProductID)
	if product == nil {
		return "", domain.ErrProductNotFound
	}
	text, ok := domain.NewLedger(product, cfg).EntryText(req.EntryID)
	if !ok {
		return "", domain.ErrEntryNotFound
	}
	return text, nil
}
