package get_product

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

// Request identifies the product and narrows its entry list.
type Request struct {
	ProductID int64
	Filter    domain.EntryFilter
}

// Response is the product detail view.
type Response struct {
	Product *domain.Product
	// Entries matching the filter, in insertion order.
	Entries []*domain.CustomerEntry
	// Totals always cover every entry, not only the filtered ones.
	Totals domain.Totals
	Config *domain.BusinessConfig
}

// Query handles the get product query use case.
type Query struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
}

// NewQuery creates a new get product query.
func NewQuery(repo contracts.ProductRepository, businessRepo contracts.BusinessConfigRepository) *Query {
	return &Query{
		repo:         repo,
		businessRepo: businessRepo,
	}
}

// Execute retrieves an active product by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	cfg, _, err := q.businessRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	registry, _, err := q.repo.LoadActive(ctx, cfg)
	if err != nil {
		return nil, err
	}
	product := registry.Find(req.ProductID)
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	ledger := domain.NewLedger(product, cfg)
	return &Response{
		Product: product,
		Entries: ledger.Filter(req.Filter),
		Totals:  ledger.Totals(),
		Config:  cfg,
	}, nil
}
