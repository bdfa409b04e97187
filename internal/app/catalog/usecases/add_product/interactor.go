package add_product

import (
	"context"
	"fmt"
	"strings"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
	"github.com/light-bringer/ordertally-service/internal/pkg/idgen"
)

// Request contains the data needed to create a product.
type Request struct {
	Name  string
	Price string // decimal, e.g. "120.50"
}

// Interactor handles the add product use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
	ids          idgen.Generator
}

// NewInteractor creates a new add product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	businessRepo contracts.BusinessConfigRepository,
	activityRepo contracts.ActivityRepository,
	committer *committer.Committer,
	clock clock.Clock,
	ids idgen.Generator,
) *Interactor {
	return &Interactor{
		repo:         repo,
		businessRepo: businessRepo,
		activityRepo: activityRepo,
		committer:    committer,
		clock:        clock,
		ids:          ids,
	}
}

// Execute validates the request and appends a new product to the active
// collection. Returns the created product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	price, err := domain.ParseMoney(strings.TrimSpace(req.Price))
	if err != nil {
		return nil, domain.ErrInvalidPrice
	}

	var created *domain.Product
	err = i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, _, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		registry, version, err := i.repo.LoadActive(ctx, cfg)
		if err != nil {
			return nil, err
		}

		created, err = registry.Add(i.ids.NextID(), req.Name, price, i.clock.Now())
		if err != nil {
			return nil, err
		}

		plan := committer.NewPlan()
		op, err := i.repo.SaveActiveOp(registry, version)
		if err != nil {
			return nil, fmt.Errorf("failed to create save op: %w", err)
		}
		plan.Add(op)

		eventOps, err := i.activityRepo.InsertOps(registry.DomainEvents())
		if err != nil {
			return nil, err
		}
		plan.AddMultiple(eventOps)
		return plan, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
