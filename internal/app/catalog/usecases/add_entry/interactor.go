package add_entry

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
	"github.com/light-bringer/ordertally-service/internal/pkg/idgen"
)

// Request contains the customer data for a new entry.
type Request struct {
	ProductID int64
	Data      string
}

// Interactor handles the add entry use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
	ids          idgen.Generator
}

// NewInteractor creates a new add entry interactor.
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

// Execute appends an entry in the first configured workflow state.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.CustomerEntry, error) {
	var created *domain.CustomerEntry
	err := i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, _, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		registry, version, err := i.repo.LoadActive(ctx, cfg)
		if err != nil {
			return nil, err
		}
		product := registry.Find(req.ProductID)
		if product == nil {
			return nil, domain.ErrProductNotFound
		}

		ledger := domain.NewLedger(product, cfg)
		created, err = ledger.AddEntry(i.ids.NextID(), req.Data, i.clock.Now())
		if err != nil {
			return nil, err
		}

		plan := committer.NewPlan()
		op, err := i.repo.SaveActiveOp(registry, version)
		if err != nil {
			return nil, fmt.Errorf("failed to create save op: %w", err)
		}
		plan.Add(op)

		eventOps, err := i.activityRepo.InsertOps(ledger.DomainEvents())
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
