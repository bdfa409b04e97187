package delete_entry

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request identifies the entry to delete. Confirmed must be set.
type Request struct {
	ProductID int64
	EntryID   int64
	Confirmed bool
}

// Interactor handles the delete entry use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new delete entry interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	businessRepo contracts.BusinessConfigRepository,
	activityRepo contracts.ActivityRepository,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:         repo,
		businessRepo: businessRepo,
		activityRepo: activityRepo,
		committer:    committer,
		clock:        clock,
	}
}

// Execute removes the entry. Unknown ids are a silent no-op.
func (i *Interactor) Execute(ctx context.Context, req *Request) (bool, error) {
	if !req.Confirmed {
		return false, domain.ErrConfirmationRequired
	}

	var applied bool
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
			applied = false
			return nil, nil
		}

		ledger := domain.NewLedger(product, cfg)
		applied = ledger.DeleteEntry(req.EntryID, i.clock.Now())
		if !applied {
			return nil, nil
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
	return applied, err
}
