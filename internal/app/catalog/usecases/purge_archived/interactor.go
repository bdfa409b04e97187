package purge_archived

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request identifies the archived product to delete permanently.
// Confirmed must be set.
type Request struct {
	ProductID int64
	Confirmed bool
}

// Interactor handles the permanent delete use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new purge archived interactor.
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

// Execute removes the product from the archive for good.
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
		archive, version, err := i.repo.LoadArchive(ctx, cfg)
		if err != nil {
			return nil, err
		}

		applied = archive.Purge(req.ProductID, i.clock.Now())
		if !applied {
			return nil, nil
		}

		plan := committer.NewPlan()
		op, err := i.repo.SaveArchiveOp(archive, version)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive op: %w", err)
		}
		plan.Add(op)

		eventOps, err := i.activityRepo.InsertOps(archive.DomainEvents())
		if err != nil {
			return nil, err
		}
		plan.AddMultiple(eventOps)
		return plan, nil
	})
	return applied, err
}
