package restore_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request contains the archived product ID to restore.
type Request struct {
	ProductID int64
}

// Interactor handles the restore product use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new restore product interactor.
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

// Execute moves the product back to the end of the active collection in a
// single batch. The product is appended as is; no name or id de-duplication
// is performed against the active collection.
func (i *Interactor) Execute(ctx context.Context, req *Request) (bool, error) {
	var applied bool
	err := i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, _, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		registry, activeVersion, err := i.repo.LoadActive(ctx, cfg)
		if err != nil {
			return nil, err
		}
		archive, archiveVersion, err := i.repo.LoadArchive(ctx, cfg)
		if err != nil {
			return nil, err
		}

		applied = archive.Restore(req.ProductID, registry, i.clock.Now())
		if !applied {
			return nil, nil
		}

		plan := committer.NewPlan()
		archiveOp, err := i.repo.SaveArchiveOp(archive, archiveVersion)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive op: %w", err)
		}
		activeOp, err := i.repo.SaveActiveOp(registry, activeVersion)
		if err != nil {
			return nil, fmt.Errorf("failed to create save op: %w", err)
		}
		plan.Add(archiveOp)
		plan.Add(activeOp)

		eventOps, err := i.activityRepo.InsertOps(archive.DomainEvents())
		if err != nil {
			return nil, err
		}
		plan.AddMultiple(eventOps)
		return plan, nil
	})
	return applied, err
}
