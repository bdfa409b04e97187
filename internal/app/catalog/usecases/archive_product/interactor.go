package archive_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request contains the product ID to archive.
type Request struct {
	ProductID int64
}

// Interactor handles the archive product use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new archive product interactor.
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

// Execute moves the product, entries intact, from the active collection to
// the archive. Both collections are written in one batch, so the product is
// never in both or in neither.
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

		applied = registry.Archive(req.ProductID, archive, i.clock.Now())
		if !applied {
			return nil, nil
		}

		plan := committer.NewPlan()
		activeOp, err := i.repo.SaveActiveOp(registry, activeVersion)
		if err != nil {
			return nil, fmt.Errorf("failed to create save op: %w", err)
		}
		archiveOp, err := i.repo.SaveArchiveOp(archive, archiveVersion)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive op: %w", err)
		}
		plan.Add(activeOp)
		plan.Add(archiveOp)

		eventOps, err := i.activityRepo.InsertOps(registry.DomainEvents())
		if err != nil {
			return nil, err
		}
		plan.AddMultiple(eventOps)
		return plan, nil
	})
	return applied, err
}
