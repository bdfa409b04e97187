package update_business_info

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request contains the business identity printed on exports.
type Request struct {
	Name       string
	FooterNote string
}

// Interactor handles the update business info use case.
type Interactor struct {
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new update business info interactor.
func NewInteractor(
	businessRepo contracts.BusinessConfigRepository,
	activityRepo contracts.ActivityRepository,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		businessRepo: businessRepo,
		activityRepo: activityRepo,
		committer:    committer,
		clock:        clock,
	}
}

// Execute stores the trimmed business name and footer note.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, version, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}

		cfg.UpdateInfo(req.Name, req.FooterNote, i.clock.Now())

		plan := committer.NewPlan()
		op, err := i.businessRepo.SaveOp(cfg, version)
		if err != nil {
			return nil, fmt.Errorf("failed to create save op: %w", err)
		}
		plan.Add(op)

		eventOps, err := i.activityRepo.InsertOps(cfg.DomainEvents())
		if err != nil {
			return nil, err
		}
		plan.AddMultiple(eventOps)
		return plan, nil
	})
}
