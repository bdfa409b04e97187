package set_logo

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request carries the logo as a data URL. An empty DataURL removes the logo.
type Request struct {
	DataURL string
}

// Interactor handles the set logo use case.
type Interactor struct {
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new set logo interactor.
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

// Execute validates the image (5 MiB cap) before loading anything, then
// replaces the logo.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	var logo *domain.Image
	if req.DataURL != "" {
		img, err := domain.NewImage(req.DataURL)
		if err != nil {
			return err
		}
		logo = img
	}

	return i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, version, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}

		cfg.SetLogo(logo, i.clock.Now())

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
