package add_state

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request describes a new workflow state.
type Request struct {
	Name  string
	Color string
}

// Interactor handles the add state use case.
type Interactor struct {
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new add state interactor.
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

// Execute appends a workflow state. The color defaults to #000000.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, version, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}

		if err := cfg.AddState(req.Name, req.Color, i.clock.Now()); err != nil {
			return nil, err
		}

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
