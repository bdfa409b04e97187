package remove_state

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request names the state to remove.
type Request struct {
	Name string
}

// Interactor handles the remove state use case.
type Interactor struct {
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new remove state interactor.
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

// Execute removes a state from the palette. Entries already in that state
// keep the name. Unknown state names are a silent no-op.
func (i *Interactor) Execute(ctx context.Context, req *Request) (bool, error) {
	var applied bool
	err := i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, version, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}

		applied = cfg.RemoveState(req.Name, i.clock.Now())
		if !applied {
			return nil, nil
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
	return applied, err
}
