package update_count

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request sets the tally count of a product. Exactly one of Count and Delta
// is used: Count replaces the value, Delta adjusts it (the +/- buttons).
// Either way the result is clamped at zero.
type Request struct {
	ProductID int64
	Count     *int
	Delta     int
}

// Response reports the resulting count.
type Response struct {
	Applied bool
	Count   int
}

// Interactor handles the update count use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new update count interactor.
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

// Execute updates the count. An unknown product id is a silent no-op.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp := &Response{}
	err := i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, _, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		registry, version, err := i.repo.LoadActive(ctx, cfg)
		if err != nil {
			return nil, err
		}

		now := i.clock.Now()
		if req.Count != nil {
			resp.Applied = registry.UpdateCount(req.ProductID, *req.Count, now)
		} else {
			resp.Applied = registry.AdjustCount(req.ProductID, req.Delta, now)
		}
		if !resp.Applied {
			return nil, nil
		}
		resp.Count = registry.Find(req.ProductID).Count()

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
	return resp, nil
}
