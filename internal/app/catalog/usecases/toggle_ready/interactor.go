package toggle_ready

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request identifies the entry whose readiness is flipped.
type Request struct {
	ProductID int64
	EntryID   int64
}

// Response carries the state the entry ended up in.
type Response struct {
	Applied bool
	State   string
}

// Interactor handles the toggle ready use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new toggle ready interactor.
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

// Execute moves a ready entry back to the first configured state and any
// other entry to Ready.
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
		product := registry.Find(req.ProductID)
		if product == nil {
			resp.Applied = false
			return nil, nil
		}

		ledger := domain.NewLedger(product, cfg)
		resp.Applied, err = ledger.ToggleReady(req.EntryID, i.clock.Now())
		if err != nil || !resp.Applied {
			return nil, err
		}
		for _, e := range product.Entries() {
			if e.ID() == req.EntryID {
				resp.State = e.State()
			}
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
	return resp, nil
}
