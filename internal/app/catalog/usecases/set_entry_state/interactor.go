package set_entry_state

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request moves an entry to a workflow state.
type Request struct {
	ProductID int64
	EntryID   int64
	State     string
}

// Interactor handles the set entry state use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new set entry state interactor.
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

// Execute sets the state; readiness follows from it. The state must be
// configured. Unknown product or entry ids are a silent no-op.
func (i *Interactor) Execute(ctx context.Context, req *Request) (bool, error) {
	var applied bool
	err := i.committer.Run(ctx, func(ctx context.Context) (*committer.CommitPlan, error) {
		cfg, _, err := i.businessRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		if !cfg.HasState(req.State) {
			return nil, domain.ErrUnknownState
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
		applied, err = ledger.SetState(req.EntryID, req.State, i.clock.Now())
		if err != nil || !applied {
			return nil, err
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
