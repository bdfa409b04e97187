package update_entry

import (
	"context"
	"fmt"
	"strings"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
)

// Request contains the replacement customer data for an entry.
type Request struct {
	ProductID int64
	EntryID   int64
	Data      string
}

// Interactor handles the update entry use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	activityRepo contracts.ActivityRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new update entry interactor.
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

// Execute overwrites the entry data. Unknown product or entry ids are a
// silent no-op.
func (i *Interactor) Execute(ctx context.Context, req *Request) (bool, error) {
	if strings.TrimSpace(req.Data) == "" {
		return false, domain.ErrEmptyEntryData
	}

	var applied bool
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
			applied = false
			return nil, nil
		}

		ledger := domain.NewLedger(product, cfg)
		applied, err = ledger.UpdateEntry(req.EntryID, req.Data, i.clock.Now())
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
