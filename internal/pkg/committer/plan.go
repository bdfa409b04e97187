// Package committer collects the writes of one command into a CommitPlan and
// applies them as a single atomic batch against the key-value store.
//
// Commands follow read-full, mutate, write-full: they load whole
// collections, change them in memory, and hand the re-encoded collections
// back as ops pinned to the versions they read. If another writer got there
// first the batch fails with kvstore.ErrVersionConflict and Run replays the
// command on fresh state, so a concurrent update is never silently lost.
//
// The typical flow in a usecase is:
//
//	err := committer.Run(ctx, func(ctx context.Context) (*CommitPlan, error) {
//	    products, err := repo.Load(ctx)               // 1. read full collection
//	    ...                                            // 2. mutate in memory
//	    plan := NewPlan()
//	    plan.Add(repo.SaveOp(products))                // 3. write full collection
//	    plan.AddMultiple(activity.AppendOps(events))   // 4. activity log, same batch
//	    return plan, nil
//	})
package committer

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// DefaultMaxAttempts bounds how often Run replays a command on conflict.
const DefaultMaxAttempts = 5

// ErrConflictRetriesExhausted is returned when every attempt hit a conflict.
var ErrConflictRetriesExhausted = errors.New("commit aborted: concurrent modification persisted across retries")

// CommitPlan is an ordered list of store operations applied atomically.
type CommitPlan struct {
	ops []kvstore.Op
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		ops: make([]kvstore.Op, 0),
	}
}

// Add adds an operation to the plan.
func (cp *CommitPlan) Add(op kvstore.Op) {
	cp.ops = append(cp.ops, op)
}

// AddMultiple adds multiple operations to the plan.
func (cp *CommitPlan) AddMultiple(ops []kvstore.Op) {
	cp.ops = append(cp.ops, ops...)
}

// Ops returns all collected operations.
func (cp *CommitPlan) Ops() []kvstore.Op {
	return cp.ops
}

// IsEmpty returns true if the plan has no operations.
func (cp *CommitPlan) IsEmpty() bool {
	return cp == nil || len(cp.ops) == 0
}

// Count returns the number of operations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.ops)
}

// Committer applies CommitPlans to a store.
type Committer struct {
	store       kvstore.Store
	maxAttempts int
	onConflict  func()
}

// NewCommitter creates a new Committer.
func NewCommitter(store kvstore.Store) *Committer {
	return &Committer{store: store, maxAttempts: DefaultMaxAttempts}
}

// WithMaxAttempts overrides the retry bound used by Run.
func (c *Committer) WithMaxAttempts(n int) *Committer {
	if n > 0 {
		c.maxAttempts = n
	}
	return c
}

// WithConflictObserver registers fn to be called each time Run replays a
// command after a version conflict.
func (c *Committer) WithConflictObserver(fn func()) *Committer {
	c.onConflict = fn
	return c
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	if err := c.store.Apply(ctx, plan.Ops()); err != nil {
		if errors.Is(err, kvstore.ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// Run builds a plan with build and applies it, replaying build against fresh
// state when the store reports a version conflict. A nil or empty plan
// means the command turned out to be a no-op.
func (c *Committer) Run(ctx context.Context, build func(ctx context.Context) (*CommitPlan, error)) error {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		plan, err := build(ctx)
		if err != nil {
			return err
		}

		err = c.Apply(ctx, plan)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kvstore.ErrVersionConflict) {
			return err
		}
		if c.onConflict != nil {
			c.onConflict()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return ErrConflictRetriesExhausted
}
