package committer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

func TestCommitPlan(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(kvstore.Set("a", "1"))
	plan.AddMultiple([]kvstore.Op{kvstore.Set("b", "2"), kvstore.Remove("c")})

	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 3, plan.Count())
	assert.Equal(t, "c", plan.Ops()[2].Key)
}

func TestCommitter_ApplyEmptyPlan(t *testing.T) {
	c := NewCommitter(kvstore.NewMemory())
	assert.NoError(t, c.Apply(context.Background(), NewPlan()))
	assert.NoError(t, c.Apply(context.Background(), nil))
}

func TestCommitter_RunRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Apply(ctx, []kvstore.Op{kvstore.Set("counter", "0")}))
	c := NewCommitter(store)

	attempts := 0
	err := c.Run(ctx, func(ctx context.Context) (*CommitPlan, error) {
		attempts++
		e, err := store.Get(ctx, "counter")
		if err != nil {
			return nil, err
		}
		if attempts == 1 {
			// A competing writer lands between our read and our write.
			require.NoError(t, store.Apply(ctx, []kvstore.Op{kvstore.Set("counter", "intruder")}))
		}
		plan := NewPlan()
		plan.Add(kvstore.Set("counter", e.Value+"+1").IfVersion(e.Version))
		return plan, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	e, err := store.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "intruder+1", e.Value)
}

func TestCommitter_RunGivesUp(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	c := NewCommitter(store).WithMaxAttempts(3)

	attempts := 0
	err := c.Run(ctx, func(ctx context.Context) (*CommitPlan, error) {
		attempts++
		plan := NewPlan()
		plan.Add(kvstore.Set("k", "v").IfVersion(99))
		return plan, nil
	})
	assert.ErrorIs(t, err, ErrConflictRetriesExhausted)
	assert.Equal(t, 3, attempts)
}

func TestCommitter_RunPropagatesBuildError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCommitter(kvstore.NewMemory())
	err := c.Run(context.Background(), func(ctx context.Context) (*CommitPlan, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
