package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

func seedActivity(t *testing.T, store kvstore.Store) *ActivityRepo {
	t.Helper()
	repo := NewActivityRepo(store)

	events := []domain.DomainEvent{
		&domain.ProductEvent{Type: domain.EventProductCreated, ProductID: 1, Name: "A", OccurredAt: testNow},
		&domain.EntryEvent{Type: domain.EventEntryAdded, ProductID: 1, EntryID: 5, State: "Pending", OccurredAt: testNow.Add(time.Minute)},
		&domain.ProductEvent{Type: domain.EventProductCreated, ProductID: 2, Name: "B", OccurredAt: testNow.Add(2 * time.Minute)},
		&domain.BusinessEvent{Type: domain.EventStateAdded, State: "X", OccurredAt: testNow.Add(3 * time.Minute)},
	}
	ops, err := repo.InsertOps(events)
	require.NoError(t, err)
	require.Len(t, ops, 4)
	require.NoError(t, store.Apply(context.Background(), ops))
	return repo
}

func TestActivityRepo_ListEvents(t *testing.T) {
	ctx := context.Background()
	repo := seedActivity(t, kvstore.NewMemory())

	t.Run("newest first", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, nil)
		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, domain.EventStateAdded, events[0].EventType)
		assert.Equal(t, domain.BusinessAggregateID, events[0].AggregateID)
		assert.Equal(t, domain.EventProductCreated, events[3].EventType)
		assert.Contains(t, events[3].Payload, `"name":"A"`)
	})

	t.Run("filter by type and aggregate", func(t *testing.T) {
		eventType := domain.EventProductCreated
		aggregate := "1"
		events, err := repo.ListEvents(ctx, &contracts.ActivityFilter{EventType: &eventType})
		require.NoError(t, err)
		assert.Len(t, events, 2)

		events, err = repo.ListEvents(ctx, &contracts.ActivityFilter{AggregateID: &aggregate})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("limit", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, &contracts.ActivityFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventStateAdded, events[0].EventType)
	})
}

func TestActivityRepo_DeleteBeforeOps(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := seedActivity(t, store)

	ops, err := repo.DeleteBeforeOps(ctx, testNow.Add(90*time.Second))
	require.NoError(t, err)
	assert.Len(t, ops, 2)
	require.NoError(t, store.Apply(ctx, ops))

	events, err := repo.ListEvents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
