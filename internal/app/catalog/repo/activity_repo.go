package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/models/m_activity"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// ActivityRepo implements ActivityRepository and ActivityReadModel over the
// kv store.
type ActivityRepo struct {
	store kvstore.Store
	model *m_activity.Model
}

// NewActivityRepo creates a new ActivityRepo.
func NewActivityRepo(store kvstore.Store) *ActivityRepo {
	return &ActivityRepo{
		store: store,
		model: m_activity.NewModel(),
	}
}

var (
	_ contracts.ActivityRepository = (*ActivityRepo)(nil)
	_ contracts.ActivityReadModel  = (*ActivityRepo)(nil)
)

// InsertOps creates one insert op per event.
func (r *ActivityRepo) InsertOps(events []domain.DomainEvent) ([]kvstore.Op, error) {
	ops := make([]kvstore.Op, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
		}

		op, err := r.model.InsertOp(&m_activity.Data{
			EventID:     uuid.New().String(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID(),
			Payload:     payload,
			OccurredAt:  event.OccurredTime(),
		})
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// ListEvents returns matching events, newest first.
func (r *ActivityRepo) ListEvents(ctx context.Context, filter *contracts.ActivityFilter) ([]*contracts.ActivityEvent, error) {
	if filter == nil {
		filter = &contracts.ActivityFilter{}
	}
	entries, err := r.store.List(ctx, m_activity.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list events: %w", domain.ErrStorage, err)
	}

	events := make([]*contracts.ActivityEvent, 0)
	for _, entry := range slices.Backward(entries) {
		data, err := r.model.Decode(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event %s: %w", entry.Key, err)
		}
		if filter.EventType != nil && data.EventType != *filter.EventType {
			continue
		}
		if filter.AggregateID != nil && data.AggregateID != *filter.AggregateID {
			continue
		}

		events = append(events, &contracts.ActivityEvent{
			Key:         entry.Key,
			EventID:     data.EventID,
			EventType:   data.EventType,
			AggregateID: data.AggregateID,
			Payload:     string(data.Payload),
			OccurredAt:  data.OccurredAt,
		})
		if filter.Limit > 0 && len(events) >= filter.Limit {
			break
		}
	}
	return events, nil
}

// DeleteBeforeOps builds remove ops for events older than cutoff.
func (r *ActivityRepo) DeleteBeforeOps(ctx context.Context, cutoff time.Time) ([]kvstore.Op, error) {
	entries, err := r.store.List(ctx, m_activity.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list events: %w", domain.ErrStorage, err)
	}

	limit := m_activity.KeyPrefix + cutoff.UTC().Format(m_activity.TimeLayout)
	ops := make([]kvstore.Op, 0)
	for _, entry := range entries {
		// keys sort by time, so the first key at or past the cutoff ends the scan
		if strings.Compare(entry.Key, limit) >= 0 {
			break
		}
		ops = append(ops, r.model.DeleteOp(entry.Key))
	}
	return ops, nil
}
