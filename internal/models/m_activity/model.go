package m_activity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// Model provides a facade for activity events.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// EventKey builds the storage key of an event.
func (m *Model) EventKey(occurredAt time.Time, eventID string) string {
	return KeyPrefix + occurredAt.UTC().Format(TimeLayout) + "/" + eventID
}

// InsertOp creates a kv operation writing a new event. Event keys are unique,
// so the op requires the key to be absent.
func (m *Model) InsertOp(data *Data) (kvstore.Op, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return kvstore.Op{}, fmt.Errorf("encode activity event: %w", err)
	}
	return kvstore.Set(m.EventKey(data.OccurredAt, data.EventID), string(raw)).IfVersion(0), nil
}

// DeleteOp creates a kv operation removing the event stored under key.
func (m *Model) DeleteOp(key string) kvstore.Op {
	return kvstore.Remove(key)
}

// Decode parses a stored event.
func (m *Model) Decode(value string) (*Data, error) {
	var data Data
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		return nil, fmt.Errorf("decode activity event: %w", err)
	}
	return &data, nil
}

// OccurredAt extracts the event time from a key without decoding the value.
func (m *Model) OccurredAt(key string) (time.Time, error) {
	rest, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return time.Time{}, fmt.Errorf("not an activity key: %q", key)
	}
	stamp, _, _ := strings.Cut(rest, "/")
	return time.Parse(TimeLayout, stamp)
}
