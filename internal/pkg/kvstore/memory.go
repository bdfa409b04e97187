package kvstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Store. It is used by tests and by the server when
// no durable backend is configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]Entry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) Get(ctx context.Context, key string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, 0)
	for k, e := range m.entries {
		if strings.HasPrefix(k, prefix) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) Apply(ctx context.Context, ops []Op) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, op := range ops {
		if !checkVersion(op, m.entries[op.Key].Version) {
			return ErrVersionConflict
		}
	}

	now := m.now()
	for _, op := range ops {
		switch op.Kind {
		case OpSet:
			prev := m.entries[op.Key]
			m.entries[op.Key] = Entry{Key: op.Key, Value: op.Value, Version: prev.Version + 1, UpdatedAt: now}
		case OpRemove:
			delete(m.entries, op.Key)
		}
	}
	return nil
}

func (m *Memory) Driver() Driver { return DriverMemory }

func (m *Memory) Close() error { return nil }
