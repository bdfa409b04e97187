package m_product

import (
	"encoding/json"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// Model provides a facade for reading and writing product collections.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Decode parses a stored collection. An empty value is an empty collection.
func (m *Model) Decode(value string) ([]Data, error) {
	if value == "" {
		return []Data{}, nil
	}
	var items []Data
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, fmt.Errorf("decode product collection: %w", err)
	}
	if items == nil {
		items = []Data{}
	}
	return items, nil
}

// SetOp creates a kv operation replacing the collection under key, pinned to
// the version it was read at.
func (m *Model) SetOp(key string, items []Data, version int64) (kvstore.Op, error) {
	if items == nil {
		items = []Data{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return kvstore.Op{}, fmt.Errorf("encode product collection: %w", err)
	}
	return kvstore.Set(key, string(raw)).IfVersion(version), nil
}
