package m_business

import (
	"encoding/json"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// Model provides a facade for the business configuration document.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Decode parses the stored document. found is false for an absent key.
func (m *Model) Decode(value string) (data Data, found bool, err error) {
	if value == "" {
		return Data{}, false, nil
	}
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		return Data{}, false, fmt.Errorf("decode business config: %w", err)
	}
	return data, true, nil
}

// SetOp creates a kv operation replacing the document, pinned to version.
func (m *Model) SetOp(data Data, version int64) (kvstore.Op, error) {
	if data.States == nil {
		data.States = []StateData{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return kvstore.Op{}, fmt.Errorf("encode business config: %w", err)
	}
	return kvstore.Set(Key, string(raw)).IfVersion(version), nil
}
