package m_kv

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe mutations on the kv_entries table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation writing value under key at the given version.
func (m *Model) UpsertMut(key, value string, version int64) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{Key, Value, Version, UpdatedAt},
		[]interface{}{key, value, version, spanner.CommitTimestamp},
	)
}

// DeleteMut creates a Spanner mutation deleting key.
func (m *Model) DeleteMut(key string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{key})
}
