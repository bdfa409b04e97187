package m_kv

// Column name constants for the kv_entries table.
const (
	TableName = "kv_entries"

	Key       = "entry_key"
	Value     = "entry_value"
	Version   = "version"
	UpdatedAt = "updated_at"
)

// Columns lists every column in read order.
var Columns = []string{Key, Value, Version, UpdatedAt}
