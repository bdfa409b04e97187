package m_kv

import (
	"time"
)

// Data represents one row of the kv_entries table.
// The same struct is read by the Spanner client (spanner tags) and mapped
// by gorm for the SQL backends (gorm tags).
type Data struct {
	Key       string    `spanner:"entry_key" gorm:"column:entry_key;primaryKey;size:255"`
	Value     string    `spanner:"entry_value" gorm:"column:entry_value;type:text;not null"`
	Version   int64     `spanner:"version" gorm:"column:version;not null"`
	UpdatedAt time.Time `spanner:"updated_at" gorm:"column:updated_at;not null"`
}

// TableName tells gorm which table backs Data.
func (Data) TableName() string {
	return TableName
}
