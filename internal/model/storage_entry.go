package model

import "time"

// StorageEntry is one row of the durable key/value store. Values are
// JSON-encoded by the callers that own each key.
type StorageEntry struct {
	Key       string    `gorm:"column:key;primaryKey;type:varchar(64)"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
