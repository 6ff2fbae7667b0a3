package models

import "time"

// SessionEntry is one persisted key-value pair of the device session.
type SessionEntry struct {
	Key       string    `gorm:"column:session_key;primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time
}
