package models

import (
	"time"
)

// SessionRecord is the durable form of an authenticated identity. Identity
// holds the User snapshot serialized at login time; it may drift from the
// roster copy and is not reconciled.
type SessionRecord struct {
	Token     string `gorm:"primaryKey;size:36"`
	Identity  JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for SessionRecord
func (SessionRecord) TableName() string {
	return "sessions"
}
