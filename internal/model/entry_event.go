package model

import "time"

// EntryEvent is an activity-trail row written asynchronously whenever a
// new entry is created.
type EntryEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EntryID   uint      `gorm:"not null;index" json:"entry_id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Kind      Kind      `gorm:"size:16;not null" json:"kind"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

const EntryEventActionCreated = "created"
