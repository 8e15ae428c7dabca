package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Kind string

const (
	KindChat   Kind = "chat"
	KindMemory Kind = "memory"
)

func (k Kind) Valid() bool {
	return k == KindChat || k == KindMemory
}

// StringList is stored as a JSON array in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list failed: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported string list source type %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	if err := json.Unmarshal(raw, l); err != nil {
		return fmt.Errorf("unmarshal string list failed: %w", err)
	}
	return nil
}

// Entry is a single persisted chat or memory record. Chat entries form an
// ordered session transcript; memory entries are standalone summarized
// artifacts. Entries are never updated after creation.
type Entry struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     string     `gorm:"size:64;not null;index" json:"user"`
	SessionID  *string    `gorm:"size:128;index" json:"sessionId"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	AIResponse string     `gorm:"type:text" json:"aiResponse"`
	Kind       Kind       `gorm:"size:16;not null;index" json:"kind"`
	Summary    string     `gorm:"type:text" json:"summary"`
	Emotions   StringList `gorm:"type:text" json:"emotions"`
	Date       time.Time  `gorm:"index;autoCreateTime" json:"date"`
}
