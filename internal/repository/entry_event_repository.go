package repository

import (
	"fmt"

	"gorm.io/gorm"

	"echome-server/internal/model"
)

type EntryEventRepository struct {
	db *gorm.DB
}

func NewEntryEventRepository(db *gorm.DB) *EntryEventRepository {
	return &EntryEventRepository{db: db}
}

func (r *EntryEventRepository) Create(event *model.EntryEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create entry event failed: %w", err)
	}
	return nil
}
