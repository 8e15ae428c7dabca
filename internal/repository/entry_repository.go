package repository

import (
	"fmt"

	"gorm.io/gorm"

	"echome-server/internal/model"
)

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(entry *model.Entry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create entry failed: %w", err)
	}
	return nil
}

// ListSessionChat returns the chat transcript of one session in
// conversation order.
func (r *EntryRepository) ListSessionChat(userID, sessionID string) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.
		Where("user_id = ? AND session_id = ? AND kind = ?", userID, sessionID, model.KindChat).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list session chat failed: %w", err)
	}
	return entries, nil
}

// ListMemories returns memory-kind entries, most recent first.
func (r *EntryRepository) ListMemories(userID string) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.
		Where("user_id = ? AND kind = ?", userID, model.KindMemory).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list memories failed: %w", err)
	}
	return entries, nil
}

// ListByUser returns every entry of one user, most recent first.
func (r *EntryRepository) ListByUser(userID string) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list entries by user failed: %w", err)
	}
	return entries, nil
}

// DistinctSessions returns the session ids a user has chatted under.
// Entries without a session are excluded.
func (r *EntryRepository) DistinctSessions(userID string) ([]string, error) {
	var sessionIDs []string
	err := r.db.
		Model(&model.Entry{}).
		Where("user_id = ? AND kind = ? AND session_id IS NOT NULL AND session_id <> ''", userID, model.KindChat).
		Distinct().
		Pluck("session_id", &sessionIDs).Error
	if err != nil {
		return nil, fmt.Errorf("list distinct sessions failed: %w", err)
	}
	return sessionIDs, nil
}
