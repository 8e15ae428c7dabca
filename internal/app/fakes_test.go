package app

import (
	"context"
	"errors"
	"fmt"

	"echome-server/internal/model"
)

var errForTest = errors.New("test failure")

type fakeEntryStore struct {
	entries   []model.Entry
	createErr error
	nextID    uint
}

func (s *fakeEntryStore) Create(entry *model.Entry) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	entry.ID = s.nextID
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *fakeEntryStore) ListSessionChat(userID, sessionID string) ([]model.Entry, error) {
	var out []model.Entry
	for _, e := range s.entries {
		if e.UserID == userID && e.Kind == model.KindChat && e.SessionID != nil && *e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEntryStore) ListMemories(userID string) ([]model.Entry, error) {
	var out []model.Entry
	for _, e := range s.entries {
		if e.UserID == userID && e.Kind == model.KindMemory {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEntryStore) ListByUser(userID string) ([]model.Entry, error) {
	var out []model.Entry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEntryStore) DistinctSessions(userID string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, e := range s.entries {
		if e.UserID != userID || e.Kind != model.KindChat || e.SessionID == nil {
			continue
		}
		if !seen[*e.SessionID] {
			seen[*e.SessionID] = true
			out = append(out, *e.SessionID)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	byEmail map[string]*model.User
	nextID  uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*model.User{}}
}

func (s *fakeUserStore) Create(user *model.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return errors.New("duplicate email")
	}
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.byEmail[user.Email] = &copied
	return nil
}

func (s *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByID(id uint) (*model.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakePublisher struct {
	events     []model.EntryEvent
	publishErr error
}

func (p *fakePublisher) Publish(_ context.Context, event model.EntryEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.events = append(p.events, event)
	return nil
}

type fakeHistoryCache struct {
	histories map[string][]model.Entry
	dirty     map[string]bool
	getCalls  int
	setCalls  int
}

func newFakeHistoryCache() *fakeHistoryCache {
	return &fakeHistoryCache{
		histories: map[string][]model.Entry{},
		dirty:     map[string]bool{},
	}
}

func (c *fakeHistoryCache) key(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s", userID, sessionID)
}

func (c *fakeHistoryCache) GetHistory(_ context.Context, userID, sessionID string) ([]model.Entry, bool, error) {
	c.getCalls++
	entries, ok := c.histories[c.key(userID, sessionID)]
	return entries, ok, nil
}

func (c *fakeHistoryCache) SetHistory(_ context.Context, userID, sessionID string, entries []model.Entry) error {
	c.setCalls++
	c.histories[c.key(userID, sessionID)] = entries
	return nil
}

func (c *fakeHistoryCache) DeleteHistory(_ context.Context, userID, sessionID string) error {
	delete(c.histories, c.key(userID, sessionID))
	return nil
}

func (c *fakeHistoryCache) MarkDirty(_ context.Context, userID, sessionID string) error {
	c.dirty[c.key(userID, sessionID)] = true
	return nil
}

func (c *fakeHistoryCache) IsDirty(_ context.Context, userID, sessionID string) (bool, error) {
	return c.dirty[c.key(userID, sessionID)], nil
}
