package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"echome-server/internal/ai"
	"echome-server/internal/model"
)

// EntryStore is the persistence surface of the entry service.
// *repository.EntryRepository satisfies it.
type EntryStore interface {
	Create(entry *model.Entry) error
	ListSessionChat(userID, sessionID string) ([]model.Entry, error)
	ListMemories(userID string) ([]model.Entry, error)
	ListByUser(userID string) ([]model.Entry, error)
	DistinctSessions(userID string) ([]string, error)
}

// HistoryCache fronts the session-transcript query. *cache.HistoryCache
// satisfies it; a nil cache disables caching.
type HistoryCache interface {
	GetHistory(ctx context.Context, userID, sessionID string) ([]model.Entry, bool, error)
	SetHistory(ctx context.Context, userID, sessionID string, entries []model.Entry) error
	DeleteHistory(ctx context.Context, userID, sessionID string) error
	MarkDirty(ctx context.Context, userID, sessionID string) error
	IsDirty(ctx context.Context, userID, sessionID string) (bool, error)
}

// EntryEventPublisher pushes entry lifecycle events to the activity
// trail. Publishing is best effort; the primary save is already durable.
type EntryEventPublisher interface {
	Publish(ctx context.Context, event model.EntryEvent) error
}

type EntryService struct {
	entries      EntryStore
	historyCache HistoryCache
	publisher    EntryEventPublisher
	llmClient    *ai.OpenAICompatibleClient
	llm          ai.ChatConfig
	analyzer     *ai.MemoryAnalyzer
	maxContext   int
}

func NewEntryService(
	entries EntryStore,
	historyCache HistoryCache,
	publisher EntryEventPublisher,
	llm ai.ChatConfig,
	maxContext int,
) *EntryService {
	if maxContext <= 0 {
		maxContext = 20
	}
	client := ai.NewOpenAICompatibleClient()
	return &EntryService{
		entries:      entries,
		historyCache: historyCache,
		publisher:    publisher,
		llmClient:    client,
		llm:          llm,
		analyzer:     ai.NewMemoryAnalyzer(client, llm),
		maxContext:   maxContext,
	}
}

type SubmitMessageInput struct {
	UserID    string
	Message   string
	Kind      model.Kind
	SessionID *string
}

type SubmitMessageResult struct {
	Reply string       `json:"reply"`
	Entry *model.Entry `json:"entry"`
}

// SubmitMessage runs one chat or memory exchange: it rebuilds the session
// context, asks the completion provider for a reply, derives summary and
// emotions for memory-kind entries, and persists the result. Nothing is
// persisted when the completion call fails.
func (s *EntryService) SubmitMessage(ctx context.Context, input SubmitMessageInput) (*SubmitMessageResult, error) {
	userID := strings.TrimSpace(input.UserID)
	message := strings.TrimSpace(input.Message)
	if userID == "" || message == "" || !input.Kind.Valid() {
		return nil, ErrInvalidInput
	}

	sessionID := normalizeSessionID(input.SessionID)

	var prior []model.Entry
	if sessionID != nil && input.Kind == model.KindChat {
		var err error
		prior, err = s.loadSessionChat(ctx, userID, *sessionID)
		if err != nil {
			return nil, err
		}
	}

	reply, err := s.llmClient.Complete(ctx, s.llm, s.buildPromptMessages(prior, message))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAI, err)
	}

	analysis := ai.Analysis{Emotions: []string{}}
	if input.Kind == model.KindMemory {
		analysis = s.analyzer.Analyze(ctx, message)
	}

	entry := &model.Entry{
		UserID:     userID,
		SessionID:  sessionID,
		Message:    message,
		AIResponse: reply,
		Kind:       input.Kind,
		Summary:    analysis.Summary,
		Emotions:   model.StringList(analysis.Emotions),
	}
	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}

	if sessionID != nil && s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, userID, *sessionID)
		_ = s.historyCache.DeleteHistory(ctx, userID, *sessionID)
	}
	s.publishEvent(ctx, entry)

	return &SubmitMessageResult{Reply: reply, Entry: entry}, nil
}

// ListMemories returns the user's memory-kind entries, most recent first.
func (s *EntryService) ListMemories(userID string) ([]model.Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.entries.ListMemories(userID)
}

// ListSessions returns the distinct non-empty session ids the user has
// chatted under.
func (s *EntryService) ListSessions(userID string) ([]string, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	raw, err := s.entries.DistinctSessions(userID)
	if err != nil {
		return nil, err
	}
	sessions := make([]string, 0, len(raw))
	for _, id := range raw {
		if id != "" {
			sessions = append(sessions, id)
		}
	}
	return sessions, nil
}

// SessionChat returns one session's transcript in conversation order.
func (s *EntryService) SessionChat(ctx context.Context, userID, sessionID string) ([]model.Entry, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidInput
	}
	return s.loadSessionChat(ctx, userID, sessionID)
}

type CreateMemoryInput struct {
	Message    string
	AIResponse string
}

// CreateMemory persists a memory-kind entry attributed to the verified
// caller. No completion call is made on this path.
func (s *EntryService) CreateMemory(ctx context.Context, identity Identity, input CreateMemoryInput) (*model.Entry, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	entry := &model.Entry{
		UserID:     identity.UID,
		Message:    message,
		AIResponse: input.AIResponse,
		Kind:       model.KindMemory,
		Emotions:   model.StringList{},
	}
	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, entry)
	return entry, nil
}

// ListCallerEntries returns every entry of the verified caller, most
// recent first.
func (s *EntryService) ListCallerEntries(identity Identity) ([]model.Entry, error) {
	return s.entries.ListByUser(identity.UID)
}

func (s *EntryService) loadSessionChat(ctx context.Context, userID, sessionID string) ([]model.Entry, error) {
	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, userID, sessionID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, userID, sessionID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	entries, err := s.entries.ListSessionChat(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, userID, sessionID); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, userID, sessionID, entries)
		}
	}
	return entries, nil
}

// buildPromptMessages reconstructs the model context from stored user
// inputs only; assistant replies are not replayed.
func (s *EntryService) buildPromptMessages(prior []model.Entry, currentMessage string) []ai.ChatMessage {
	if len(prior) > s.maxContext {
		prior = prior[len(prior)-s.maxContext:]
	}

	messages := make([]ai.ChatMessage, 0, len(prior)+2)
	messages = append(messages, ai.ChatMessage{Role: "system", Content: systemPrompt})
	for _, entry := range prior {
		messages = append(messages, ai.ChatMessage{Role: "user", Content: entry.Message})
	}
	messages = append(messages, ai.ChatMessage{Role: "user", Content: currentMessage})
	return messages
}

func (s *EntryService) publishEvent(ctx context.Context, entry *model.Entry) {
	if s.publisher == nil {
		return
	}
	event := model.EntryEvent{
		EntryID: entry.ID,
		UserID:  entry.UserID,
		Kind:    entry.Kind,
		Action:  model.EntryEventActionCreated,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish entry event failed: %v", err)
	}
}

func normalizeSessionID(sessionID *string) *string {
	if sessionID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*sessionID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
