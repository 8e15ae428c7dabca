package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"echome-server/internal/ai"
	"echome-server/internal/app"
	"echome-server/internal/model"
	"echome-server/internal/transport/http/middleware"
)

type fakeEntryStore struct {
	entries []model.Entry
	nextID  uint
}

func (s *fakeEntryStore) Create(entry *model.Entry) error {
	s.nextID++
	entry.ID = s.nextID
	entry.Date = time.Now()
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
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID == userID && s.entries[i].Kind == model.KindMemory {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

func (s *fakeEntryStore) ListByUser(userID string) ([]model.Entry, error) {
	var out []model.Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID == userID {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

func (s *fakeEntryStore) DistinctSessions(userID string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, e := range s.entries {
		if e.UserID != userID || e.Kind != model.KindChat || e.SessionID == nil || *e.SessionID == "" {
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

// newFakeLLM serves /chat/completions, answering analyzer prompts with
// analyzerOutput and everything else with chatReply. A failing server is
// simulated with status >= 300.
func newFakeLLM(status int, chatReply, analyzerOutput string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status >= 300 {
			w.WriteHeader(status)
			return
		}
		var body struct {
			Messages []ai.ChatMessage `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		content := chatReply
		if n := len(body.Messages); n > 0 &&
			bytes.Contains([]byte(body.Messages[n-1].Content), []byte("Summarize the following memory")) {
			content = analyzerOutput
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

type testEnv struct {
	router  *gin.Engine
	entries *fakeEntryStore
	users   *fakeUserStore
}

func newTestEnv(t *testing.T, llmURL string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	entries := &fakeEntryStore{}
	users := newFakeUserStore()

	authService := app.NewAuthService(users, "test-secret", time.Hour)
	entryService := app.NewEntryService(entries, nil, nil, ai.ChatConfig{
		BaseURL: llmURL, APIKey: "test", Model: "test-model",
	}, 20)

	verifier, err := app.NewIdentityVerifier(app.VerifyStrategyToken, "test-secret", users)
	if err != nil {
		t.Fatalf("build verifier failed: %v", err)
	}

	authHandler := NewAuthHandler(authService)
	entryHandler := NewEntryHandler(entryService)
	memoryHandler := NewMemoryHandler(entryService)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/message", entryHandler.SubmitMessage)
	api.GET("/memories/:userId", entryHandler.ListMemories)
	api.GET("/sessions/:userId", entryHandler.ListSessions)
	api.GET("/chats/:userId/:sessionId", entryHandler.SessionChat)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	memories := router.Group("/memories")
	memories.Use(middleware.AuthBearer(verifier))
	memories.POST("", memoryHandler.Create)
	memories.GET("", memoryHandler.List)

	return &testEnv{router: router, entries: entries, users: users}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q failed: %v", resp.Body.String(), err)
	}
}
