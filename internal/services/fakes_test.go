package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"pdfchat-backend/internal/models"
	"pdfchat-backend/internal/store"

	"github.com/google/uuid"
)

// fakeStore is an in-memory store.Store used by the service tests. It
// mirrors the Postgres implementation's owner scoping: conversation lookups
// match both id and user id and report store.ErrNotFound otherwise.
type fakeStore struct {
	users         map[string]*models.User
	conversations map[uuid.UUID]*models.Conversation

	createConversationCalls int
	createConversationErr   error
	appendTurnErr           error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[string]*models.User),
		conversations: make(map[uuid.UUID]*models.Conversation),
	}
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	f.users[user.Email] = user
	return nil
}

// CreateConversation mirrors the Postgres implementation: the record and its
// first turn are inserted together, so a failure persists nothing.
func (f *fakeStore) CreateConversation(_ context.Context, arg store.CreateConversationParams) (*models.Conversation, error) {
	f.createConversationCalls++
	if f.createConversationErr != nil {
		return nil, f.createConversationErr
	}
	raw, err := json.Marshal([]models.Message{arg.UserMessage, arg.AssistantMessage})
	if err != nil {
		return nil, err
	}
	conv := &models.Conversation{
		ID:        arg.ID,
		UserID:    arg.UserID,
		Title:     arg.Title,
		Messages:  raw,
		CreatedAt: time.Now(),
	}
	f.conversations[arg.ID] = conv
	return conv, nil
}

func (f *fakeStore) AppendTurn(_ context.Context, id, userID uuid.UUID, userMsg, assistantMsg models.Message) (*models.Conversation, error) {
	if f.appendTurnErr != nil {
		return nil, f.appendTurnErr
	}
	conv, ok := f.conversations[id]
	if !ok || conv.UserID != userID {
		return nil, store.ErrNotFound
	}

	var messages []models.Message
	if err := json.Unmarshal(conv.Messages, &messages); err != nil {
		return nil, err
	}
	messages = append(messages, userMsg, assistantMsg)
	raw, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}
	conv.Messages = raw
	return conv, nil
}

func (f *fakeStore) GetConversation(_ context.Context, id, userID uuid.UUID) (*models.Conversation, error) {
	conv, ok := f.conversations[id]
	if !ok || conv.UserID != userID {
		return nil, store.ErrNotFound
	}
	return conv, nil
}

func (f *fakeStore) ListConversations(_ context.Context, userID uuid.UUID) ([]models.ConversationSummary, error) {
	var items []models.ConversationSummary
	for _, conv := range f.conversations {
		if conv.UserID != userID {
			continue
		}
		items = append(items, models.ConversationSummary{
			ID:        conv.ID,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (f *fakeStore) DeleteConversation(_ context.Context, id, userID uuid.UUID) error {
	conv, ok := f.conversations[id]
	if !ok || conv.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.conversations, id)
	return nil
}

// seedConversation inserts a conversation with the given messages directly,
// bypassing the service under test.
func (f *fakeStore) seedConversation(userID uuid.UUID, title string, createdAt time.Time, messages ...models.Message) *models.Conversation {
	if messages == nil {
		messages = []models.Message{}
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		panic(err)
	}
	conv := &models.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Messages:  raw,
		CreatedAt: createdAt,
	}
	f.conversations[conv.ID] = conv
	return conv
}

// messageCount reports how many messages a stored conversation holds.
func (f *fakeStore) messageCount(id uuid.UUID) int {
	conv, ok := f.conversations[id]
	if !ok {
		return -1
	}
	var messages []models.Message
	if err := json.Unmarshal(conv.Messages, &messages); err != nil {
		panic(err)
	}
	return len(messages)
}

var _ store.Store = (*fakeStore)(nil)

// fakeCompleter is a canned Completer implementation.
type fakeCompleter struct {
	answer string
	err    error

	calls        int
	lastQuestion string
	lastContext  string
}

func (f *fakeCompleter) Generate(_ context.Context, question, docContext string) (string, error) {
	f.calls++
	f.lastQuestion = question
	f.lastContext = docContext
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}
