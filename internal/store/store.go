package store

import (
	"context"
	"errors"

	db_models "pdfchat-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found. Conversation
// lookups are always owner-scoped, so a record owned by someone else yields
// the same error as a record that does not exist.
var ErrNotFound = errors.New("record not found")

// CreateConversationParams contains parameters for creating a conversation.
// The first turn is part of the creation: conversations are created lazily
// by the first question, and inserting the record and its opening
// user/assistant pair in one call means a failed insert persists nothing.
type CreateConversationParams struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Title            string
	UserMessage      db_models.Message
	AssistantMessage db_models.Message
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations
	GetUserByEmail(ctx context.Context, email string) (*db_models.User, error)
	CreateUser(ctx context.Context, user *db_models.User) error

	// Conversation operations. Every operation on an existing conversation
	// takes the caller's userID and matches it against the stored owner.
	CreateConversation(ctx context.Context, arg CreateConversationParams) (*db_models.Conversation, error)
	AppendTurn(ctx context.Context, id, userID uuid.UUID, userMsg, assistantMsg db_models.Message) (*db_models.Conversation, error)
	GetConversation(ctx context.Context, id, userID uuid.UUID) (*db_models.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]db_models.ConversationSummary, error)
	DeleteConversation(ctx context.Context, id, userID uuid.UUID) error
}
