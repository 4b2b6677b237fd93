package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a user in the database.
type User struct {
	ID             uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Conversation represents one persisted document-grounded dialogue.
// Messages holds the raw JSONB array exactly as stored; services unmarshal
// it into []Message when building API responses.
type Conversation struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"` // Owner. Set once at creation, never from client input.
	Title     string          `db:"title"`
	Messages  json.RawMessage `db:"messages"` // Stored as JSONB
	CreatedAt time.Time       `db:"created_at"`
}

// ConversationSummary is the projection returned by history listings.
// Message bodies are deliberately excluded.
type ConversationSummary struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}
