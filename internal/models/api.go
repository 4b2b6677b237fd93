package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// SignupRequest defines the expected body for the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChatRequest defines the body for the chat endpoint. Context carries the
// extracted document text and is resupplied by the client on every turn; it
// is never persisted server-side. ChatID is nil for the first turn of a new
// conversation.
type ChatRequest struct {
	Question string     `json:"question"`
	Context  string     `json:"context,omitempty"`
	ChatID   *uuid.UUID `json:"chatId,omitempty"`
}

// --- Response Structs ---

// UserResponse defines the user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadResponse defines the body returned after a successful PDF upload.
// The extracted text is handed back to the client, which resupplies it as
// the context of each chat turn.
type UploadResponse struct {
	Message     string `json:"message"`
	TextContent string `json:"textContent"`
}

// ConversationResponse is the full representation of a conversation,
// including its ordered message sequence.
type ConversationResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationSummaryResponse is one entry of the history listing.
type ConversationSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageResponse is a generic {message} acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}
