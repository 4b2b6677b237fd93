package models

// Role identifies the author of a message. Conversations contain exactly
// two kinds of turns; there are no system or tool roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation. Messages have no identity of
// their own; they exist only inside a Conversation's ordered sequence and
// are never edited or removed individually.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
