package models

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation groups ordered messages for one user.
type Conversation struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one chat turn inside a conversation. Messages are append-only:
// they are never mutated or deleted. ToolCalls optionally holds a serialized
// record of the tool invocations the assistant performed for this turn.
type Message struct {
	ID             string
	ConversationID string
	UserID         string
	Role           string
	Content        string
	ToolCalls      string
	CreatedAt      time.Time
}
