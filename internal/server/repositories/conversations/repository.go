package conversations

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the persistence port for the conversation log. Lookups are
// ownership-scoped; messages are append-only and ordered by creation time
// ascending.
type Repository interface {
	CreateConversation(ctx context.Context, userID string) (*models.Conversation, error)
	GetConversation(ctx context.Context, id, userID string) (*models.Conversation, error)
	ListMessages(ctx context.Context, conversationID, userID string) ([]*models.Message, error)
	AppendMessage(ctx context.Context, msg *models.Message) (*models.Message, error)
}
