package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// ConversationService owns the append-only conversation log. Lookups are
// scoped to the owning user; a foreign or absent conversation is reported
// as common.ErrConversationNotFound.
type ConversationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewConversationService constructs a ConversationService over the given
// repositories.
func NewConversationService(db *sql.DB, m repomanager.RepositoryManager) *ConversationService {
	return &ConversationService{db: db, repomanager: m}
}

// CreateConversation starts an empty conversation for the user.
func (s *ConversationService) CreateConversation(ctx context.Context, userID string) (*models.Conversation, error) {
	conv, err := s.repomanager.Conversations(s.db).CreateConversation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}
	return conv, nil
}

// GetConversation returns the user's conversation or
// common.ErrConversationNotFound.
func (s *ConversationService) GetConversation(ctx context.Context, id, userID string) (*models.Conversation, error) {
	conv, err := s.repomanager.Conversations(s.db).GetConversation(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error fetching conversation: %w", err)
	}
	return conv, nil
}

// History returns the conversation's messages ordered oldest-first.
func (s *ConversationService) History(ctx context.Context, conversationID, userID string) ([]*models.Message, error) {
	msgs, err := s.repomanager.Conversations(s.db).ListMessages(ctx, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return msgs, nil
}

// AppendMessage records one chat turn. The message insert and the
// conversation timestamp bump run in a single transaction.
func (s *ConversationService) AppendMessage(ctx context.Context, conversationID, userID, role, content, toolCalls string) (*models.Message, error) {
	var msg *models.Message
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		msg, err = s.repomanager.Conversations(tx).AppendMessage(ctx, &models.Message{
			ConversationID: conversationID,
			UserID:         userID,
			Role:           role,
			Content:        content,
			ToolCalls:      toolCalls,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error appending message: %w", err)
	}
	return msg, nil
}
