// Package conversations provides the PostgreSQL-backed repository for the
// append-only conversation log.
package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements conversation storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateConversation starts a new conversation for the user.
func (r *PostgresRepository) CreateConversation(ctx context.Context, userID string) (*models.Conversation, error) {
	query := `
		INSERT INTO conversations (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	now := time.Now().UTC()
	conv := &models.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.db.ExecContext(ctx, query, conv.ID, conv.UserID, conv.CreatedAt, conv.UpdatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return conv, nil
}

// GetConversation returns the conversation only when it belongs to userID;
// absence and foreign ownership both yield common.ErrNotFound.
func (r *PostgresRepository) GetConversation(ctx context.Context, id, userID string) (*models.Conversation, error) {
	query := `
		SELECT id, user_id, created_at, updated_at FROM conversations
		WHERE id = $1 AND user_id = $2
	`

	conv := &models.Conversation{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&conv.ID, &conv.UserID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return conv, nil
}

// ListMessages returns the conversation's messages ordered by creation time
// ascending, scoped to the owning user.
func (r *PostgresRepository) ListMessages(ctx context.Context, conversationID, userID string) ([]*models.Message, error) {
	query := `
		SELECT id, conversation_id, user_id, role, content, tool_calls, created_at FROM messages
		WHERE conversation_id = $1 AND user_id = $2
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		var item models.Message
		if err := rows.Scan(
			&item.ID, &item.ConversationID, &item.UserID, &item.Role, &item.Content,
			&item.ToolCalls, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AppendMessage stores one chat turn and bumps the conversation's
// updated_at. Messages are never mutated or deleted afterwards.
func (r *PostgresRepository) AppendMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	query := `
		INSERT INTO messages (id, conversation_id, user_id, role, content, tool_calls, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()

	if _, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.ConversationID, msg.UserID, msg.Role, msg.Content, msg.ToolCalls, msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	touch := `UPDATE conversations SET updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, touch, msg.ConversationID, msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}
