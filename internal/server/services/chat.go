package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/server/agent"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// ChatResult is the outcome of one chat turn: the conversation it belongs
// to, the assistant's reply and the tool calls executed to produce it.
type ChatResult struct {
	ConversationID string         `json:"conversation_id"`
	Response       string         `json:"response"`
	ToolCalls      []agent.Record `json:"tool_calls,omitempty"`
}

// ChatService runs chat turns: it keeps the conversation log and delegates
// the interpretation of the message to the agent.
type ChatService struct {
	conversations *ConversationService
	agent         *agent.Agent
}

func NewChatService(conversations *ConversationService, a *agent.Agent) *ChatService {
	return &ChatService{conversations: conversations, agent: a}
}

// Chat appends the user message to the conversation, lets the agent handle
// it and appends the assistant reply. An empty conversationID starts a new
// conversation; a conversation id belonging to another user is reported as
// common.ErrConversationNotFound.
func (s *ChatService) Chat(ctx context.Context, userID, conversationID, message string) (*ChatResult, error) {
	var history []*models.Message

	if conversationID == "" {
		conv, err := s.conversations.CreateConversation(ctx, userID)
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
	} else {
		if _, err := s.conversations.GetConversation(ctx, conversationID, userID); err != nil {
			return nil, err
		}
		var err error
		history, err = s.conversations.History(ctx, conversationID, userID)
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.conversations.AppendMessage(ctx, conversationID, userID, models.RoleUser, message, ""); err != nil {
		return nil, err
	}

	response, records, err := s.agent.Process(ctx, userID, message, history)
	if err != nil {
		return nil, fmt.Errorf("error processing message: %w", err)
	}

	var toolCalls string
	if len(records) > 0 {
		encoded, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("error encoding tool calls: %w", err)
		}
		toolCalls = string(encoded)
	}

	if _, err := s.conversations.AppendMessage(ctx, conversationID, userID, models.RoleAssistant, response, toolCalls); err != nil {
		return nil, err
	}

	return &ChatResult{ConversationID: conversationID, Response: response, ToolCalls: records}, nil
}
