package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/agent"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// newChatService wires a ChatService over fakes, with the rule-based
// classifier so intent mapping is deterministic.
func newChatService(t *testing.T, rm *fakeRepoManager) *ChatService {
	t.Helper()
	db, mock := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })

	// Each AppendMessage runs in its own transaction: one for the user
	// message, one for the assistant reply.
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	a := agent.New(NewTaskService(db, rm), agent.NewRuleClassifier(), nil, logger)
	return NewChatService(NewConversationService(db, rm), a)
}

func TestChat_NewConversation(t *testing.T) {
	repo := &fakeConversationsRepo{}
	rm := &fakeRepoManager{c: repo, t: &fakeTasksRepo{}}
	s := newChatService(t, rm)

	res, err := s.Chat(context.Background(), "u1", "", "add a task to buy milk")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", res.ConversationID)
	assert.Contains(t, res.Response, "buy milk")
	require.Len(t, res.ToolCalls, 1)
	assert.Equal(t, "add_task", res.ToolCalls[0].Tool)

	// User message and assistant reply were both logged; the assistant
	// message carries the tool-call trace.
	require.Len(t, repo.appended, 2)
	assert.Equal(t, models.RoleUser, repo.appended[0].Role)
	assert.Equal(t, models.RoleAssistant, repo.appended[1].Role)
	assert.Contains(t, repo.appended[1].ToolCalls, "add_task")
}

func TestChat_ExistingConversation(t *testing.T) {
	repo := &fakeConversationsRepo{
		getOut: &models.Conversation{ID: "conv-9", UserID: "u1"},
		listOut: []*models.Message{
			{Role: models.RoleUser, Content: "earlier message"},
		},
	}
	rm := &fakeRepoManager{c: repo, t: &fakeTasksRepo{}}
	s := newChatService(t, rm)

	res, err := s.Chat(context.Background(), "u1", "conv-9", "show my tasks")
	require.NoError(t, err)
	assert.Equal(t, "conv-9", res.ConversationID)
	assert.NotEmpty(t, res.Response)
}

func TestChat_ForeignConversation(t *testing.T) {
	// The repository scopes lookups by owner, so a foreign id behaves like
	// a missing one.
	rm := &fakeRepoManager{c: &fakeConversationsRepo{}, t: &fakeTasksRepo{}}
	s := newChatService(t, rm)

	_, err := s.Chat(context.Background(), "u1", "someone-elses-conv", "hello")
	assert.ErrorIs(t, err, common.ErrConversationNotFound)
}

func TestChat_PlainReplyHasNoToolCalls(t *testing.T) {
	repo := &fakeConversationsRepo{}
	rm := &fakeRepoManager{c: repo, t: &fakeTasksRepo{}}
	s := newChatService(t, rm)

	res, err := s.Chat(context.Background(), "u1", "", "how is the weather?")
	require.NoError(t, err)
	assert.Empty(t, res.ToolCalls)
	require.Len(t, repo.appended, 2)
	assert.Empty(t, repo.appended[1].ToolCalls)
}
