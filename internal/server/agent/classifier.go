package agent

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Classification is the outcome of intent analysis: either a tool call to
// execute (Call non-nil) or a direct textual reply.
type Classification struct {
	Call  ToolCall
	Reply string
}

// Classifier turns a free-text message into a Classification. History
// carries the prior turns of the conversation, oldest first.
type Classifier interface {
	Classify(ctx context.Context, message string, history []*models.Message) (*Classification, error)
}
