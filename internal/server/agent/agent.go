// Package agent turns free-form chat messages into task operations. A
// classifier (rule-based or LLM-backed) maps the message to a tool call,
// the agent executes the call against the task service and phrases the
// outcome as a reply. Every executed call is reported as a Record so the
// caller can persist a structured trace alongside the reply.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Tasks is the slice of the task service the agent needs.
type Tasks interface {
	Create(ctx context.Context, ownerID, title, description string) (*models.Task, error)
	List(ctx context.Context, ownerID string, limit, offset int) ([]*models.Task, int, error)
	Update(ctx context.Context, ownerID, taskID string, title, description *string) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	ToggleComplete(ctx context.Context, ownerID, taskID string) (*models.Task, error)
}

// Record describes one executed tool call.
type Record struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Result     string         `json:"result"`
}

// Agent classifies a message and executes the resulting tool call.
// When the primary classifier fails (a remote model being down, for
// example) the fallback takes over, so the chat endpoint keeps working
// offline.
type Agent struct {
	tasks      Tasks
	classifier Classifier
	fallback   Classifier
	logger     logging.Logger
}

func New(tasks Tasks, classifier Classifier, fallback Classifier, logger logging.Logger) *Agent {
	return &Agent{tasks: tasks, classifier: classifier, fallback: fallback, logger: logger}
}

// Process handles one user message and returns the reply plus the tool
// calls that were executed. Task-level validation errors become polite
// replies rather than errors; only infrastructure failures propagate.
func (a *Agent) Process(ctx context.Context, ownerID, message string, history []*models.Message) (string, []Record, error) {
	classification, err := a.classifier.Classify(ctx, message, history)
	if err != nil && a.fallback != nil {
		a.logger.Warn(ctx, "classifier failed, using fallback", "error", err)
		classification, err = a.fallback.Classify(ctx, message, history)
	}
	if err != nil {
		return "", nil, err
	}

	if classification.Call == nil {
		return classification.Reply, nil, nil
	}

	a.logger.Debug(ctx, "dispatching tool call", "tool", classification.Call.Tool())
	return a.execute(ctx, ownerID, classification.Call)
}

func (a *Agent) execute(ctx context.Context, ownerID string, call ToolCall) (string, []Record, error) {
	switch c := call.(type) {
	case AddTask:
		return a.addTask(ctx, ownerID, c)
	case ListTasks:
		return a.listTasks(ctx, ownerID, c)
	case CompleteTask:
		return a.completeTask(ctx, ownerID, c)
	case UpdateTask:
		return a.updateTask(ctx, ownerID, c)
	case DeleteTask:
		return a.deleteTask(ctx, ownerID, c)
	default:
		return "", nil, fmt.Errorf("unknown tool call %q", call.Tool())
	}
}

func (a *Agent) addTask(ctx context.Context, ownerID string, c AddTask) (string, []Record, error) {
	params := map[string]any{"title": c.Title}
	if c.Description != "" {
		params["description"] = c.Description
	}

	task, err := a.tasks.Create(ctx, ownerID, c.Title, c.Description)
	if err != nil {
		if reply, ok := taskErrorReply(err); ok {
			return reply, []Record{{Tool: c.Tool(), Parameters: params, Result: "error: " + err.Error()}}, nil
		}
		return "", nil, err
	}

	rec := Record{Tool: c.Tool(), Parameters: params, Result: "created task " + task.ID}
	return fmt.Sprintf("I've added %q to your tasks.", task.Title), []Record{rec}, nil
}

func (a *Agent) listTasks(ctx context.Context, ownerID string, c ListTasks) (string, []Record, error) {
	// Chat replies are not paginated; show the first full page.
	tasks, total, err := a.tasks.List(ctx, ownerID, 100, 0)
	if err != nil {
		return "", nil, err
	}

	filtered := tasks[:0:0]
	for _, t := range tasks {
		switch c.Status {
		case StatusPending:
			if !t.Completed {
				filtered = append(filtered, t)
			}
		case StatusCompleted:
			if t.Completed {
				filtered = append(filtered, t)
			}
		default:
			filtered = append(filtered, t)
		}
	}

	rec := Record{
		Tool:       c.Tool(),
		Parameters: map[string]any{"status": c.Status},
		Result:     fmt.Sprintf("%d of %d tasks", len(filtered), total),
	}

	if len(filtered) == 0 {
		return emptyListReply(c.Status), []Record{rec}, nil
	}

	var b strings.Builder
	b.WriteString(listHeader(c.Status, len(filtered)))
	for _, t := range filtered {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "\n%s %s", mark, t.Title)
	}
	return b.String(), []Record{rec}, nil
}

func (a *Agent) completeTask(ctx context.Context, ownerID string, c CompleteTask) (string, []Record, error) {
	params := map[string]any{"task_id": c.TaskID}

	task, err := a.tasks.ToggleComplete(ctx, ownerID, c.TaskID)
	if err != nil {
		if reply, ok := taskErrorReply(err); ok {
			return reply, []Record{{Tool: c.Tool(), Parameters: params, Result: "error: " + err.Error()}}, nil
		}
		return "", nil, err
	}

	rec := Record{Tool: c.Tool(), Parameters: params, Result: fmt.Sprintf("completed=%t", task.Completed)}
	if task.Completed {
		return fmt.Sprintf("Nice work! %q is done.", task.Title), []Record{rec}, nil
	}
	return fmt.Sprintf("I've reopened %q.", task.Title), []Record{rec}, nil
}

func (a *Agent) updateTask(ctx context.Context, ownerID string, c UpdateTask) (string, []Record, error) {
	params := map[string]any{"task_id": c.TaskID}
	if c.Title != nil {
		params["title"] = *c.Title
	}
	if c.Description != nil {
		params["description"] = *c.Description
	}

	task, err := a.tasks.Update(ctx, ownerID, c.TaskID, c.Title, c.Description)
	if err != nil {
		if reply, ok := taskErrorReply(err); ok {
			return reply, []Record{{Tool: c.Tool(), Parameters: params, Result: "error: " + err.Error()}}, nil
		}
		return "", nil, err
	}

	rec := Record{Tool: c.Tool(), Parameters: params, Result: "updated task " + task.ID}
	return fmt.Sprintf("I've updated %q.", task.Title), []Record{rec}, nil
}

func (a *Agent) deleteTask(ctx context.Context, ownerID string, c DeleteTask) (string, []Record, error) {
	params := map[string]any{"task_id": c.TaskID}

	if err := a.tasks.Delete(ctx, ownerID, c.TaskID); err != nil {
		if reply, ok := taskErrorReply(err); ok {
			return reply, []Record{{Tool: c.Tool(), Parameters: params, Result: "error: " + err.Error()}}, nil
		}
		return "", nil, err
	}

	rec := Record{Tool: c.Tool(), Parameters: params, Result: "deleted"}
	return "Done, the task has been deleted.", []Record{rec}, nil
}

// taskErrorReply maps expected task-service errors to user-facing replies.
func taskErrorReply(err error) (string, bool) {
	switch {
	case errors.Is(err, common.ErrTaskNotFound):
		return "I couldn't find that task. Could you check the ID?", true
	case errors.Is(err, common.ErrInvalidTitle):
		return "A task needs a title of at most 200 characters. Could you rephrase?", true
	case errors.Is(err, common.ErrInvalidDescription):
		return "That description is too long, descriptions are limited to 1000 characters.", true
	case errors.Is(err, common.ErrTaskLimitReached):
		return "You've reached the limit of 1000 tasks. Delete some before adding more.", true
	default:
		return "", false
	}
}

func emptyListReply(status string) string {
	switch status {
	case StatusPending:
		return "You have no pending tasks. Enjoy the free time!"
	case StatusCompleted:
		return "You haven't completed any tasks yet."
	default:
		return "Your task list is empty."
	}
}

func listHeader(status string, n int) string {
	switch status {
	case StatusPending:
		return fmt.Sprintf("You have %d pending task(s):", n)
	case StatusCompleted:
		return fmt.Sprintf("You have %d completed task(s):", n)
	default:
		return fmt.Sprintf("You have %d task(s):", n)
	}
}
