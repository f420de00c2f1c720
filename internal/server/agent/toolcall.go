package agent

import (
	"fmt"
	"strings"
)

// Task list filters accepted by ListTasks.
const (
	StatusAll       = "all"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// ToolCall is the tagged union of operations the agent can perform.
// Classifier output is validated into one of the concrete types below
// before dispatch; unknown tools and malformed parameters never reach the
// task service.
type ToolCall interface {
	Tool() string
}

type AddTask struct {
	Title       string
	Description string
}

func (AddTask) Tool() string { return "add_task" }

type ListTasks struct {
	Status string
}

func (ListTasks) Tool() string { return "list_tasks" }

type CompleteTask struct {
	TaskID string
}

func (CompleteTask) Tool() string { return "complete_task" }

type UpdateTask struct {
	TaskID      string
	Title       *string
	Description *string
}

func (UpdateTask) Tool() string { return "update_task" }

type DeleteTask struct {
	TaskID string
}

func (DeleteTask) Tool() string { return "delete_task" }

func stringParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func optionalStringParam(params map[string]any, key string) *string {
	if v, ok := params[key].(string); ok {
		return &v
	}
	return nil
}

// decodeToolCall validates a raw {"tool": ..., "params": ...} payload into
// a typed ToolCall. It is the boundary between untrusted classifier output
// and the task service.
func decodeToolCall(name string, params map[string]any) (ToolCall, error) {
	switch name {
	case "add_task":
		title := strings.TrimSpace(stringParam(params, "title"))
		if title == "" {
			return nil, fmt.Errorf("add_task: missing title")
		}
		return AddTask{Title: title, Description: stringParam(params, "description")}, nil
	case "list_tasks":
		status := stringParam(params, "status")
		switch status {
		case "", StatusAll:
			status = StatusAll
		case StatusPending, StatusCompleted:
		default:
			return nil, fmt.Errorf("list_tasks: unknown status %q", status)
		}
		return ListTasks{Status: status}, nil
	case "complete_task":
		id := stringParam(params, "task_id")
		if id == "" {
			return nil, fmt.Errorf("complete_task: missing task_id")
		}
		return CompleteTask{TaskID: id}, nil
	case "update_task":
		id := stringParam(params, "task_id")
		if id == "" {
			return nil, fmt.Errorf("update_task: missing task_id")
		}
		title := optionalStringParam(params, "title")
		description := optionalStringParam(params, "description")
		if title == nil && description == nil {
			return nil, fmt.Errorf("update_task: nothing to update")
		}
		return UpdateTask{TaskID: id, Title: title, Description: description}, nil
	case "delete_task":
		id := stringParam(params, "task_id")
		if id == "" {
			return nil, fmt.Errorf("delete_task: missing task_id")
		}
		return DeleteTask{TaskID: id}, nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}
