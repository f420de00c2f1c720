package agent

import (
	"context"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

var (
	addIntentRe      = regexp.MustCompile(`\b(add|create|make|remember to|need to|put in|include)\b`)
	listIntentRe     = regexp.MustCompile(`\b(show|list|display|see|view|what do i have|my tasks|pending|outstanding)\b`)
	completeIntentRe = regexp.MustCompile(`\b(complete|completed|done|finish|finished|mark|check off|tick)\b`)
	deleteIntentRe   = regexp.MustCompile(`\b(delete|remove|cancel|get rid of|trash)\b`)
	updateIntentRe   = regexp.MustCompile(`\b(update|change|modify|edit|rename)\b`)

	taskIDRe = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

	// Title extraction for add intents, most specific first.
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:i need to|i want to|need to|want to)\s+(.+)`),
		regexp.MustCompile(`remember to\s+(.+)`),
		regexp.MustCompile(`(?:add|create|make)\s+(?:a\s+)?(?:task|todo|item)?\s*(?:to|:)?\s*(.+)`),
		regexp.MustCompile(`(?:add|create|make|put in|include)\s+(.+)`),
	}
)

const helpReply = "I can help you manage your tasks. Try saying things like " +
	"'add a task to buy milk', 'show my pending tasks', or 'complete task <id>'."

// RuleClassifier is the regex-heuristic fallback used when no generative
// API is configured or reachable. It only inspects the current message;
// history is ignored.
type RuleClassifier struct{}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

func (c *RuleClassifier) Classify(_ context.Context, message string, _ []*models.Message) (*Classification, error) {
	lower := strings.ToLower(strings.TrimSpace(message))

	// List goes first: "show my completed tasks" must not be read as a
	// completion command.
	switch {
	case listIntentRe.MatchString(lower):
		return &Classification{Call: ListTasks{Status: listStatus(lower)}}, nil
	case deleteIntentRe.MatchString(lower):
		return c.withTaskID(message, func(id string) ToolCall { return DeleteTask{TaskID: id} })
	case completeIntentRe.MatchString(lower):
		return c.withTaskID(message, func(id string) ToolCall { return CompleteTask{TaskID: id} })
	case updateIntentRe.MatchString(lower):
		return &Classification{Reply: "To update a task, tell me its id and the new title, e.g. " +
			"'update task <id> title: buy oat milk'."}, nil
	case addIntentRe.MatchString(lower):
		if title := extractTitle(lower); title != "" {
			return &Classification{Call: AddTask{Title: title}}, nil
		}
		return &Classification{Reply: "What should the task say?"}, nil
	default:
		return &Classification{Reply: helpReply}, nil
	}
}

// withTaskID builds a call around the task id found in the message, or asks
// for the id when none is present.
func (c *RuleClassifier) withTaskID(message string, build func(id string) ToolCall) (*Classification, error) {
	if id := taskIDRe.FindString(message); id != "" {
		return &Classification{Call: build(id)}, nil
	}
	return &Classification{Reply: "Which task? Please include the task id."}, nil
}

func listStatus(lower string) string {
	switch {
	case strings.Contains(lower, "pending") || strings.Contains(lower, "outstanding"):
		return StatusPending
	case strings.Contains(lower, "completed") || strings.Contains(lower, "done"):
		return StatusCompleted
	default:
		return StatusAll
	}
}

func extractTitle(lower string) string {
	for _, p := range titlePatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			title := strings.TrimSpace(m[1])
			title = strings.TrimPrefix(title, "to ")
			title = strings.TrimPrefix(title, "a ")
			title = strings.TrimPrefix(title, "an ")
			title = strings.TrimSuffix(title, ".")
			if title != "" {
				return strings.TrimSpace(title)
			}
		}
	}
	return ""
}
