package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

const geminiSystemPrompt = `You are a helpful assistant for task management.
Interpret the user's intent and respond with a JSON object naming the tool
to call and its parameters, for example:
{"tool": "add_task", "params": {"title": "Buy groceries", "description": "Milk and eggs"}}

Available tools:
- add_task: create a new task (params: title, description)
- list_tasks: list tasks (params: status = "all" | "pending" | "completed")
- complete_task: toggle a task's completion (params: task_id)
- update_task: change a task's title or description (params: task_id, title, description)
- delete_task: delete a task (params: task_id)

If the message needs no tool, reply with plain text instead.`

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// GeminiClassifier asks the Gemini generateContent API to map a message to
// a tool call. The model sees the prior conversation turns plus an
// instruction to answer with a JSON tool invocation; plain-text answers are
// passed through as direct replies.
type GeminiClassifier struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewGeminiClassifier builds a classifier for the given API endpoint, model
// name and key.
func NewGeminiClassifier(endpoint, model, apiKey string) *GeminiClassifier {
	return &GeminiClassifier{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClassifier) Classify(ctx context.Context, message string, history []*models.Message) (*Classification, error) {
	text, err := c.generate(ctx, message, history)
	if err != nil {
		return nil, err
	}

	raw := jsonObjectRe.FindString(text)
	if raw == "" {
		return &Classification{Reply: text}, nil
	}

	var payload struct {
		Tool   string         `json:"tool"`
		Params map[string]any `json:"params"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Tool == "" {
		return &Classification{Reply: text}, nil
	}

	call, err := decodeToolCall(payload.Tool, payload.Params)
	if err != nil {
		// The model named a tool but the parameters did not validate;
		// surface its text rather than guessing.
		return &Classification{Reply: text}, nil
	}

	return &Classification{Call: call}, nil
}

func (c *GeminiClassifier) generate(ctx context.Context, message string, history []*models.Message) (string, error) {
	req := geminiRequest{}
	req.GenerationConfig.Temperature = 0.3
	req.GenerationConfig.MaxOutputTokens = 300

	for _, msg := range history {
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: msg.Content}}})
	}
	req.Contents = append(req.Contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: geminiSystemPrompt + "\n\nUser message: " + message}},
	})

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api status %d", resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini api returned no candidates")
	}

	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}
