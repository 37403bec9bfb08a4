package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
)

type AIService struct {
	client *openai.Client
	model  string
}

// GeneratedTask is a task suggested by the model.
type GeneratedTask struct {
	TaskName    string `json:"taskName"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// NewAIService returns nil when no API key is configured.
func NewAIService(cfg config.AIConfig) *AIService {
	if cfg.OpenAIAPIKey == "" {
		return nil
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &AIService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// GenerateTasksForProject asks the model to break text down into tasks for
// the given project.
func (s *AIService) GenerateTasksForProject(ctx context.Context, project *models.Project, text string) ([]GeneratedTask, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	today := time.Now().Format(constants.DeadlineLayout)
	prompt := fmt.Sprintf(`You are a project planning assistant. Break the request below into concrete tasks for the project.

Today: %s
Project: %s
Project deadline: %s
Project description:
%s

Request:
%s

Reply with a JSON array of tasks in this shape:
[
  {
    "taskName": "short task title",
    "description": "what needs to be done",
    "deadline": "YYYY-MM-DD, no later than the project deadline, or empty if unknown"
  }
]

Rules:
- Return [] when the request contains no tasks
- Turn relative dates ("tomorrow", "next week") into calendar dates
- Return only JSON, no commentary`,
		today,
		project.Name,
		project.Deadline.Format(constants.DeadlineLayout),
		project.Description,
		text,
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	return tasks, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
