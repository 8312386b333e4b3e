package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// SuggestedTask is a draft task; clients create it through the regular task endpoint.
type SuggestedTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewAIService creates an AIService. baseURL overrides the OpenAI endpoint when set.
func NewAIService(apiKey, baseURL string) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// SuggestTasks analyzes text and extracts tasks using OpenAI GPT
func (s *AIService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You extract actionable tasks from text.

Text:
%s

Return a JSON array of the tasks you found:
[
  {
    "title": "short task title (at most 255 characters)",
    "description": "details of the task"
  }
]

Rules:
- Return [] when the text contains no tasks
- Return JSON only, without any explanation`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
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

	var tasks []SuggestedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return tasks, nil
}

// stripCodeFence removes a surrounding ```json fence some models add.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
