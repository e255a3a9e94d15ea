package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/tmihalic/workboard-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

type GeneratedTask struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateTasksFromText analyzes text and extracts task suggestions using OpenAI GPT
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete tasks from the text below.

Current time: %s

Text:
%s

Return the extracted tasks as a JSON array in the following shape:
[
  {
    "title": "short task title",
    "description": "detailed task description",
    "priority": "one of LOW, MEDIUM, HIGH, URGENT",
    "due_date": "deadline in ISO8601 format, e.g. 2025-10-28T23:59:59Z, or null if none is stated"
  }
]

Rules:
- Return an empty array [] if the text contains no tasks
- Convert relative deadlines ("tomorrow", "next week") into concrete timestamps
- due_date must be an ISO8601 string or null
- Return only the JSON, no surrounding prose`, currentTime, text)

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

	content := resp.Choices[0].Message.Content

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}
