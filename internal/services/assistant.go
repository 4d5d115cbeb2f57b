package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/servicehub/marketplace-api/internal/constants"
)

// AssistantService turns free text into a task draft using OpenAI GPT.
// Optional: the server runs without it when no API key is configured.
type AssistantService struct {
	client *openai.Client
}

// TaskDraft is a suggested task posting produced from free text.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func NewAssistantService(apiKey string) *AssistantService {
	return &AssistantService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTaskDraft asks the model for a title, description and category
// matching the given project text.
func (s *AssistantService) SuggestTaskDraft(ctx context.Context, text string) (*TaskDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You help users of a freelance task board write postings.
Given the project description below, answer with a JSON object with keys
"title", "description" and "category". The category must be exactly one of:
%s

Project description:
%s`, strings.Join(constants.Categories, ", "), text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}

	var draft TaskDraft
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}

	if strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("model returned an empty title")
	}
	if !constants.IsValidCategory(draft.Category) {
		draft.Category = ""
	}

	return &draft, nil
}
