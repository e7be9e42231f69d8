package llm

import (
	"context"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"github.com/benjipeng/promptrun/internal/errors"
)

// OpenAIClient wraps the OpenAI chat completions API
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIClient creates a new OpenAI API client
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.AuthError("openai api key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: slog.Default().With("component", "openai", "model", model),
	}, nil
}

// Complete sends a chat completion request and returns the response text.
// The system prompt becomes the system message when non-empty.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", classifyProviderError(err, "openai completion failed")
	}

	if len(resp.Choices) == 0 {
		return "", errors.InternalError("openai returned no choices")
	}

	response := resp.Choices[0].Message.Content
	if response == "" {
		return "", errors.InternalError("openai returned an empty response")
	}

	c.logger.Debug("openai completion",
		"model", c.model,
		"prompt_length", len(userPrompt),
		"response_length", len(response),
		"tokens_used", resp.Usage.TotalTokens,
	)

	return response, nil
}

// Model returns the model name this client is bound to
func (c *OpenAIClient) Model() string {
	return c.model
}
