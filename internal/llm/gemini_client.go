package llm

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	"github.com/benjipeng/promptrun/internal/errors"
)

// GeminiClient wraps Google's Generative AI SDK
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiClient creates a new Gemini API client
// apiKey: Google AI API key (from environment or config)
// model: Model name (e.g., "gemini-1.5-flash", "gemini-2.0-flash")
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.AuthError("gemini api key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityCritical, "failed to create gemini client")
	}

	logger := slog.Default().With("component", "gemini", "model", model)

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Complete sends a prompt to Gemini and returns the text response.
// The system prompt is passed as a system instruction when non-empty.
func (c *GeminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var systemInstruction *genai.Content
	if systemPrompt != "" {
		systemInstruction = genai.Text(systemPrompt)[0]
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), genConfig)
	if err != nil {
		return "", classifyProviderError(err, "gemini completion failed")
	}

	if len(resp.Candidates) == 0 {
		return "", errors.InternalError("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.InternalError("gemini returned no content parts")
	}

	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", errors.InternalError("gemini returned an empty response")
	}

	c.logger.Debug("gemini completion",
		"prompt_length", len(userPrompt),
		"response_length", len(text),
	)

	return text, nil
}

// Model returns the model name this client is bound to
func (c *GeminiClient) Model() string {
	return c.model
}

// Close releases resources held by the Gemini client
func (c *GeminiClient) Close() error {
	// Gemini client doesn't require explicit cleanup in current SDK version
	return nil
}
