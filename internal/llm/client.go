package llm

import (
	"context"
	"log/slog"

	"github.com/benjipeng/promptrun/internal/errors"
)

// Completer is the single-call contract every provider client satisfies
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client provides a multi-provider LLM interface bound to one model.
// Provider selection comes from the parsed model identifier.
type Client struct {
	id           ModelID
	geminiClient *GeminiClient
	openaiClient *OpenAIClient
	logger       *slog.Logger
}

// NewClient creates a provider client for the given model identifier.
// apiKey must already be resolved for the identifier's provider; an
// empty key is an authentication failure, not a fallback.
func NewClient(ctx context.Context, id ModelID, apiKey string) (*Client, error) {
	logger := slog.Default().With("component", "llm", "provider", string(id.Provider), "model", id.Name)

	c := &Client{id: id, logger: logger}

	switch id.Provider {
	case ProviderGoogle:
		gc, err := NewGeminiClient(ctx, apiKey, id.Name)
		if err != nil {
			return nil, err
		}
		c.geminiClient = gc
	case ProviderOpenAI:
		oc, err := NewOpenAIClient(apiKey, id.Name)
		if err != nil {
			return nil, err
		}
		c.openaiClient = oc
	default:
		return nil, errors.ModelErrorf("no client for provider %q", id.Provider)
	}

	logger.Debug("llm client initialized")
	return c, nil
}

// ModelID returns the parsed identifier this client is bound to
func (c *Client) ModelID() ModelID {
	return c.id
}

// Complete sends one prompt to the bound provider and returns the response
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	switch c.id.Provider {
	case ProviderGoogle:
		return c.geminiClient.Complete(ctx, systemPrompt, userPrompt)
	case ProviderOpenAI:
		return c.openaiClient.Complete(ctx, systemPrompt, userPrompt)
	default:
		return "", errors.ModelErrorf("no client for provider %q", c.id.Provider)
	}
}

// Close releases provider resources
func (c *Client) Close() error {
	if c.geminiClient != nil {
		return c.geminiClient.Close()
	}
	return nil
}
