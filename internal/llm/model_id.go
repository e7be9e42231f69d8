package llm

import (
	"strings"

	"github.com/benjipeng/promptrun/internal/errors"
)

// Provider represents the LLM provider
type Provider string

const (
	// ProviderGoogle is the Google Generative Language API ("google-gla")
	ProviderGoogle Provider = "google-gla"
	// ProviderOpenAI is the OpenAI chat completions API
	ProviderOpenAI Provider = "openai"
)

// ModelID is a parsed provider-qualified model identifier,
// e.g. "google-gla:gemini-1.5-flash" or "openai:gpt-4o-mini".
type ModelID struct {
	Provider Provider
	Name     string
}

// String returns the canonical provider-qualified form
func (m ModelID) String() string {
	return string(m.Provider) + ":" + m.Name
}

// providerAliases maps accepted provider spellings to canonical providers
var providerAliases = map[string]Provider{
	"google-gla": ProviderGoogle,
	"google":     ProviderGoogle,
	"gemini":     ProviderGoogle,
	"openai":     ProviderOpenAI,
}

// ParseModelID parses a "provider:model-name" identifier.
// A bare model name is accepted when the provider can be inferred from
// the model family prefix (gemini-* -> google-gla, gpt-*/o1-* -> openai).
func ParseModelID(s string) (ModelID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModelID{}, errors.ModelError("model identifier is empty")
	}

	if prov, name, ok := strings.Cut(s, ":"); ok {
		p, known := providerAliases[strings.ToLower(strings.TrimSpace(prov))]
		if !known {
			return ModelID{}, errors.ModelErrorf("unknown provider %q in model identifier %q", prov, s).
				WithContext("model_id", s)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return ModelID{}, errors.ModelErrorf("model identifier %q has no model name", s)
		}
		return ModelID{Provider: p, Name: name}, nil
	}

	// Bare model name: infer provider from the model family
	if p, ok := inferProvider(s); ok {
		return ModelID{Provider: p, Name: s}, nil
	}

	return ModelID{}, errors.ModelErrorf("cannot infer provider for model %q, use provider:model form (e.g. google-gla:%s)", s, s)
}

// inferProvider guesses the provider from well-known model name prefixes
func inferProvider(name string) (Provider, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "gemini-"):
		return ProviderGoogle, true
	case strings.HasPrefix(lower, "gpt-"), strings.HasPrefix(lower, "o1-"), strings.HasPrefix(lower, "o3-"):
		return ProviderOpenAI, true
	}
	return "", false
}
