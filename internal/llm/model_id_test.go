package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjipeng/promptrun/internal/errors"
)

func TestParseModelID_Qualified(t *testing.T) {
	tests := []struct {
		input    string
		provider Provider
		name     string
	}{
		{"google-gla:gemini-1.5-flash", ProviderGoogle, "gemini-1.5-flash"},
		{"google:gemini-2.0-flash", ProviderGoogle, "gemini-2.0-flash"},
		{"gemini:gemini-1.5-pro", ProviderGoogle, "gemini-1.5-pro"},
		{"openai:gpt-4o-mini", ProviderOpenAI, "gpt-4o-mini"},
		{"OpenAI:gpt-4o", ProviderOpenAI, "gpt-4o"},
		{" google-gla:gemini-1.5-flash ", ProviderGoogle, "gemini-1.5-flash"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseModelID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.provider, id.Provider)
			assert.Equal(t, tt.name, id.Name)
		})
	}
}

func TestParseModelID_BareNameInference(t *testing.T) {
	id, err := ParseModelID("gemini-1.5-flash")
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, id.Provider)

	id, err = ParseModelID("gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, id.Provider)
}

func TestParseModelID_UnknownProvider(t *testing.T) {
	_, err := ParseModelID("acme:supermodel-9000")
	require.Error(t, err)
	assert.True(t, errors.IsModel(err), "unknown provider must be a model resolution error")
}

func TestParseModelID_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "openai:", "mystery-model"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseModelID(input)
			require.Error(t, err)
			assert.True(t, errors.IsModel(err))
		})
	}
}

func TestModelID_String(t *testing.T) {
	id := ModelID{Provider: ProviderGoogle, Name: "gemini-1.5-flash"}
	assert.Equal(t, "google-gla:gemini-1.5-flash", id.String())
}
