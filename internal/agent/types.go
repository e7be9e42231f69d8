package agent

import (
	"time"

	"github.com/google/uuid"

	"github.com/benjipeng/promptrun/internal/llm"
)

// Config binds an agent to a model and a fixed system prompt.
// Constructed once per process invocation and never mutated.
type Config struct {
	Model        string // provider-qualified, e.g. "google-gla:gemini-1.5-flash"
	SystemPrompt string // may be empty
	APIKey       string // optional; empty means ambient resolution
}

// Result is the outcome of a single run
type Result struct {
	Output   string
	Metadata RunMetadata
}

// RunMetadata carries implementation-defined details about one run.
// Callers that only want the text can ignore it.
type RunMetadata struct {
	RunID       uuid.UUID
	Model       llm.ModelID
	StartedAt   time.Time
	Duration    time.Duration
	PromptChars int
	OutputChars int
}
