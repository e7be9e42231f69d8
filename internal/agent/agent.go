package agent

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/benjipeng/promptrun/internal/errors"
	"github.com/benjipeng/promptrun/internal/llm"
)

// Agent binds a model identifier and a system prompt to a single
// synchronous request interface. One Agent issues at most one request;
// a fresh Agent is constructed per process run, so no session or
// history state ever survives between runs.
type Agent struct {
	id           llm.ModelID
	systemPrompt string
	completer    llm.Completer
	logger       *slog.Logger
	ran          atomic.Bool
}

// New constructs an agent over an already-built provider client.
// The model identifier in cfg.Model must parse; credential resolution
// happens before this point, when the llm.Client is created.
func New(id llm.ModelID, systemPrompt string, completer llm.Completer) *Agent {
	return &Agent{
		id:           id,
		systemPrompt: systemPrompt,
		completer:    completer,
		logger:       slog.Default().With("component", "agent", "model", id.String()),
	}
}

// RunSync submits one user message and blocks until the response
// arrives or the provider fails. The returned output is guaranteed
// non-empty on success. All failures are terminal: no retry, no
// backoff. A second call on the same Agent is refused.
func (a *Agent) RunSync(ctx context.Context, message string) (*Result, error) {
	if message == "" {
		return nil, errors.ValidationError("request message must not be empty")
	}
	if !a.ran.CompareAndSwap(false, true) {
		return nil, errors.InternalError("agent already ran; construct a new agent per run")
	}

	meta := RunMetadata{
		RunID:       uuid.New(),
		Model:       a.id,
		StartedAt:   time.Now(),
		PromptChars: len(message),
	}

	a.logger.Debug("issuing request", "run_id", meta.RunID, "prompt_chars", meta.PromptChars)

	output, err := a.completer.Complete(ctx, a.systemPrompt, message)
	meta.Duration = time.Since(meta.StartedAt)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, errors.InternalError("provider returned an empty response")
	}
	meta.OutputChars = len(output)

	a.logger.Debug("request complete",
		"run_id", meta.RunID,
		"duration", meta.Duration,
		"output_chars", meta.OutputChars,
	)

	return &Result{Output: output, Metadata: meta}, nil
}

// SystemPrompt returns the fixed instruction string bound at construction
func (a *Agent) SystemPrompt() string {
	return a.systemPrompt
}
