package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/benjipeng/promptrun/internal/agent"
	"github.com/benjipeng/promptrun/internal/config"
	"github.com/benjipeng/promptrun/internal/errors"
	"github.com/benjipeng/promptrun/internal/llm"
)

// runOneShot is the root command: one message in, one response out
func runOneShot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	message, err := readMessage(args)
	if err != nil {
		return err
	}
	if message == "" {
		return errors.ValidationError("no message given; pass it as arguments or pipe it on stdin")
	}

	agentCfg := resolveAgentConfig(cfg, modelFlag, systemFlag)

	id, err := llm.ParseModelID(agentCfg.Model)
	if err != nil {
		return err
	}

	if agentCfg.APIKey == "" {
		agentCfg.APIKey, err = resolveAPIKey(cfg, id.Provider)
		if err != nil {
			return err
		}
	}

	client, err := llm.NewClient(ctx, id, agentCfg.APIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := agent.New(id, agentCfg.SystemPrompt, client).RunSync(ctx, message)
	if err != nil {
		return err
	}

	fmt.Println(result.Output)

	if verbose {
		logger.WithField("run_id", result.Metadata.RunID).
			WithField("model", result.Metadata.Model.String()).
			WithField("duration", result.Metadata.Duration).
			Debug("run complete")
	}

	return nil
}

// resolveAgentConfig layers flag overrides on top of the loaded config
func resolveAgentConfig(cfg *config.Config, modelFlag, systemFlag string) agent.Config {
	agentCfg := agent.Config{
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
	}
	if modelFlag != "" {
		agentCfg.Model = modelFlag
	}
	if systemFlag != "" {
		agentCfg.SystemPrompt = systemFlag
	}
	return agentCfg
}

// resolveAPIKey resolves a credential for the given provider. The
// loaded config is consulted first: applyEnvOverrides has already
// layered env vars, the keychain, and the config file into cfg.API, so
// a key saved by `promptrun configure` or `config set` is honored here.
// Only then does the CredentialManager chain run, for its credentials
// file and interactive prompt legs.
func resolveAPIKey(cfg *config.Config, provider llm.Provider) (string, error) {
	switch provider {
	case llm.ProviderGoogle:
		if cfg.API.GoogleKey != "" {
			return cfg.API.GoogleKey, nil
		}
		return config.NewCredentialManager().GetGoogleAPIKey()
	case llm.ProviderOpenAI:
		if cfg.API.OpenAIKey != "" {
			return cfg.API.OpenAIKey, nil
		}
		return config.NewCredentialManager().GetOpenAIAPIKey()
	default:
		return "", errors.ModelErrorf("no credential source for provider %q", provider)
	}
}

// readMessage builds the user message from args, falling back to stdin
// when input is piped
func readMessage(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}

	// No args: accept piped input, but never block on a terminal
	if term.IsTerminal(int(syscall.Stdin)) {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read message from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
