package config

import (
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "promptrun"

	// KeyringGoogleKeyItem is the key for the Google AI API key
	KeyringGoogleKeyItem = "google-api-key"

	// KeyringOpenAIKeyItem is the key for the OpenAI API key
	KeyringOpenAIKeyItem = "openai-api-key"
)

// KeyringManager handles secure credential storage in the OS keychain
type KeyringManager struct {
	logger *slog.Logger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{
		logger: slog.Default().With("component", "keyring"),
	}
}

// GetGoogleKey retrieves the Google AI API key from the OS keychain
func (km *KeyringManager) GetGoogleKey() (string, error) {
	return km.get(KeyringGoogleKeyItem)
}

// SetGoogleKey stores the Google AI API key securely in the OS keychain
func (km *KeyringManager) SetGoogleKey(apiKey string) error {
	return km.set(KeyringGoogleKeyItem, apiKey)
}

// DeleteGoogleKey removes the Google AI API key from the OS keychain
func (km *KeyringManager) DeleteGoogleKey() error {
	return km.delete(KeyringGoogleKeyItem)
}

// GetOpenAIKey retrieves the OpenAI API key from the OS keychain
func (km *KeyringManager) GetOpenAIKey() (string, error) {
	return km.get(KeyringOpenAIKeyItem)
}

// SetOpenAIKey stores the OpenAI API key securely in the OS keychain
func (km *KeyringManager) SetOpenAIKey(apiKey string) error {
	return km.set(KeyringOpenAIKeyItem, apiKey)
}

// DeleteOpenAIKey removes the OpenAI API key from the OS keychain
func (km *KeyringManager) DeleteOpenAIKey() error {
	return km.delete(KeyringOpenAIKeyItem)
}

// get reads one item, treating "not found" as empty rather than an error
func (km *KeyringManager) get(item string) (string, error) {
	val, err := keyring.Get(KeyringService, item)
	if err == keyring.ErrNotFound {
		// Not an error - just not set yet
		return "", nil
	}
	if err != nil {
		km.logger.Error("failed to read from keychain", "item", item, "error", err)
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}

	km.logger.Debug("credential retrieved from keychain", "item", item)
	return val, nil
}

// set stores one item, using OS-level encryption:
// - macOS: Keychain Access.app -> "promptrun"
// - Windows: Credential Manager -> "promptrun"
// - Linux: Secret Service (requires libsecret)
func (km *KeyringManager) set(item, value string) error {
	if value == "" {
		return fmt.Errorf("api key cannot be empty")
	}

	if err := keyring.Set(KeyringService, item, value); err != nil {
		km.logger.Error("failed to save to keychain", "item", item, "error", err)
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.logger.Info("credential saved to keychain", "service", KeyringService, "item", item)
	return nil
}

// delete removes one item, treating "not found" as already done
func (km *KeyringManager) delete(item string) error {
	err := keyring.Delete(KeyringService, item)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		km.logger.Error("failed to delete from keychain", "item", item, "error", err)
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}

	km.logger.Info("credential deleted from keychain", "item", item)
	return nil
}

// IsAvailable checks if the OS keychain is available.
// Returns false on headless systems (CI/CD) where keychain isn't available.
func (km *KeyringManager) IsAvailable() bool {
	_, err := keyring.Get(KeyringService, "test-availability")

	// "not found" means the keychain answered, so it is available
	if err == keyring.ErrNotFound {
		return true
	}
	if err != nil {
		km.logger.Debug("keychain not available", "error", err)
		return false
	}

	return true
}

// MaskAPIKey masks an API key for display.
// Shows first 7 chars and last 4 chars: "AIzaSyB...xY12"
func MaskAPIKey(apiKey string) string {
	if apiKey == "" {
		return "(not set)"
	}
	if len(apiKey) < 12 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", apiKey[:7], apiKey[len(apiKey)-4:])
}
