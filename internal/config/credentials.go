package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/benjipeng/promptrun/internal/errors"
)

// CredentialManager handles credential retrieval with priority chain
// Priority: Environment Variables -> Keychain -> Config File -> Interactive Prompt
type CredentialManager struct {
	mode       DeploymentMode
	keyring    *KeyringManager
	configPath string
}

// Credentials holds all stored provider credentials
type Credentials struct {
	GoogleAPIKey string `yaml:"google_api_key"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
}

// NewCredentialManager creates a new credential manager
func NewCredentialManager() *CredentialManager {
	mode := DetectMode()
	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".config", "promptrun", "credentials.yaml")

	return &CredentialManager{
		mode:       mode,
		keyring:    NewKeyringManager(),
		configPath: configPath,
	}
}

// GetGoogleAPIKey retrieves the Google AI API key using the priority chain
func (cm *CredentialManager) GetGoogleAPIKey() (string, error) {
	// 1. Environment variables (highest priority)
	for _, envVar := range []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"} {
		if key := os.Getenv(envVar); key != "" {
			return key, nil
		}
	}

	// 2. Keychain
	if cm.keyring.IsAvailable() {
		if key, err := cm.keyring.GetGoogleKey(); err == nil && key != "" {
			return key, nil
		}
	}

	// 3. Config file
	if creds, err := cm.loadConfigFile(); err == nil && creds.GoogleAPIKey != "" {
		return creds.GoogleAPIKey, nil
	}

	// 4. Interactive prompt (only in packaged mode, not in CI)
	if cm.mode.AllowsInteractivePrompts() && isInteractive() {
		fmt.Println("\nGoogle AI API key not found.")
		fmt.Println("Create one at: https://aistudio.google.com/apikey")
		fmt.Println()
		fmt.Print("Enter Google AI API key: ")
		return cm.promptAndStore(func(key string) error { return cm.keyring.SetGoogleKey(key) },
			func(key string) Credentials { return Credentials{GoogleAPIKey: key} })
	}

	return "", errors.AuthErrorf(
		"GOOGLE_API_KEY not found. Set it via:\n"+
			"  1. Environment variable: export GOOGLE_API_KEY=...\n"+
			"  2. Run: promptrun configure (to set up keychain)\n"+
			"  3. Config file: %s", cm.configPath)
}

// GetOpenAIAPIKey retrieves the OpenAI API key using the priority chain
func (cm *CredentialManager) GetOpenAIAPIKey() (string, error) {
	// 1. Environment variable (highest priority)
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}

	// 2. Keychain
	if cm.keyring.IsAvailable() {
		if key, err := cm.keyring.GetOpenAIKey(); err == nil && key != "" {
			return key, nil
		}
	}

	// 3. Config file
	if creds, err := cm.loadConfigFile(); err == nil && creds.OpenAIAPIKey != "" {
		return creds.OpenAIAPIKey, nil
	}

	// 4. Interactive prompt
	if cm.mode.AllowsInteractivePrompts() && isInteractive() {
		fmt.Println("\nOpenAI API key not found.")
		fmt.Println("Create one at: https://platform.openai.com/api-keys")
		fmt.Println()
		fmt.Print("Enter OpenAI API key (starts with sk-...): ")
		return cm.promptAndStore(func(key string) error { return cm.keyring.SetOpenAIKey(key) },
			func(key string) Credentials { return Credentials{OpenAIAPIKey: key} })
	}

	return "", errors.AuthErrorf(
		"OPENAI_API_KEY not found. Set it via:\n"+
			"  1. Environment variable: export OPENAI_API_KEY=sk-...\n"+
			"  2. Run: promptrun configure (to set up keychain)\n"+
			"  3. Config file: %s", cm.configPath)
}

// promptAndStore reads a key securely and persists it to the keychain
// when available, or the credentials file otherwise
func (cm *CredentialManager) promptAndStore(storeKeychain func(string) error, asCreds func(string) Credentials) (string, error) {
	key, err := cm.readSecurely()
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", errors.AuthError("api key is required")
	}

	if cm.keyring.IsAvailable() {
		if err := storeKeychain(key); err == nil {
			fmt.Println("✓ Saved to keychain")
		}
	} else {
		if err := cm.saveConfigFile(asCreds(key)); err == nil {
			fmt.Printf("✓ Saved to %s\n", cm.configPath)
		}
	}

	return key, nil
}

// loadConfigFile loads credentials from the config file
func (cm *CredentialManager) loadConfigFile() (*Credentials, error) {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// saveConfigFile saves credentials to the config file
func (cm *CredentialManager) saveConfigFile(creds Credentials) error {
	dir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(creds)
	if err != nil {
		return err
	}

	// Restrictive permissions, user-only read/write
	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return err
	}

	return nil
}

// readSecurely reads a password/token from stdin without echoing
func (cm *CredentialManager) readSecurely() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		bytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // New line after password input
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(bytes)), nil
	}

	// Fallback: read from stdin (piped input)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// isInteractive returns true if stdin is a terminal (not piped)
func isInteractive() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// GetMode returns the current deployment mode
func (cm *CredentialManager) GetMode() DeploymentMode {
	return cm.mode
}

// GetConfigPath returns the path to the credentials file
func (cm *CredentialManager) GetConfigPath() string {
	return cm.configPath
}
