package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjipeng/promptrun/internal/errors"
)

// clearProviderEnv empties every env var the credential chain reads and
// redirects HOME so real credential files stay out of the test
func clearProviderEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PROMPTRUN_MODE", "ci")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	return home
}

// skipIfKeychainHoldsKey guards chain tests against a host keychain
// that already stores a promptrun credential
func skipIfKeychainHoldsKey(t *testing.T, get func() (string, error)) {
	t.Helper()
	km := NewKeyringManager()
	if !km.IsAvailable() {
		return
	}
	if k, _ := get(); k != "" {
		t.Skip("Keychain holds a key, cannot isolate the chain under test")
	}
}

func TestGetGoogleAPIKey_EnvWins(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GOOGLE_API_KEY", "env-google-key")

	cm := NewCredentialManager()
	key, err := cm.GetGoogleAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "env-google-key", key)
}

func TestGetGoogleAPIKey_GeminiAliasAccepted(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GEMINI_API_KEY", "alias-key")

	cm := NewCredentialManager()
	key, err := cm.GetGoogleAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "alias-key", key)
}

func TestGetGoogleAPIKey_ReadsCredentialsFile(t *testing.T) {
	home := clearProviderEnv(t)
	km := NewKeyringManager()
	skipIfKeychainHoldsKey(t, km.GetGoogleKey)

	dir := filepath.Join(home, ".config", "promptrun")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.yaml"),
		[]byte("google_api_key: from-file\n"), 0600))

	cm := NewCredentialManager()
	key, err := cm.GetGoogleAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-file", key)
}

func TestGetGoogleAPIKey_MissingIsAuthError(t *testing.T) {
	clearProviderEnv(t)
	km := NewKeyringManager()
	skipIfKeychainHoldsKey(t, km.GetGoogleKey)

	cm := NewCredentialManager()
	_, err := cm.GetGoogleAPIKey()
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err), "missing credential must be an auth-class error")
}

func TestGetOpenAIAPIKey_EnvWins(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cm := NewCredentialManager()
	key, err := cm.GetOpenAIAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", key)
}

func TestGetOpenAIAPIKey_ReadsCredentialsFile(t *testing.T) {
	home := clearProviderEnv(t)
	km := NewKeyringManager()
	skipIfKeychainHoldsKey(t, km.GetOpenAIKey)

	dir := filepath.Join(home, ".config", "promptrun")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.yaml"),
		[]byte("openai_api_key: sk-from-file\n"), 0600))

	cm := NewCredentialManager()
	key, err := cm.GetOpenAIAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", key)
}

func TestGetOpenAIAPIKey_MissingIsAuthError(t *testing.T) {
	clearProviderEnv(t)
	km := NewKeyringManager()
	skipIfKeychainHoldsKey(t, km.GetOpenAIKey)

	cm := NewCredentialManager()
	_, err := cm.GetOpenAIAPIKey()
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err), "missing credential must be an auth-class error")
}
