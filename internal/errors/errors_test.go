package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthError_Classification(t *testing.T) {
	err := AuthError("no usable credential")

	assert.True(t, IsAuth(err))
	assert.False(t, IsModel(err))
	assert.False(t, IsNetwork(err))
	assert.True(t, IsFatal(err))
	assert.Equal(t, ErrorTypeAuth, GetType(err))
}

func TestModelError_Classification(t *testing.T) {
	err := ModelErrorf("unknown provider %q", "acme")

	assert.True(t, IsModel(err))
	assert.Equal(t, `unknown provider "acme"`, err.Message)
	assert.Equal(t, SeverityCritical, GetSeverity(err))
}

func TestNetworkError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := NetworkError(cause, "request failed")

	require.NotNil(t, err)
	assert.True(t, IsNetwork(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeNetwork, SeverityHigh, "ignored"))
}

func TestError_IsMatchesOnType(t *testing.T) {
	a := AuthError("missing key")
	b := AuthErrorf("rejected key for %s", "openai")
	n := NetworkError(stderrors.New("timeout"), "transport")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, n))
}

func TestError_WithContext(t *testing.T) {
	err := ModelError("model not found").
		WithContext("model", "gemini-1.5-flash").
		WithContext("provider", "google-gla")

	detail := err.DetailedString()
	assert.Contains(t, detail, "MODEL")
	assert.Contains(t, detail, "gemini-1.5-flash")
}

func TestGetType_PlainError(t *testing.T) {
	assert.Equal(t, ErrorTypeInternal, GetType(stderrors.New("boom")))
	assert.False(t, IsAuth(stderrors.New("boom")))
}
